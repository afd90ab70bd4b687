// Package bootstrap wires configuration, storage and HTTP layers together
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/dmwangi/uchaguzi/internal/app/controllers"
	appMigrations "github.com/dmwangi/uchaguzi/internal/app/migrations"
	appRepos "github.com/dmwangi/uchaguzi/internal/app/repositories"
	appRoutes "github.com/dmwangi/uchaguzi/internal/app/routes"
	appServices "github.com/dmwangi/uchaguzi/internal/app/services"
	"github.com/dmwangi/uchaguzi/internal/config"
	"github.com/dmwangi/uchaguzi/internal/db"
	appMiddleware "github.com/dmwangi/uchaguzi/internal/middleware"
	pkgAuth "github.com/dmwangi/uchaguzi/internal/pkg/auth"
	"github.com/dmwangi/uchaguzi/internal/pkg/email"
	"github.com/dmwangi/uchaguzi/internal/pkg/logger"
	"github.com/dmwangi/uchaguzi/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	RegistrationService    appServices.RegistrationService
	AuthService            appServices.AuthService
	ApplicationService     appServices.ApplicationService
	VotingService          appServices.VotingService
	ResultsService         appServices.ResultsService
	ElectionService        appServices.ElectionService
	RegistrationController *appControllers.RegistrationController
	AuthController         *appControllers.AuthController
	ApplicationController  *appControllers.ApplicationController
	VotingController       *appControllers.VotingController
	ResultsController      *appControllers.ResultsController
	ElectionController     *appControllers.ElectionController
	AuthMiddleware         *appMiddleware.AuthMiddleware
	Repos                  *appRepos.Repositories
	JWTService             *pkgAuth.JWTService
	EmailService           email.EmailService
	Logger                 zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds fixed reference data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, cfg, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenIssuer: cfg.JWT.Issuer,
	})

	deps.EmailService = email.NewEmailService(email.SMTPConfig{
		Host:       cfg.SMTP.Host,
		Port:       cfg.SMTP.Port,
		Username:   cfg.SMTP.Username,
		Password:   cfg.SMTP.Password,
		FromName:   cfg.SMTP.FromName,
		FromEmail:  cfg.SMTP.FromEmail,
		AdminEmail: cfg.SMTP.AdminEmail,
		UseTLS:     cfg.SMTP.UseTLS,
	}, lgr)

	deps.RegistrationService = appServices.NewRegistrationService(
		deps.Repos.VoterRepository,
		deps.Repos.CandidateRepository,
		deps.EmailService,
		lgr,
	)
	deps.AuthService = appServices.NewAuthService(
		deps.Repos.VoterRepository,
		deps.Repos.CandidateRepository,
		deps.Repos.AdminRepository,
		deps.Repos.OTPRepository,
		deps.JWTService,
		deps.EmailService,
		lgr,
	)
	deps.ApplicationService = appServices.NewApplicationService(
		deps.Repos.ApplicationRepository,
		deps.Repos.CandidateRepository,
		deps.Repos.ElectionRepository,
		deps.Repos.BallotRepository,
		deps.EmailService,
		lgr,
	)
	deps.VotingService = appServices.NewVotingService(
		deps.Repos.VoteRepository,
		deps.Repos.VoterRepository,
		deps.Repos.CandidateRepository,
		deps.Repos.BallotRepository,
		deps.Repos.ElectionRepository,
		lgr,
	)
	deps.ResultsService = appServices.NewResultsService(
		deps.Repos.ResultRepository,
		deps.Repos.ElectionRepository,
		deps.Repos.CandidateRepository,
		deps.EmailService,
		lgr,
	)
	deps.ElectionService = appServices.NewElectionService(deps.Repos.ElectionRepository, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.RegistrationController = appControllers.NewRegistrationController(deps.RegistrationService, lgr)
	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.ApplicationController = appControllers.NewApplicationController(deps.ApplicationService, lgr)
	deps.VotingController = appControllers.NewVotingController(deps.VotingService, lgr)
	deps.ResultsController = appControllers.NewResultsController(deps.ResultsService, lgr)
	deps.ElectionController = appControllers.NewElectionController(deps.ElectionService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(gin.Recovery())

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.RegistrationController,
		deps.AuthController,
		deps.ApplicationController,
		deps.VotingController,
		deps.ResultsController,
		deps.ElectionController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
