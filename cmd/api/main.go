package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/dmwangi/uchaguzi/internal/pkg/logger"
	"github.com/dmwangi/uchaguzi/internal/server"
)

// @title Uchaguzi API
// @version 1.0
// @description Campus e-voting backend: biometric registration, voter and candidate authentication, position applications and vote tallying.

// @contact.name API Support
// @contact.email support@uchaguzi.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

func main() {
	// Missing .env is fine, real env vars still apply
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("No .env file found")
	}

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
