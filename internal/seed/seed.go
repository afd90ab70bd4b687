// Package seed creates the fixed reference data the application expects
package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/dmwangi/uchaguzi/internal/app/models"
	"github.com/dmwangi/uchaguzi/internal/config"
	"github.com/dmwangi/uchaguzi/internal/pkg/auth"
)

// CreateDefaultData seeds the faculty catalogue and the default electoral
// official. Both inserts are idempotent, so reseeding on every startup is
// safe.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	if err := seedFaculties(ctx, dbPool); err != nil {
		return fmt.Errorf("failed to seed faculties: %w", err)
	}

	if err := seedDefaultAdmin(ctx, dbPool, cfg, lgr); err != nil {
		return fmt.Errorf("failed to seed default admin: %w", err)
	}

	return nil
}

func seedFaculties(ctx context.Context, dbPool *pgxpool.Pool) error {
	for name, code := range models.FacultyCodes {
		_, err := dbPool.Exec(ctx, `
			INSERT INTO faculties (name, code)
			VALUES ($1, $2)
			ON CONFLICT (name) DO NOTHING`,
			name, code)
		if err != nil {
			return fmt.Errorf("error inserting faculty %s: %w", name, err)
		}
	}
	return nil
}

func seedDefaultAdmin(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	if cfg.Admin.Password == "" {
		lgr.Warn().Msg("No admin password configured, skipping default admin seed")
		return nil
	}

	var exists bool
	err := dbPool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM admins WHERE email = $1)`,
		cfg.Admin.Email).Scan(&exists)
	if err != nil {
		return fmt.Errorf("error checking default admin: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return fmt.Errorf("error hashing admin password: %w", err)
	}

	_, err = dbPool.Exec(ctx, `
		INSERT INTO admins (first_name, last_name, email, password)
		VALUES ($1, $2, $3, $4)`,
		cfg.Admin.FirstName, cfg.Admin.LastName, cfg.Admin.Email, hash)
	if err != nil {
		return fmt.Errorf("error creating default admin: %w", err)
	}

	lgr.Info().Str("email", cfg.Admin.Email).Msg("Default admin created")
	return nil
}
