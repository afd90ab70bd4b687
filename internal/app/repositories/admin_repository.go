package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmwangi/uchaguzi/internal/app/models"
	"github.com/dmwangi/uchaguzi/internal/pkg/apperrors"
)

// IAdminRepository defines the interface for admin database operations
type IAdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) (int64, error)
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
}

// AdminRepository handles electoral official database operations
type AdminRepository struct {
	db *pgxpool.Pool
}

// NewAdminRepository creates a new AdminRepository
func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{db: db}
}

// Create inserts a new admin row
func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO admins (first_name, last_name, email, password)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		admin.FirstName, admin.LastName, admin.Email, admin.Password).Scan(&id)

	if err != nil {
		if isDuplicateKeyError(err) {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		return 0, fmt.Errorf("error creating admin: %w", err)
	}

	return id, nil
}

// GetByEmail retrieves an admin by email
func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	admin := &models.Admin{}
	err := r.db.QueryRow(ctx, `
		SELECT id, first_name, last_name, email, password, created_at
		FROM admins
		WHERE email = $1`,
		email).Scan(
		&admin.ID, &admin.FirstName, &admin.LastName, &admin.Email,
		&admin.Password, &admin.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error getting admin by email: %w", err)
	}

	return admin, nil
}
