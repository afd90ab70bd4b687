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

// ICandidateRepository defines the interface for candidate database operations
type ICandidateRepository interface {
	Create(ctx context.Context, candidate *models.Candidate) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Candidate, error)
	GetByEmail(ctx context.Context, email string) (*models.Candidate, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// CandidateRepository handles candidate database operations
type CandidateRepository struct {
	db *pgxpool.Pool
}

// NewCandidateRepository creates a new CandidateRepository
func NewCandidateRepository(db *pgxpool.Pool) *CandidateRepository {
	return &CandidateRepository{db: db}
}

// Create inserts a new candidate row
func (r *CandidateRepository) Create(ctx context.Context, candidate *models.Candidate) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO candidates (first_name, last_name, email, faculty, reg_number, descriptor, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		candidate.FirstName, candidate.LastName, candidate.Email, candidate.Faculty,
		candidate.RegNumber, candidate.Descriptor, candidate.Status).Scan(&id)

	if err != nil {
		if isDuplicateKeyError(err) {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		return 0, fmt.Errorf("error creating candidate: %w", err)
	}

	return id, nil
}

// GetByID retrieves a candidate by ID
func (r *CandidateRepository) GetByID(ctx context.Context, id int64) (*models.Candidate, error) {
	candidate := &models.Candidate{}
	err := r.db.QueryRow(ctx, `
		SELECT id, first_name, last_name, email, faculty, reg_number, descriptor, status, delegate_voted, executive_voted, created_at, updated_at
		FROM candidates
		WHERE id = $1`,
		id).Scan(
		&candidate.ID, &candidate.FirstName, &candidate.LastName, &candidate.Email,
		&candidate.Faculty, &candidate.RegNumber, &candidate.Descriptor, &candidate.Status,
		&candidate.DelegateVoted, &candidate.ExecutiveVoted, &candidate.CreatedAt, &candidate.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCandidateNotFound
		}
		return nil, fmt.Errorf("error getting candidate by ID: %w", err)
	}

	return candidate, nil
}

// GetByEmail retrieves a candidate by email
func (r *CandidateRepository) GetByEmail(ctx context.Context, email string) (*models.Candidate, error) {
	candidate := &models.Candidate{}
	err := r.db.QueryRow(ctx, `
		SELECT id, first_name, last_name, email, faculty, reg_number, descriptor, status, delegate_voted, executive_voted, created_at, updated_at
		FROM candidates
		WHERE email = $1`,
		email).Scan(
		&candidate.ID, &candidate.FirstName, &candidate.LastName, &candidate.Email,
		&candidate.Faculty, &candidate.RegNumber, &candidate.Descriptor, &candidate.Status,
		&candidate.DelegateVoted, &candidate.ExecutiveVoted, &candidate.CreatedAt, &candidate.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCandidateNotFound
		}
		return nil, fmt.Errorf("error getting candidate by email: %w", err)
	}

	return candidate, nil
}

// EmailExists checks if an email is already registered
func (r *CandidateRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM candidates WHERE email = $1)`,
		email).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}

	return exists, nil
}
