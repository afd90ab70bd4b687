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

// IVoterRepository defines the interface for voter database operations
type IVoterRepository interface {
	Create(ctx context.Context, voter *models.Voter) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Voter, error)
	GetByEmail(ctx context.Context, email string) (*models.Voter, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ListDescriptors(ctx context.Context) ([][]byte, error)
	SetRegNumber(ctx context.Context, id int64, regNumber string) error
}

// VoterRepository handles voter database operations
type VoterRepository struct {
	db *pgxpool.Pool
}

// NewVoterRepository creates a new VoterRepository
func NewVoterRepository(db *pgxpool.Pool) *VoterRepository {
	return &VoterRepository{db: db}
}

// Create inserts a new voter row and returns the assigned identifier.
// The registration number is derived from that identifier afterwards
// via SetRegNumber.
func (r *VoterRepository) Create(ctx context.Context, voter *models.Voter) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO voters (first_name, last_name, email, faculty, descriptor, status, voting_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		voter.FirstName, voter.LastName, voter.Email, voter.Faculty,
		voter.Descriptor, voter.Status, voter.VotingStatus).Scan(&id)

	if err != nil {
		if isDuplicateKeyError(err) {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		return 0, fmt.Errorf("error creating voter: %w", err)
	}

	return id, nil
}

// GetByID retrieves a voter by ID
func (r *VoterRepository) GetByID(ctx context.Context, id int64) (*models.Voter, error) {
	voter := &models.Voter{}
	err := r.db.QueryRow(ctx, `
		SELECT id, first_name, last_name, email, faculty, reg_number, descriptor, status, voting_status, created_at, updated_at
		FROM voters
		WHERE id = $1`,
		id).Scan(
		&voter.ID, &voter.FirstName, &voter.LastName, &voter.Email, &voter.Faculty,
		&voter.RegNumber, &voter.Descriptor, &voter.Status, &voter.VotingStatus,
		&voter.CreatedAt, &voter.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrVoterNotFound
		}
		return nil, fmt.Errorf("error getting voter by ID: %w", err)
	}

	return voter, nil
}

// GetByEmail retrieves a voter by email
func (r *VoterRepository) GetByEmail(ctx context.Context, email string) (*models.Voter, error) {
	voter := &models.Voter{}
	err := r.db.QueryRow(ctx, `
		SELECT id, first_name, last_name, email, faculty, reg_number, descriptor, status, voting_status, created_at, updated_at
		FROM voters
		WHERE email = $1`,
		email).Scan(
		&voter.ID, &voter.FirstName, &voter.LastName, &voter.Email, &voter.Faculty,
		&voter.RegNumber, &voter.Descriptor, &voter.Status, &voter.VotingStatus,
		&voter.CreatedAt, &voter.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrVoterNotFound
		}
		return nil, fmt.Errorf("error getting voter by email: %w", err)
	}

	return voter, nil
}

// EmailExists checks if an email is already registered
func (r *VoterRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM voters WHERE email = $1)`,
		email).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}

	return exists, nil
}

// ListDescriptors returns every stored voter descriptor for the
// registration duplicate scan.
func (r *VoterRepository) ListDescriptors(ctx context.Context) ([][]byte, error) {
	rows, err := r.db.Query(ctx, `SELECT descriptor FROM voters`)
	if err != nil {
		return nil, fmt.Errorf("error listing voter descriptors: %w", err)
	}
	defer rows.Close()

	var descriptors [][]byte
	for rows.Next() {
		var buf []byte
		if err := rows.Scan(&buf); err != nil {
			return nil, fmt.Errorf("error scanning descriptor row: %w", err)
		}
		descriptors = append(descriptors, buf)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating descriptor rows: %w", err)
	}

	return descriptors, nil
}

// SetRegNumber persists the registration number derived from the
// voter's assigned identifier.
func (r *VoterRepository) SetRegNumber(ctx context.Context, id int64, regNumber string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE voters
		SET reg_number = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2`,
		regNumber, id)

	if err != nil {
		return fmt.Errorf("error setting registration number: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrVoterNotFound
	}

	return nil
}
