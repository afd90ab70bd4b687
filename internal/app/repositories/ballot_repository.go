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

// IBallotRepository defines the interface for ballot database operations
type IBallotRepository interface {
	Create(ctx context.Context, candidateID int64) error
	GetByCandidateID(ctx context.Context, candidateID int64) (*models.Ballot, error)
}

// BallotRepository handles ballot database operations
type BallotRepository struct {
	db *pgxpool.Pool
}

// NewBallotRepository creates a new BallotRepository
func NewBallotRepository(db *pgxpool.Pool) *BallotRepository {
	return &BallotRepository{db: db}
}

// Create opens a ballot entry for an approved candidate. The candidate_id
// unique constraint makes repeated approvals idempotent at this layer.
func (r *BallotRepository) Create(ctx context.Context, candidateID int64) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO ballots (candidate_id, total_votes, spoilt_votes, status)
		VALUES ($1, 0, 0, $2)
		ON CONFLICT (candidate_id) DO NOTHING`,
		candidateID, models.ApprovalApproved)

	if err != nil {
		return fmt.Errorf("error creating ballot entry: %w", err)
	}

	return nil
}

// GetByCandidateID retrieves a candidate's ballot entry
func (r *BallotRepository) GetByCandidateID(ctx context.Context, candidateID int64) (*models.Ballot, error) {
	ballot := &models.Ballot{}
	err := r.db.QueryRow(ctx, `
		SELECT id, candidate_id, total_votes, spoilt_votes, status, created_at
		FROM ballots
		WHERE candidate_id = $1`,
		candidateID).Scan(
		&ballot.ID, &ballot.CandidateID, &ballot.TotalVotes,
		&ballot.SpoiltVotes, &ballot.Status, &ballot.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCandidateNotBallot
		}
		return nil, fmt.Errorf("error getting ballot: %w", err)
	}

	return ballot, nil
}
