package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmwangi/uchaguzi/internal/app/models"
	"github.com/dmwangi/uchaguzi/internal/pkg/apperrors"
	"github.com/dmwangi/uchaguzi/internal/pkg/helpers"
)

// IVoteRepository defines the interface for vote database operations
type IVoteRepository interface {
	RecordVoterVote(ctx context.Context, vote *models.Vote) (int64, error)
	RecordCandidateVote(ctx context.Context, candidateID int64, category models.PositionKind, targetCandidateID int64) error
}

// VoteRepository handles vote database operations
type VoteRepository struct {
	db *pgxpool.Pool
}

// NewVoteRepository creates a new VoteRepository
func NewVoteRepository(db *pgxpool.Pool) *VoteRepository {
	return &VoteRepository{db: db}
}

// RecordVoterVote persists a voter's single vote as one transaction:
// the voter's status flip, the ballot counter increment and the vote row
// commit together or not at all. The flip is guarded on NotVoted, so a
// voter racing two requests records exactly one vote.
func (r *VoteRepository) RecordVoterVote(ctx context.Context, vote *models.Vote) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin vote transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE voters
		SET voting_status = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2 AND voting_status = $3`,
		models.Voted, vote.VoterID, models.NotVoted)
	if err != nil {
		return 0, fmt.Errorf("error updating voter status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return 0, apperrors.ErrAlreadyVoted
	}

	// A missing ballot row means the candidate is not on the ballot and
	// the whole vote rolls back.
	tag, err = tx.Exec(ctx, `
		UPDATE ballots
		SET total_votes = total_votes + 1
		WHERE candidate_id = $1`,
		vote.CandidateID)
	if err != nil {
		return 0, fmt.Errorf("error incrementing ballot counter: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return 0, apperrors.ErrCandidateNotBallot
	}

	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO votes (voter_id, candidate_id, election_id)
		VALUES ($1, $2, $3)
		RETURNING id`,
		vote.VoterID, vote.CandidateID, helpers.GetNullInt64(vote.ElectionID)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error recording vote: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit vote transaction: %w", err)
	}

	return id, nil
}

// RecordCandidateVote persists a candidate's vote in one of the two
// categories. Each candidate holds one vote per category, enforced by
// the guarded flag flip, and the target's ballot counter increments in
// the same transaction.
func (r *VoteRepository) RecordCandidateVote(ctx context.Context, candidateID int64, category models.PositionKind, targetCandidateID int64) error {
	flagColumn := "delegate_voted"
	if category == models.PositionExecutive {
		flagColumn = "executive_voted"
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin candidate vote transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, fmt.Sprintf(`
		UPDATE candidates
		SET %s = TRUE, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND %s = FALSE`, flagColumn, flagColumn),
		candidateID)
	if err != nil {
		return fmt.Errorf("error updating candidate vote flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCategoryAlreadyUsed
	}

	tag, err = tx.Exec(ctx, `
		UPDATE ballots
		SET total_votes = total_votes + 1
		WHERE candidate_id = $1`,
		targetCandidateID)
	if err != nil {
		return fmt.Errorf("error incrementing ballot counter: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCandidateNotBallot
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit candidate vote transaction: %w", err)
	}

	return nil
}
