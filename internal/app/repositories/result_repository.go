package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmwangi/uchaguzi/internal/app/models"
	"github.com/dmwangi/uchaguzi/internal/pkg/apperrors"
)

// IResultRepository defines the interface for result database operations
type IResultRepository interface {
	ReplaceAll(ctx context.Context) error
	GetResults(ctx context.Context, electionID int64) ([]*models.ResultRow, error)
	GetWinner(ctx context.Context, electionID int64) (*models.ResultRow, error)
}

// ResultRepository handles result database operations
type ResultRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewResultRepository creates a new ResultRepository
func NewResultRepository(db *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ReplaceAll rebuilds the results table from the ballot counters. The
// table is derived data: every tally run discards it entirely and
// recomputes it inside one transaction, so rerunning the tally is
// idempotent and readers never see a half-written table.
func (r *ResultRepository) ReplaceAll(ctx context.Context) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin tally transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM results`); err != nil {
		return fmt.Errorf("error clearing results: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO results (election_id, candidate_id, total_votes)
		SELECT COALESCE(a.election_id, 0), b.candidate_id, b.total_votes
		FROM ballots b
		LEFT JOIN applications a
			ON a.candidate_id = b.candidate_id AND a.status = 'Approved'`)
	if err != nil {
		return fmt.Errorf("error recomputing results: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit tally transaction: %w", err)
	}

	return nil
}

func (r *ResultRepository) resultRowsQuery(electionID int64) squirrel.SelectBuilder {
	query := r.sb.Select(
		"r.election_id", "r.candidate_id",
		"c.first_name || ' ' || c.last_name AS candidate_name",
		"c.email", "r.total_votes").
		From("results r").
		Join("candidates c ON c.id = r.candidate_id").
		OrderBy("r.total_votes DESC", "r.candidate_id ASC")

	if electionID > 0 {
		query = query.Where(squirrel.Eq{"r.election_id": electionID})
	}

	return query
}

// GetResults retrieves tallied results ordered by vote count, optionally
// scoped to one election (electionID 0 means all).
func (r *ResultRepository) GetResults(ctx context.Context, electionID int64) ([]*models.ResultRow, error) {
	sql, args, err := r.resultRowsQuery(electionID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build results query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error getting results: %w", err)
	}
	defer rows.Close()

	var results []*models.ResultRow
	for rows.Next() {
		row := &models.ResultRow{}
		err := rows.Scan(&row.ElectionID, &row.CandidateID, &row.CandidateName, &row.Email, &row.TotalVotes)
		if err != nil {
			return nil, fmt.Errorf("error scanning result row: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating result rows: %w", err)
	}

	return results, nil
}

// GetWinner retrieves the highest scoring tallied candidate
func (r *ResultRepository) GetWinner(ctx context.Context, electionID int64) (*models.ResultRow, error) {
	sql, args, err := r.resultRowsQuery(electionID).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build winner query: %w", err)
	}

	row := &models.ResultRow{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&row.ElectionID, &row.CandidateID, &row.CandidateName, &row.Email, &row.TotalVotes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoResults
		}
		return nil, fmt.Errorf("error getting winner: %w", err)
	}

	return row, nil
}
