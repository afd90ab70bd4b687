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
	"github.com/dmwangi/uchaguzi/internal/pkg/logger"
)

// IElectionRepository defines the interface for election database operations
type IElectionRepository interface {
	Create(ctx context.Context, election *models.Election) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Election, error)
	GetAll(ctx context.Context) ([]*models.Election, error)
	Update(ctx context.Context, election *models.Election) error
	Delete(ctx context.Context, id int64) error
	SetWinnerNotified(ctx context.Context, id int64) error
}

// ElectionRepository handles election database operations
type ElectionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewElectionRepository creates a new ElectionRepository
func NewElectionRepository(db *pgxpool.Pool) *ElectionRepository {
	return &ElectionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var electionColumns = []string{
	"id", "title", "description", "starts_at", "ends_at", "status",
	"delegate_seats", "executive_seats", "winner_notified", "created_at", "updated_at",
}

func scanElection(row pgx.Row) (*models.Election, error) {
	e := &models.Election{}
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.StartsAt, &e.EndsAt, &e.Status,
		&e.DelegateSeats, &e.ExecutiveSeats, &e.WinnerNotified, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Create creates a new election
func (r *ElectionRepository) Create(ctx context.Context, election *models.Election) (int64, error) {
	sql, args, err := r.sb.Insert("elections").
		Columns("title", "description", "starts_at", "ends_at", "status", "delegate_seats", "executive_seats").
		Values(election.Title, election.Description, election.StartsAt, election.EndsAt,
			election.Status, election.DelegateSeats, election.ExecutiveSeats).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create election SQL")
		return 0, fmt.Errorf("failed to build create election query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create election query")
		return 0, fmt.Errorf("error creating election: %w", err)
	}

	return id, nil
}

// GetByID retrieves an election by ID
func (r *ElectionRepository) GetByID(ctx context.Context, id int64) (*models.Election, error) {
	sql, args, err := r.sb.Select(electionColumns...).
		From("elections").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get election query: %w", err)
	}

	election, err := scanElection(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrElectionNotFound
		}
		logger.Error().Err(err).Int64("electionID", id).Msg("Error scanning election row")
		return nil, fmt.Errorf("error getting election by ID: %w", err)
	}

	return election, nil
}

// GetAll retrieves all elections, newest first
func (r *ElectionRepository) GetAll(ctx context.Context) ([]*models.Election, error) {
	sql, args, err := r.sb.Select(electionColumns...).
		From("elections").
		OrderBy("starts_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build list elections query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing elections: %w", err)
	}
	defer rows.Close()

	var elections []*models.Election
	for rows.Next() {
		election, err := scanElection(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning election row: %w", err)
		}
		elections = append(elections, election)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating election rows: %w", err)
	}

	return elections, nil
}

// Update edits election fields
func (r *ElectionRepository) Update(ctx context.Context, election *models.Election) error {
	sql, args, err := r.sb.Update("elections").
		Set("title", election.Title).
		Set("description", election.Description).
		Set("starts_at", election.StartsAt).
		Set("ends_at", election.EndsAt).
		Set("status", election.Status).
		Set("delegate_seats", election.DelegateSeats).
		Set("executive_seats", election.ExecutiveSeats).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
		Where(squirrel.Eq{"id": election.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build update election query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating election: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrElectionNotFound
	}

	return nil
}

// Delete removes an election
func (r *ElectionRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("elections").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build delete election query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting election: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrElectionNotFound
	}

	return nil
}

// SetWinnerNotified flips the one-time announcement flag. The guard in
// the WHERE clause reports ErrWinnerAnnounced on a second attempt.
func (r *ElectionRepository) SetWinnerNotified(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE elections
		SET winner_notified = TRUE, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND winner_notified = FALSE`,
		id)

	if err != nil {
		return fmt.Errorf("error setting winner notified flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrWinnerAnnounced
	}

	return nil
}
