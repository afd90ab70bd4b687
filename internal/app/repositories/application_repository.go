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
	"github.com/dmwangi/uchaguzi/internal/pkg/helpers"
	"github.com/dmwangi/uchaguzi/internal/pkg/logger"
)

// IApplicationRepository defines the interface for application database
// operations, including the seat-reserving insert used by the position
// ledger.
type IApplicationRepository interface {
	CreateWithSeatReservation(ctx context.Context, application *models.Application) (int64, int, error)
	GetByCandidateID(ctx context.Context, candidateID int64) (*models.Application, error)
	GetAll(ctx context.Context) ([]*models.Application, error)
	SetStatus(ctx context.Context, id int64, status models.ApprovalStatus) error
}

// ApplicationRepository handles application database operations
type ApplicationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateWithSeatReservation inserts an application and decrements the
// election's seat counter as one transaction. The duplicate-application
// check, the executive-position exclusivity check, the guarded decrement
// and the insert commit or roll back together, so two applications
// racing for the last seat cannot both succeed. Returns the new
// application ID and the seats remaining after the reservation.
func (r *ApplicationRepository) CreateWithSeatReservation(ctx context.Context, application *models.Application) (int64, int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin application transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// One application per (candidate, faculty)
	var exists bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM applications WHERE candidate_id = $1 AND faculty = $2)`,
		application.CandidateID, application.Faculty).Scan(&exists)
	if err != nil {
		return 0, 0, fmt.Errorf("error checking existing application: %w", err)
	}
	if exists {
		return 0, 0, apperrors.ErrDuplicateApplication
	}

	seatColumn := "delegate_seats"
	if application.Position == models.PositionExecutive {
		seatColumn = "executive_seats"

		// A named executive position may be claimed by at most one
		// Pending or Approved application at a time.
		var taken bool
		err = tx.QueryRow(ctx, `
			SELECT EXISTS(
				SELECT 1 FROM applications
				WHERE executive_position = $1 AND status IN ('Pending', 'Approved')
			)`,
			application.ExecutivePosition).Scan(&taken)
		if err != nil {
			return 0, 0, fmt.Errorf("error checking executive position claim: %w", err)
		}
		if taken {
			return 0, 0, apperrors.ErrPositionTaken
		}
	}

	// Guarded decrement; zero rows means the ledger is exhausted and
	// the whole unit rolls back.
	var remaining int
	err = tx.QueryRow(ctx, fmt.Sprintf(`
		UPDATE elections
		SET %s = %s - 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND %s > 0
		RETURNING %s`, seatColumn, seatColumn, seatColumn, seatColumn),
		application.ElectionID).Scan(&remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, apperrors.ErrNoSeatsRemaining
		}
		return 0, 0, fmt.Errorf("error reserving seat: %w", err)
	}

	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO applications (candidate_id, election_id, position, faculty, executive_position, manifesto, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		application.CandidateID, application.ElectionID, application.Position,
		application.Faculty, helpers.GetContentNullString(application.ExecutivePosition),
		application.Manifesto, application.Status).Scan(&id)
	if err != nil {
		if isDuplicateKeyError(err) {
			return 0, 0, apperrors.ErrDuplicateApplication
		}
		return 0, 0, fmt.Errorf("error creating application: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, 0, fmt.Errorf("failed to commit application transaction: %w", err)
	}

	return id, remaining, nil
}

func scanApplication(row pgx.Row) (*models.Application, error) {
	a := &models.Application{}
	var execPosition *string
	err := row.Scan(
		&a.ID, &a.CandidateID, &a.ElectionID, &a.Position, &a.Faculty,
		&execPosition, &a.Manifesto, &a.Status, &a.SubmittedAt)
	if err != nil {
		return nil, err
	}
	if execPosition != nil {
		a.ExecutivePosition = *execPosition
	}
	return a, nil
}

// GetByCandidateID retrieves a candidate's latest application
func (r *ApplicationRepository) GetByCandidateID(ctx context.Context, candidateID int64) (*models.Application, error) {
	sql, args, err := r.sb.Select(
		"id", "candidate_id", "election_id", "position", "faculty",
		"executive_position", "manifesto", "status", "submitted_at").
		From("applications").
		Where(squirrel.Eq{"candidate_id": candidateID}).
		OrderBy("submitted_at DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get application query: %w", err)
	}

	application, err := scanApplication(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		logger.Error().Err(err).Int64("candidateID", candidateID).Msg("Error scanning application row")
		return nil, fmt.Errorf("error getting application by candidate: %w", err)
	}

	return application, nil
}

// GetAll retrieves all applications, newest first
func (r *ApplicationRepository) GetAll(ctx context.Context) ([]*models.Application, error) {
	sql, args, err := r.sb.Select(
		"id", "candidate_id", "election_id", "position", "faculty",
		"executive_position", "manifesto", "status", "submitted_at").
		From("applications").
		OrderBy("submitted_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build list applications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing applications: %w", err)
	}
	defer rows.Close()

	var applications []*models.Application
	for rows.Next() {
		application, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning application row: %w", err)
		}
		applications = append(applications, application)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating application rows: %w", err)
	}

	return applications, nil
}

// SetStatus updates an application's approval status
func (r *ApplicationRepository) SetStatus(ctx context.Context, id int64, status models.ApprovalStatus) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE applications
		SET status = $1
		WHERE id = $2`,
		status, id)

	if err != nil {
		return fmt.Errorf("error updating application status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}

	return nil
}
