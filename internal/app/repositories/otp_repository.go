package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmwangi/uchaguzi/internal/app/models"
	"github.com/dmwangi/uchaguzi/internal/pkg/apperrors"
)

// IOTPRepository defines the interface for one-time code database operations
type IOTPRepository interface {
	Create(ctx context.Context, otp *models.OTP) (int64, error)
	GetActiveByOwnerAndCode(ctx context.Context, ownerID int64, ownerKind models.OTPOwnerKind, code string) (*models.OTP, error)
	MarkVerified(ctx context.Context, id int64) error
}

// OTPRepository handles one-time code database operations
type OTPRepository struct {
	db *pgxpool.Pool
}

// NewOTPRepository creates a new OTPRepository
func NewOTPRepository(db *pgxpool.Pool) *OTPRepository {
	return &OTPRepository{db: db}
}

// Create stores a freshly issued code
func (r *OTPRepository) Create(ctx context.Context, otp *models.OTP) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO otps (owner_id, owner_kind, code, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		otp.OwnerID, otp.OwnerKind, otp.Code, otp.ExpiresAt).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("error creating otp: %w", err)
	}

	return id, nil
}

// GetActiveByOwnerAndCode retrieves an unverified code belonging to the
// given owner. A code issued for one account never matches another, and
// a verified row is never returned again.
func (r *OTPRepository) GetActiveByOwnerAndCode(ctx context.Context, ownerID int64, ownerKind models.OTPOwnerKind, code string) (*models.OTP, error) {
	otp := &models.OTP{}
	err := r.db.QueryRow(ctx, `
		SELECT id, owner_id, owner_kind, code, expires_at, attempts, verified, created_at
		FROM otps
		WHERE owner_id = $1 AND owner_kind = $2 AND code = $3 AND verified = FALSE
		ORDER BY created_at DESC
		LIMIT 1`,
		ownerID, ownerKind, code).Scan(
		&otp.ID, &otp.OwnerID, &otp.OwnerKind, &otp.Code,
		&otp.ExpiresAt, &otp.Attempts, &otp.Verified, &otp.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOTPInvalid
		}
		return nil, fmt.Errorf("error getting otp: %w", err)
	}

	if time.Now().After(otp.ExpiresAt) {
		return nil, apperrors.ErrOTPExpired
	}

	return otp, nil
}

// MarkVerified consumes a code. The verified guard makes the operation
// single use even when two verification requests race.
func (r *OTPRepository) MarkVerified(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE otps
		SET verified = TRUE, attempts = attempts + 1
		WHERE id = $1 AND verified = FALSE`,
		id)

	if err != nil {
		return fmt.Errorf("error marking otp verified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrOTPInvalid
	}

	return nil
}
