package models

import "time"

// OTPOwnerKind says which principal store an OTP row belongs to
type OTPOwnerKind string

const (
	OTPOwnerVoter     OTPOwnerKind = "VOTER"
	OTPOwnerCandidate OTPOwnerKind = "CANDIDATE"
)

// OTP is a one-time login code based on the 'otps' table. Codes are
// single use: verification marks the row verified and it is never
// accepted again, independent of expiry.
type OTP struct {
	ID        int64        `json:"id" db:"id"`
	OwnerID   int64        `json:"ownerId" db:"owner_id"`
	OwnerKind OTPOwnerKind `json:"ownerKind" db:"owner_kind"`
	Code      string       `json:"-" db:"code"`
	ExpiresAt time.Time    `json:"expiresAt" db:"expires_at"`
	Attempts  int          `json:"attempts" db:"attempts"`
	Verified  bool         `json:"verified" db:"verified"`
	CreatedAt time.Time    `json:"createdAt" db:"created_at"`
}
