package models

import "time"

// Election defines the election model based on the 'elections' table.
// Seat counters form the position ledger: they are decremented only by
// the application workflow, inside the same transaction as the
// application insert.
type Election struct {
	ID             int64          `json:"id" db:"id"`
	Title          string         `json:"title" db:"title"`
	Description    string         `json:"description" db:"description"`
	StartsAt       time.Time      `json:"startsAt" db:"starts_at"`
	EndsAt         time.Time      `json:"endsAt" db:"ends_at"`
	Status         ElectionStatus `json:"status" db:"status"`
	DelegateSeats  int            `json:"delegateSeats" db:"delegate_seats"`
	ExecutiveSeats int            `json:"executiveSeats" db:"executive_seats"`
	WinnerNotified bool           `json:"winnerNotified" db:"winner_notified"`
	CreatedAt      time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time      `json:"updatedAt" db:"updated_at"`
}
