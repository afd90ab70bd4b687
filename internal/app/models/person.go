package models

import (
	"time"
)

// Voter defines the voter model based on the 'voters' table
type Voter struct {
	ID           int64         `json:"id" db:"id" example:"1"`
	FirstName    string        `json:"firstName" db:"first_name" example:"Jane"`
	LastName     string        `json:"lastName" db:"last_name" example:"Wanjiku"`
	Email        string        `json:"email" db:"email" example:"jane@students.ac.ke"`
	Faculty      string        `json:"faculty" db:"faculty"`
	RegNumber    string        `json:"regNumber" db:"reg_number" example:"CIT-7-2025"`
	Descriptor   []byte        `json:"-" db:"descriptor"` // packed biometric descriptor
	Status       AccountStatus `json:"status" db:"status"`
	VotingStatus VotingStatus  `json:"votingStatus" db:"voting_status"`
	CreatedAt    time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time     `json:"updatedAt" db:"updated_at"`
}

// Candidate defines the candidate model based on the 'candidates' table.
// Candidates additionally track one-shot voting flags per category.
type Candidate struct {
	ID             int64         `json:"id" db:"id"`
	FirstName      string        `json:"firstName" db:"first_name"`
	LastName       string        `json:"lastName" db:"last_name"`
	Email          string        `json:"email" db:"email"`
	Faculty        string        `json:"faculty" db:"faculty"`
	RegNumber      string        `json:"regNumber" db:"reg_number" example:"CIT-123-456/2022"`
	Descriptor     []byte        `json:"-" db:"descriptor"`
	Status         AccountStatus `json:"status" db:"status"`
	DelegateVoted  bool          `json:"delegateVoted" db:"delegate_voted"`
	ExecutiveVoted bool          `json:"executiveVoted" db:"executive_voted"`
	CreatedAt      time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time     `json:"updatedAt" db:"updated_at"`
}

// Admin defines the electoral official model based on the 'admins' table
type Admin struct {
	ID        int64     `json:"id" db:"id"`
	FirstName string    `json:"firstName" db:"first_name"`
	LastName  string    `json:"lastName" db:"last_name"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"` // bcrypt hash, excluded from JSON
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// FullName joins first and last name for display and notifications.
func (v *Voter) FullName() string {
	return v.FirstName + " " + v.LastName
}

// FullName joins first and last name for display and notifications.
func (c *Candidate) FullName() string {
	return c.FirstName + " " + c.LastName
}
