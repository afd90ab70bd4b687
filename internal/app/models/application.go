package models

import "time"

// ExecutivePositions is the fixed set of named executive positions.
// Exactly one applicant may hold each at a time.
var ExecutivePositions = []string{
	"Chairperson",
	"Vice Chairperson",
	"Secretary General",
	"Finance Secretary",
	"Academic Secretary",
	"Sports and Entertainment Secretary",
}

// IsExecutivePosition reports whether a named position is one of the
// recognised executive positions.
func IsExecutivePosition(name string) bool {
	for _, p := range ExecutivePositions {
		if p == name {
			return true
		}
	}
	return false
}

// Application defines a candidate's bid to contest a position, based on
// the 'applications' table
type Application struct {
	ID                int64          `json:"id" db:"id"`
	CandidateID       int64          `json:"candidateId" db:"candidate_id"`
	ElectionID        int64          `json:"electionId" db:"election_id"`
	Position          PositionKind   `json:"position" db:"position"`
	Faculty           string         `json:"faculty" db:"faculty"` // faculty represented
	ExecutivePosition string         `json:"executivePosition,omitempty" db:"executive_position"`
	Manifesto         string         `json:"manifesto" db:"manifesto"`
	Status            ApprovalStatus `json:"status" db:"status"`
	SubmittedAt       time.Time      `json:"submittedAt" db:"submitted_at"`

	Candidate *Candidate `json:"candidate,omitempty"` // relation, no db tag
}
