package dto

import (
	"time"

	"github.com/dmwangi/uchaguzi/internal/app/models"
)

// CreateElectionRequest carries a new election definition
type CreateElectionRequest struct {
	Title          string    `json:"title" binding:"required"`
	Description    string    `json:"description"`
	StartsAt       time.Time `json:"startsAt" binding:"required"`
	EndsAt         time.Time `json:"endsAt" binding:"required"`
	DelegateSeats  int       `json:"delegateSeats" binding:"required,min=0"`
	ExecutiveSeats int       `json:"executiveSeats" binding:"required,min=0"`
}

// UpdateElectionRequest carries editable election fields
type UpdateElectionRequest struct {
	Title          string                `json:"title" binding:"required"`
	Description    string                `json:"description"`
	StartsAt       time.Time             `json:"startsAt" binding:"required"`
	EndsAt         time.Time             `json:"endsAt" binding:"required"`
	Status         models.ElectionStatus `json:"status" binding:"required,oneof=Upcoming Ongoing Completed"`
	DelegateSeats  int                   `json:"delegateSeats" binding:"min=0"`
	ExecutiveSeats int                   `json:"executiveSeats" binding:"min=0"`
}

// WinnerResponse describes the winning candidate of an election
type WinnerResponse struct {
	ElectionID    int64  `json:"electionId"`
	CandidateID   int64  `json:"candidateId"`
	CandidateName string `json:"candidateName"`
	TotalVotes    int64  `json:"totalVotes"`
}

// ResultsResponse lists tallied results, best first
type ResultsResponse struct {
	Results []models.ResultRow `json:"results"`
	Winner  *WinnerResponse    `json:"winner,omitempty"`
}
