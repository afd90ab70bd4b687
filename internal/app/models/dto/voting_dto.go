package dto

import "github.com/dmwangi/uchaguzi/internal/app/models"

// CastVoteRequest carries a voter's vote with the biometric re-check
// descriptor
type CastVoteRequest struct {
	CandidateID int64     `json:"candidateId" binding:"required,min=1"`
	ElectionID  int64     `json:"electionId"`
	Descriptor  []float64 `json:"descriptor" binding:"required"`
}

// CandidateVoteRequest carries a candidate's own vote in one category
type CandidateVoteRequest struct {
	CandidateID int64               `json:"candidateId" binding:"required,min=1"`
	ElectionID  int64               `json:"electionId"`
	Category    models.PositionKind `json:"category" binding:"required,oneof=Delegate Executive"`
}

// VoteResponse confirms a recorded vote
type VoteResponse struct {
	VoteID  int64  `json:"voteId"`
	Message string `json:"message"`
}
