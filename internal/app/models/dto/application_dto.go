package dto

import "github.com/dmwangi/uchaguzi/internal/app/models"

// ApplyDelegateRequest carries a delegate application
type ApplyDelegateRequest struct {
	ElectionID int64  `json:"electionId" binding:"required,min=1"`
	Faculty    string `json:"faculty" binding:"required"`
	Manifesto  string `json:"manifesto" binding:"required"`
}

// ApplyExecutiveRequest carries an executive application with the named
// position being contested
type ApplyExecutiveRequest struct {
	ElectionID        int64  `json:"electionId" binding:"required,min=1"`
	Faculty           string `json:"faculty" binding:"required"`
	ExecutivePosition string `json:"executivePosition" binding:"required"`
	Manifesto         string `json:"manifesto" binding:"required"`
}

// ApplicationResponse describes a submitted application
type ApplicationResponse struct {
	ID                int64                 `json:"id"`
	CandidateID       int64                 `json:"candidateId"`
	ElectionID        int64                 `json:"electionId"`
	Position          models.PositionKind   `json:"position"`
	Faculty           string                `json:"faculty"`
	ExecutivePosition string                `json:"executivePosition,omitempty"`
	Status            models.ApprovalStatus `json:"status"`
	SeatsRemaining    int                   `json:"seatsRemaining"`
}
