package models

import "time"

// Ballot is the eligibility record created exactly once when an
// application is approved. It is not a cast vote: it marks the candidate
// as appearing on the ballot and accumulates counters.
type Ballot struct {
	ID          int64          `json:"id" db:"id"`
	CandidateID int64          `json:"candidateId" db:"candidate_id"`
	TotalVotes  int64          `json:"totalVotes" db:"total_votes"`
	SpoiltVotes int64          `json:"spoiltVotes" db:"spoilt_votes"`
	Status      ApprovalStatus `json:"status" db:"status"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
}
