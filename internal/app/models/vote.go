package models

import "time"

// Vote records a single cast vote based on the 'votes' table. The
// one-vote-per-voter invariant is enforced through the voter's
// voting_status flag, not a uniqueness constraint here.
type Vote struct {
	ID          int64     `json:"id" db:"id"`
	VoterID     int64     `json:"voterId" db:"voter_id"`
	CandidateID int64     `json:"candidateId" db:"candidate_id"`
	ElectionID  int64     `json:"electionId,omitempty" db:"election_id"` // optional, 0 when absent
	CastAt      time.Time `json:"castAt" db:"cast_at"`
}
