package models

// Result is a derived aggregate over the votes table. The whole results
// table is discarded and recomputed on every tally run; it is never a
// source of truth on its own.
type Result struct {
	ID          int64 `json:"id" db:"id"`
	ElectionID  int64 `json:"electionId" db:"election_id"`
	CandidateID int64 `json:"candidateId" db:"candidate_id"`
	TotalVotes  int64 `json:"totalVotes" db:"total_votes"`
}

// ResultRow is a result joined with candidate identity for display.
type ResultRow struct {
	ElectionID    int64  `json:"electionId"`
	CandidateID   int64  `json:"candidateId"`
	CandidateName string `json:"candidateName"`
	Email         string `json:"email"`
	TotalVotes    int64  `json:"totalVotes"`
}
