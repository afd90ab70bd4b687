package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is the shared not-found sentinel for all repositories
var ErrNotFound = errors.New("record not found")

// isDuplicateKeyError checks if the error is a PostgreSQL unique violation.
func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" // unique_violation
}

// Repositories holds all the repository instances
type Repositories struct {
	VoterRepository       *VoterRepository
	CandidateRepository   *CandidateRepository
	AdminRepository       *AdminRepository
	ElectionRepository    *ElectionRepository
	ApplicationRepository *ApplicationRepository
	BallotRepository      *BallotRepository
	VoteRepository        *VoteRepository
	ResultRepository      *ResultRepository
	OTPRepository         *OTPRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		VoterRepository:       NewVoterRepository(db),
		CandidateRepository:   NewCandidateRepository(db),
		AdminRepository:       NewAdminRepository(db),
		ElectionRepository:    NewElectionRepository(db),
		ApplicationRepository: NewApplicationRepository(db),
		BallotRepository:      NewBallotRepository(db),
		VoteRepository:        NewVoteRepository(db),
		ResultRepository:      NewResultRepository(db),
		OTPRepository:         NewOTPRepository(db),
	}
}
