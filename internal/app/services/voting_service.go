package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dmwangi/uchaguzi/internal/app/models"
	"github.com/dmwangi/uchaguzi/internal/app/models/dto"
	"github.com/dmwangi/uchaguzi/internal/app/repositories"
	"github.com/dmwangi/uchaguzi/internal/pkg/apperrors"
	"github.com/dmwangi/uchaguzi/internal/pkg/biometrics"
)

// VotingService defines the interface for vote casting operations
type VotingService interface {
	CastVote(ctx context.Context, voterID int64, req *dto.CastVoteRequest) (*dto.VoteResponse, error)
	CastCandidateVote(ctx context.Context, candidateID int64, req *dto.CandidateVoteRequest) (*dto.VoteResponse, error)
}

// votingServiceImpl implements VotingService
type votingServiceImpl struct {
	voteRepo      repositories.IVoteRepository
	voterRepo     repositories.IVoterRepository
	candidateRepo repositories.ICandidateRepository
	ballotRepo    repositories.IBallotRepository
	electionRepo  repositories.IElectionRepository
	logger        zerolog.Logger
}

// NewVotingService creates a new VotingService
func NewVotingService(
	voteRepo repositories.IVoteRepository,
	voterRepo repositories.IVoterRepository,
	candidateRepo repositories.ICandidateRepository,
	ballotRepo repositories.IBallotRepository,
	electionRepo repositories.IElectionRepository,
	logger zerolog.Logger,
) VotingService {
	return &votingServiceImpl{
		voteRepo:      voteRepo,
		voterRepo:     voterRepo,
		candidateRepo: candidateRepo,
		ballotRepo:    ballotRepo,
		electionRepo:  electionRepo,
		logger:        logger,
	}
}

// checkTarget verifies the vote target exists and holds a ballot entry.
// Eligibility is checked at cast time, not at session time, so a
// candidate removed from the ballot cannot receive votes on a stale
// session.
func (s *votingServiceImpl) checkTarget(ctx context.Context, candidateID int64) error {
	if _, err := s.candidateRepo.GetByID(ctx, candidateID); err != nil {
		return err
	}

	if _, err := s.ballotRepo.GetByCandidateID(ctx, candidateID); err != nil {
		return err
	}

	return nil
}

// CastVote records a voter's single vote. The voter re-verifies with a
// fresh facial descriptor against the one captured at registration, and
// the status flip, ballot increment and vote row commit as one unit in
// the repository.
func (s *votingServiceImpl) CastVote(ctx context.Context, voterID int64, req *dto.CastVoteRequest) (*dto.VoteResponse, error) {
	voter, err := s.voterRepo.GetByID(ctx, voterID)
	if err != nil {
		return nil, err
	}
	if voter.Status != models.StatusActive {
		return nil, apperrors.ErrAccountInactive
	}
	if voter.VotingStatus == models.Voted {
		return nil, apperrors.ErrAlreadyVoted
	}

	stored, err := biometrics.DecodeDescriptor(voter.Descriptor)
	if err != nil {
		return nil, fmt.Errorf("error decoding stored descriptor: %w", err)
	}
	if !biometrics.Matches(biometrics.Descriptor(req.Descriptor), stored) {
		return nil, apperrors.ErrBiometricMismatch
	}

	if err := s.checkTarget(ctx, req.CandidateID); err != nil {
		return nil, err
	}

	if req.ElectionID > 0 {
		if _, err := s.electionRepo.GetByID(ctx, req.ElectionID); err != nil {
			return nil, err
		}
	}

	voteID, err := s.voteRepo.RecordVoterVote(ctx, &models.Vote{
		VoterID:     voterID,
		CandidateID: req.CandidateID,
		ElectionID:  req.ElectionID,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("voterID", voterID).Int64("candidateID", req.CandidateID).Msg("Vote cast")

	return &dto.VoteResponse{
		VoteID:  voteID,
		Message: "Vote recorded.",
	}, nil
}

// CastCandidateVote records a candidate's own vote in one category.
// Candidates hold one vote for the delegate race and one for the
// executive race, tracked by per-category flags.
func (s *votingServiceImpl) CastCandidateVote(ctx context.Context, candidateID int64, req *dto.CandidateVoteRequest) (*dto.VoteResponse, error) {
	voter, err := s.candidateRepo.GetByID(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	if voter.Status != models.StatusActive {
		return nil, apperrors.ErrAccountInactive
	}

	switch req.Category {
	case models.PositionDelegate:
		if voter.DelegateVoted {
			return nil, apperrors.ErrCategoryAlreadyUsed
		}
	case models.PositionExecutive:
		if voter.ExecutiveVoted {
			return nil, apperrors.ErrCategoryAlreadyUsed
		}
	}

	if err := s.checkTarget(ctx, req.CandidateID); err != nil {
		return nil, err
	}

	if err := s.voteRepo.RecordCandidateVote(ctx, candidateID, req.Category, req.CandidateID); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("candidateID", candidateID).
		Int64("targetID", req.CandidateID).
		Str("category", string(req.Category)).
		Msg("Candidate vote cast")

	return &dto.VoteResponse{
		Message: "Vote recorded.",
	}, nil
}
