package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/dmwangi/uchaguzi/internal/app/models/dto"
	"github.com/dmwangi/uchaguzi/internal/app/repositories"
	"github.com/dmwangi/uchaguzi/internal/pkg/apperrors"
	"github.com/dmwangi/uchaguzi/internal/pkg/email"
)

// ResultsService defines the interface for tallying and result publication
type ResultsService interface {
	Tally(ctx context.Context) error
	GetResults(ctx context.Context, electionID int64) (*dto.ResultsResponse, error)
	AnnounceWinner(ctx context.Context, electionID int64) (*dto.WinnerResponse, error)
}

// resultsServiceImpl implements ResultsService
type resultsServiceImpl struct {
	resultRepo    repositories.IResultRepository
	electionRepo  repositories.IElectionRepository
	candidateRepo repositories.ICandidateRepository
	emailService  email.EmailService
	logger        zerolog.Logger
}

// NewResultsService creates a new ResultsService
func NewResultsService(
	resultRepo repositories.IResultRepository,
	electionRepo repositories.IElectionRepository,
	candidateRepo repositories.ICandidateRepository,
	emailService email.EmailService,
	logger zerolog.Logger,
) ResultsService {
	return &resultsServiceImpl{
		resultRepo:    resultRepo,
		electionRepo:  electionRepo,
		candidateRepo: candidateRepo,
		emailService:  emailService,
		logger:        logger,
	}
}

// Tally recomputes the results table from the ballot counters. Rerunning
// produces the same table for the same votes.
func (s *resultsServiceImpl) Tally(ctx context.Context) error {
	if err := s.resultRepo.ReplaceAll(ctx); err != nil {
		return err
	}
	s.logger.Info().Msg("Results tallied")
	return nil
}

// GetResults returns the tallied standings, best first, with the current
// leader. ElectionID 0 means all elections.
func (s *resultsServiceImpl) GetResults(ctx context.Context, electionID int64) (*dto.ResultsResponse, error) {
	rows, err := s.resultRepo.GetResults(ctx, electionID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperrors.ErrNoResults
	}

	response := &dto.ResultsResponse{}
	for _, row := range rows {
		response.Results = append(response.Results, *row)
	}

	leader := rows[0]
	response.Winner = &dto.WinnerResponse{
		ElectionID:    leader.ElectionID,
		CandidateID:   leader.CandidateID,
		CandidateName: leader.CandidateName,
		TotalVotes:    leader.TotalVotes,
	}

	return response, nil
}

// AnnounceWinner notifies the winning candidate of an election, at most
// once. The winner is resolved by candidate ID from the tallied results,
// so two candidates sharing a display name cannot be conflated. The
// announcement flag flip is guarded, so repeating the call fails instead
// of re-sending the email.
func (s *resultsServiceImpl) AnnounceWinner(ctx context.Context, electionID int64) (*dto.WinnerResponse, error) {
	if _, err := s.electionRepo.GetByID(ctx, electionID); err != nil {
		return nil, err
	}

	winner, err := s.resultRepo.GetWinner(ctx, electionID)
	if err != nil {
		return nil, err
	}

	candidate, err := s.candidateRepo.GetByID(ctx, winner.CandidateID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCandidateNotFound) {
			return nil, apperrors.ErrCandidateNotFound
		}
		return nil, err
	}

	// Flip the guard last so a failed lookup leaves the announcement
	// available for a retry.
	if err := s.electionRepo.SetWinnerNotified(ctx, electionID); err != nil {
		return nil, err
	}

	if err := s.emailService.SendWinnerEmail(candidate.Email, candidate.FullName(), winner.TotalVotes); err != nil {
		s.logger.Warn().Err(err).Int64("candidateID", candidate.ID).Msg("Failed to send winner email")
	}

	s.logger.Info().
		Int64("electionID", electionID).
		Int64("candidateID", winner.CandidateID).
		Int64("totalVotes", winner.TotalVotes).
		Msg("Winner announced")

	return &dto.WinnerResponse{
		ElectionID:    electionID,
		CandidateID:   winner.CandidateID,
		CandidateName: candidate.FullName(),
		TotalVotes:    winner.TotalVotes,
	}, nil
}
