package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dmwangi/uchaguzi/internal/app/models"
	"github.com/dmwangi/uchaguzi/internal/app/models/dto"
	"github.com/dmwangi/uchaguzi/internal/app/repositories"
	"github.com/dmwangi/uchaguzi/internal/pkg/apperrors"
)

// ElectionService defines the interface for election management
type ElectionService interface {
	Create(ctx context.Context, req *dto.CreateElectionRequest) (*models.Election, error)
	GetByID(ctx context.Context, id int64) (*models.Election, error)
	GetAll(ctx context.Context) ([]*models.Election, error)
	Update(ctx context.Context, id int64, req *dto.UpdateElectionRequest) (*models.Election, error)
	Delete(ctx context.Context, id int64) error
}

// electionServiceImpl implements ElectionService
type electionServiceImpl struct {
	electionRepo repositories.IElectionRepository
	logger       zerolog.Logger
}

// NewElectionService creates a new ElectionService
func NewElectionService(electionRepo repositories.IElectionRepository, logger zerolog.Logger) ElectionService {
	return &electionServiceImpl{
		electionRepo: electionRepo,
		logger:       logger,
	}
}

// Create defines a new election with its seat ledger
func (s *electionServiceImpl) Create(ctx context.Context, req *dto.CreateElectionRequest) (*models.Election, error) {
	if !req.EndsAt.After(req.StartsAt) {
		return nil, apperrors.NewValidationError("election must end after it starts")
	}

	election := &models.Election{
		Title:          req.Title,
		Description:    req.Description,
		StartsAt:       req.StartsAt,
		EndsAt:         req.EndsAt,
		Status:         models.ElectionUpcoming,
		DelegateSeats:  req.DelegateSeats,
		ExecutiveSeats: req.ExecutiveSeats,
	}

	id, err := s.electionRepo.Create(ctx, election)
	if err != nil {
		return nil, err
	}
	election.ID = id

	s.logger.Info().Int64("electionID", id).Str("title", req.Title).Msg("Election created")

	return election, nil
}

// GetByID retrieves an election
func (s *electionServiceImpl) GetByID(ctx context.Context, id int64) (*models.Election, error) {
	return s.electionRepo.GetByID(ctx, id)
}

// GetAll lists all elections
func (s *electionServiceImpl) GetAll(ctx context.Context) ([]*models.Election, error) {
	return s.electionRepo.GetAll(ctx)
}

// Update edits an election's definition. Seat counts may only be edited
// here before applications start consuming them; the application
// workflow is the only other writer of the seat columns.
func (s *electionServiceImpl) Update(ctx context.Context, id int64, req *dto.UpdateElectionRequest) (*models.Election, error) {
	election, err := s.electionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !req.EndsAt.After(req.StartsAt) {
		return nil, apperrors.NewValidationError("election must end after it starts")
	}

	election.Title = req.Title
	election.Description = req.Description
	election.StartsAt = req.StartsAt
	election.EndsAt = req.EndsAt
	election.Status = req.Status
	election.DelegateSeats = req.DelegateSeats
	election.ExecutiveSeats = req.ExecutiveSeats

	if err := s.electionRepo.Update(ctx, election); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("electionID", id).Msg("Election updated")

	return election, nil
}

// Delete removes an election and, through cascade, its applications
func (s *electionServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.electionRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("electionID", id).Msg("Election deleted")
	return nil
}
