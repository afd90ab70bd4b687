package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dmwangi/uchaguzi/internal/app/models"
	"github.com/dmwangi/uchaguzi/internal/app/models/dto"
	"github.com/dmwangi/uchaguzi/internal/app/repositories"
	"github.com/dmwangi/uchaguzi/internal/pkg/apperrors"
	"github.com/dmwangi/uchaguzi/internal/pkg/email"
)

// ApplicationService defines the interface for position application operations
type ApplicationService interface {
	ApplyDelegate(ctx context.Context, candidateID int64, req *dto.ApplyDelegateRequest) (*dto.ApplicationResponse, error)
	ApplyExecutive(ctx context.Context, candidateID int64, req *dto.ApplyExecutiveRequest) (*dto.ApplicationResponse, error)
	GetAll(ctx context.Context) ([]*models.Application, error)
	Approve(ctx context.Context, candidateID int64) error
	Reject(ctx context.Context, candidateID int64) error
}

// applicationServiceImpl implements ApplicationService
type applicationServiceImpl struct {
	applicationRepo repositories.IApplicationRepository
	candidateRepo   repositories.ICandidateRepository
	electionRepo    repositories.IElectionRepository
	ballotRepo      repositories.IBallotRepository
	emailService    email.EmailService
	logger          zerolog.Logger
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(
	applicationRepo repositories.IApplicationRepository,
	candidateRepo repositories.ICandidateRepository,
	electionRepo repositories.IElectionRepository,
	ballotRepo repositories.IBallotRepository,
	emailService email.EmailService,
	logger zerolog.Logger,
) ApplicationService {
	return &applicationServiceImpl{
		applicationRepo: applicationRepo,
		candidateRepo:   candidateRepo,
		electionRepo:    electionRepo,
		ballotRepo:      ballotRepo,
		emailService:    emailService,
		logger:          logger,
	}
}

// submit runs the shared application path: the candidate must exist, the
// faculty on the application must be the candidate's own, and the
// election must exist. The insert and the seat reservation happen as one
// unit in the repository.
func (s *applicationServiceImpl) submit(ctx context.Context, application *models.Application) (*dto.ApplicationResponse, error) {
	candidate, err := s.candidateRepo.GetByID(ctx, application.CandidateID)
	if err != nil {
		return nil, err
	}

	if _, ok := models.FacultyCode(application.Faculty); !ok {
		return nil, apperrors.ErrInvalidFaculty
	}
	if application.Faculty != candidate.Faculty {
		return nil, apperrors.ErrFacultyMismatch
	}

	if _, err := s.electionRepo.GetByID(ctx, application.ElectionID); err != nil {
		return nil, err
	}

	application.Status = models.ApprovalPending

	id, remaining, err := s.applicationRepo.CreateWithSeatReservation(ctx, application)
	if err != nil {
		return nil, err
	}

	position := string(application.Position)
	if application.ExecutivePosition != "" {
		position = application.ExecutivePosition
	}
	if err := s.emailService.SendApplicationReceivedEmail(candidate.Email, candidate.FullName(), position); err != nil {
		s.logger.Warn().Err(err).Int64("candidateID", candidate.ID).Msg("Failed to send application email")
	}

	s.logger.Info().
		Int64("applicationID", id).
		Int64("candidateID", candidate.ID).
		Str("position", position).
		Int("seatsRemaining", remaining).
		Msg("Application submitted")

	return &dto.ApplicationResponse{
		ID:                id,
		CandidateID:       application.CandidateID,
		ElectionID:        application.ElectionID,
		Position:          application.Position,
		Faculty:           application.Faculty,
		ExecutivePosition: application.ExecutivePosition,
		Status:            application.Status,
		SeatsRemaining:    remaining,
	}, nil
}

// ApplyDelegate submits a bid to represent the candidate's faculty as a
// delegate
func (s *applicationServiceImpl) ApplyDelegate(ctx context.Context, candidateID int64, req *dto.ApplyDelegateRequest) (*dto.ApplicationResponse, error) {
	return s.submit(ctx, &models.Application{
		CandidateID: candidateID,
		ElectionID:  req.ElectionID,
		Position:    models.PositionDelegate,
		Faculty:     req.Faculty,
		Manifesto:   req.Manifesto,
	})
}

// ApplyExecutive submits a bid for one of the named executive positions
func (s *applicationServiceImpl) ApplyExecutive(ctx context.Context, candidateID int64, req *dto.ApplyExecutiveRequest) (*dto.ApplicationResponse, error) {
	if !models.IsExecutivePosition(req.ExecutivePosition) {
		return nil, apperrors.ErrUnknownPosition
	}

	return s.submit(ctx, &models.Application{
		CandidateID:       candidateID,
		ElectionID:        req.ElectionID,
		Position:          models.PositionExecutive,
		Faculty:           req.Faculty,
		ExecutivePosition: req.ExecutivePosition,
		Manifesto:         req.Manifesto,
	})
}

// GetAll lists all applications for review
func (s *applicationServiceImpl) GetAll(ctx context.Context) ([]*models.Application, error) {
	applications, err := s.applicationRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	for _, application := range applications {
		candidate, err := s.candidateRepo.GetByID(ctx, application.CandidateID)
		if err == nil {
			application.Candidate = candidate
		}
	}

	return applications, nil
}

// pendingApplication loads a candidate's application and rejects any
// that has already been reviewed
func (s *applicationServiceImpl) pendingApplication(ctx context.Context, candidateID int64) (*models.Application, error) {
	application, err := s.applicationRepo.GetByCandidateID(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	switch application.Status {
	case models.ApprovalApproved:
		return nil, apperrors.ErrAlreadyApproved
	case models.ApprovalRejected:
		return nil, apperrors.ErrAlreadyRejected
	}

	return application, nil
}

// Approve marks a candidate's pending application approved and opens the
// ballot entry, exactly once. Re-approving an already reviewed
// application is rejected, so the ballot entry cannot be created twice.
func (s *applicationServiceImpl) Approve(ctx context.Context, candidateID int64) error {
	application, err := s.pendingApplication(ctx, candidateID)
	if err != nil {
		return err
	}

	if err := s.applicationRepo.SetStatus(ctx, application.ID, models.ApprovalApproved); err != nil {
		return err
	}
	if err := s.ballotRepo.Create(ctx, application.CandidateID); err != nil {
		return fmt.Errorf("error opening ballot entry: %w", err)
	}

	s.notifyOutcome(ctx, application, true)
	s.logger.Info().Int64("applicationID", application.ID).Int64("candidateID", candidateID).Msg("Application approved")

	return nil
}

// Reject marks a candidate's pending application rejected
func (s *applicationServiceImpl) Reject(ctx context.Context, candidateID int64) error {
	application, err := s.pendingApplication(ctx, candidateID)
	if err != nil {
		return err
	}

	if err := s.applicationRepo.SetStatus(ctx, application.ID, models.ApprovalRejected); err != nil {
		return err
	}

	s.notifyOutcome(ctx, application, false)
	s.logger.Info().Int64("applicationID", application.ID).Int64("candidateID", candidateID).Msg("Application rejected")

	return nil
}

func (s *applicationServiceImpl) notifyOutcome(ctx context.Context, application *models.Application, approved bool) {
	candidate, err := s.candidateRepo.GetByID(ctx, application.CandidateID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("candidateID", application.CandidateID).Msg("Failed to load candidate for outcome email")
		return
	}
	if err := s.emailService.SendApplicationOutcomeEmail(candidate.Email, candidate.FullName(), approved); err != nil {
		s.logger.Warn().Err(err).Int64("candidateID", candidate.ID).Msg("Failed to send outcome email")
	}
}
