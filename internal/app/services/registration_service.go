package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dmwangi/uchaguzi/internal/app/models"
	"github.com/dmwangi/uchaguzi/internal/app/models/dto"
	"github.com/dmwangi/uchaguzi/internal/app/repositories"
	"github.com/dmwangi/uchaguzi/internal/pkg/apperrors"
	"github.com/dmwangi/uchaguzi/internal/pkg/biometrics"
	"github.com/dmwangi/uchaguzi/internal/pkg/email"
	"github.com/dmwangi/uchaguzi/internal/pkg/validation"
)

// RegistrationService defines the interface for voter and candidate enrollment
type RegistrationService interface {
	RegisterVoter(ctx context.Context, req *dto.RegisterVoterRequest) (*dto.RegisterResponse, error)
	RegisterCandidate(ctx context.Context, req *dto.RegisterCandidateRequest) (*dto.RegisterResponse, error)
}

// registrationServiceImpl implements RegistrationService
type registrationServiceImpl struct {
	voterRepo     repositories.IVoterRepository
	candidateRepo repositories.ICandidateRepository
	emailService  email.EmailService
	logger        zerolog.Logger
}

// NewRegistrationService creates a new RegistrationService
func NewRegistrationService(
	voterRepo repositories.IVoterRepository,
	candidateRepo repositories.ICandidateRepository,
	emailService email.EmailService,
	logger zerolog.Logger,
) RegistrationService {
	return &registrationServiceImpl{
		voterRepo:     voterRepo,
		candidateRepo: candidateRepo,
		emailService:  emailService,
		logger:        logger,
	}
}

func validatePersonFields(firstName, lastName, emailAddr string) error {
	if !validation.IsValidName(firstName) || !validation.IsValidName(lastName) {
		return apperrors.ErrInvalidName
	}
	if !validation.IsValidEmail(emailAddr) {
		return apperrors.ErrInvalidEmail
	}
	return nil
}

// RegisterVoter enrolls a new voter. The supplied facial descriptor is
// compared against every stored voter descriptor; a cosine similarity
// above the duplicate threshold rejects the enrollment regardless of
// which email it arrives under. The registration number is derived from
// the faculty code and the assigned ID after the insert.
func (s *registrationServiceImpl) RegisterVoter(ctx context.Context, req *dto.RegisterVoterRequest) (*dto.RegisterResponse, error) {
	if err := validatePersonFields(req.FirstName, req.LastName, req.Email); err != nil {
		return nil, err
	}

	facultyCode, ok := models.FacultyCode(req.Faculty)
	if !ok {
		return nil, apperrors.ErrInvalidFaculty
	}

	exists, err := s.voterRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking voter email: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	descriptor := biometrics.Descriptor(req.Descriptor)

	stored, err := s.voterRepo.ListDescriptors(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing descriptors: %w", err)
	}
	for _, buf := range stored {
		existing, err := biometrics.DecodeDescriptor(buf)
		if err != nil {
			s.logger.Warn().Err(err).Msg("Skipping malformed stored descriptor")
			continue
		}
		if biometrics.TooSimilar(descriptor, existing) {
			return nil, apperrors.ErrDuplicateBiometric
		}
	}

	voter := &models.Voter{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Faculty:      req.Faculty,
		Descriptor:   descriptor.Encode(),
		Status:       models.StatusActive,
		VotingStatus: models.NotVoted,
	}

	id, err := s.voterRepo.Create(ctx, voter)
	if err != nil {
		return nil, err
	}

	regNumber := fmt.Sprintf("%s-%d-%d", facultyCode, id, time.Now().Year())
	if err := s.voterRepo.SetRegNumber(ctx, id, regNumber); err != nil {
		return nil, fmt.Errorf("error assigning registration number: %w", err)
	}

	if err := s.emailService.SendWelcomeEmail(req.Email, req.FirstName+" "+req.LastName, regNumber); err != nil {
		s.logger.Warn().Err(err).Str("email", req.Email).Msg("Failed to send welcome email")
	}

	s.logger.Info().Int64("voterID", id).Str("regNumber", regNumber).Msg("Voter registered")

	return &dto.RegisterResponse{
		ID:        id,
		RegNumber: regNumber,
		Message:   "Registration successful. Check your email for your registration number.",
	}, nil
}

// RegisterCandidate enrolls a new candidate. Candidates arrive with an
// institutional registration number, which must match the declared
// faculty's code prefix.
func (s *registrationServiceImpl) RegisterCandidate(ctx context.Context, req *dto.RegisterCandidateRequest) (*dto.RegisterResponse, error) {
	if err := validatePersonFields(req.FirstName, req.LastName, req.Email); err != nil {
		return nil, err
	}

	facultyCode, ok := models.FacultyCode(req.Faculty)
	if !ok {
		return nil, apperrors.ErrInvalidFaculty
	}

	if !validation.IsValidRegNumber(req.RegNumber) {
		return nil, apperrors.ErrInvalidRegNumber
	}
	if !strings.HasPrefix(req.RegNumber, facultyCode+"-") {
		return nil, apperrors.ErrRegNumberFacultyMix
	}

	exists, err := s.candidateRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking candidate email: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	descriptor := biometrics.Descriptor(req.Descriptor)

	candidate := &models.Candidate{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Faculty:    req.Faculty,
		RegNumber:  req.RegNumber,
		Descriptor: descriptor.Encode(),
		Status:     models.StatusActive,
	}

	id, err := s.candidateRepo.Create(ctx, candidate)
	if err != nil {
		return nil, err
	}

	if err := s.emailService.SendWelcomeEmail(req.Email, req.FirstName+" "+req.LastName, req.RegNumber); err != nil {
		s.logger.Warn().Err(err).Str("email", req.Email).Msg("Failed to send welcome email")
	}

	s.logger.Info().Int64("candidateID", id).Str("regNumber", req.RegNumber).Msg("Candidate registered")

	return &dto.RegisterResponse{
		ID:        id,
		RegNumber: req.RegNumber,
		Message:   "Registration successful.",
	}, nil
}
