package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/dmwangi/uchaguzi/internal/app/models"
	"github.com/dmwangi/uchaguzi/internal/app/models/dto"
	"github.com/dmwangi/uchaguzi/internal/app/repositories"
	"github.com/dmwangi/uchaguzi/internal/pkg/apperrors"
	"github.com/dmwangi/uchaguzi/internal/pkg/auth"
	"github.com/dmwangi/uchaguzi/internal/pkg/biometrics"
	"github.com/dmwangi/uchaguzi/internal/pkg/email"
	"github.com/dmwangi/uchaguzi/internal/pkg/otp"
)

// Session is an issued login session. The controller layer turns the
// token into the principal's cookie.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Kind      auth.PrincipalKind
	Principal dto.SessionResponse
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	AdminLogin(ctx context.Context, req *dto.AdminLoginRequest, existingToken string) (*Session, error)
	BiometricLogin(ctx context.Context, kind auth.PrincipalKind, req *dto.BiometricLoginRequest, existingToken string) (*Session, error)
	RequestOTP(ctx context.Context, kind auth.PrincipalKind, req *dto.OTPRequest) error
	VerifyOTP(ctx context.Context, kind auth.PrincipalKind, req *dto.OTPVerifyRequest) (*Session, error)
	Logout(kind auth.PrincipalKind, existingToken string) error
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	voterRepo     repositories.IVoterRepository
	candidateRepo repositories.ICandidateRepository
	adminRepo     repositories.IAdminRepository
	otpRepo       repositories.IOTPRepository
	jwtService    *auth.JWTService
	emailService  email.EmailService
	logger        zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	voterRepo repositories.IVoterRepository,
	candidateRepo repositories.ICandidateRepository,
	adminRepo repositories.IAdminRepository,
	otpRepo repositories.IOTPRepository,
	jwtService *auth.JWTService,
	emailService email.EmailService,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		voterRepo:     voterRepo,
		candidateRepo: candidateRepo,
		adminRepo:     adminRepo,
		otpRepo:       otpRepo,
		jwtService:    jwtService,
		emailService:  emailService,
		logger:        logger,
	}
}

// rejectActiveSession enforces one session at a time per principal kind.
// A still-valid cookie for the same kind blocks a fresh login.
func (s *authServiceImpl) rejectActiveSession(existingToken string, kind auth.PrincipalKind) error {
	if existingToken == "" {
		return nil
	}
	if _, err := s.jwtService.ValidateSessionFor(existingToken, kind); err == nil {
		return apperrors.ErrAlreadyLoggedIn
	}
	return nil
}

func (s *authServiceImpl) issueSession(id int64, emailAddr, name string, kind auth.PrincipalKind, expiry time.Duration) (*Session, error) {
	token, expiresAt, err := s.jwtService.GenerateSessionToken(id, emailAddr, name, kind, expiry)
	if err != nil {
		return nil, fmt.Errorf("error generating session token: %w", err)
	}

	return &Session{
		Token:     token,
		ExpiresAt: expiresAt,
		Kind:      kind,
		Principal: dto.SessionResponse{
			PrincipalID: id,
			Name:        name,
			Email:       emailAddr,
			Kind:        string(kind),
			ExpiresAt:   expiresAt.Format(time.RFC3339),
		},
	}, nil
}

// AdminLogin authenticates an electoral official with email and password
func (s *authServiceImpl) AdminLogin(ctx context.Context, req *dto.AdminLoginRequest, existingToken string) (*Session, error) {
	if err := s.rejectActiveSession(existingToken, auth.PrincipalAdmin); err != nil {
		return nil, err
	}

	admin, err := s.adminRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		// Do not reveal whether the email exists
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(admin.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	s.logger.Info().Int64("adminID", admin.ID).Msg("Admin logged in")

	return s.issueSession(admin.ID, admin.Email, admin.FirstName+" "+admin.LastName, auth.PrincipalAdmin, auth.SessionExpiry)
}

// principalByEmail resolves a voter or candidate login subject. Returns
// the identity fields needed for a session plus the stored descriptor.
func (s *authServiceImpl) principalByEmail(ctx context.Context, kind auth.PrincipalKind, emailAddr string) (int64, string, []byte, models.AccountStatus, error) {
	switch kind {
	case auth.PrincipalVoter:
		voter, err := s.voterRepo.GetByEmail(ctx, emailAddr)
		if err != nil {
			return 0, "", nil, "", err
		}
		return voter.ID, voter.FullName(), voter.Descriptor, voter.Status, nil
	case auth.PrincipalCandidate:
		candidate, err := s.candidateRepo.GetByEmail(ctx, emailAddr)
		if err != nil {
			return 0, "", nil, "", err
		}
		return candidate.ID, candidate.FullName(), candidate.Descriptor, candidate.Status, nil
	default:
		return 0, "", nil, "", apperrors.ErrPermissionDenied
	}
}

// BiometricLogin authenticates a voter or candidate by facial
// descriptor. The supplied descriptor must fall within the match
// distance of the one captured at registration.
func (s *authServiceImpl) BiometricLogin(ctx context.Context, kind auth.PrincipalKind, req *dto.BiometricLoginRequest, existingToken string) (*Session, error) {
	if err := s.rejectActiveSession(existingToken, kind); err != nil {
		return nil, err
	}

	id, name, storedBuf, status, err := s.principalByEmail(ctx, kind, req.Email)
	if err != nil {
		return nil, err
	}
	if status != models.StatusActive {
		return nil, apperrors.ErrAccountInactive
	}

	stored, err := biometrics.DecodeDescriptor(storedBuf)
	if err != nil {
		return nil, fmt.Errorf("error decoding stored descriptor: %w", err)
	}
	if !biometrics.Matches(biometrics.Descriptor(req.Descriptor), stored) {
		return nil, apperrors.ErrBiometricMismatch
	}

	s.logger.Info().Int64("principalID", id).Str("kind", string(kind)).Msg("Biometric login")

	return s.issueSession(id, req.Email, name, kind, auth.SessionExpiry)
}

func ownerKindFor(kind auth.PrincipalKind) models.OTPOwnerKind {
	if kind == auth.PrincipalCandidate {
		return models.OTPOwnerCandidate
	}
	return models.OTPOwnerVoter
}

// RequestOTP issues a one-time login code and emails it to the account
// owner
func (s *authServiceImpl) RequestOTP(ctx context.Context, kind auth.PrincipalKind, req *dto.OTPRequest) error {
	id, name, _, status, err := s.principalByEmail(ctx, kind, req.Email)
	if err != nil {
		return err
	}
	if status != models.StatusActive {
		return apperrors.ErrAccountInactive
	}

	code, err := otp.GenerateCode()
	if err != nil {
		return fmt.Errorf("error generating one-time code: %w", err)
	}

	record := &models.OTP{
		OwnerID:   id,
		OwnerKind: ownerKindFor(kind),
		Code:      code,
		ExpiresAt: otp.Expiry(time.Now()),
	}
	if _, err := s.otpRepo.Create(ctx, record); err != nil {
		return err
	}

	if err := s.emailService.SendOTPEmail(req.Email, name, code); err != nil {
		s.logger.Warn().Err(err).Str("email", req.Email).Msg("Failed to send one-time code email")
		return fmt.Errorf("error sending one-time code: %w", err)
	}

	return nil
}

// VerifyOTP consumes an emailed one-time code and issues a short
// session. A code is bound to its owner and is accepted exactly once;
// verifying marks the stored row used.
func (s *authServiceImpl) VerifyOTP(ctx context.Context, kind auth.PrincipalKind, req *dto.OTPVerifyRequest) (*Session, error) {
	id, name, _, status, err := s.principalByEmail(ctx, kind, req.Email)
	if err != nil {
		return nil, err
	}
	if status != models.StatusActive {
		return nil, apperrors.ErrAccountInactive
	}

	record, err := s.otpRepo.GetActiveByOwnerAndCode(ctx, id, ownerKindFor(kind), req.Code)
	if err != nil {
		return nil, err
	}
	if err := s.otpRepo.MarkVerified(ctx, record.ID); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("principalID", id).Str("kind", string(kind)).Msg("One-time code verified")

	return s.issueSession(id, req.Email, name, kind, auth.OTPSessionExpiry)
}

// Logout invalidates the caller's session cookie. Without a valid
// session for the given kind there is nothing to log out of.
func (s *authServiceImpl) Logout(kind auth.PrincipalKind, existingToken string) error {
	if existingToken == "" {
		return apperrors.ErrNotLoggedIn
	}
	if _, err := s.jwtService.ValidateSessionFor(existingToken, kind); err != nil {
		return apperrors.ErrNotLoggedIn
	}
	return nil
}
