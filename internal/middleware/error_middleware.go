package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmwangi/uchaguzi/internal/app/models/dto"
	"github.com/dmwangi/uchaguzi/internal/pkg/apperrors"
)

// HandleAPIError maps service errors onto HTTP responses. Controllers
// hand every service error here so status codes and error codes stay
// consistent across the API.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	// Validation
	case errors.Is(err, apperrors.ErrInvalidName):
		c.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidName, "Invalid name"),
		})
	case errors.Is(err, apperrors.ErrInvalidEmail):
		c.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidEmail, "Invalid email address"),
		})
	case errors.Is(err, apperrors.ErrInvalidFaculty):
		c.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidFaculty, "Unrecognised faculty"),
		})
	case errors.Is(err, apperrors.ErrInvalidRegNumber):
		c.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRegNumber, "Invalid registration number"),
		})
	case errors.Is(err, apperrors.ErrRegNumberFacultyMix):
		c.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidRegNumber, "Registration number does not match faculty"),
		})
	case errors.Is(err, apperrors.ErrUnknownPosition):
		c.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Unknown executive position"),
		})
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrMissingField):
		c.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed"),
		})

	// Authentication
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials"),
		})
	case errors.Is(err, apperrors.ErrBiometricMismatch):
		c.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeBiometricMismatch, "Biometric verification failed"),
		})
	case errors.Is(err, apperrors.ErrOTPInvalid):
		c.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidOTP, "Invalid one-time code"),
		})
	case errors.Is(err, apperrors.ErrOTPExpired):
		c.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeExpiredOTP, "One-time code expired"),
		})
	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Session expired"),
		})
	case errors.Is(err, apperrors.ErrTokenInvalid):
		c.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid session"),
		})
	case errors.Is(err, apperrors.ErrNotLoggedIn):
		c.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "No active session"),
		})

	// Forbidden
	case errors.Is(err, apperrors.ErrAlreadyVoted):
		c.JSON(http.StatusForbidden, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeAlreadyVoted, "Vote already cast"),
		})
	case errors.Is(err, apperrors.ErrCategoryAlreadyUsed):
		c.JSON(http.StatusForbidden, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeAlreadyVoted, "Vote already cast in this category"),
		})
	case errors.Is(err, apperrors.ErrCandidateNotBallot):
		c.JSON(http.StatusForbidden, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeNotOnBallot, "Candidate is not on the ballot"),
		})
	case errors.Is(err, apperrors.ErrFacultyMismatch):
		c.JSON(http.StatusForbidden, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeForbidden, "Application faculty must match your own"),
		})
	case errors.Is(err, apperrors.ErrAccountInactive):
		c.JSON(http.StatusForbidden, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeForbidden, "Account is inactive"),
		})
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied"),
		})

	// Not found
	case errors.Is(err, apperrors.ErrVoterNotFound):
		c.JSON(http.StatusNotFound, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Voter not found"),
		})
	case errors.Is(err, apperrors.ErrCandidateNotFound):
		c.JSON(http.StatusNotFound, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Candidate not found"),
		})
	case errors.Is(err, apperrors.ErrApplicationNotFound):
		c.JSON(http.StatusNotFound, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Application not found"),
		})
	case errors.Is(err, apperrors.ErrElectionNotFound):
		c.JSON(http.StatusNotFound, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Election not found"),
		})
	case errors.Is(err, apperrors.ErrNoResults):
		c.JSON(http.StatusNotFound, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "No tallied results"),
		})
	case errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found"),
		})

	// Conflicts
	case errors.Is(err, apperrors.ErrAlreadyLoggedIn):
		c.JSON(http.StatusConflict, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeAlreadyLoggedIn, "Already logged in"),
		})
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		c.JSON(http.StatusConflict, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Email already registered"),
		})
	case errors.Is(err, apperrors.ErrDuplicateBiometric):
		c.JSON(http.StatusConflict, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeDuplicateBiometric, "Biometric already enrolled"),
		})
	case errors.Is(err, apperrors.ErrDuplicateApplication):
		c.JSON(http.StatusConflict, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeDuplicateApplication, "Application already submitted"),
		})
	case errors.Is(err, apperrors.ErrPositionTaken):
		c.JSON(http.StatusConflict, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodePositionTaken, "Position already claimed"),
		})
	case errors.Is(err, apperrors.ErrNoSeatsRemaining):
		c.JSON(http.StatusConflict, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeNoSeatsRemaining, "No seats remaining"),
		})
	case errors.Is(err, apperrors.ErrAlreadyApproved):
		c.JSON(http.StatusConflict, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Application already approved"),
		})
	case errors.Is(err, apperrors.ErrAlreadyRejected):
		c.JSON(http.StatusConflict, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Application already rejected"),
		})
	case errors.Is(err, apperrors.ErrWinnerAnnounced):
		c.JSON(http.StatusConflict, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeWinnerAnnounced, "Winner already announced"),
		})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Conflict"),
		})

	default:
		c.JSON(http.StatusInternalServerError, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
		})
	}
}
