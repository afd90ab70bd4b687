package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrBiometricMismatch  = errors.New("biometric verification failed")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrAlreadyLoggedIn    = errors.New("already logged in")
	ErrNotLoggedIn        = errors.New("no active session")
	ErrAccountInactive    = errors.New("account is inactive")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrMissingField     = errors.New("missing required field")
	ErrInvalidName      = errors.New("invalid name format")
	ErrInvalidEmail     = errors.New("invalid email format")
)

// Registration errors
var (
	ErrEmailAlreadyExists  = errors.New("email already registered")
	ErrDuplicateBiometric  = errors.New("biometric descriptor already registered")
	ErrInvalidFaculty      = errors.New("faculty is not one of the recognised faculties")
	ErrInvalidRegNumber    = errors.New("invalid registration number format")
	ErrRegNumberFacultyMix = errors.New("registration number prefix does not match faculty")
)

// Voter errors
var (
	ErrVoterNotFound = errors.New("voter not found")
	ErrAlreadyVoted  = errors.New("voter has already cast a vote")
)

// Candidate errors
var (
	ErrCandidateNotFound   = errors.New("candidate not found")
	ErrCandidateNotBallot  = errors.New("candidate is not on the ballot")
	ErrCategoryAlreadyUsed = errors.New("candidate has already voted in this category")
)

// Application errors
var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrDuplicateApplication = errors.New("candidate has already applied for this faculty")
	ErrFacultyMismatch      = errors.New("candidate may only represent their own faculty")
	ErrPositionTaken        = errors.New("executive position is already claimed")
	ErrUnknownPosition      = errors.New("unknown executive position")
	ErrNoSeatsRemaining     = errors.New("no seats remaining for this election")
	ErrAlreadyApproved      = errors.New("application already approved")
	ErrAlreadyRejected      = errors.New("application already rejected")
)

// Election and result errors
var (
	ErrElectionNotFound = errors.New("election not found")
	ErrNoResults        = errors.New("no results available")
	ErrWinnerAnnounced  = errors.New("winner has already been announced")
)

// OTP errors
var (
	ErrOTPInvalid = errors.New("invalid one-time code")
	ErrOTPExpired = errors.New("one-time code has expired")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with an underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// NewConflictError creates a new custom error for conflict situations
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewForbiddenError creates a new custom error for permission denied
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

// NewValidationError creates a new custom error for malformed input
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}
