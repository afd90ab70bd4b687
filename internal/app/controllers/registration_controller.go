package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dmwangi/uchaguzi/internal/app/models/dto"
	"github.com/dmwangi/uchaguzi/internal/app/services"
	"github.com/dmwangi/uchaguzi/internal/middleware"
)

// RegistrationController handles voter and candidate enrollment
type RegistrationController struct {
	registrationService services.RegistrationService
	logger              zerolog.Logger
}

// NewRegistrationController creates a new RegistrationController
func NewRegistrationController(registrationService services.RegistrationService, logger zerolog.Logger) *RegistrationController {
	return &RegistrationController{
		registrationService: registrationService,
		logger:              logger,
	}
}

// RegisterVoter handles voter enrollment
// @Summary Register a voter
// @Description Enrolls a new voter with a facial descriptor. A descriptor too similar to an enrolled one is rejected. The registration number is derived from the faculty code and emailed back.
// @Tags registration
// @Accept json
// @Produce json
// @Param request body dto.RegisterVoterRequest true "Voter details with facial descriptor"
// @Success 201 {object} dto.APIResponse{data=dto.RegisterResponse} "Voter registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid fields"
// @Failure 409 {object} dto.ErrorResponse "Duplicate email or biometric"
// @Router /voters/register [post]
func (c *RegistrationController) RegisterVoter(ctx *gin.Context) {
	var req dto.RegisterVoterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	response, err := c.registrationService.RegisterVoter(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Voter registration failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: response})
}

// RegisterCandidate handles candidate enrollment
// @Summary Register a candidate
// @Description Enrolls a new candidate. The supplied registration number must match the declared faculty's code prefix.
// @Tags registration
// @Accept json
// @Produce json
// @Param request body dto.RegisterCandidateRequest true "Candidate details with facial descriptor"
// @Success 201 {object} dto.APIResponse{data=dto.RegisterResponse} "Candidate registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid fields or registration number"
// @Failure 409 {object} dto.ErrorResponse "Duplicate email"
// @Router /candidates/register [post]
func (c *RegistrationController) RegisterCandidate(ctx *gin.Context) {
	var req dto.RegisterCandidateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	response, err := c.registrationService.RegisterCandidate(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Candidate registration failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: response})
}
