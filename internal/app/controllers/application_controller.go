package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dmwangi/uchaguzi/internal/app/models/dto"
	"github.com/dmwangi/uchaguzi/internal/app/services"
	"github.com/dmwangi/uchaguzi/internal/middleware"
)

// ApplicationController handles position application operations
type ApplicationController struct {
	applicationService services.ApplicationService
	logger             zerolog.Logger
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService services.ApplicationService, logger zerolog.Logger) *ApplicationController {
	return &ApplicationController{
		applicationService: applicationService,
		logger:             logger,
	}
}

// ApplyDelegate handles a delegate application
// @Summary Apply for a delegate position
// @Description Submits a bid to represent the caller's faculty. The application and the seat reservation succeed or fail together.
// @Tags applications
// @Accept json
// @Produce json
// @Param request body dto.ApplyDelegateRequest true "Delegate application"
// @Success 201 {object} dto.APIResponse{data=dto.ApplicationResponse} "Application submitted"
// @Failure 400 {object} dto.ErrorResponse "Invalid fields"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 409 {object} dto.ErrorResponse "Duplicate application or no seats remaining"
// @Router /applications/delegate [post]
func (c *ApplicationController) ApplyDelegate(ctx *gin.Context) {
	candidateID, ok := middleware.GetPrincipalID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.ApplyDelegateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	response, err := c.applicationService.ApplyDelegate(ctx.Request.Context(), candidateID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: response})
}

// ApplyExecutive handles an executive application
// @Summary Apply for an executive position
// @Description Submits a bid for one of the named executive positions. Each named position may be claimed by one pending or approved applicant at a time.
// @Tags applications
// @Accept json
// @Produce json
// @Param request body dto.ApplyExecutiveRequest true "Executive application"
// @Success 201 {object} dto.APIResponse{data=dto.ApplicationResponse} "Application submitted"
// @Failure 400 {object} dto.ErrorResponse "Invalid fields or unknown position"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 409 {object} dto.ErrorResponse "Position taken or no seats remaining"
// @Router /applications/executive [post]
func (c *ApplicationController) ApplyExecutive(ctx *gin.Context) {
	candidateID, ok := middleware.GetPrincipalID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.ApplyExecutiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	response, err := c.applicationService.ApplyExecutive(ctx.Request.Context(), candidateID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: response})
}

// ListApplications lists all submitted applications
// @Summary List applications
// @Tags applications
// @Produce json
// @Success 200 {object} dto.APIResponse "Applications"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /applications [get]
func (c *ApplicationController) ListApplications(ctx *gin.Context) {
	applications, err := c.applicationService.GetAll(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: applications})
}

func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id < 1 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name)))
		return 0, false
	}
	return id, true
}

// ApproveApplication approves a candidate's pending application
// @Summary Approve an application
// @Description Approves the candidate's pending application and opens their ballot entry, exactly once.
// @Tags applications
// @Produce json
// @Param candidateId path int true "Candidate ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Application approved"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 409 {object} dto.ErrorResponse "Already reviewed"
// @Router /applications/{candidateId}/approve [put]
func (c *ApplicationController) ApproveApplication(ctx *gin.Context) {
	candidateID, ok := parseIDParam(ctx, "candidateId")
	if !ok {
		return
	}

	if err := c.applicationService.Approve(ctx.Request.Context(), candidateID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{
		Message: "Application approved.",
	}})
}

// RejectApplication rejects a candidate's pending application
// @Summary Reject an application
// @Tags applications
// @Produce json
// @Param candidateId path int true "Candidate ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Application rejected"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 409 {object} dto.ErrorResponse "Already reviewed"
// @Router /applications/{candidateId}/reject [put]
func (c *ApplicationController) RejectApplication(ctx *gin.Context) {
	candidateID, ok := parseIDParam(ctx, "candidateId")
	if !ok {
		return
	}

	if err := c.applicationService.Reject(ctx.Request.Context(), candidateID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{
		Message: "Application rejected.",
	}})
}
