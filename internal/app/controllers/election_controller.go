package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dmwangi/uchaguzi/internal/app/models/dto"
	"github.com/dmwangi/uchaguzi/internal/app/services"
	"github.com/dmwangi/uchaguzi/internal/middleware"
)

// ElectionController handles election management operations
type ElectionController struct {
	electionService services.ElectionService
	logger          zerolog.Logger
}

// NewElectionController creates a new ElectionController
func NewElectionController(electionService services.ElectionService, logger zerolog.Logger) *ElectionController {
	return &ElectionController{
		electionService: electionService,
		logger:          logger,
	}
}

// CreateElection defines a new election
// @Summary Create an election
// @Tags elections
// @Accept json
// @Produce json
// @Param request body dto.CreateElectionRequest true "Election definition"
// @Success 201 {object} dto.APIResponse{data=models.Election} "Election created"
// @Failure 400 {object} dto.ErrorResponse "Invalid fields"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /elections [post]
func (c *ElectionController) CreateElection(ctx *gin.Context) {
	var req dto.CreateElectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	election, err := c.electionService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: election})
}

// GetElection retrieves an election
// @Summary Get an election
// @Tags elections
// @Produce json
// @Param id path int true "Election ID"
// @Success 200 {object} dto.APIResponse{data=models.Election} "Election"
// @Failure 404 {object} dto.ErrorResponse "Election not found"
// @Router /elections/{id} [get]
func (c *ElectionController) GetElection(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	election, err := c.electionService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: election})
}

// ListElections lists all elections
// @Summary List elections
// @Tags elections
// @Produce json
// @Success 200 {object} dto.APIResponse "Elections"
// @Router /elections [get]
func (c *ElectionController) ListElections(ctx *gin.Context) {
	elections, err := c.electionService.GetAll(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: elections})
}

// UpdateElection edits an election
// @Summary Update an election
// @Tags elections
// @Accept json
// @Produce json
// @Param id path int true "Election ID"
// @Param request body dto.UpdateElectionRequest true "Election fields"
// @Success 200 {object} dto.APIResponse{data=models.Election} "Election updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid fields"
// @Failure 404 {object} dto.ErrorResponse "Election not found"
// @Router /elections/{id} [put]
func (c *ElectionController) UpdateElection(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateElectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	election, err := c.electionService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: election})
}

// DeleteElection removes an election
// @Summary Delete an election
// @Tags elections
// @Produce json
// @Param id path int true "Election ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Election deleted"
// @Failure 404 {object} dto.ErrorResponse "Election not found"
// @Router /elections/{id} [delete]
func (c *ElectionController) DeleteElection(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.electionService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{
		Message: "Election deleted.",
	}})
}
