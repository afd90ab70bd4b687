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

// ResultsController handles tally and result publication operations
type ResultsController struct {
	resultsService services.ResultsService
	logger         zerolog.Logger
}

// NewResultsController creates a new ResultsController
func NewResultsController(resultsService services.ResultsService, logger zerolog.Logger) *ResultsController {
	return &ResultsController{
		resultsService: resultsService,
		logger:         logger,
	}
}

// Tally recomputes the results table
// @Summary Tally results
// @Description Discards and recomputes the results table from the ballot counters. Rerunning yields the same table for the same votes.
// @Tags results
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Results tallied"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /results/tally [post]
func (c *ResultsController) Tally(ctx *gin.Context) {
	if err := c.resultsService.Tally(ctx.Request.Context()); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{
		Message: "Results tallied.",
	}})
}

// GetResults returns the tallied standings
// @Summary Get results
// @Description Returns tallied results ordered by vote count with the current leader. Pass electionId to scope to one election.
// @Tags results
// @Produce json
// @Param electionId query int false "Election ID"
// @Success 200 {object} dto.APIResponse{data=dto.ResultsResponse} "Results"
// @Failure 404 {object} dto.ErrorResponse "No tallied results"
// @Router /results [get]
func (c *ResultsController) GetResults(ctx *gin.Context) {
	var electionID int64
	if raw := ctx.Query("electionId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid electionId")))
			return
		}
		electionID = parsed
	}

	response, err := c.resultsService.GetResults(ctx.Request.Context(), electionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: response})
}

// AnnounceWinner notifies an election's winner
// @Summary Announce the winner
// @Description Resolves the winning candidate from the tallied results and emails them, at most once per election.
// @Tags results
// @Produce json
// @Param electionId path int true "Election ID"
// @Success 200 {object} dto.APIResponse{data=dto.WinnerResponse} "Winner announced"
// @Failure 404 {object} dto.ErrorResponse "Election or results not found"
// @Failure 409 {object} dto.ErrorResponse "Winner already announced"
// @Router /results/announce/{electionId} [post]
func (c *ResultsController) AnnounceWinner(ctx *gin.Context) {
	electionID, ok := parseIDParam(ctx, "electionId")
	if !ok {
		return
	}

	winner, err := c.resultsService.AnnounceWinner(ctx.Request.Context(), electionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: winner})
}
