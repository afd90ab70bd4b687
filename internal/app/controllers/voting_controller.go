package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dmwangi/uchaguzi/internal/app/models/dto"
	"github.com/dmwangi/uchaguzi/internal/app/services"
	"github.com/dmwangi/uchaguzi/internal/middleware"
)

// VotingController handles vote casting operations
type VotingController struct {
	votingService services.VotingService
	logger        zerolog.Logger
}

// NewVotingController creates a new VotingController
func NewVotingController(votingService services.VotingService, logger zerolog.Logger) *VotingController {
	return &VotingController{
		votingService: votingService,
		logger:        logger,
	}
}

// CastVote handles a voter's vote
// @Summary Cast a vote
// @Description Records the caller's single vote after re-verifying the facial descriptor. The target must hold a ballot entry at cast time.
// @Tags votes
// @Accept json
// @Produce json
// @Param request body dto.CastVoteRequest true "Vote with fresh facial descriptor"
// @Success 201 {object} dto.APIResponse{data=dto.VoteResponse} "Vote recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid fields"
// @Failure 401 {object} dto.ErrorResponse "Authentication or biometric verification failed"
// @Failure 403 {object} dto.ErrorResponse "Already voted or target not on ballot"
// @Router /votes [post]
func (c *VotingController) CastVote(ctx *gin.Context) {
	voterID, ok := middleware.GetPrincipalID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.CastVoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	response, err := c.votingService.CastVote(ctx.Request.Context(), voterID, &req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("voterID", voterID).Msg("Vote rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: response})
}

// CastCandidateVote handles a candidate's own vote
// @Summary Cast a candidate vote
// @Description Records the calling candidate's vote in the delegate or executive category. One vote per category.
// @Tags votes
// @Accept json
// @Produce json
// @Param request body dto.CandidateVoteRequest true "Target candidate and category"
// @Success 201 {object} dto.APIResponse{data=dto.VoteResponse} "Vote recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid fields"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Category already used or target not on ballot"
// @Router /votes/candidate [post]
func (c *VotingController) CastCandidateVote(ctx *gin.Context) {
	candidateID, ok := middleware.GetPrincipalID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.CandidateVoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	response, err := c.votingService.CastCandidateVote(ctx.Request.Context(), candidateID, &req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("candidateID", candidateID).Msg("Candidate vote rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: response})
}
