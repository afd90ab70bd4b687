// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dmwangi/uchaguzi/internal/app/models/dto"
	"github.com/dmwangi/uchaguzi/internal/app/services"
	"github.com/dmwangi/uchaguzi/internal/middleware"
	"github.com/dmwangi/uchaguzi/internal/pkg/auth"
)

// AuthController handles authentication related operations
type AuthController struct {
	authService services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// setSessionCookie writes the session cookie for the issued principal
// kind. HttpOnly keeps the token away from page scripts.
func setSessionCookie(ctx *gin.Context, session *services.Session) {
	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	ctx.SetCookie(session.Kind.CookieName(), session.Token, maxAge, "/", "", false, true)
}

func clearSessionCookie(ctx *gin.Context, kind auth.PrincipalKind) {
	ctx.SetCookie(kind.CookieName(), "", -1, "/", "", false, true)
}

func existingCookie(ctx *gin.Context, kind auth.PrincipalKind) string {
	token, err := ctx.Cookie(kind.CookieName())
	if err != nil {
		return ""
	}
	return token
}

// AdminLogin handles electoral official login
// @Summary Admin login
// @Description Authenticates an electoral official with email and password and sets the admin session cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.AdminLoginRequest true "Admin credentials"
// @Success 200 {object} dto.APIResponse{data=dto.SessionResponse} "Session issued"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 409 {object} dto.ErrorResponse "Already logged in"
// @Router /auth/admin/login [post]
func (c *AuthController) AdminLogin(ctx *gin.Context) {
	var req dto.AdminLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	session, err := c.authService.AdminLogin(ctx.Request.Context(), &req, existingCookie(ctx, auth.PrincipalAdmin))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	setSessionCookie(ctx, session)
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: session.Principal})
}

func (c *AuthController) biometricLogin(ctx *gin.Context, kind auth.PrincipalKind) {
	var req dto.BiometricLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	session, err := c.authService.BiometricLogin(ctx.Request.Context(), kind, &req, existingCookie(ctx, kind))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	setSessionCookie(ctx, session)
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: session.Principal})
}

// VoterLogin handles voter biometric login
// @Summary Voter biometric login
// @Description Authenticates a voter by matching the supplied facial descriptor against the enrolled one.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.BiometricLoginRequest true "Email and facial descriptor"
// @Success 200 {object} dto.APIResponse{data=dto.SessionResponse} "Session issued"
// @Failure 401 {object} dto.ErrorResponse "Biometric verification failed"
// @Failure 404 {object} dto.ErrorResponse "Voter not found"
// @Router /auth/voters/login [post]
func (c *AuthController) VoterLogin(ctx *gin.Context) {
	c.biometricLogin(ctx, auth.PrincipalVoter)
}

// CandidateLogin handles candidate biometric login
// @Summary Candidate biometric login
// @Description Authenticates a candidate by matching the supplied facial descriptor against the enrolled one.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.BiometricLoginRequest true "Email and facial descriptor"
// @Success 200 {object} dto.APIResponse{data=dto.SessionResponse} "Session issued"
// @Failure 401 {object} dto.ErrorResponse "Biometric verification failed"
// @Failure 404 {object} dto.ErrorResponse "Candidate not found"
// @Router /auth/candidates/login [post]
func (c *AuthController) CandidateLogin(ctx *gin.Context) {
	c.biometricLogin(ctx, auth.PrincipalCandidate)
}

func (c *AuthController) requestOTP(ctx *gin.Context, kind auth.PrincipalKind) {
	var req dto.OTPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.authService.RequestOTP(ctx.Request.Context(), kind, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{
		Message: "One-time code sent. Check your email.",
	}})
}

func (c *AuthController) verifyOTP(ctx *gin.Context, kind auth.PrincipalKind) {
	var req dto.OTPVerifyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	session, err := c.authService.VerifyOTP(ctx.Request.Context(), kind, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	setSessionCookie(ctx, session)
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: session.Principal})
}

// VoterRequestOTP emails a one-time login code to a voter
// @Summary Request voter one-time code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.OTPRequest true "Voter email"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Code sent"
// @Failure 404 {object} dto.ErrorResponse "Voter not found"
// @Router /auth/voters/otp [post]
func (c *AuthController) VoterRequestOTP(ctx *gin.Context) {
	c.requestOTP(ctx, auth.PrincipalVoter)
}

// VoterVerifyOTP verifies a voter's one-time code and issues a short session
// @Summary Verify voter one-time code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.OTPVerifyRequest true "Voter email and code"
// @Success 200 {object} dto.APIResponse{data=dto.SessionResponse} "Session issued"
// @Failure 401 {object} dto.ErrorResponse "Invalid or expired code"
// @Router /auth/voters/otp/verify [post]
func (c *AuthController) VoterVerifyOTP(ctx *gin.Context) {
	c.verifyOTP(ctx, auth.PrincipalVoter)
}

// CandidateRequestOTP emails a one-time login code to a candidate
// @Summary Request candidate one-time code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.OTPRequest true "Candidate email"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Code sent"
// @Failure 404 {object} dto.ErrorResponse "Candidate not found"
// @Router /auth/candidates/otp [post]
func (c *AuthController) CandidateRequestOTP(ctx *gin.Context) {
	c.requestOTP(ctx, auth.PrincipalCandidate)
}

// CandidateVerifyOTP verifies a candidate's one-time code and issues a
// short session
// @Summary Verify candidate one-time code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.OTPVerifyRequest true "Candidate email and code"
// @Success 200 {object} dto.APIResponse{data=dto.SessionResponse} "Session issued"
// @Failure 401 {object} dto.ErrorResponse "Invalid or expired code"
// @Router /auth/candidates/otp/verify [post]
func (c *AuthController) CandidateVerifyOTP(ctx *gin.Context) {
	c.verifyOTP(ctx, auth.PrincipalCandidate)
}

func (c *AuthController) logout(ctx *gin.Context, kind auth.PrincipalKind) {
	if err := c.authService.Logout(kind, existingCookie(ctx, kind)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	clearSessionCookie(ctx, kind)
	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{
		Message: "Logged out.",
	}})
}

// VoterLogout ends a voter session
// @Summary Voter logout
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Logged out"
// @Failure 401 {object} dto.ErrorResponse "No active session"
// @Router /auth/voters/logout [post]
func (c *AuthController) VoterLogout(ctx *gin.Context) {
	c.logout(ctx, auth.PrincipalVoter)
}

// CandidateLogout ends a candidate session
// @Summary Candidate logout
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Logged out"
// @Failure 401 {object} dto.ErrorResponse "No active session"
// @Router /auth/candidates/logout [post]
func (c *AuthController) CandidateLogout(ctx *gin.Context) {
	c.logout(ctx, auth.PrincipalCandidate)
}

// AdminLogout ends an admin session
// @Summary Admin logout
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Logged out"
// @Failure 401 {object} dto.ErrorResponse "No active session"
// @Router /auth/admin/logout [post]
func (c *AuthController) AdminLogout(ctx *gin.Context) {
	c.logout(ctx, auth.PrincipalAdmin)
}
