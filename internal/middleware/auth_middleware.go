package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmwangi/uchaguzi/internal/app/models/dto"
	"github.com/dmwangi/uchaguzi/internal/pkg/auth"
)

// Context keys populated by the session middleware
const (
	ContextPrincipalID    = "principalID"
	ContextPrincipalEmail = "principalEmail"
	ContextPrincipalName  = "principalName"
	ContextPrincipalKind  = "principalKind"
)

// AuthMiddleware validates session cookies per principal kind
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// RequireSession validates the session cookie belonging to the given
// principal kind. Each kind carries its own cookie, so a voter session
// never authorizes a candidate or admin route.
func (m *AuthMiddleware) RequireSession(kind auth.PrincipalKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(kind.CookieName())
		if err != nil || token == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		claims, err := m.jwtService.ValidateSessionFor(token, kind)
		if err != nil {
			errorCode := dto.ErrorCodeInvalidToken
			message := "Invalid session"
			if errors.Is(err, auth.ErrExpiredToken) {
				errorCode = dto.ErrorCodeExpiredToken
				message = "Session expired"
			}
			errorDetail := dto.NewErrorDetail(errorCode, message)
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set(ContextPrincipalID, claims.PrincipalID)
		c.Set(ContextPrincipalEmail, claims.Email)
		c.Set(ContextPrincipalName, claims.Name)
		c.Set(ContextPrincipalKind, string(claims.Kind))
		c.Next()
	}
}

// RequireVoter guards voter-only routes
func (m *AuthMiddleware) RequireVoter() gin.HandlerFunc {
	return m.RequireSession(auth.PrincipalVoter)
}

// RequireCandidate guards candidate-only routes
func (m *AuthMiddleware) RequireCandidate() gin.HandlerFunc {
	return m.RequireSession(auth.PrincipalCandidate)
}

// RequireAdmin guards electoral official routes
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return m.RequireSession(auth.PrincipalAdmin)
}

// GetPrincipalID reads the authenticated principal's ID from the request
// context
func GetPrincipalID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ContextPrincipalID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
