package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/dmwangi/uchaguzi/internal/pkg/auth"
)

func newSessionTestRouter(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", TokenIssuer: "uchaguzi-test"})
	m := NewAuthMiddleware(jwtService)

	router := gin.New()
	router.GET("/voter-only", m.RequireVoter(), func(c *gin.Context) {
		id, ok := GetPrincipalID(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"principalId": id})
	})
	return router, jwtService
}

func TestRequireSessionAcceptsValidCookie(t *testing.T) {
	router, jwtService := newSessionTestRouter(t)

	token, _, err := jwtService.GenerateSessionToken(7, "jane@students.example.ke", "Jane Wanjiku", auth.PrincipalVoter, auth.SessionExpiry)
	if err != nil {
		t.Fatalf("GenerateSessionToken() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/voter-only", nil)
	req.AddCookie(&http.Cookie{Name: "userVotingSession", Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
}

func TestRequireSessionRejectsMissingCookie(t *testing.T) {
	router, _ := newSessionTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/voter-only", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

// A candidate session cookie must not open voter routes, even when the
// token itself is valid.
func TestRequireSessionRejectsOtherKind(t *testing.T) {
	router, jwtService := newSessionTestRouter(t)

	token, _, err := jwtService.GenerateSessionToken(3, "brian@students.example.ke", "Brian Otieno", auth.PrincipalCandidate, auth.SessionExpiry)
	if err != nil {
		t.Fatalf("GenerateSessionToken() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/voter-only", nil)
	req.AddCookie(&http.Cookie{Name: "candidateVotingSession", Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}

	// Even presented under the voter cookie name, the kind mismatch is
	// rejected.
	req = httptest.NewRequest(http.MethodGet, "/voter-only", nil)
	req.AddCookie(&http.Cookie{Name: "userVotingSession", Value: token})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d for mislabelled cookie, want 401", w.Code)
	}
}

func TestRequireSessionRejectsExpiredToken(t *testing.T) {
	router, jwtService := newSessionTestRouter(t)

	token, _, err := jwtService.GenerateSessionToken(7, "jane@students.example.ke", "Jane Wanjiku", auth.PrincipalVoter, -auth.SessionExpiry)
	if err != nil {
		t.Fatalf("GenerateSessionToken() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/voter-only", nil)
	req.AddCookie(&http.Cookie{Name: "userVotingSession", Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
