package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWT errors
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// PrincipalKind distinguishes the three independent session namespaces.
type PrincipalKind string

const (
	PrincipalVoter     PrincipalKind = "VOTER"
	PrincipalCandidate PrincipalKind = "CANDIDATE"
	PrincipalAdmin     PrincipalKind = "ADMIN"
)

// CookieName returns the session cookie name for the principal kind.
func (k PrincipalKind) CookieName() string {
	switch k {
	case PrincipalCandidate:
		return "candidateVotingSession"
	case PrincipalAdmin:
		return "adminVotingSession"
	default:
		return "userVotingSession"
	}
}

// Session token lifetimes. Password and biometric logins get the full
// window; OTP logins get the shorter one.
const (
	SessionExpiry    = 24 * time.Hour
	OTPSessionExpiry = 2 * time.Hour
)

// JWTConfig defines JWT configuration settings
type JWTConfig struct {
	SecretKey   string
	TokenIssuer string
}

// JWTService issues and validates session tokens
type JWTService struct {
	config JWTConfig
}

// NewJWTService creates a new JWT service
func NewJWTService(config JWTConfig) *JWTService {
	return &JWTService{config: config}
}

// SessionClaims defines session token content
type SessionClaims struct {
	PrincipalID int64         `json:"principalId"`
	Email       string        `json:"email"`
	Name        string        `json:"name"`
	Kind        PrincipalKind `json:"kind"`
	jwt.RegisteredClaims
}

// GenerateSessionToken creates a signed session token for a principal.
func (s *JWTService) GenerateSessionToken(id int64, email, name string, kind PrincipalKind, expiry time.Duration) (string, time.Time, error) {
	expiresAt := time.Now().Add(expiry)

	claims := &SessionClaims{
		PrincipalID: id,
		Email:       email,
		Name:        name,
		Kind:        kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    s.config.TokenIssuer,
			Subject:   fmt.Sprintf("%d", id),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, expiresAt, nil
}

// ValidateToken validates a token and returns its claims.
func (s *JWTService) ValidateToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.SecretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// ValidateSessionFor validates a token and checks it belongs to the
// expected principal namespace.
func (s *JWTService) ValidateSessionFor(tokenString string, kind PrincipalKind) (*SessionClaims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.PrincipalID <= 0 || claims.Kind != kind {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
