package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by Verify for any token that cannot be
// accepted: malformed, bad signature, or expired. Callers must not
// distinguish between those cases in client-facing responses.
var ErrInvalidToken = errors.New("invalid token")

// TokenService is the capability interface for identity tokens
type TokenService interface {
	// Issue produces a signed token with the user ID as subject
	Issue(userID string) (string, error)

	// Verify checks a token and returns the subject user ID
	Verify(token string) (string, error)
}

// JWTService implements TokenService using HS256-signed JWTs.
//
// The signing secret is process-wide configuration loaded once at startup.
// Tokens carry {sub, iat} and, when a TTL is configured, exp. A zero TTL
// issues non-expiring tokens.
type JWTService struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTService creates a token service signing with the given secret
func NewJWTService(secret []byte, ttl time.Duration) *JWTService {
	return &JWTService{secret: secret, ttl: ttl}
}

// Issue signs a token embedding userID as subject
func (s *JWTService) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:  userID,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning the subject user ID.
// Every failure mode collapses into ErrInvalidToken.
func (s *JWTService) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
