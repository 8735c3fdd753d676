package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rallyhq/rally/pkg/auth"
	"github.com/rallyhq/rally/pkg/contextkeys"
	"github.com/rallyhq/rally/pkg/httputil"
	"github.com/rallyhq/rally/pkg/storage"
)

// UserFinder resolves a token subject to a live user record
type UserFinder interface {
	GetUserByID(ctx context.Context, id string) (*auth.User, error)
}

// AuthMiddleware is the request-level authentication gate. It extracts a
// bearer token, verifies it, resolves the subject to an existing user, and
// attaches the user to the request context.
//
// It is applied per-route, not globally: public routes (list events, get
// event, register, login) never pass through it.
type AuthMiddleware struct {
	tokens auth.TokenService
	users  UserFinder
	// optional lets a route accept anonymous requests while still
	// resolving identity when a token is present
	optional bool
}

// NewAuthMiddleware creates a new authentication gate
func NewAuthMiddleware(tokens auth.TokenService, users UserFinder, optional bool) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:   tokens,
		users:    users,
		optional: optional,
	}
}

// Handler wraps an HTTP handler with authentication
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			if m.optional {
				next.ServeHTTP(w, r)
				return
			}
			httputil.WriteUnauthorized(w, "no token")
			return
		}

		// Malformed, expired and badly-signed tokens are indistinguishable
		// in the response on purpose.
		userID, err := m.tokens.Verify(token)
		if err != nil {
			httputil.WriteUnauthorized(w, "authentication failed")
			return
		}

		user, err := m.users.GetUserByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				httputil.WriteUnauthorized(w, "user not found")
				return
			}
			httputil.WriteInternalError(w, "internal server error")
			return
		}

		ctx := contextkeys.WithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// HandlerFunc is a convenience wrapper for http.HandlerFunc values
func (m *AuthMiddleware) HandlerFunc(next http.HandlerFunc) http.Handler {
	return m.Handler(next)
}

// UserFrom extracts the authenticated user from a request that passed
// through the gate, or nil.
func UserFrom(r *http.Request) *auth.User {
	return contextkeys.UserFromContext(r.Context())
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Returns "" when the header is missing or not bearer-shaped.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
