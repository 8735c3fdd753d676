// Package contextkeys provides centralized context key definitions
//
// IMPORTANT: All context keys used across the application must be defined here.
// This prevents typos, documents dependencies, and makes key usage discoverable.
package contextkeys

import (
	"context"

	"github.com/rallyhq/rally/pkg/auth"
)

// Key is the type for context keys to prevent collisions
type Key string

const (
	// UserKey contains the authenticated *auth.User
	// Set by: middleware.AuthMiddleware (pkg/middleware/auth.go)
	// Required by: profile handler, event create/update/delete handlers
	UserKey Key = "user"

	// RequestIDKey contains the request ID string (UUID)
	// Set by: httputil.RequestIDMiddleware
	// Used by: request logging
	RequestIDKey Key = "request_id"
)

// WithUser attaches the authenticated user to the context
func WithUser(ctx context.Context, user *auth.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

// UserFromContext retrieves the authenticated user, or nil if the request
// did not pass through the auth gate.
func UserFromContext(ctx context.Context) *auth.User {
	user, ok := ctx.Value(UserKey).(*auth.User)
	if !ok {
		return nil
	}
	return user
}

// WithRequestID attaches the request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// RequestIDFromContext retrieves the request ID, or "" if unset
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}
