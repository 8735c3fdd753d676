package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rallyhq/rally/pkg/auth"
	"github.com/rallyhq/rally/pkg/httputil"
	"github.com/rallyhq/rally/pkg/middleware"
	"github.com/rallyhq/rally/pkg/storage"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// register handles POST /api/users/register
func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	var errs []httputil.FieldError
	errs = httputil.RequireMinLength(errs, "username", req.Username, 3)
	errs = httputil.RequireMinLength(errs, "password", req.Password, 6)
	if len(errs) > 0 {
		httputil.WriteFieldErrors(w, errs)
		return
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.WithError(err).Error("failed to hash password")
		httputil.WriteInternalError(w, "error registering user")
		return
	}

	now := time.Now().UTC()
	user := &auth.User{
		ID:           uuid.NewString(),
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, storage.ErrDuplicateUsername) {
			httputil.WriteBadRequest(w, "user exists")
			return
		}
		s.logger.WithError(err).Error("failed to create user")
		httputil.WriteInternalError(w, "error registering user")
		return
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.logger.WithError(err).Error("failed to issue token")
		httputil.WriteInternalError(w, "error registering user")
		return
	}

	httputil.WriteCreated(w, tokenResponse{Token: token})
}

// login handles POST /api/users/login
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	user, err := s.store.GetUserByUsername(r.Context(), strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			httputil.WriteUnauthorized(w, "user does not exist")
			return
		}
		s.logger.WithError(err).Error("failed to look up user")
		httputil.WriteInternalError(w, "error logging in")
		return
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			httputil.WriteUnauthorized(w, "incorrect password")
			return
		}
		s.logger.WithError(err).Error("failed to compare password")
		httputil.WriteInternalError(w, "error logging in")
		return
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.logger.WithError(err).Error("failed to issue token")
		httputil.WriteInternalError(w, "error logging in")
		return
	}

	httputil.WriteSuccess(w, tokenResponse{Token: token})
}

// profile handles GET /api/users/profile. The auth gate has already
// resolved the identity; the password hash is excluded by the User type's
// json tags.
func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r)
	if user == nil {
		httputil.WriteUnauthorized(w, "no token")
		return
	}
	httputil.WriteSuccess(w, user)
}
