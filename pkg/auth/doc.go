// Package auth provides the authentication primitives for the Rally API.
//
// # Overview
//
// Two capability interfaces cover everything the rest of the application
// needs: PasswordHasher ({hash, compare}) and TokenService ({issue, verify}).
// The production implementations are bcrypt and HS256 JWTs; handlers and
// middleware depend only on the interfaces so core logic is testable without
// invoking real cryptography.
//
// # Credential Storage
//
// Passwords are hashed exactly once per password-set:
//
//	hasher := auth.NewBcryptHasher(0) // 0 = library default cost
//	hash, err := hasher.Hash(req.Password)
//	user := &auth.User{ID: uuid.NewString(), Username: req.Username, PasswordHash: hash}
//
// Login compares against the stored hash (constant-time, salt and cost
// embedded in the hash):
//
//	if err := hasher.Compare(user.PasswordHash, req.Password); err != nil {
//		// 401 "incorrect password"
//	}
//
// # Tokens
//
// Tokens are stateless signed strings carrying {sub, iat} and optionally exp:
//
//	tokens := auth.NewJWTService([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL)
//	token, err := tokens.Issue(user.ID)
//	userID, err := tokens.Verify(token)
//
// Verify collapses every failure (malformed, bad signature, expired) into
// ErrInvalidToken so the HTTP layer cannot leak validation internals.
//
// # Related Packages
//
//   - pkg/middleware: bearer-token auth gate using TokenService
//   - pkg/api: registration/login handlers using PasswordHasher
package auth
