package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordMismatch is returned by Compare when the candidate password
// does not match the stored hash.
var ErrPasswordMismatch = errors.New("password mismatch")

// PasswordHasher is the capability interface for credential hashing.
// Implementations must be one-way and salted; Compare must not short-circuit
// on early mismatch.
type PasswordHasher interface {
	// Hash computes a one-way salted hash of the plaintext
	Hash(plaintext string) (string, error)

	// Compare checks a candidate plaintext against a stored hash
	Compare(hash, plaintext string) error
}

// BcryptHasher implements PasswordHasher using bcrypt
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a bcrypt hasher with the given work factor.
// A cost outside bcrypt's valid range falls back to the library default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash computes a bcrypt hash with an embedded random salt and cost factor
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Compare delegates to bcrypt's constant-time comparison. The salt and cost
// are read from the stored hash itself.
func (h *BcryptHasher) Compare(hash, plaintext string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return fmt.Errorf("failed to compare password: %w", err)
	}
	return nil
}
