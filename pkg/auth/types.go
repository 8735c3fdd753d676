package auth

import "time"

// User represents a registered account.
//
// PasswordHash is never serialized: the json:"-" tag guarantees that any
// handler returning a User cannot leak the stored hash.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
