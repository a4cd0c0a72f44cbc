// Package model defines domain entities for the application.
package model

import "time"

// User represents a registered account. Passwords are stored only as
// Argon2id PHC strings, never in plaintext.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Identity is the authenticated caller extracted from a bearer token.
// It is attached to the request context by the auth middleware and is the
// only source of owner ids for resource operations.
type Identity struct {
	UserID string
}
