// Package model defines domain entities for the application.
package model

import "time"

// User represents a registered account.
// PasswordHash is a bcrypt hash and must never leave the server.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuthContext carries the identity resolved from a verified token.
type AuthContext struct {
	UserID string
	Email  string
}
