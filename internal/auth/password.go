// Package auth provides password hashing and bearer-token utilities.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor for password hashing. Each stored
// hash carries its own random salt, so verification works across cost
// changes.
const BcryptCost = 10

// ErrPasswordTooLong is returned when a password exceeds bcrypt's
// 72-byte input limit.
var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// HashPassword creates a salted bcrypt hash of the given password.
func HashPassword(password string) (string, error) {
	if len(password) > 72 {
		return "", ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether the password matches the stored hash.
// The comparison is constant-time within bcrypt itself.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
