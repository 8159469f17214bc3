// Package auth provides password hashing for webhook endpoint credentials.
package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

var ErrPasswordHashMismatch = errors.New("password does not match")

// HashPassword hashes a password using bcrypt. The empty string is hashed
// like any other password so unprotected endpoints keep a uniform record
// layout.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks if a password matches a hash.
func VerifyPassword(password, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordHashMismatch
	}
	return err
}
