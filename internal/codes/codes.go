// Package codes generates the random identifiers embedded in callback URLs.
package codes

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
)

// MaxLength bounds generated codes to the entropy of a single 32-byte read.
const MaxLength = 64

var ErrInvalidLength = errors.New("code length must be between 1 and 64")

// Generate returns a random hex string of exactly length characters.
// Randomness comes from crypto/rand; collisions are negligible for any
// realistic registration volume at lengths >= 8.
func Generate(length int) (string, error) {
	if length <= 0 || length > MaxLength {
		return "", fmt.Errorf("%w: got %d", ErrInvalidLength, length)
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}

	return hex.EncodeToString(buf)[:length], nil
}
