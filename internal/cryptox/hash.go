// Package cryptox implements the credential hashing primitives of the
// account subsystem: a salted SHA-256 digest and random salt generation.
package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
)

// SaltLength is the number of characters in a generated salt.
const SaltLength = 10

const saltAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// HashPassword returns the hex-encoded SHA-256 digest of salt+password.
// The salt is prepended. Registration, login and both password update paths
// all go through this function so the concatenation order can never diverge
// between them.
func HashPassword(salt, password string) string {
	sum := sha256.Sum256([]byte(salt + password))
	return hex.EncodeToString(sum[:])
}

// GenerateSalt returns a random alphanumeric salt of SaltLength characters.
// Uniqueness across records is probabilistic and not checked against
// existing records.
func GenerateSalt() (string, error) {
	max := big.NewInt(int64(len(saltAlphabet)))
	b := make([]byte, SaltLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate salt: %w", err)
		}
		b[i] = saltAlphabet[n.Int64()]
	}
	return string(b), nil
}
