// Package security implements password hashing and access tokens.
package security

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultIterations is the PBKDF2 work factor for new hashes.
	DefaultIterations = 180000

	saltLength = 16
	keyLength  = 32
)

// PasswordHasher derives salted PBKDF2-SHA256 hashes encoded as
// "<iterations>$<salt hex>$<hash hex>".
type PasswordHasher struct {
	Iterations int
}

// NewPasswordHasher returns a hasher using DefaultIterations.
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{Iterations: DefaultIterations}
}

// Hash returns an encoded hash of password with a fresh random salt.
func (h *PasswordHasher) Hash(password string) (string, error) {
	iterations := h.Iterations
	if iterations <= 0 {
		iterations = DefaultIterations
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	key := pbkdf2.Key([]byte(password), salt, iterations, keyLength, sha256.New)
	return fmt.Sprintf("%d$%s$%s", iterations, hex.EncodeToString(salt), hex.EncodeToString(key)), nil
}

// Verify reports whether password matches encoded. Malformed input never
// matches. The iteration count stored in encoded is used, so hashes created
// with a different work factor still verify.
func (h *PasswordHasher) Verify(password, encoded string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 3 {
		return false
	}

	iterations, err := strconv.Atoi(parts[0])
	if err != nil || iterations <= 0 {
		return false
	}
	salt, err := hex.DecodeString(parts[1])
	if err != nil {
		return false
	}
	want, err := hex.DecodeString(parts[2])
	if err != nil || len(want) == 0 {
		return false
	}

	got := pbkdf2.Key([]byte(password), salt, iterations, len(want), sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}
