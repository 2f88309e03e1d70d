package auth

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 10

// PasswordHasher hashes and verifies user passwords with bcrypt.
// Each call to Hash salts independently, so equal inputs produce
// distinct digests.
type PasswordHasher struct{}

// NewPasswordHasher creates a password hasher.
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{}
}

// Hash produces a salted bcrypt digest of the plaintext password.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches the stored digest.
// A malformed digest is treated as a mismatch, never an error.
func (h *PasswordHasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
