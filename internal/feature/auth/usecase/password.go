package usecase

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when the user does not exist, so that login
// takes the same time for unknown emails and wrong passwords.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// maxPasswordBytes is the bcrypt input limit. Longer passwords are truncated,
// so only their first 72 bytes are significant.
const maxPasswordBytes = 72

func passwordBytes(raw string) []byte {
	b := []byte(raw)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

// HashPassword returns the salted bcrypt hash of raw.
func HashPassword(raw string) (string, error) {
	if raw == "" {
		return "", errors.New("password must not be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword(passwordBytes(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// VerifyPassword reports whether raw matches the stored bcrypt hash.
func VerifyPassword(raw, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), passwordBytes(raw)) == nil
}
