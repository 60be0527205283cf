package hash

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// bcrypt ignores bytes past 72, so longer passwords are rejected outright
// rather than silently truncated.
const maxPasswordLength = 72

var ErrPasswordTooLong = errors.New("password must be at most 72 characters")

// Hash derives a salted bcrypt digest from a plaintext password. Each call
// uses a fresh random salt, so hashing the same password twice yields
// different digests.
func Hash(password string) (string, error) {
	if len(password) < 8 {
		return "", fmt.Errorf("password must be at least 8 characters")
	}
	if len(password) > maxPasswordLength {
		return "", ErrPasswordTooLong
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hashedBytes), nil
}

// Compare checks a plaintext password against a stored digest. The comparison
// inside bcrypt is constant-time.
func Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
