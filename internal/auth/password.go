package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/leafguard/leafguard-be/internal/apperr"
)

// HashPassword returns a salted bcrypt hash of the plaintext password. bcrypt
// salts per call, so two hashes of the same input differ.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares a plaintext password against a stored hash. A
// mismatch returns apperr.ErrInvalidCredentials; any other failure (a
// corrupted hash, for example) is returned as-is.
func CheckPassword(password, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return apperr.ErrInvalidCredentials
		}
		return err
	}
	return nil
}
