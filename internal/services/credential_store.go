package services

import (
	"fmt"

	"tasklist/internal/apperrors"

	"golang.org/x/crypto/bcrypt"
)

// CredentialStore owns password hashing and verification. Raw passwords
// never leave this type in any stored or returned form.
type CredentialStore struct {
	cost int
}

// NewCredentialStore creates a CredentialStore using the default bcrypt cost.
func NewCredentialStore() *CredentialStore {
	return &CredentialStore{
		cost: bcrypt.DefaultCost,
	}
}

// Hash produces a salted bcrypt hash of the password.
func (s *CredentialStore) Hash(password string) (string, error) {
	if password == "" {
		return "", apperrors.ErrEmptyPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether the password matches the stored hash.
func (s *CredentialStore) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
