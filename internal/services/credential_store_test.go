package services_test

import (
	"testing"

	"tasklist/internal/apperrors"
	"tasklist/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestCredentialStore_HashAndVerify(t *testing.T) {
	creds := services.NewCredentialStore()

	hash, err := creds.Hash("password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, creds.Verify("password123", hash))
	assert.False(t, creds.Verify("wrongpassword", hash))
	assert.False(t, creds.Verify("", hash))
}

func TestCredentialStore_HashIsSalted(t *testing.T) {
	creds := services.NewCredentialStore()

	first, err := creds.Hash("password123")
	assert.NoError(t, err)
	second, err := creds.Hash("password123")
	assert.NoError(t, err)

	// Two hashes of the same password differ, but both verify.
	assert.NotEqual(t, first, second)
	assert.True(t, creds.Verify("password123", first))
	assert.True(t, creds.Verify("password123", second))
}

func TestCredentialStore_EmptyPassword(t *testing.T) {
	creds := services.NewCredentialStore()

	_, err := creds.Hash("")
	assert.ErrorIs(t, err, apperrors.ErrEmptyPassword)
}
