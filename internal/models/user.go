package models

import (
	"regexp"
	"strings"
	"time"

	"tasklist/internal/apperrors"
)

// User represents an account that owns tasks.
type User struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Username   string    `json:"username" gorm:"type:varchar(50);not null" validate:"required"`
	Email      string    `json:"email" gorm:"uniqueIndex;type:varchar(50);not null" validate:"required,email"`
	Password   string    `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash, never serialized
	IsDisabled bool      `json:"is_disabled" gorm:"default:false"`
	Tasks      []Task    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// NormalizeEmail lowercases an email address so uniqueness checks and lookups
// are case-insensitive against the stored value.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks the address against the email pattern.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return apperrors.ErrInvalidEmail
	}
	return nil
}

// ValidateUsername rejects empty or blank usernames.
func ValidateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return apperrors.ErrUsernameRequired
	}
	return nil
}
