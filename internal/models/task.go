package models

import (
	"strings"
	"time"

	"tasklist/internal/apperrors"
)

// Task represents a single to-do item owned by a user.
// The title is serialized as "task" to match the public API contract.
type Task struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"task" gorm:"column:task;type:varchar(100);not null" validate:"required"`
	Description string    `json:"description" gorm:"type:varchar(500);not null" validate:"required"`
	IsCompleted bool      `json:"is_completed" gorm:"default:false"`
	UserID      uint      `json:"user_id" gorm:"index;not null"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// ValidateTitle rejects empty or blank task titles.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return apperrors.ErrTaskTitleRequired
	}
	return nil
}

// ValidateDescription rejects empty or blank descriptions. The description
// is required just like the title.
func ValidateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return apperrors.ErrDescriptionRequired
	}
	return nil
}
