package repositories

import "tasklist/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	SetDisabled(id uint, disabled bool) error
	Delete(id uint) error
	EmailExists(email string, excludeID uint) (bool, error)
}
