package services

import (
	"fmt"

	"tasklist/internal/apperrors"
	"tasklist/internal/models"
	"tasklist/internal/repositories"
)

// UserUpdate carries the fields of a partial user update. Nil fields are
// left unchanged.
type UserUpdate struct {
	Username *string
	Email    *string
}

// UserService handles business logic for user profiles.
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// GetByID retrieves a user profile by ID.
func (s *UserService) GetByID(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// Update applies a partial update, re-validating any changed username or
// email against the same rules as registration.
func (s *UserService) Update(id uint, fields UserUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if fields.Username != nil {
		if err := models.ValidateUsername(*fields.Username); err != nil {
			return nil, err
		}
		user.Username = *fields.Username
	}

	if fields.Email != nil {
		normalized := models.NormalizeEmail(*fields.Email)
		if err := models.ValidateEmail(normalized); err != nil {
			return nil, err
		}
		taken, err := s.userRepo.EmailExists(normalized, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing email: %w", err)
		}
		if taken {
			return nil, apperrors.ErrEmailTaken
		}
		user.Email = normalized
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Disable marks the account as disabled. Already-issued tokens stay valid
// until expiry; there is no revocation list.
func (s *UserService) Disable(id uint) error {
	return s.userRepo.SetDisabled(id, true)
}

// Delete removes the user and, by cascade, every task they own.
func (s *UserService) Delete(id uint) error {
	return s.userRepo.Delete(id)
}
