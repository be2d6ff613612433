package repositories

import (
	"sync"

	"tasklist/internal/apperrors"
	"tasklist/internal/models"
)

// MockUserRepository is an in-memory implementation of UserRepository.
type MockUserRepository struct {
	users  map[uint]models.User
	nextID uint
	mu     sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:  make(map[uint]models.User),
		nextID: 1,
	}
}

// Create adds a new user, assigning the next sequential ID.
func (r *MockUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return apperrors.ErrEmailTaken
		}
	}
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = *user
	return nil
}

// GetByID returns a user by their ID.
func (r *MockUserRepository) GetByID(id uint) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &user, nil
}

// GetByEmail returns a user by their normalized email.
func (r *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	normalized := models.NormalizeEmail(email)
	for _, u := range r.users {
		if u.Email == normalized {
			user := u
			return &user, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

// Update modifies an existing user.
func (r *MockUserRepository) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.users[user.ID] = *user
	return nil
}

// SetDisabled toggles the disabled flag on a user.
func (r *MockUserRepository) SetDisabled(id uint, disabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	user.IsDisabled = disabled
	r.users[id] = user
	return nil
}

// Delete removes a user by their ID.
func (r *MockUserRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// EmailExists reports whether another user already holds the given email.
func (r *MockUserRepository) EmailExists(email string, excludeID uint) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	normalized := models.NormalizeEmail(email)
	for _, u := range r.users {
		if u.ID != excludeID && u.Email == normalized {
			return true, nil
		}
	}
	return false, nil
}
