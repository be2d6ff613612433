package repositories

import "tasklist/internal/models"

// TaskRepository defines the interface for task data access.
type TaskRepository interface {
	Create(task *models.Task) error
	GetByID(id uint) (*models.Task, error)
	GetAllByUserID(userID uint) ([]models.Task, error)
	Update(task *models.Task) error
	Delete(id uint) error
}
