package repositories

import (
	"sort"
	"sync"

	"tasklist/internal/apperrors"
	"tasklist/internal/models"
)

// MockTaskRepository is an in-memory implementation of TaskRepository.
type MockTaskRepository struct {
	tasks  map[uint]models.Task
	nextID uint
	mu     sync.RWMutex
}

// NewMockTaskRepository creates a new instance of MockTaskRepository.
func NewMockTaskRepository() *MockTaskRepository {
	return &MockTaskRepository{
		tasks:  make(map[uint]models.Task),
		nextID: 1,
	}
}

// Create adds a new task, assigning the next sequential ID.
func (r *MockTaskRepository) Create(task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task.ID = r.nextID
	r.nextID++
	r.tasks[task.ID] = *task
	return nil
}

// GetByID returns a task by its ID.
func (r *MockTaskRepository) GetByID(id uint) (*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &task, nil
}

// GetAllByUserID returns the tasks owned by a user, in creation order.
func (r *MockTaskRepository) GetAllByUserID(userID uint) ([]models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	taskList := make([]models.Task, 0)
	for _, t := range r.tasks {
		if t.UserID == userID {
			taskList = append(taskList, t)
		}
	}
	sort.Slice(taskList, func(i, j int) bool { return taskList[i].ID < taskList[j].ID })
	return taskList, nil
}

// Update modifies an existing task.
func (r *MockTaskRepository) Update(task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[task.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.tasks[task.ID] = *task
	return nil
}

// Delete removes a task by its ID.
func (r *MockTaskRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}
