package services

import (
	"encoding/json"
	"log"

	"tasklist/internal/apperrors"
	"tasklist/internal/models"
	"tasklist/internal/repositories"
)

// EventPublisher publishes task lifecycle events. A nil publisher disables
// publication without affecting request handling.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// TaskUpdate carries the fields of a partial task update. Nil fields are
// left unchanged.
type TaskUpdate struct {
	Title       *string
	Description *string
	IsCompleted *bool
}

// TaskService handles business logic for owner-scoped task CRUD.
type TaskService struct {
	taskRepo repositories.TaskRepository
	events   EventPublisher
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repositories.TaskRepository, events EventPublisher) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		events:   events,
	}
}

// Create validates and saves a new task for the given owner, then publishes
// a task.created event.
func (s *TaskService) Create(title, description string, userID uint) (*models.Task, error) {
	if err := models.ValidateTitle(title); err != nil {
		return nil, err
	}
	if err := models.ValidateDescription(description); err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       title,
		Description: description,
		UserID:      userID,
	}
	if err := s.taskRepo.Create(task); err != nil {
		return nil, err
	}

	s.publish("task.created", task)
	return task, nil
}

// ListByUser returns the tasks owned by a user, in creation order.
func (s *TaskService) ListByUser(userID uint) ([]models.Task, error) {
	return s.taskRepo.GetAllByUserID(userID)
}

// Update applies a partial update to a task owned by ownerID. A task owned
// by someone else is reported as not found, the same as a missing task, so
// the existence of other users' tasks is never revealed.
func (s *TaskService) Update(id, ownerID uint, fields TaskUpdate) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if task.UserID != ownerID {
		return nil, apperrors.ErrNotFound
	}

	if fields.Title != nil {
		if err := models.ValidateTitle(*fields.Title); err != nil {
			return nil, err
		}
		task.Title = *fields.Title
	}
	if fields.Description != nil {
		if err := models.ValidateDescription(*fields.Description); err != nil {
			return nil, err
		}
		task.Description = *fields.Description
	}

	completedNow := false
	if fields.IsCompleted != nil {
		completedNow = *fields.IsCompleted && !task.IsCompleted
		task.IsCompleted = *fields.IsCompleted
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, err
	}

	if completedNow {
		s.publish("task.completed", task)
	}
	return task, nil
}

// Delete removes a task owned by ownerID, with the same not-found masking
// as Update.
func (s *TaskService) Delete(id, ownerID uint) error {
	task, err := s.taskRepo.GetByID(id)
	if err != nil {
		return err
	}
	if task.UserID != ownerID {
		return apperrors.ErrNotFound
	}
	return s.taskRepo.Delete(id)
}

// publish sends a lifecycle event if a publisher is configured. Publish
// failures are logged and never fail the request.
func (s *TaskService) publish(routingKey string, task *models.Task) {
	if s.events == nil {
		return
	}

	body, err := json.Marshal(map[string]interface{}{
		"task_id": task.ID,
		"user_id": task.UserID,
		"task":    task.Title,
	})
	if err != nil {
		log.Printf("Failed to marshal %s event for task %d: %v", routingKey, task.ID, err)
		return
	}
	if err := s.events.Publish(routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event for task %d: %v", routingKey, task.ID, err)
	}
}
