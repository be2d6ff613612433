package services_test

import (
	"encoding/json"
	"testing"

	"tasklist/internal/apperrors"
	"tasklist/internal/repositories"
	"tasklist/internal/services"

	"github.com/stretchr/testify/assert"
)

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	events []publishedEvent
}

type publishedEvent struct {
	routingKey string
	payload    map[string]interface{}
}

func (p *recordingPublisher) Publish(routingKey string, body []byte) error {
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return err
	}
	p.events = append(p.events, publishedEvent{routingKey: routingKey, payload: payload})
	return nil
}

func TestTaskService_Create(t *testing.T) {
	repo := repositories.NewMockTaskRepository()
	publisher := &recordingPublisher{}
	taskService := services.NewTaskService(repo, publisher)

	task, err := taskService.Create("t1", "d1", 1)
	assert.NoError(t, err)
	assert.NotZero(t, task.ID)
	assert.Equal(t, uint(1), task.UserID)
	assert.False(t, task.IsCompleted)

	assert.Len(t, publisher.events, 1)
	assert.Equal(t, "task.created", publisher.events[0].routingKey)
	assert.Equal(t, "t1", publisher.events[0].payload["task"])
}

func TestTaskService_CreateValidation(t *testing.T) {
	repo := repositories.NewMockTaskRepository()
	taskService := services.NewTaskService(repo, nil)

	_, err := taskService.Create("", "d1", 1)
	assert.ErrorIs(t, err, apperrors.ErrTaskTitleRequired)

	_, err = taskService.Create("   ", "d1", 1)
	assert.ErrorIs(t, err, apperrors.ErrTaskTitleRequired)

	_, err = taskService.Create("t1", "", 1)
	assert.ErrorIs(t, err, apperrors.ErrDescriptionRequired)

	tasks, err := taskService.ListByUser(1)
	assert.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestTaskService_ListByUserScopedAndOrdered(t *testing.T) {
	repo := repositories.NewMockTaskRepository()
	taskService := services.NewTaskService(repo, nil)

	first, _ := taskService.Create("first", "d", 1)
	_, _ = taskService.Create("other user", "d", 2)
	second, _ := taskService.Create("second", "d", 1)

	tasks, err := taskService.ListByUser(1)
	assert.NoError(t, err)
	assert.Len(t, tasks, 2)
	assert.Equal(t, first.ID, tasks[0].ID)
	assert.Equal(t, second.ID, tasks[1].ID)
}

func TestTaskService_UpdateOwnershipMasking(t *testing.T) {
	repo := repositories.NewMockTaskRepository()
	taskService := services.NewTaskService(repo, nil)

	task, _ := taskService.Create("t1", "d1", 1)

	newTitle := "changed"
	// Another user's update attempt looks exactly like a missing task.
	_, err := taskService.Update(task.ID, 2, services.TaskUpdate{Title: &newTitle})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = taskService.Update(9999, 1, services.TaskUpdate{Title: &newTitle})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// The owner can update.
	updated, err := taskService.Update(task.ID, 1, services.TaskUpdate{Title: &newTitle})
	assert.NoError(t, err)
	assert.Equal(t, "changed", updated.Title)
	assert.Equal(t, "d1", updated.Description, "unspecified fields stay unchanged")
}

func TestTaskService_UpdateValidation(t *testing.T) {
	repo := repositories.NewMockTaskRepository()
	taskService := services.NewTaskService(repo, nil)

	task, _ := taskService.Create("t1", "d1", 1)

	empty := ""
	_, err := taskService.Update(task.ID, 1, services.TaskUpdate{Title: &empty})
	assert.ErrorIs(t, err, apperrors.ErrTaskTitleRequired)

	_, err = taskService.Update(task.ID, 1, services.TaskUpdate{Description: &empty})
	assert.ErrorIs(t, err, apperrors.ErrDescriptionRequired)
}

func TestTaskService_CompletionPublishesEvent(t *testing.T) {
	repo := repositories.NewMockTaskRepository()
	publisher := &recordingPublisher{}
	taskService := services.NewTaskService(repo, publisher)

	task, _ := taskService.Create("t1", "d1", 1)
	publisher.events = nil

	done := true
	_, err := taskService.Update(task.ID, 1, services.TaskUpdate{IsCompleted: &done})
	assert.NoError(t, err)
	assert.Len(t, publisher.events, 1)
	assert.Equal(t, "task.completed", publisher.events[0].routingKey)

	// Completing an already-completed task publishes nothing.
	_, err = taskService.Update(task.ID, 1, services.TaskUpdate{IsCompleted: &done})
	assert.NoError(t, err)
	assert.Len(t, publisher.events, 1)
}

func TestTaskService_DeleteOwnershipMasking(t *testing.T) {
	repo := repositories.NewMockTaskRepository()
	taskService := services.NewTaskService(repo, nil)

	task, _ := taskService.Create("t1", "d1", 1)

	assert.ErrorIs(t, taskService.Delete(task.ID, 2), apperrors.ErrNotFound)
	assert.ErrorIs(t, taskService.Delete(9999, 1), apperrors.ErrNotFound)

	assert.NoError(t, taskService.Delete(task.ID, 1))

	tasks, err := taskService.ListByUser(1)
	assert.NoError(t, err)
	assert.Empty(t, tasks)
}
