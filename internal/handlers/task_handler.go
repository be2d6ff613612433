package handlers

import (
	"errors"
	"log"

	"tasklist/internal/apperrors"
	"tasklist/internal/middleware"
	"tasklist/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// TaskHandler handles HTTP requests for owner-scoped task CRUD.
type TaskHandler struct {
	taskService *services.TaskService
	validate    *validator.Validate
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		validate:    validator.New(),
	}
}

// RegisterProtectedRoutes registers the task routes; all of them require a
// bearer token.
func (h *TaskHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Post("/tasks", h.HandleCreateTask)
	router.Get("/tasklist/:userId", h.HandleListTasks)
	router.Put("/task/:id", h.HandleUpdateTask)
	router.Delete("/task/:id", h.HandleDeleteTask)
}

// callerID resolves the acting user's ID set by the auth middleware.
func callerID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals(middleware.LocalUserID).(uint)
	return id, ok
}

// CreateTaskRequest represents the request body for task creation. The
// title travels under the "task" key.
type CreateTaskRequest struct {
	Title       string `json:"task" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// HandleCreateTask creates a task owned by the authenticated caller.
func (h *TaskHandler) HandleCreateTask(c *fiber.Ctx) error {
	ownerID, ok := callerID(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing task create request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidBody,
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return writeValidationError(c, err)
	}

	if _, err := h.taskService.Create(req.Title, req.Description, ownerID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrTaskTitleRequired),
			errors.Is(err, apperrors.ErrDescriptionRequired):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		default:
			log.Printf("Error creating task: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": ErrMsgInternal,
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": MsgTaskCreated,
	})
}

// HandleListTasks returns the caller's tasks in creation order. Requesting
// another user's list is answered with the same not-found response as an
// unknown user.
func (h *TaskHandler) HandleListTasks(c *fiber.Ctx) error {
	ownerID, ok := callerID(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	userID, err := c.ParamsInt("userId")
	if err != nil || userID < 1 || uint(userID) != ownerID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": ErrMsgUserNotFound,
		})
	}

	tasks, err := h.taskService.ListByUser(ownerID)
	if err != nil {
		log.Printf("Error listing tasks for user %d: %v", ownerID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": ErrMsgInternal,
		})
	}
	if len(tasks) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": ErrMsgUserNotFound,
		})
	}

	return c.JSON(tasks)
}

// UpdateTaskRequest represents the request body for a partial task update.
type UpdateTaskRequest struct {
	Title       *string `json:"task"`
	Description *string `json:"description"`
	IsCompleted *bool   `json:"is_completed"`
}

// HandleUpdateTask applies a partial update to a task owned by the caller.
// A task owned by someone else gets the same 404 as a missing one.
func (h *TaskHandler) HandleUpdateTask(c *fiber.Ctx) error {
	ownerID, ok := callerID(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": ErrMsgTaskNotFound,
		})
	}

	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing task update request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidBody,
		})
	}

	fields := services.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		IsCompleted: req.IsCompleted,
	}
	if _, err := h.taskService.Update(uint(id), ownerID, fields); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": ErrMsgTaskNotFound,
			})
		case errors.Is(err, apperrors.ErrTaskTitleRequired),
			errors.Is(err, apperrors.ErrDescriptionRequired):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		default:
			log.Printf("Error updating task %d: %v", id, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": ErrMsgInternal,
			})
		}
	}

	return c.JSON(fiber.Map{
		"message": MsgTaskUpdated,
	})
}

// HandleDeleteTask removes a task owned by the caller, with the same
// not-found masking as updates.
func (h *TaskHandler) HandleDeleteTask(c *fiber.Ctx) error {
	ownerID, ok := callerID(c)
	if !ok {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": ErrMsgTaskNotFound,
		})
	}

	if err := h.taskService.Delete(uint(id), ownerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": ErrMsgTaskNotFound,
			})
		}
		log.Printf("Error deleting task %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": ErrMsgInternal,
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
