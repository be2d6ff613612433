package handlers

import (
	"errors"
	"log"

	"tasklist/internal/apperrors"
	"tasklist/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for user profiles.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// RegisterRoutes registers the public user routes.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/user/:id", h.HandleGetUser)
}

// RegisterProtectedRoutes registers routes that require a bearer token.
func (h *UserHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Put("/userlist/:id", h.HandleUpdateUser)
	router.Delete("/userlist/:id", h.HandleDisableUser)
}

// HandleGetUser returns a user's public profile. The password hash is never
// serialized.
func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": ErrMsgUserNotFound,
		})
	}

	user, err := h.userService.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": ErrMsgUserNotFound,
			})
		}
		log.Printf("Error getting user %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": ErrMsgInternal,
		})
	}

	return c.JSON(user)
}

// UpdateUserRequest represents the request body for a partial user update.
// Only the username is writable over HTTP; email changes stay a service-level
// operation.
type UpdateUserRequest struct {
	Username *string `json:"username"`
}

// HandleUpdateUser applies a partial update to a user profile.
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": ErrMsgUserNotFound,
		})
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing user update request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidBody,
		})
	}

	fields := services.UserUpdate{
		Username: req.Username,
	}
	if _, err := h.userService.Update(uint(id), fields); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": ErrMsgUserNotFound,
			})
		case errors.Is(err, apperrors.ErrUsernameRequired):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		default:
			log.Printf("Error updating user %d: %v", id, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": ErrMsgInternal,
			})
		}
	}

	return c.JSON(fiber.Map{
		"message": MsgUserUpdated,
	})
}

// HandleDisableUser disables the account rather than hard-deleting it. The
// row and its tasks survive; the user can reactivate by logging in again.
func (h *UserHandler) HandleDisableUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": ErrMsgUserNotFound,
		})
	}

	if err := h.userService.Disable(uint(id)); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": ErrMsgUserNotFound,
			})
		}
		log.Printf("Error disabling user %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": ErrMsgInternal,
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
