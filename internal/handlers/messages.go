package handlers

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// User-facing response messages. The HTTP boundary owns the wording;
// services and repositories only report tagged errors.
const (
	MsgUserCreated = "User saved"
	MsgUserUpdated = "User updated"
	MsgTaskCreated = "Task saved successfully"
	MsgTaskUpdated = "Task updated successfully"

	ErrMsgWrongCredentials = "Wrong email or password"
	ErrMsgUserNotFound     = "User not found"
	ErrMsgTaskNotFound     = "Task not found"
	ErrMsgInvalidBody      = "Invalid request body"
	ErrMsgInternal         = "Error processing the request"
)

// writeValidationError renders a field-by-field 400 response for request
// struct validation failures.
func writeValidationError(c *fiber.Ctx, err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidBody,
		})
	}

	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
