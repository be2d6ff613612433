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

// AuthHandler handles HTTP requests for registration and authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the public authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/register", h.HandleRegister)
	router.Post("/login", h.HandleLogin)
}

// RegisterProtectedRoutes registers routes that require a bearer token.
func (h *AuthHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Post("/refresh", h.HandleRefresh)
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidBody,
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return writeValidationError(c, err)
	}

	if _, err := h.authService.Register(req.Username, req.Email, req.Password); err != nil {
		log.Printf("Error registering user: %v", err)
		switch {
		case errors.Is(err, apperrors.ErrEmailTaken),
			errors.Is(err, apperrors.ErrInvalidEmail),
			errors.Is(err, apperrors.ErrUsernameRequired),
			errors.Is(err, apperrors.ErrEmptyPassword):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": ErrMsgInternal,
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": MsgUserCreated,
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin authenticates a user and returns a fresh access token along
// with their identity.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidBody,
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return writeValidationError(c, err)
	}

	user, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrWrongCredentials) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": ErrMsgWrongCredentials,
			})
		}
		log.Printf("Error during login for %s: %v", req.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": ErrMsgInternal,
		})
	}

	return c.JSON(fiber.Map{
		"token":    token,
		"user_id":  user.ID,
		"email":    user.Email,
		"username": user.Username,
	})
}

// HandleRefresh issues a long-lived refresh token for the authenticated
// caller.
func (h *AuthHandler) HandleRefresh(c *fiber.Ctx) error {
	email, ok := c.Locals(middleware.LocalEmail).(string)
	if !ok || email == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or expired token",
		})
	}

	token, err := h.authService.IssueRefreshToken(email)
	if err != nil {
		log.Printf("Error issuing refresh token for %s: %v", email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": ErrMsgInternal,
		})
	}

	return c.JSON(fiber.Map{
		"token": token,
	})
}
