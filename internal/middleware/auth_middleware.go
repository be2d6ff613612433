package middleware

import (
	"log"
	"strings"

	"tasklist/internal/repositories"
	"tasklist/internal/services"

	"github.com/gofiber/fiber/v2"
)

// Context local keys set by AuthRequired for downstream handlers.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
)

// AuthRequired is a Fiber middleware that checks for a valid bearer token
// and resolves the acting user. The user's ID and email are stored in the
// request locals for subsequent handlers.
func AuthRequired(authService *services.AuthService, userRepo repositories.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization header format must be 'Bearer <token>'",
			})
		}

		email, err := authService.VerifyToken(parts[1])
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		user, err := userRepo.GetByEmail(email)
		if err != nil {
			log.Printf("Token subject %s could not be resolved: %v", email, err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalEmail, user.Email)

		return c.Next()
	}
}
