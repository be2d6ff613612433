package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// LocalRequestID is the context local key holding the request ID.
const LocalRequestID = "request_id"

// RequestID is a Fiber middleware that honors an incoming X-Request-ID
// header or generates one, and echoes it on the response.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := strings.TrimSpace(c.Get(requestIDHeader))
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.New().String()
		}

		c.Locals(LocalRequestID, requestID)
		c.Set(requestIDHeader, requestID)

		return c.Next()
	}
}
