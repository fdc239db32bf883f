package middleware

import (
	"strings"

	"foodshare-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CORS allows the configured frontend origin plus localhost during development.
// Credentials are not used; the API trusts caller-supplied identifiers instead.
func CORS(allowedOrigin string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		origin := c.Get("Origin")
		// No origin (same-origin request or curl): allow.
		if origin == "" {
			return c.Next()
		}
		if origin == allowedOrigin || isLocalhost(origin) {
			c.Set("Access-Control-Allow-Origin", origin)
			c.Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
			c.Set("Access-Control-Allow-Headers", "Content-Type")
			if c.Method() == fiber.MethodOptions {
				return c.SendStatus(fiber.StatusNoContent)
			}
			return c.Next()
		}
		return response.Message(c, fiber.StatusForbidden, "Not allowed by CORS")
	}
}

func isLocalhost(origin string) bool {
	return strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "http://127.0.0.1:")
}
