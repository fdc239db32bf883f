package response

import (
	"github.com/gofiber/fiber/v2"
)

// Message sends {"message": ...} with the given status code. Used for every
// non-5xx error and for bare acknowledgements.
func Message(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{"message": message})
}

// ServerError sends 500 {"message": ..., "error": ...}. The underlying error
// text is exposed on purpose; this is an internal/admin tool, not a hardened
// public service.
func ServerError(c *fiber.Ctx, message string, err error) error {
	body := fiber.Map{"message": message}
	if err != nil {
		body["error"] = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(body)
}
