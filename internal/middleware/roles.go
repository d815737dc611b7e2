package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ridewise/ridewise-backend/internal/auth"
	"github.com/ridewise/ridewise-backend/internal/dto"
)

// RoleRequired rejects authenticated callers whose role doesn't match.
// Runs after JWTProtected; the session lands in locals for handlers.
func RoleRequired(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := auth.FromContext(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		if sess.Role != role {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Forbidden",
			})
		}
		return c.Next()
	}
}
