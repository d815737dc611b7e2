package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/ridewise/ridewise-backend/internal/dto"
)

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}

// internalError logs the real cause and hides it from the client.
func internalError(c *fiber.Ctx, action string, err error) error {
	slog.Error("request failed",
		"action", action,
		"error", err.Error(),
		"request_id", requestID(c),
		"path", c.Path(),
	)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}

// pageParams reads page/limit query params with sane bounds.
func pageParams(c *fiber.Ctx, defaultLimit int) (int, int) {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", defaultLimit)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = defaultLimit
	}
	return page, limit
}
