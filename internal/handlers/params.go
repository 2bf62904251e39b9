package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jozemario/todos-backend/internal/config"
)

// pageParams reads skip/limit query parameters with configured defaults.
// Bounds clamping happens in the repository layer.
func pageParams(c *fiber.Ctx, cfg *config.Config) (skip, limit int) {
	skip = c.QueryInt("skip", cfg.DefaultSkip)
	limit = c.QueryInt("limit", cfg.DefaultLimit)
	return skip, limit
}
