package middleware

import (
	"strings"

	"github.com/causeway-app/causeway-backend/internal/config"
	"github.com/causeway-app/causeway-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// Paths that stay reachable during maintenance: health for probes,
// webhooks so payment events are not lost.
var maintenanceSkipPaths = []string{
	"/api/health",
	"/api/webhooks/",
}

// Maintenance answers 503 on every API route while maintenance mode is on.
func Maintenance(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !cfg.MaintenanceMode {
			return c.Next()
		}

		path := c.Path()
		for _, skip := range maintenanceSkipPaths {
			if strings.HasPrefix(path, skip) {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "Service is under maintenance",
		})
	}
}
