package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/causeway-app/causeway-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func maintenanceApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	app.Use(Maintenance(cfg))
	handler := func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) }
	app.Get("/api/health", handler)
	app.Post("/api/webhooks/stripe", handler)
	app.Get("/api/content", handler)
	return app
}

func TestMaintenance_Off(t *testing.T) {
	app := maintenanceApp(&config.Config{MaintenanceMode: false})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/content", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMaintenance_On(t *testing.T) {
	app := maintenanceApp(&config.Config{MaintenanceMode: true})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/content", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestMaintenance_SkipPaths(t *testing.T) {
	app := maintenanceApp(&config.Config{MaintenanceMode: true})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "health stays reachable for probes")

	resp, err = app.Test(httptest.NewRequest("POST", "/api/webhooks/stripe", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "payment events must not be dropped")
}
