package handlers

import (
	"crypto/subtle"
	"log/slog"

	"github.com/causeway-app/causeway-backend/internal/config"
	"github.com/causeway-app/causeway-backend/internal/dto"
	"github.com/causeway-app/causeway-backend/internal/models"
	"github.com/causeway-app/causeway-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	access *services.AccessService
	cfg    *config.Config
}

func NewAdminHandler(access *services.AccessService, cfg *config.Config) *AdminHandler {
	return &AdminHandler{access: access, cfg: cfg}
}

// Bootstrap grants the first admin role. It sits outside the JWT path and
// is gated only by the deployment bootstrap token, which breaks the
// "creating an admin requires an admin" circle without touching the store
// by hand. The endpoint does not exist when no token is configured.
func (h *AdminHandler) Bootstrap(c *fiber.Ctx) error {
	if h.cfg.AdminBootstrapToken == "" {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Not found",
		})
	}

	header := c.Get("X-Admin-Token")
	if subtle.ConstantTimeCompare([]byte(header), []byte(h.cfg.AdminBootstrapToken)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.BootstrapRequest
	if err := c.BodyParser(&req); err != nil || req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Email is required",
		})
	}

	ok := h.access.SetRole(req.Email, models.RoleAdmin)
	if ok {
		slog.Info("admin bootstrapped", "email", req.Email)
	}
	return c.JSON(dto.SetRoleResponse{Success: ok})
}

// ResetClaims recomputes a user's access from the store and drops the
// cached entry: the out-of-band claims update after manual fixes.
func (h *AdminHandler) ResetClaims(c *fiber.Ctx) error {
	var req dto.ResetClaimsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Email is required",
		})
	}

	hasAccess := h.access.RefreshAccess(req.Email)
	slog.Info("claims reset", "email", req.Email, "has_access", hasAccess)

	return c.JSON(dto.ResetClaimsResponse{Success: true, HasAccess: hasAccess})
}
