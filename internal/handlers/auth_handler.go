package handlers

import (
	"time"

	"github.com/causeway-app/causeway-backend/internal/dto"
	"github.com/causeway-app/causeway-backend/internal/identity"
	"github.com/causeway-app/causeway-backend/internal/models"
	"github.com/causeway-app/causeway-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	access *services.AccessService
}

func NewAuthHandler(access *services.AccessService) *AuthHandler {
	return &AuthHandler{access: access}
}

// Status reports the caller's access state from the store, not from stale
// token claims.
func (h *AuthHandler) Status(c *fiber.Ctx) error {
	id, err := identity.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	sub, err := h.access.GetSubscription(id.Email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch subscription status",
		})
	}

	resp := dto.AuthStatusResponse{
		HasAccess:          h.access.CheckAccess(id.Email),
		SubscriptionStatus: "none",
		Email:              id.Email,
		LastUpdated:        time.Now().UTC().Format(time.RFC3339),
	}

	if sub != nil {
		resp.ExpiresAt = sub.ExpirationDate.UTC().Format(time.RFC3339)
		resp.LastUpdated = sub.UpdatedAt.UTC().Format(time.RFC3339)
		switch {
		case !sub.Active:
			resp.SubscriptionStatus = "cancelled"
		case resp.HasAccess:
			resp.SubscriptionStatus = "active"
		default:
			resp.SubscriptionStatus = "expired"
		}
	}

	return c.JSON(resp)
}

// VerifyAdmin is informational: an authenticated non-admin gets 200 with
// isAdmin false, not a rejection.
func (h *AuthHandler) VerifyAdmin(c *fiber.Ctx) error {
	id, err := identity.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	return c.JSON(dto.VerifyAdminResponse{IsAdmin: h.access.IsAdmin(id.Email)})
}

// SetRole elevates or demotes a role. Admin gating happens in the
// middleware; a store failure surfaces as success=false, not an error.
func (h *AuthHandler) SetRole(c *fiber.Ctx) error {
	var req dto.SetRoleRequest
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
	if !models.ValidRole(req.Role) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Role must be admin or customer",
		})
	}

	return c.JSON(dto.SetRoleResponse{Success: h.access.SetRole(req.Email, req.Role)})
}
