package handlers

import (
	"github.com/causeway-app/causeway-backend/internal/dto"
	"github.com/causeway-app/causeway-backend/internal/identity"
	"github.com/causeway-app/causeway-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type SubscriptionHandler struct {
	access *services.AccessService
}

func NewSubscriptionHandler(access *services.AccessService) *SubscriptionHandler {
	return &SubscriptionHandler{access: access}
}

// CheckAccess serves from the access cache when fresh. A valid token
// without a subscription is 200 with hasAccess false, not a rejection.
func (h *SubscriptionHandler) CheckAccess(c *fiber.Ctx) error {
	id, err := identity.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	return c.JSON(dto.CheckAccessResponse{HasAccess: h.access.CheckAccess(id.Email)})
}

func (h *SubscriptionHandler) Get(c *fiber.Ctx) error {
	id, err := identity.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	sub, err := h.access.GetSubscription(id.Email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch subscription",
		})
	}
	if sub == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "No subscription found",
		})
	}

	return c.JSON(dto.SubscriptionResponse{Subscription: sub})
}
