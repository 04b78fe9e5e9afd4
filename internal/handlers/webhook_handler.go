package handlers

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/causeway-app/causeway-backend/internal/config"
	"github.com/causeway-app/causeway-backend/internal/dto"
	"github.com/causeway-app/causeway-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type WebhookHandler struct {
	subscriptions *services.SubscriptionService
	cfg           *config.Config
}

func NewWebhookHandler(subscriptions *services.SubscriptionService, cfg *config.Config) *WebhookHandler {
	return &WebhookHandler{subscriptions: subscriptions, cfg: cfg}
}

// HandleStripe verifies the event signature against the raw body before
// touching any state.
func (h *WebhookHandler) HandleStripe(c *fiber.Ctx) error {
	if h.cfg.StripeWebhookSecret == "" {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Webhooks not configured",
		})
	}

	payload := c.Body()
	sigHeader := c.Get("Stripe-Signature")
	if err := services.VerifyWebhookSignature(payload, sigHeader, h.cfg.StripeWebhookSecret, time.Now()); err != nil {
		slog.Warn("webhook signature rejected", "error", err)
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid signature",
		})
	}

	var event dto.StripeEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid webhook payload",
		})
	}

	if err := h.subscriptions.HandleWebhookEvent(&event); err != nil {
		slog.Error("webhook processing failed", "event_type", event.Type, "event_id", event.ID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to process webhook event",
		})
	}

	slog.Info("webhook processed", "event_type", event.Type, "event_id", event.ID)
	return c.JSON(fiber.Map{"received": true})
}
