package handlers

import (
	"log/slog"

	"github.com/causeway-app/causeway-backend/internal/config"
	"github.com/causeway-app/causeway-backend/internal/dto"
	"github.com/causeway-app/causeway-backend/internal/identity"
	"github.com/causeway-app/causeway-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type CheckoutHandler struct {
	stripe *services.StripeClient
	cfg    *config.Config
}

func NewCheckoutHandler(stripe *services.StripeClient, cfg *config.Config) *CheckoutHandler {
	return &CheckoutHandler{stripe: stripe, cfg: cfg}
}

// Create passes a one-time-payment Checkout Session request through to
// Stripe for the authenticated caller.
func (h *CheckoutHandler) Create(c *fiber.Ctx) error {
	id, err := identity.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.PriceID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "priceId is required",
		})
	}

	successURL := req.SuccessURL
	if successURL == "" {
		successURL = h.cfg.CheckoutSuccessURL
	}
	cancelURL := req.CancelURL
	if cancelURL == "" {
		cancelURL = h.cfg.CheckoutCancelURL
	}

	session, err := h.stripe.CreateCheckoutSession(req.PriceID, id.Email, successURL, cancelURL)
	if err != nil {
		slog.Error("checkout session creation failed", "email", id.Email, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create checkout session",
		})
	}

	return c.JSON(dto.CheckoutResponse{SessionID: session.ID, URL: session.URL})
}
