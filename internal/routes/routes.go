package routes

import (
	"time"

	"github.com/causeway-app/causeway-backend/internal/config"
	"github.com/causeway-app/causeway-backend/internal/handlers"
	"github.com/causeway-app/causeway-backend/internal/middleware"
	"github.com/causeway-app/causeway-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	access *services.AccessService,
	authHandler *handlers.AuthHandler,
	adminHandler *handlers.AdminHandler,
	subscriptionHandler *handlers.SubscriptionHandler,
	contentHandler *handlers.ContentHandler,
	checkoutHandler *handlers.CheckoutHandler,
	webhookHandler *handlers.WebhookHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter, per IP
	api.Use(limiter.New(limiter.Config{
		Max:               cfg.GeneralRateLimit,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health (reachable in maintenance mode)
	api.Get("/health", healthHandler.Check)

	// Auth routes get a stricter limit
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               cfg.AuthRateLimit,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Get("/status", middleware.Protected(cfg), authHandler.Status)
	auth.Get("/verify-admin", middleware.Protected(cfg), authHandler.VerifyAdmin)
	auth.Post("/set-role", middleware.Protected(cfg), middleware.AdminRequired(access, cfg), authHandler.SetRole)

	// Subscription + checkout (JWT required)
	api.Get("/subscription/check-access", middleware.Protected(cfg), subscriptionHandler.CheckAccess)
	api.Get("/subscription/get", middleware.Protected(cfg), subscriptionHandler.Get)
	api.Post("/checkout", middleware.Protected(cfg), checkoutHandler.Create)

	// Subscription-gated content
	api.Get("/content", middleware.Protected(cfg), contentHandler.List)
	api.Get("/content/:key", middleware.Protected(cfg), contentHandler.Get)

	// Admin dashboard surface - guards attached per route so the JWT
	// middleware cannot swallow the bootstrap endpoint below
	adminGuard := middleware.AdminRequired(access, cfg)
	api.Put("/admin/content/:key", middleware.Protected(cfg), adminGuard, contentHandler.Upsert)
	api.Delete("/admin/content/:key", middleware.Protected(cfg), adminGuard, contentHandler.Delete)
	api.Post("/admin/reset-claims", middleware.Protected(cfg), adminGuard, adminHandler.ResetClaims)

	// Bootstrap sits outside the JWT path: gated only by X-Admin-Token
	api.Post("/admin/bootstrap", adminHandler.Bootstrap)

	// Webhooks authenticate by signature, not JWT
	api.Post("/webhooks/stripe", webhookHandler.HandleStripe)
}
