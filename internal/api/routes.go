package api

import (
	"github.com/bilgisen/resourcehub/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

// RouteConfig carries the secrets guarding the admin and webhook routes.
type RouteConfig struct {
	AdminAPIKey   string
	WebhookSecret string
}

// SetupRoutes configures all the routes for the application
func SetupRoutes(app *fiber.App, h *Handlers, cfg RouteConfig) {
	api := app.Group("/api/v1")

	api.Get("/health", h.HealthCheck)

	resources := api.Group("/resources")
	{
		resources.Get("", middleware.ValidateQuery[ListQuery](), h.ListResources)
		resources.Get("/:slug", h.GetResource)
		resources.Get("/:slug/related", middleware.ValidateQuery[RelatedQuery](), h.GetRelated)
	}

	admin := api.Group("/admin", middleware.AdminOnly(cfg.AdminAPIKey))
	{
		admin.Post("/preview", h.PreviewResource)
		admin.Delete("/cache", h.ClearCache)
	}

	webhooks := api.Group("/webhooks")
	{
		webhooks.Post("/cms", middleware.NewAuth(middleware.AuthConfig{
			Validator:  middleware.KeyValidator(cfg.WebhookSecret),
			Header:     "X-Webhook-Secret",
			ContextKey: "webhookSecret",
		}), h.CMSWebhook)
	}

	// 404 Handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Endpoint not found",
		})
	})
}
