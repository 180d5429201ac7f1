package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/dinhviettung/citizen-registry/internal/api/http/handlers"
	"github.com/dinhviettung/citizen-registry/internal/auth"
	"github.com/dinhviettung/citizen-registry/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health       *handlers.HealthHandler
	Auth         *handlers.AuthHandler
	Citizens     *handlers.CitizensHandler
	Gate         *auth.Gate
	LoginLimiter fiber.Handler
	Metrics      *observability.Metrics
}

// RegisterRoutes wires HTTP routes. Every /api/citizens route sits behind the gate.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	api := app.Group("/api")
	api.Get("/health", cfg.Health.Health)

	loginLimiter := cfg.LoginLimiter
	if loginLimiter == nil {
		loginLimiter = func(c *fiber.Ctx) error { return c.Next() }
	}
	api.Post("/login", loginLimiter, cfg.Auth.Login)

	citizens := api.Group("/citizens", cfg.Gate.Handle)
	citizens.Post("/", cfg.Citizens.Add)
	citizens.Get("/:nationalId", cfg.Citizens.Search)
	citizens.Delete("/:nationalId", cfg.Citizens.Delete)
}
