package http

import (
	"github.com/gofiber/fiber/v2"
)

// NewServer builds the fiber application with global middleware and routes.
func NewServer(appName string, middleware MiddlewareConfig, routes RouteConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               appName,
		DisableStartupMessage: true,
	})
	RegisterMiddlewares(app, middleware)
	RegisterRoutes(app, routes)
	return app
}
