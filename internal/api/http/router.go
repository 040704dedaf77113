package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/licitation-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Auth        *handlers.AuthHandler
	Licitations *handlers.LicitationsHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/hello", cfg.Health.Hello)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/me", cfg.Auth.Me)
	authGroup.Get("/users", cfg.Auth.ListUsers)
	authGroup.Patch("/users/:id/active", cfg.Auth.SetUserActive)

	licitations := api.Group("/licitations")
	licitations.Get("/", cfg.Licitations.List)
	licitations.Get("/:id", cfg.Licitations.Get)
	licitations.Post("/", cfg.Licitations.Create)
	licitations.Put("/:id", cfg.Licitations.Update)
	licitations.Delete("/:id", cfg.Licitations.Delete)
}
