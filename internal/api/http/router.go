package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/planner-service/internal/api/http/handlers"
	"github.com/spec-kit/planner-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tasks          *handlers.TasksHandler
	Import         *handlers.ImportHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/jwt/login", cfg.Auth.Login)

	tasks := app.Group("/tasks", cfg.AuthMiddleware.Handle)
	tasks.Post("/", cfg.Tasks.Create)
	tasks.Get("/", cfg.Tasks.List)
	tasks.Get("/:id", cfg.Tasks.Get)
	tasks.Patch("/:id", cfg.Tasks.Update)
	tasks.Delete("/:id", cfg.Tasks.Delete)

	importGroup := app.Group("/import", cfg.AuthMiddleware.Handle)
	importGroup.Post("/nager", cfg.Import.Nager)
}
