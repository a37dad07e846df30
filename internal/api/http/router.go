package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-service/internal/api/http/handlers"
	"github.com/spec-kit/user-service/internal/auth"
	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/pkg/apperrors"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Health.Root)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	users := app.Group("/users")
	users.Post("/", cfg.Users.Create)
	users.Post("/login", cfg.Users.Login)

	protected := users.Group("", cfg.AuthMiddleware.Protect)
	protected.Get("/", auth.RestrictTo(domain.RoleAdmin), cfg.Users.List)
	protected.Get("/:uuid", cfg.Users.Get)
	protected.Put("/:uuid", cfg.Users.Update)
	protected.Delete("/:uuid", auth.RestrictTo(domain.RoleAdmin), cfg.Users.Delete)
	protected.Post("/:uuid/restore", auth.RestrictTo(domain.RoleAdmin), cfg.Users.Restore)

	// unmatched routes flow through the terminal error translator
	app.Use(func(c *fiber.Ctx) error {
		return apperrors.NewNotFound(fmt.Sprintf("Não foi possível encontrar %s neste servidor!", c.OriginalURL()))
	})
}
