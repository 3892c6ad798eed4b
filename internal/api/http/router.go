package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portfolio-service/internal/api/http/handlers"
	"github.com/spec-kit/portfolio-service/internal/auth"
	"github.com/spec-kit/portfolio-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health        *handlers.HealthHandler
	Auth          *handlers.AuthHandler
	Users         *handlers.UsersHandler
	Projects      *handlers.ProjectsHandler
	Services      *handlers.OfferingsHandler
	Subscriptions *handlers.SubscriptionsHandler
	Uploads       *handlers.UploadsHandler
	Authenticator *auth.Authenticator
	// AuthLimiter guards login and registration; nil disables it.
	AuthLimiter fiber.Handler
	// Metrics serves the Prometheus exposition; nil disables it.
	Metrics fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", cfg.Metrics)
	}
	app.Get("/uploads/:name", cfg.Uploads.Serve)

	api := app.Group("/api")
	api.Get("/health", cfg.Health.API)

	authenticated := cfg.Authenticator.Handle
	adminOnly := auth.RequireRole(domain.RoleAdmin)
	clientOnly := auth.RequireRole(domain.RoleClient)

	limited := cfg.AuthLimiter
	if limited == nil {
		limited = func(c *fiber.Ctx) error { return c.Next() }
	}
	authGroup := api.Group("/auth")
	authGroup.Post("/login", limited, cfg.Auth.Login)
	authGroup.Post("/register", limited, cfg.Auth.Register)
	authGroup.Post("/logout", authenticated, cfg.Auth.Logout)
	authGroup.Get("/me", authenticated, cfg.Auth.Me)

	users := api.Group("/users", authenticated)
	users.Get("/profile", cfg.Users.Profile)
	users.Put("/profile", cfg.Users.UpdateProfile)
	users.Get("/", adminOnly, cfg.Users.List)
	users.Get("/:id", adminOnly, cfg.Users.Get)

	projects := api.Group("/projects")
	projects.Get("/", cfg.Projects.List)
	projects.Get("/:id", cfg.Projects.Get)
	projects.Post("/", authenticated, adminOnly, cfg.Projects.Create)
	projects.Put("/:id", authenticated, adminOnly, cfg.Projects.Update)
	projects.Delete("/:id", authenticated, adminOnly, cfg.Projects.Delete)

	services := api.Group("/services")
	services.Get("/", cfg.Services.List)
	services.Get("/:id", cfg.Services.Get)
	services.Post("/", authenticated, adminOnly, cfg.Services.Create)
	services.Put("/:id", authenticated, adminOnly, cfg.Services.Update)
	services.Delete("/:id", authenticated, adminOnly, cfg.Services.Delete)

	subs := api.Group("/subscriptions", authenticated)
	subs.Get("/my-subscriptions", clientOnly, cfg.Subscriptions.Mine)
	subs.Post("/", clientOnly, cfg.Subscriptions.Create)
	subs.Put("/:id/cancel", clientOnly, cfg.Subscriptions.Cancel)
	subs.Get("/", adminOnly, cfg.Subscriptions.List)
	subs.Get("/:id", adminOnly, cfg.Subscriptions.Get)
}
