package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-service/internal/config"
	"github.com/spec-kit/portfolio-service/internal/observability"
)

// multipart overhead allowed on top of the upload limit
const bodySlack = 1 << 20

// NewApp builds the fiber application with global middleware and routes.
func NewApp(cfg *config.Config, logger *zap.Logger, metrics *observability.Metrics, routes RouteConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    int(cfg.Uploads.MaxBytes) + bodySlack,
		ErrorHandler: ErrorHandler(logger, cfg.App.IsDevelopment()),
	})

	app.Use(corsMiddleware(cfg.App.FrontendURL))
	RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout(), cfg.App.IsDevelopment())
	RegisterRoutes(app, routes)
	return app
}

func corsMiddleware(frontendURL string) fiber.Handler {
	origins := strings.TrimSpace(frontendURL)
	if origins == "" {
		origins = "http://localhost:5173"
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowCredentials: origins != "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
	})
}
