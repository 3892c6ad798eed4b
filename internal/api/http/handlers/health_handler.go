package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
)

var errNotConfigured = errors.New("not configured")

// Pinger is a dependency that can report connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	postgres    Pinger
	redis       Pinger
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, postgres, redis Pinger) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, postgres: postgres, redis: redis}
}

// API answers GET /api/health.
func (h *HealthHandler) API(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "OK",
		"message":   "Server is running",
		"timestamp": time.Now().UTC(),
	})
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports readiness. Postgres is required; Redis only degrades the
// cache and the token denylist so its failure is reported but not fatal.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	depStatus := fiber.Map{}
	ready := true
	status := "ready"

	if err := ping(ctx, h.postgres); err != nil {
		depStatus["postgres"] = err.Error()
		ready = false
	} else {
		depStatus["postgres"] = "ok"
	}

	if err := ping(ctx, h.redis); err != nil {
		depStatus["redis"] = err.Error()
		status = "degraded"
	} else {
		depStatus["redis"] = "ok"
	}

	if ready {
		return c.JSON(fiber.Map{
			"status":       status,
			"dependencies": depStatus,
		})
	}

	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"success": false,
		"message": "one or more dependencies unavailable",
		"code":    "DEPENDENCY_UNAVAILABLE",
		"errors":  depStatus,
	})
}

func ping(ctx context.Context, p Pinger) error {
	if p == nil {
		return errNotConfigured
	}
	return p.Ping(ctx)
}
