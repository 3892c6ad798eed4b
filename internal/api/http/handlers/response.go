package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portfolio-service/internal/auth"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

// respond writes the success envelope with body merged in.
func respond(c *fiber.Ctx, status int, message string, body fiber.Map) error {
	out := fiber.Map{"success": true}
	if message != "" {
		out["message"] = message
	}
	for k, v := range body {
		out[k] = v
	}
	return c.Status(status).JSON(out)
}

// idParam parses a positive integer route parameter.
func idParam(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("Invalid id", map[string]any{name: "must be a positive integer"})
	}
	return id, nil
}

// callerClaims returns the verified caller set by the authenticator.
func callerClaims(c *fiber.Ctx) (*auth.Claims, error) {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("Authentication required")
	}
	return claims, nil
}

func invalidPayload() error {
	return apperrors.NewValidationError("Invalid request payload", nil)
}
