package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portfolio-service/internal/domain"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

// RequireRole ensures the authenticated caller holds role. It must be mounted
// after Authenticator.Handle.
func RequireRole(role domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("Authentication required")
		}
		if err := CheckRole(claims, role); err != nil {
			return err
		}
		return c.Next()
	}
}

// CheckRole returns nil when claims satisfy role.
func CheckRole(claims *Claims, role domain.Role) error {
	if claims == nil {
		return apperrors.NewUnauthorized("Authentication required")
	}
	switch role {
	case domain.RoleAdmin:
		if claims.Role == domain.RoleAdmin {
			return nil
		}
		return apperrors.NewForbidden("Admin access required")
	case domain.RoleClient:
		if claims.Role == domain.RoleClient {
			return nil
		}
		return apperrors.NewForbidden("Client access required")
	default:
		return apperrors.NewForbidden("Access denied")
	}
}
