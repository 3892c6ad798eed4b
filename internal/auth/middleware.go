package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

const claimsKey = "auth_claims"

// Authenticator validates bearer tokens and stores the verified claims.
type Authenticator struct {
	tokens  *TokenManager
	revoked Revoker
}

// NewAuthenticator constructs middleware. revoked may be nil.
func NewAuthenticator(tokens *TokenManager, revoked Revoker) *Authenticator {
	return &Authenticator{tokens: tokens, revoked: revoked}
}

// Handle enforces authentication for protected routes.
func (a *Authenticator) Handle(c *fiber.Ctx) error {
	token, err := BearerToken(c)
	if err != nil {
		return err
	}

	claims, err := a.tokens.Verify(token)
	if err != nil {
		return apperrors.NewUnauthorized("Invalid or expired token")
	}

	if a.revoked != nil && a.revoked.IsRevoked(c.UserContext(), claims.ID) {
		return apperrors.NewUnauthorized("Token has been revoked")
	}

	c.Locals(claimsKey, claims)
	return c.Next()
}

// BearerToken extracts the raw token from the Authorization header.
func BearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return "", apperrors.NewUnauthorized("No token provided")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", apperrors.NewUnauthorized("Invalid authorization header")
	}
	return strings.TrimSpace(parts[1]), nil
}

// ClaimsFromContext retrieves the authenticated caller.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	val := c.Locals(claimsKey)
	if val == nil {
		return nil, false
	}
	claims, ok := val.(*Claims)
	return claims, ok
}
