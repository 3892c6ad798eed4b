package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portfolio-service/internal/api/dto"
	"github.com/spec-kit/portfolio-service/internal/service"
)

// AuthHandler exposes login, registration and session endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req service.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}

	session, err := h.auth.Register(c.UserContext(), req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "User registered successfully", sessionBody(session))
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginInput
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}

	session, err := h.auth.Login(c.UserContext(), req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Login successful", sessionBody(session))
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}
	if err := h.auth.Logout(c.UserContext(), claims); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Logged out successfully", nil)
}

// Me handles GET /api/auth/me and echoes the verified token claims.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}
	resp := dto.ClaimsResponse{ID: claims.UserID, Email: claims.Email, Role: claims.Role}
	if claims.ExpiresAt != nil {
		exp := claims.ExpiresAt.Time
		resp.ExpiresAt = &exp
	}
	return respond(c, http.StatusOK, "", fiber.Map{"user": resp})
}

func sessionBody(s *service.Session) fiber.Map {
	return fiber.Map{
		"token":     s.Token,
		"expiresAt": s.ExpiresAt,
		"user":      dto.NewUserResponse(s.User),
	}
}
