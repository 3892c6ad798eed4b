package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portfolio-service/internal/api/dto"
	"github.com/spec-kit/portfolio-service/internal/service"
)

// UsersHandler exposes profile and account administration endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// Profile handles GET /api/users/profile.
func (h *UsersHandler) Profile(c *fiber.Ctx) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}
	user, err := h.users.Profile(c.UserContext(), claims.UserID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", fiber.Map{"user": dto.NewUserResponse(user)})
}

// UpdateProfile handles PUT /api/users/profile.
func (h *UsersHandler) UpdateProfile(c *fiber.Ctx) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}
	var req service.ProfileInput
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	user, err := h.users.UpdateProfile(c.UserContext(), claims.UserID, req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Profile updated successfully", fiber.Map{"user": dto.NewUserResponse(user)})
}

// List handles GET /api/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", fiber.Map{"users": dto.NewUserResponses(users), "count": len(users)})
}

// Get handles GET /api/users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	user, err := h.users.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", fiber.Map{"user": dto.NewUserResponse(user)})
}
