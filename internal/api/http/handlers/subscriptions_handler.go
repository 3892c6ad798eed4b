package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portfolio-service/internal/api/dto"
	"github.com/spec-kit/portfolio-service/internal/service"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

// SubscriptionsHandler exposes subscription endpoints.
type SubscriptionsHandler struct {
	subscriptions *service.SubscriptionService
}

// NewSubscriptionsHandler constructs handler.
func NewSubscriptionsHandler(subscriptions *service.SubscriptionService) *SubscriptionsHandler {
	return &SubscriptionsHandler{subscriptions: subscriptions}
}

// Mine handles GET /api/subscriptions/my-subscriptions.
func (h *SubscriptionsHandler) Mine(c *fiber.Ctx) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}
	subs, err := h.subscriptions.ListMine(c.UserContext(), claims.UserID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", fiber.Map{"subscriptions": dto.NewSubscriptionResponses(subs), "count": len(subs)})
}

// Create handles POST /api/subscriptions.
func (h *SubscriptionsHandler) Create(c *fiber.Ctx) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}
	var req dto.SubscriptionCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload()
	}
	serviceID, ok := req.ServiceIDValue()
	if !ok {
		return apperrors.NewValidationError("Validation errors", map[string]any{
			"serviceId": "Service ID must be a valid integer",
		})
	}

	sub, err := h.subscriptions.Create(c.UserContext(), claims.UserID, serviceID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Subscription created successfully", fiber.Map{"subscription": dto.NewSubscriptionResponse(sub)})
}

// Cancel handles PUT /api/subscriptions/:id/cancel.
func (h *SubscriptionsHandler) Cancel(c *fiber.Ctx) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	sub, err := h.subscriptions.Cancel(c.UserContext(), id, claims.UserID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Subscription cancelled successfully", fiber.Map{"subscription": dto.NewSubscriptionResponse(sub)})
}

// List handles GET /api/subscriptions.
func (h *SubscriptionsHandler) List(c *fiber.Ctx) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}
	subs, err := h.subscriptions.ListAll(c.UserContext(), claims.Role)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", fiber.Map{"subscriptions": dto.NewAdminSubscriptionResponses(subs), "count": len(subs)})
}

// Get handles GET /api/subscriptions/:id.
func (h *SubscriptionsHandler) Get(c *fiber.Ctx) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	sub, err := h.subscriptions.Get(c.UserContext(), id, claims.Role)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", fiber.Map{"subscription": dto.NewSubscriptionResponse(sub)})
}
