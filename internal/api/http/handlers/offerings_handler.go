package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portfolio-service/internal/api/dto"
	"github.com/spec-kit/portfolio-service/internal/service"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

// OfferingsHandler exposes the service catalog endpoints.
type OfferingsHandler struct {
	offerings *service.OfferingService
}

// NewOfferingsHandler constructs handler.
func NewOfferingsHandler(offerings *service.OfferingService) *OfferingsHandler {
	return &OfferingsHandler{offerings: offerings}
}

// List handles GET /api/services.
func (h *OfferingsHandler) List(c *fiber.Ctx) error {
	offerings, err := h.offerings.List(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", fiber.Map{"services": dto.NewOfferingResponses(offerings), "count": len(offerings)})
}

// Get handles GET /api/services/:id.
func (h *OfferingsHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	offering, err := h.offerings.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", fiber.Map{"service": dto.NewOfferingResponse(offering)})
}

// Create handles POST /api/services.
func (h *OfferingsHandler) Create(c *fiber.Ctx) error {
	in, err := offeringPayload(c)
	if err != nil {
		return err
	}
	offering, err := h.offerings.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Service created successfully", fiber.Map{"service": dto.NewOfferingResponse(offering)})
}

// Update handles PUT /api/services/:id.
func (h *OfferingsHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	in, err := offeringPayload(c)
	if err != nil {
		return err
	}
	offering, err := h.offerings.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Service updated successfully", fiber.Map{"service": dto.NewOfferingResponse(offering)})
}

// Delete handles DELETE /api/services/:id.
func (h *OfferingsHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.offerings.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Service deleted successfully", nil)
}

func offeringPayload(c *fiber.Ctx) (service.OfferingInput, error) {
	p, err := readPayload(c)
	if err != nil {
		return service.OfferingInput{}, err
	}
	in := service.OfferingInput{
		Category:    p.str("category"),
		Title:       p.str("title"),
		Description: p.str("description"),
		Features:    p.list("features", apperrors.SeparatorNewline),
		Price:       p.float("price"),
		Period:      p.str("period"),
		Popular:     p.boolean("popular"),
	}
	return in, p.err()
}
