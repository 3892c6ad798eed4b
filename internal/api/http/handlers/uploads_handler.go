package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portfolio-service/internal/storage"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

// UploadsHandler serves stored cover images under /uploads.
type UploadsHandler struct {
	store storage.Store
}

// NewUploadsHandler constructs handler.
func NewUploadsHandler(store storage.Store) *UploadsHandler {
	return &UploadsHandler{store: store}
}

// Serve handles GET /uploads/:name.
func (h *UploadsHandler) Serve(c *fiber.Ctx) error {
	name := c.Params("name")
	if !storage.ValidName(name) {
		return apperrors.NewNotFound("File", nil)
	}

	body, contentType, err := h.store.Open(c.UserContext(), name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidName) {
			return apperrors.NewNotFound("File", nil)
		}
		return apperrors.NewInternalError(err)
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderCacheControl, "public, max-age=86400")
	return c.SendStream(body)
}
