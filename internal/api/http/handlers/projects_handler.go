package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portfolio-service/internal/api/dto"
	"github.com/spec-kit/portfolio-service/internal/service"
	"github.com/spec-kit/portfolio-service/internal/storage"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

// coverField is the multipart field carrying a project cover image.
const coverField = "coverImage"

// ProjectsHandler exposes portfolio project endpoints.
type ProjectsHandler struct {
	projects *service.ProjectService
}

// NewProjectsHandler constructs handler.
func NewProjectsHandler(projects *service.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{projects: projects}
}

// List handles GET /api/projects.
func (h *ProjectsHandler) List(c *fiber.Ctx) error {
	projects, err := h.projects.List(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", fiber.Map{"projects": dto.NewProjectResponses(projects), "count": len(projects)})
}

// Get handles GET /api/projects/:id.
func (h *ProjectsHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	project, err := h.projects.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", fiber.Map{"project": dto.NewProjectResponse(project)})
}

// Create handles POST /api/projects with a JSON or multipart body.
func (h *ProjectsHandler) Create(c *fiber.Ctx) error {
	in, cover, done, err := projectPayload(c)
	if err != nil {
		return err
	}
	defer done()

	project, err := h.projects.Create(c.UserContext(), in, cover, c.BaseURL())
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Project created successfully", fiber.Map{"project": dto.NewProjectResponse(project)})
}

// Update handles PUT /api/projects/:id.
func (h *ProjectsHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	in, cover, done, err := projectPayload(c)
	if err != nil {
		return err
	}
	defer done()

	project, err := h.projects.Update(c.UserContext(), id, in, cover, c.BaseURL())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Project updated successfully", fiber.Map{"project": dto.NewProjectResponse(project)})
}

// Delete handles DELETE /api/projects/:id.
func (h *ProjectsHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.projects.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Project deleted successfully", nil)
}

func projectPayload(c *fiber.Ctx) (service.ProjectInput, *storage.Upload, func(), error) {
	noop := func() {}
	p, err := readPayload(c)
	if err != nil {
		return service.ProjectInput{}, nil, noop, err
	}
	in := service.ProjectInput{
		Name:         p.str("name"),
		Description:  p.str("description"),
		Technologies: p.list("technologies", apperrors.SeparatorComma),
		Image:        p.str("image"),
		PreviewURL:   p.str("previewUrl"),
		DetailsURL:   p.str("detailsUrl"),
	}
	if err := p.err(); err != nil {
		return service.ProjectInput{}, nil, noop, err
	}
	cover, done, err := p.upload(coverField)
	if err != nil {
		return service.ProjectInput{}, nil, noop, err
	}
	return in, cover, done, nil
}
