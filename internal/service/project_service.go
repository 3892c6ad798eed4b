package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-service/internal/cache"
	"github.com/spec-kit/portfolio-service/internal/domain"
	"github.com/spec-kit/portfolio-service/internal/repository"
	"github.com/spec-kit/portfolio-service/internal/storage"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

// DefaultProjectImage is used when a project is created without a cover.
const DefaultProjectImage = "https://images.unsplash.com/photo-1556742049-0cfed4f6a45d?w=800&h=600&fit=crop"

// ProjectService manages portfolio projects.
type ProjectService struct {
	projects repository.ProjectRepository
	files    *coverFiles
	cache    listCache
	logger   *zap.Logger
}

// ProjectDependencies bundles collaborators for project service.
type ProjectDependencies struct {
	ProjectRepo repository.ProjectRepository
	Store       storage.Store
	Cache       *cache.Cache
	Logger      *zap.Logger
	MaxUpload   int64
	Now         func() time.Time
}

// ProjectInput is a partial project; nil fields are omitted.
type ProjectInput struct {
	Name         *string   `json:"name" validate:"omitnil,notblank"`
	Description  *string   `json:"description" validate:"omitnil,notblank"`
	Technologies *[]string `json:"technologies"`
	Image        *string   `json:"image"`
	PreviewURL   *string   `json:"previewUrl"`
	DetailsURL   *string   `json:"detailsUrl"`
}

// projectCreateRules adds the create-only URL check on the preview link.
type projectCreateRules struct {
	PreviewURL string `json:"previewUrl" validate:"omitempty,url"`
}

// NewProjectService builds the service.
func NewProjectService(deps ProjectDependencies) *ProjectService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &ProjectService{
		projects: deps.ProjectRepo,
		files:    &coverFiles{store: deps.Store, maxBytes: deps.MaxUpload, logger: logger, now: now},
		cache:    listCache{cache: deps.Cache, key: cache.KeyProjects, logger: logger},
		logger:   logger,
	}
}

// List returns all projects, newest first.
func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	var cached []domain.Project
	if s.cache.get(ctx, &cached) {
		return cached, nil
	}
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.cache.set(ctx, projects)
	return projects, nil
}

// Get returns one project.
func (s *ProjectService) Get(ctx context.Context, id int64) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Project")
	}
	return project, nil
}

// Create stores a project. cover, when set, replaces any image URL in in.
func (s *ProjectService) Create(ctx context.Context, in ProjectInput, cover *storage.Upload, baseURL string) (*domain.Project, error) {
	normalizeProjectInput(&in)
	rules := projectCreateRules{}
	if in.PreviewURL != nil {
		rules.PreviewURL = *in.PreviewURL
	}
	if err := validateInput(&in, "name", "description", "technologies"); err != nil {
		return nil, err
	}
	if err := validateInput(&rules); err != nil {
		return nil, err
	}

	project := &domain.Project{
		Name:         *in.Name,
		Description:  *in.Description,
		Technologies: *in.Technologies,
		Image:        DefaultProjectImage,
		PreviewURL:   optionalText(in.PreviewURL),
		DetailsURL:   "/projects/" + apperrors.Slugify(*in.Name),
	}
	if in.Image != nil {
		project.Image = *in.Image
	}
	if in.DetailsURL != nil {
		project.DetailsURL = *in.DetailsURL
	}

	var stored string
	if cover != nil {
		name, url, err := s.files.save(ctx, cover, baseURL)
		if err != nil {
			return nil, err
		}
		stored = name
		project.Image = url
	}

	if err := s.projects.Create(ctx, project); err != nil {
		s.files.remove(ctx, stored, "project create failed")
		return nil, apperrors.MapError(err)
	}

	s.cache.invalidate(ctx)
	return project, nil
}

// Update applies the provided fields of in to project id.
func (s *ProjectService) Update(ctx context.Context, id int64, in ProjectInput, cover *storage.Upload, baseURL string) (*domain.Project, error) {
	normalizeProjectInput(&in)
	if err := validateInput(&in); err != nil {
		return nil, err
	}

	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	previousImage := project.Image

	if in.Name != nil {
		project.Name = *in.Name
	}
	if in.Description != nil {
		project.Description = *in.Description
	}
	if in.Technologies != nil {
		project.Technologies = *in.Technologies
	}
	if in.Image != nil {
		project.Image = *in.Image
	}
	if in.PreviewURL != nil {
		project.PreviewURL = optionalText(in.PreviewURL)
	}
	if in.DetailsURL != nil {
		project.DetailsURL = *in.DetailsURL
	}

	var stored string
	if cover != nil {
		name, url, err := s.files.save(ctx, cover, baseURL)
		if err != nil {
			return nil, err
		}
		stored = name
		project.Image = url
	}

	if err := s.projects.Update(ctx, project); err != nil {
		s.files.remove(ctx, stored, "project update failed")
		return nil, notFoundOr(err, "Project")
	}

	if project.Image != previousImage {
		s.files.removeURL(ctx, previousImage, "project image replaced")
	}
	s.cache.invalidate(ctx)
	return project, nil
}

// Delete removes project id and its stored cover.
func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	project, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.projects.Delete(ctx, id); err != nil {
		return notFoundOr(err, "Project")
	}
	s.files.removeURL(ctx, project.Image, "project deleted")
	s.cache.invalidate(ctx)
	return nil
}

func normalizeProjectInput(in *ProjectInput) {
	in.Name = trimmed(in.Name)
	in.Description = trimmed(in.Description)
	if in.Technologies != nil {
		techs := apperrors.CleanList(*in.Technologies)
		in.Technologies = &techs
	}
	in.Image = optionalText(in.Image)
	in.DetailsURL = optionalText(in.DetailsURL)
	// a blank preview URL stays set so that an update can clear it
	in.PreviewURL = trimmed(in.PreviewURL)
}

func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}

func notFoundOr(err error, resource string) error {
	if repository.IsNotFound(err) {
		return apperrors.NewNotFound(resource, nil)
	}
	return apperrors.MapError(err)
}
