package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-service/internal/cache"
	"github.com/spec-kit/portfolio-service/internal/domain"
	"github.com/spec-kit/portfolio-service/internal/repository"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

// OfferingService manages the service catalog.
type OfferingService struct {
	offerings repository.OfferingRepository
	cache     listCache
}

// OfferingDependencies bundles collaborators for offering service.
type OfferingDependencies struct {
	OfferingRepo repository.OfferingRepository
	Cache        *cache.Cache
	Logger       *zap.Logger
}

// OfferingInput is a partial offering; nil fields are omitted.
type OfferingInput struct {
	Category    *string   `json:"category" validate:"omitnil,notblank"`
	Title       *string   `json:"title" validate:"omitnil,notblank"`
	Description *string   `json:"description" validate:"omitnil,notblank"`
	Features    *[]string `json:"features"`
	Price       *float64  `json:"price" validate:"omitnil,gte=0,lte=99999999.99"`
	Period      *string   `json:"period" validate:"omitnil,oneof=mes hora sesión"`
	Popular     *bool     `json:"popular"`
}

// NewOfferingService builds the service.
func NewOfferingService(deps OfferingDependencies) *OfferingService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OfferingService{
		offerings: deps.OfferingRepo,
		cache:     listCache{cache: deps.Cache, key: cache.KeyServices, logger: logger},
	}
}

// List returns the catalog, newest first.
func (s *OfferingService) List(ctx context.Context) ([]domain.Offering, error) {
	var cached []domain.Offering
	if s.cache.get(ctx, &cached) {
		return cached, nil
	}
	offerings, err := s.offerings.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.cache.set(ctx, offerings)
	return offerings, nil
}

// Get returns one offering.
func (s *OfferingService) Get(ctx context.Context, id int64) (*domain.Offering, error) {
	offering, err := s.offerings.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Service")
	}
	return offering, nil
}

// Create stores a new offering. Popular defaults to false.
func (s *OfferingService) Create(ctx context.Context, in OfferingInput) (*domain.Offering, error) {
	normalizeOfferingInput(&in)
	if err := validateInput(&in, "category", "title", "description", "features", "price", "period"); err != nil {
		return nil, err
	}

	offering := &domain.Offering{
		Category:    *in.Category,
		Title:       *in.Title,
		Description: *in.Description,
		Features:    *in.Features,
		Price:       *in.Price,
		Period:      domain.BillingPeriod(*in.Period),
	}
	if in.Popular != nil {
		offering.Popular = *in.Popular
	}

	if err := s.offerings.Create(ctx, offering); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.cache.invalidate(ctx)
	return offering, nil
}

// Update applies the provided fields of in to offering id. Existing
// subscriptions keep their snapshot price and period.
func (s *OfferingService) Update(ctx context.Context, id int64, in OfferingInput) (*domain.Offering, error) {
	normalizeOfferingInput(&in)
	if err := validateInput(&in); err != nil {
		return nil, err
	}

	offering, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Category != nil {
		offering.Category = *in.Category
	}
	if in.Title != nil {
		offering.Title = *in.Title
	}
	if in.Description != nil {
		offering.Description = *in.Description
	}
	if in.Features != nil {
		offering.Features = *in.Features
	}
	if in.Price != nil {
		offering.Price = *in.Price
	}
	if in.Period != nil {
		offering.Period = domain.BillingPeriod(*in.Period)
	}
	if in.Popular != nil {
		offering.Popular = *in.Popular
	}

	if err := s.offerings.Update(ctx, offering); err != nil {
		return nil, notFoundOr(err, "Service")
	}
	s.cache.invalidate(ctx)
	return offering, nil
}

// Delete removes offering id. Offerings that still have subscriptions are
// kept and a conflict is returned.
func (s *OfferingService) Delete(ctx context.Context, id int64) error {
	if err := s.offerings.Delete(ctx, id); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return apperrors.NewConflict("Service has subscriptions and cannot be deleted", nil)
		}
		return notFoundOr(err, "Service")
	}
	s.cache.invalidate(ctx)
	return nil
}

func normalizeOfferingInput(in *OfferingInput) {
	in.Category = trimmed(in.Category)
	in.Title = trimmed(in.Title)
	in.Description = trimmed(in.Description)
	in.Period = trimmed(in.Period)
	if in.Features != nil {
		features := apperrors.CleanList(*in.Features)
		in.Features = &features
	}
}
