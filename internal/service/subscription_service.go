package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-service/internal/domain"
	"github.com/spec-kit/portfolio-service/internal/events"
	"github.com/spec-kit/portfolio-service/internal/observability"
	"github.com/spec-kit/portfolio-service/internal/repository"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

// SubscriptionService coordinates the subscription lifecycle.
type SubscriptionService struct {
	subscriptions repository.SubscriptionRepository
	offerings     repository.OfferingRepository
	dispatcher    events.Dispatcher
	metrics       *observability.Metrics
	logger        *zap.Logger
	now           func() time.Time
}

// SubscriptionDependencies bundles collaborators for subscription service.
type SubscriptionDependencies struct {
	SubscriptionRepo repository.SubscriptionRepository
	OfferingRepo     repository.OfferingRepository
	Dispatcher       events.Dispatcher
	Metrics          *observability.Metrics
	Logger           *zap.Logger
	Now              func() time.Time
}

// NewSubscriptionService builds the service.
func NewSubscriptionService(deps SubscriptionDependencies) *SubscriptionService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &SubscriptionService{
		subscriptions: deps.SubscriptionRepo,
		offerings:     deps.OfferingRepo,
		dispatcher:    deps.Dispatcher,
		metrics:       deps.Metrics,
		logger:        logger,
		now:           now,
	}
}

// Create subscribes userID to serviceID at the offering's current price.
func (s *SubscriptionService) Create(ctx context.Context, userID, serviceID int64) (*domain.Subscription, error) {
	if serviceID <= 0 {
		return nil, apperrors.NewValidationError("Validation errors", map[string]any{
			"serviceId": "Service ID must be a valid integer",
		})
	}

	offering, err := s.offerings.GetByID(ctx, serviceID)
	if err != nil {
		return nil, notFoundOr(err, "Service")
	}

	now := s.now()
	sub := domain.NewSubscription(userID, offering, now)
	if err := s.subscriptions.Create(ctx, sub); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, apperrors.NewNotFound("Service", nil)
		}
		return nil, apperrors.MapError(err)
	}
	sub.Service = offering

	s.metrics.RecordSubscription("created")
	s.publish(ctx, events.NewSubscriptionCreated(sub, offering.Title, now))
	return sub, nil
}

// Cancel cancels subscriptionID on behalf of requesterID, who must own it.
// Cancelling an already cancelled subscription returns it unchanged.
func (s *SubscriptionService) Cancel(ctx context.Context, subscriptionID, requesterID int64) (*domain.Subscription, error) {
	sub, err := s.load(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if !sub.OwnedBy(requesterID) {
		return nil, apperrors.NewForbidden("You can only cancel your own subscriptions")
	}

	now := s.now()
	if !sub.Cancel(now) {
		return sub, nil
	}

	changed, err := s.subscriptions.MarkCancelled(ctx, subscriptionID, now)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !changed {
		// a concurrent request won; report what it stored
		return s.load(ctx, subscriptionID)
	}

	s.metrics.RecordSubscription("cancelled")
	s.publish(ctx, events.NewSubscriptionCancelled(sub, now))
	return sub, nil
}

// ListMine returns userID's subscriptions, newest first.
func (s *SubscriptionService) ListMine(ctx context.Context, userID int64) ([]domain.Subscription, error) {
	subs, err := s.subscriptions.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return subs, nil
}

// ListAll returns every subscription. Only admins may call it.
func (s *SubscriptionService) ListAll(ctx context.Context, requesterRole domain.Role) ([]domain.Subscription, error) {
	if err := requireAdmin(requesterRole); err != nil {
		return nil, err
	}
	subs, err := s.subscriptions.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return subs, nil
}

// Get returns one subscription with its user and service. Only admins may
// call it.
func (s *SubscriptionService) Get(ctx context.Context, id int64, requesterRole domain.Role) (*domain.Subscription, error) {
	if err := requireAdmin(requesterRole); err != nil {
		return nil, err
	}
	return s.load(ctx, id)
}

func (s *SubscriptionService) load(ctx context.Context, id int64) (*domain.Subscription, error) {
	sub, err := s.subscriptions.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Subscription")
	}
	return sub, nil
}

func (s *SubscriptionService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event publish failed",
			zap.String("event_type", string(event.Type)),
			zap.Int64("subscription_id", event.SubscriptionID),
			zap.Error(err))
	}
}

func requireAdmin(role domain.Role) error {
	switch role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleClient:
		return apperrors.NewForbidden("Admin access required")
	default:
		return apperrors.NewForbidden("Access denied")
	}
}
