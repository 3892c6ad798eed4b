package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-service/internal/config"
	"github.com/spec-kit/portfolio-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events. wrap, when set, decorates every
// handler before subscription (for example to run it on a worker pool).
func (n *NotificationService) RegisterHandlers(wrap func(events.EventHandler) events.EventHandler) {
	if n.dispatcher == nil {
		return
	}
	if wrap == nil {
		wrap = func(h events.EventHandler) events.EventHandler { return h }
	}
	n.dispatcher.Subscribe(events.EventSubscriptionCreated, wrap(n.handleSubscriptionCreated))
	n.dispatcher.Subscribe(events.EventSubscriptionCancelled, wrap(n.handleSubscriptionCancelled))
}

func (n *NotificationService) handleSubscriptionCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("SubscriptionCreated",
		zap.Int64("subscription_id", event.SubscriptionID),
		zap.Int64("user_id", event.UserID),
		zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleSubscriptionCancelled(ctx context.Context, event events.Event) error {
	n.logger.Info("SubscriptionCancelled",
		zap.Int64("subscription_id", event.SubscriptionID),
		zap.Int64("user_id", event.UserID),
		zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.Int64("subscription_id", event.SubscriptionID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.Int64("subscription_id", event.SubscriptionID),
		zap.String("event_type", string(event.Type)))
}
