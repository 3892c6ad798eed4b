package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-service/internal/config"
	"github.com/spec-kit/portfolio-service/internal/service"
)

// StartNotificationWorker starts a pool and registers the notification
// handlers on it. The caller stops the returned pool on shutdown.
func StartNotificationWorker(ctx context.Context, notificationService *service.NotificationService, cfg config.NotificationConfig, logger *zap.Logger) *Pool {
	pool := NewPool(cfg.Workers, cfg.QueueSize, logger)
	pool.Start(ctx)
	if notificationService != nil {
		notificationService.RegisterHandlers(pool.Async)
	}
	return pool
}
