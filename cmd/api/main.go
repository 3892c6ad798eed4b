package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/portfolio-service/internal/api/http"
	"github.com/spec-kit/portfolio-service/internal/api/http/handlers"
	"github.com/spec-kit/portfolio-service/internal/auth"
	"github.com/spec-kit/portfolio-service/internal/cache"
	"github.com/spec-kit/portfolio-service/internal/config"
	"github.com/spec-kit/portfolio-service/internal/events"
	"github.com/spec-kit/portfolio-service/internal/observability"
	"github.com/spec-kit/portfolio-service/internal/persistence"
	"github.com/spec-kit/portfolio-service/internal/repository"
	"github.com/spec-kit/portfolio-service/internal/service"
	"github.com/spec-kit/portfolio-service/internal/storage"
	"github.com/spec-kit/portfolio-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	if pg.PoolHandle() == nil {
		logger.Fatal("POSTGRES_DSN (or DATABASE_URL) is required")
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	files, err := newStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to init uploads store", zap.Error(err))
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	offeringRepo := repository.NewOfferingRepository(pool)
	projectRepo := repository.NewProjectRepository(pool)
	subscriptionRepo := repository.NewSubscriptionRepository(pool)
	listCache := cache.New(redis.Client, cfg.Cache.TTL())
	metrics := observability.NewMetrics("portfolio")

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	notifications := worker.StartNotificationWorker(ctx, notificationService, cfg.Notification, logger)

	revoker := auth.NewRedisRevoker(redis.Client, logger)
	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo: userRepo,
		Revoker:  revoker,
		Logger:   logger,
	})
	userService := service.NewUserService(userRepo)
	offeringService := service.NewOfferingService(service.OfferingDependencies{
		OfferingRepo: offeringRepo,
		Cache:        listCache,
		Logger:       logger,
	})
	projectService := service.NewProjectService(service.ProjectDependencies{
		ProjectRepo: projectRepo,
		Store:       files,
		Cache:       listCache,
		Logger:      logger,
		MaxUpload:   cfg.Uploads.MaxBytes,
	})
	subscriptionService := service.NewSubscriptionService(service.SubscriptionDependencies{
		SubscriptionRepo: subscriptionRepo,
		OfferingRepo:     offeringRepo,
		Dispatcher:       dispatcher,
		Metrics:          metrics,
		Logger:           logger,
	})

	limiter := httptransport.NewIPRateLimiter(cfg.Auth.RateLimitPerMinute, cfg.Auth.RateLimitBurst)

	app := httptransport.NewApp(cfg, logger, metrics, httptransport.RouteConfig{
		Health:        handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:          handlers.NewAuthHandler(authService),
		Users:         handlers.NewUsersHandler(userService),
		Projects:      handlers.NewProjectsHandler(projectService),
		Services:      handlers.NewOfferingsHandler(offeringService),
		Subscriptions: handlers.NewSubscriptionsHandler(subscriptionService),
		Uploads:       handlers.NewUploadsHandler(files),
		Authenticator: auth.NewAuthenticator(authService.TokenManager(), revoker),
		AuthLimiter:   limiter.Handler(),
		Metrics:       metrics.Handler(),
	})

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.App.Addr()), zap.String("env", cfg.App.Env))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	notifications.Stop()
}

func newStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.Store, error) {
	if cfg.Uploads.Driver == config.UploadsDriverMinIO {
		return storage.NewMinIOStore(ctx, cfg.Uploads.MinIO, logger)
	}
	return storage.NewLocalStore(cfg.Uploads.Dir)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
