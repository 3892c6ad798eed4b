package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-service/internal/config"
	"github.com/spec-kit/portfolio-service/internal/observability"
	"github.com/spec-kit/portfolio-service/internal/persistence"
	"github.com/spec-kit/portfolio-service/internal/repository"
	"github.com/spec-kit/portfolio-service/internal/seed"
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

	ctx := context.Background()
	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	pool := pg.PoolHandle()
	if pool == nil {
		logger.Fatal("POSTGRES_DSN (or DATABASE_URL) is required")
	}
	defer pg.Close()

	if err := persistence.RunMigrations(ctx, pool, logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	sum, err := seed.Run(ctx, seed.Repositories{
		Users:         repository.NewUserRepository(pool),
		Offerings:     repository.NewOfferingRepository(pool),
		Projects:      repository.NewProjectRepository(pool),
		Subscriptions: repository.NewSubscriptionRepository(pool),
	}, cfg.Auth.BcryptCost, logger)
	if err != nil {
		logger.Fatal("seeding failed", zap.Error(err))
	}

	logger.Info("seeding completed",
		zap.Int("users", sum.Users),
		zap.Int("services", sum.Offerings),
		zap.Int("projects", sum.Projects),
		zap.Int("subscriptions", sum.Subscriptions))
}
