package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/portfolio-service/internal/cache"
	"github.com/spec-kit/portfolio-service/internal/storage"
	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

// coverFiles stores uploaded cover images and removes them again when they
// are orphaned.
type coverFiles struct {
	store    storage.Store
	maxBytes int64
	logger   *zap.Logger
	now      func() time.Time
}

func (f *coverFiles) save(ctx context.Context, upload *storage.Upload, baseURL string) (string, string, error) {
	if f.store == nil {
		return "", "", apperrors.NewInternalError(errors.New("uploads store not configured"))
	}
	if err := storage.ValidateImage(upload, f.maxBytes); err != nil {
		return "", "", apperrors.NewValidationError("Validation errors", map[string]any{"coverImage": err.Error()})
	}
	name := storage.GenerateName(upload.Filename, f.now())
	if err := f.store.Save(ctx, name, upload.Reader, upload.Size, storage.ContentType(name)); err != nil {
		return "", "", apperrors.NewInternalError(err)
	}
	return name, storage.PublicURL(baseURL, name), nil
}

// remove deletes name, logging instead of failing.
func (f *coverFiles) remove(ctx context.Context, name, reason string) {
	if f.store == nil || name == "" {
		return
	}
	if err := f.store.Delete(context.WithoutCancel(ctx), name); err != nil {
		f.logger.Warn("failed to delete cover image",
			zap.String("file", name),
			zap.String("reason", reason),
			zap.Error(err))
	}
}

// removeURL deletes the file behind imageURL when it is one of ours.
func (f *coverFiles) removeURL(ctx context.Context, imageURL, reason string) {
	if name, ok := storage.NameFromURL(imageURL); ok {
		f.remove(ctx, name, reason)
	}
}

// listCache wraps cache.Cache with logging so cache failures never fail a
// request.
type listCache struct {
	cache  *cache.Cache
	key    string
	logger *zap.Logger
}

func (l listCache) get(ctx context.Context, dst any) bool {
	hit, err := l.cache.Get(ctx, l.key, dst)
	if err != nil {
		l.logger.Warn("cache read failed", zap.String("key", l.key), zap.Error(err))
		return false
	}
	return hit
}

func (l listCache) set(ctx context.Context, value any) {
	if err := l.cache.Set(ctx, l.key, value); err != nil {
		l.logger.Warn("cache write failed", zap.String("key", l.key), zap.Error(err))
	}
}

func (l listCache) invalidate(ctx context.Context) {
	if err := l.cache.Invalidate(context.WithoutCancel(ctx), l.key); err != nil {
		l.logger.Warn("cache invalidation failed", zap.String("key", l.key), zap.Error(err))
	}
}
