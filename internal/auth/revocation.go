package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Revoker tracks token ids invalidated before their expiry.
type Revoker interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) bool
}

const revokedKeyPrefix = "auth:revoked:"

// RedisRevoker keeps revoked token ids in Redis until they would have expired.
// Lookups fail open: a Redis outage never rejects a valid token.
type RedisRevoker struct {
	client redis.UniversalClient
	logger *zap.Logger
	now    func() time.Time
}

// NewRedisRevoker builds a revoker over client.
func NewRedisRevoker(client redis.UniversalClient, logger *zap.Logger) *RedisRevoker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisRevoker{client: client, logger: logger, now: time.Now}
}

// Revoke stores jti until expiresAt. Already expired tokens are ignored.
func (r *RedisRevoker) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if jti == "" {
		return nil
	}
	ttl := expiresAt.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revokedKeyPrefix+jti, 1, ttl).Err()
}

// IsRevoked reports whether jti was revoked.
func (r *RedisRevoker) IsRevoked(ctx context.Context, jti string) bool {
	if jti == "" {
		return false
	}
	n, err := r.client.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		r.logger.Warn("token revocation lookup failed", zap.Error(err))
		return false
	}
	return n > 0
}
