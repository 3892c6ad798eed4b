package http

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	apperrors "github.com/spec-kit/portfolio-service/pkg/util"
)

const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter hands out one token bucket per client IP.
type IPRateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	now       func() time.Time
	lastSweep time.Time
}

// NewIPRateLimiter allows perMinute requests per IP with the given burst. A
// perMinute of zero or less disables limiting.
func NewIPRateLimiter(perMinute, burst int) *IPRateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &IPRateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(float64(perMinute) / 60),
		burst:    burst,
		now:      time.Now,
	}
}

// Allow reports whether ip may proceed now.
func (l *IPRateLimiter) Allow(ip string) bool {
	if l.limit <= 0 {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > limiterIdleTTL {
		for key, v := range l.visitors {
			if now.Sub(v.lastSeen) > limiterIdleTTL {
				delete(l.visitors, key)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// Handler rejects requests over the limit with 429.
func (l *IPRateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !l.Allow(c.IP()) {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(l.retryAfterSeconds()))
			return apperrors.NewDomainError(apperrors.CodeRateLimited,
				"Too many requests, please try again later", http.StatusTooManyRequests, nil)
		}
		return c.Next()
	}
}

func (l *IPRateLimiter) retryAfterSeconds() int {
	secs := int(1 / float64(l.limit))
	if secs < 1 {
		return 1
	}
	return secs
}
