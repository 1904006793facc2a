package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/GoPolymarket/polyproxy/internal/config"
	"github.com/GoPolymarket/polyproxy/internal/pkg/apperrors"
	"github.com/GoPolymarket/polyproxy/internal/pkg/metrics"
	"github.com/GoPolymarket/polyproxy/internal/pkg/response"
	"github.com/GoPolymarket/polyproxy/internal/repository"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Limiter decides whether one more request from the given key fits in the
// configured window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisLimiter counts hits in fixed windows shared across gateway replicas.
type RedisLimiter struct {
	client *repository.RedisClient
	window time.Duration
	max    int64
}

func NewRedisLimiter(client *repository.RedisClient, cfg config.RateLimitConfig) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		window: time.Duration(cfg.WindowSeconds) * time.Second,
		max:    int64(cfg.MaxRequests),
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	windowKey := fmt.Sprintf("ratelimit:%s:%d", key, time.Now().Unix()/int64(l.window.Seconds()))
	count, err := l.client.IncrWindow(ctx, windowKey, l.window)
	if err != nil {
		return false, err
	}
	return count <= l.max, nil
}

// MemoryLimiter is the single-process fallback: one token bucket per key,
// refilled at max-requests per window.
type MemoryLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

func NewMemoryLimiter(cfg config.RateLimitConfig) *MemoryLimiter {
	perSecond := float64(cfg.MaxRequests) / float64(cfg.WindowSeconds)
	return &MemoryLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(perSecond),
		burst:    cfg.MaxRequests,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	limiter, ok := l.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(l.rate, l.burst)
		l.limiters[key] = limiter
	}
	l.mu.Unlock()
	return limiter.Allow(), nil
}

// RateLimit keys on client IP. A broken limiter backend fails open; a
// gateway that cannot reach its counter store should not reject traffic.
func RateLimit(limiter Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			c.Next()
			return
		}
		if !ok {
			metrics.RateLimitRejects.Inc()
			response.Error(c, apperrors.New(apperrors.CodeRateLimit, "rate limit exceeded, retry later", nil))
			c.Abort()
			return
		}
		c.Next()
	}
}
