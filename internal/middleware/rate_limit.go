package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimitConfig sizes a fixed-window limit.
type RateLimitConfig struct {
	Window    time.Duration
	Limit     int
	KeyPrefix string
}

// Decision is the outcome of counting one request.
type Decision struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// RateLimiter counts requests per user in fixed windows kept in Redis.
type RateLimiter struct {
	redis *redis.Client
	cfg   RateLimitConfig
	log   *zap.Logger
	now   func() time.Time
}

// NewRateLimiter returns a limiter over client. A nil client or a
// non-positive limit lets every request through.
func NewRateLimiter(client *redis.Client, cfg RateLimitConfig, log *zap.Logger) *RateLimiter {
	if cfg.Window <= 0 {
		cfg.Window = time.Hour
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RateLimiter{redis: client, cfg: cfg, log: log, now: time.Now}
}

func (rl *RateLimiter) enabled() bool {
	return rl.redis != nil && rl.cfg.Limit > 0
}

// Allow counts one request for userID in the current window. The counter
// expires with the window, so a key never outlives it.
func (rl *RateLimiter) Allow(ctx context.Context, userID uuid.UUID) (Decision, error) {
	start := rl.now().Truncate(rl.cfg.Window)
	reset := start.Add(rl.cfg.Window)
	if !rl.enabled() {
		return Decision{Allowed: true, Remaining: rl.cfg.Limit, ResetAt: reset}, nil
	}

	key := fmt.Sprintf("%s:%s:%d", rl.cfg.KeyPrefix, userID, start.Unix())
	var count *redis.IntCmd
	_, err := rl.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		count = pipe.Incr(ctx, key)
		pipe.ExpireAt(ctx, key, reset)
		return nil
	})
	if err != nil {
		return Decision{}, fmt.Errorf("failed to count request: %w", err)
	}

	n := int(count.Val())
	return Decision{
		Allowed:   n <= rl.cfg.Limit,
		Remaining: max(rl.cfg.Limit-n, 0),
		ResetAt:   reset,
	}, nil
}

// Middleware enforces the limit for the authenticated user. It must run
// after AuthMiddleware. When Redis fails the request is let through.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
			return
		}
		if !rl.enabled() {
			c.Next()
			return
		}

		d, err := rl.Allow(c.Request.Context(), userID)
		if err != nil {
			rl.log.Warn("rate limit check failed", zap.Stringer("user_id", userID), zap.Error(err))
			c.Header("X-RateLimit-Error", "rate limit check failed")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.cfg.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))
		if d.Allowed {
			c.Next()
			return
		}

		retry := int(d.ResetAt.Sub(rl.now()).Seconds())
		c.Header("Retry-After", strconv.Itoa(retry))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error":       fmt.Sprintf("rate limit exceeded: %d requests per %v", rl.cfg.Limit, rl.cfg.Window),
			"retry_after": retry,
		})
	}
}
