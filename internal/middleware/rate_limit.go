package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/adhub/adhub/backend/internal/logging"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// Key prefix for Redis keys
	KeyPrefix string
	// Action names what is limited in the 429 message
	Action string
}

// RateLimiter is a fixed-window counter per profile kept in Redis.
type RateLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
	logger *logging.Logger
	now    func() time.Time
}

// NewRateLimiter creates a new rate limiter instance. A nil client disables limiting.
func NewRateLimiter(redisClient *redis.Client, config RateLimitConfig, logger *logging.Logger) *RateLimiter {
	if logger == nil {
		logger = logging.Default()
	}
	return &RateLimiter{redis: redisClient, config: config, logger: logger, now: time.Now}
}

// Middleware enforces the limit for the authenticated caller. It must run
// after RequireSession. Redis failures let the request through.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.redis == nil {
			c.Next()
			return
		}

		profileID := ViewerID(c)
		if profileID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
			return
		}

		allowed, remaining, resetTime, err := rl.IsAllowed(c.Request.Context(), profileID)
		if err != nil {
			rl.logger.WarnContext(c.Request.Context(), "rate limit check failed", "key_prefix", rl.config.KeyPrefix, "profile_id", profileID, "error", err)
			c.Header("X-RateLimit-Error", "rate limit check failed")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			retryAfter := int(resetTime.Sub(rl.now()).Seconds())
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"message":     fmt.Sprintf("You can %s at most %d times per %v", rl.config.Action, rl.config.Limit, rl.config.Window),
				"retry_after": retryAfter,
			})
			return
		}

		c.Next()
	}
}

// IsAllowed counts one request for key and reports whether it fits the window.
// Returns: allowed, remaining requests, reset time, error
func (rl *RateLimiter) IsAllowed(ctx context.Context, key string) (bool, int, time.Time, error) {
	windowStart := rl.now().Truncate(rl.config.Window)
	redisKey := fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, key, windowStart.Unix())

	pipe := rl.redis.Pipeline()
	incrCmd := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, rl.config.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := int(incrCmd.Val())
	remaining := rl.config.Limit - count
	if remaining < 0 {
		remaining = 0
	}
	return count <= rl.config.Limit, remaining, windowStart.Add(rl.config.Window), nil
}

func NewJobCreationRateLimiter(redisClient *redis.Client, logger *logging.Logger) *RateLimiter {
	return NewRateLimiter(redisClient, RateLimitConfig{
		Window:    time.Hour,
		Limit:     10,
		KeyPrefix: "rate_limit:job_creation",
		Action:    "post a job",
	}, logger)
}

func NewApplicationRateLimiter(redisClient *redis.Client, logger *logging.Logger) *RateLimiter {
	return NewRateLimiter(redisClient, RateLimitConfig{
		Window:    time.Hour,
		Limit:     30,
		KeyPrefix: "rate_limit:job_application",
		Action:    "apply to a job",
	}, logger)
}

func NewPhotoUploadRateLimiter(redisClient *redis.Client, logger *logging.Logger) *RateLimiter {
	return NewRateLimiter(redisClient, RateLimitConfig{
		Window:    time.Hour,
		Limit:     20,
		KeyPrefix: "rate_limit:photo_upload",
		Action:    "upload a photo",
	}, logger)
}
