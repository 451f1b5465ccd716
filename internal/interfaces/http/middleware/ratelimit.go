package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/novastream-inc/novastream/internal/infrastructure/ratelimit"
	"github.com/novastream-inc/novastream/internal/shared/utils"
)

// RateLimit enforces a per-IP request budget using the Redis sliding-window
// limiter and reports the budget in X-RateLimit headers. When Redis is
// unreachable the request is allowed through; dropping all traffic on a
// cache outage would be worse than briefly not limiting.
func RateLimit(redisClient *redis.Client, requestsPerMinute int) gin.HandlerFunc {
	limiter := ratelimit.NewRedisRateLimiter(redisClient)
	cfg := ratelimit.RateLimitConfig{RequestsPerMinute: requestsPerMinute}

	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()

		allowed, err := limiter.Allow(key, cfg)
		if err != nil {
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(requestsPerMinute))
		if used, err := limiter.GetUsed(key, time.Minute); err == nil {
			remaining := int64(requestsPerMinute) - used
			if remaining < 0 {
				remaining = 0
			}
			c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
