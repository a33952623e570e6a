package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"moviehub/cache"
)

// Limiter counts a request against a quota and reports whether it fits.
type Limiter interface {
	Allow(key string, maxRequests int, window time.Duration) (allowed bool, remaining int, err error)
}

// RedisLimiter backs quotas with the shared Redis fixed-window counters.
// When Redis is down the limiter admits everything rather than taking the
// API down with it.
type RedisLimiter struct{}

func (RedisLimiter) Allow(key string, maxRequests int, window time.Duration) (bool, int, error) {
	if !cache.IsRedisAvailable() {
		return true, maxRequests, nil
	}
	return cache.CheckRateLimit(key, maxRequests, window)
}

// RateLimit enforces a named quota tier. Scopes are tracked independently:
// the same client burning through the "anon" tier does not touch their
// "review-create" budget. Authenticated requests are keyed per user,
// anonymous ones per client IP.
func RateLimit(limiter Limiter, scope string, maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s%s:%s", cache.RateLimitPrefix, scope, clientKey(c))

		allowed, remaining, err := limiter.Allow(key, maxRequests, window)
		if err != nil {
			// Limiter outage never blocks traffic
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(maxRequests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(window/time.Second)))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "Rate limit exceeded",
				"message": fmt.Sprintf("Too many requests. Retry after %v", window),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func clientKey(c *gin.Context) string {
	if user, ok := CurrentUser(c); ok {
		return fmt.Sprintf("user:%d", user.ID)
	}
	return "ip:" + c.ClientIP()
}
