package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	RedisClient *redis.Client
	ctx         = context.Background()
)

// InitRedis initializes the Redis connection
func InitRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "localhost:6379"
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr:         redisURL,
		Password:     os.Getenv("REDIS_PASSWORD"),
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := RedisClient.Ping(pingCtx).Result(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return nil
}

// CloseRedis closes the Redis connection
func CloseRedis() error {
	if RedisClient != nil {
		return RedisClient.Close()
	}
	return nil
}

// IsRedisAvailable checks if Redis is connected. Everything backed by Redis
// degrades to a no-op when it is not: caching disappears, rate limits stop
// being enforced, the API itself keeps working.
func IsRedisAvailable() bool {
	if RedisClient == nil {
		return false
	}
	_, err := RedisClient.Ping(ctx).Result()
	return err == nil
}

// ==================== CACHE KEYS ====================

const (
	// Review list caching, keyed per movie
	ReviewsCachePrefix = "reviews:movie:" // reviews:movie:123

	// Rate limiting, one namespace per quota tier
	RateLimitPrefix = "ratelimit:" // ratelimit:<scope>:<identity>
)

// ==================== GENERIC CACHE OPERATIONS ====================

// Set stores any value in cache with TTL
func Set(key string, value interface{}, ttl time.Duration) error {
	if !IsRedisAvailable() {
		return fmt.Errorf("redis not available")
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return RedisClient.Set(ctx, key, data, ttl).Err()
}

// Get retrieves a value from cache into dest
func Get(key string, dest interface{}) error {
	if !IsRedisAvailable() {
		return fmt.Errorf("redis not available")
	}

	val, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return fmt.Errorf("cache miss")
	}
	if err != nil {
		return fmt.Errorf("failed to get value: %w", err)
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return fmt.Errorf("failed to unmarshal value: %w", err)
	}

	return nil
}

// Delete removes a key from cache
func Delete(key string) error {
	if !IsRedisAvailable() {
		return nil
	}
	return RedisClient.Del(ctx, key).Err()
}

// ==================== REVIEW LIST CACHING ====================

// GetReviews loads the cached review list for a movie into dest
func GetReviews(movieID uint, dest interface{}) error {
	return Get(fmt.Sprintf("%s%d", ReviewsCachePrefix, movieID), dest)
}

// SetReviews caches the review list for a movie for 5 minutes
func SetReviews(movieID uint, reviews interface{}) error {
	return Set(fmt.Sprintf("%s%d", ReviewsCachePrefix, movieID), reviews, 5*time.Minute)
}

// InvalidateReviews drops the cached review list for a movie
func InvalidateReviews(movieID uint) error {
	return Delete(fmt.Sprintf("%s%d", ReviewsCachePrefix, movieID))
}

// ==================== RATE LIMITING ====================

// CheckRateLimit counts a request against a fixed window quota. The first
// hit in a window creates the counter with the window as its TTL; each later
// hit increments it. Returns whether the request is allowed and how much of
// the quota remains.
func CheckRateLimit(key string, maxRequests int, window time.Duration) (bool, int, error) {
	// INCR and EXPIRE travel in one pipeline so a crash between them can
	// never leave a counter without an expiry; ExpireNX keeps the window
	// started by the first request in place on later hits.
	pipe := RedisClient.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("failed to count rate limit request: %w", err)
	}

	count := incr.Val()
	remaining := maxRequests - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return count <= int64(maxRequests), remaining, nil
}
