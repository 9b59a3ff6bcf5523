package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a coarse fixed-window limiter shared between instances.
// INCR a per-window key and compare against allowed = floor(rps*windowSeconds)+burst.
type RedisLimiter struct {
	client  *redis.Client
	window  int64
	allowed int64
	now     func() time.Time
}

func NewRedisLimiter(client *redis.Client, rps float64, burst int, window time.Duration) *RedisLimiter {
	windowSeconds := int64(window.Seconds())
	if windowSeconds <= 0 {
		windowSeconds = 1
	}
	return &RedisLimiter{
		client:  client,
		window:  windowSeconds,
		allowed: int64(rps*float64(windowSeconds)) + int64(burst),
		now:     time.Now,
	}
}

func (r *RedisLimiter) Name() string { return "redis" }

func (r *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	redisKey := windowKey(key, r.now().Unix()/r.window)
	cnt, err := r.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, 0, err
	}
	if cnt == 1 {
		_ = r.client.Expire(ctx, redisKey, time.Duration(r.window+1)*time.Second).Err()
	}
	if cnt > r.allowed {
		return false, time.Duration(r.window) * time.Second, nil
	}
	return true, 0, nil
}

// RedisRateLimitMiddleware falls back to the in-memory limiter without a client.
func RedisRateLimitMiddleware(scope string, client *redis.Client, rps float64, burst int, window time.Duration) gin.HandlerFunc {
	if client == nil {
		return RateLimitMiddleware(scope, rps, burst)
	}
	return RateLimit(scope, NewRedisLimiter(client, rps, burst, window))
}

func windowKey(key string, bucket int64) string { return fmt.Sprintf("rl:%s:%d", key, bucket) }
