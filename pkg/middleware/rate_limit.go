package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/folio/folio/internal/apperr"
	"github.com/folio/folio/pkg/metrics"
)

// Limiter decides whether one more event for key is allowed.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
	Name() string
}

// MemoryLimiter holds one token bucket per key.
type MemoryLimiter struct {
	rps   float64
	burst int
	store sync.Map // map[string]*rate.Limiter
}

// NewMemoryLimiter allows rps events per second with bursts of burst.
func NewMemoryLimiter(rps float64, burst int) *MemoryLimiter {
	return &MemoryLimiter{rps: rps, burst: burst}
}

func (m *MemoryLimiter) Name() string { return "memory" }

func (m *MemoryLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	v, _ := m.store.LoadOrStore(key, rate.NewLimiter(rate.Limit(m.rps), m.burst))
	if v.(*rate.Limiter).Allow() {
		return true, 0, nil
	}
	retry := time.Second
	if m.rps > 0 {
		retry = time.Duration(float64(time.Second) / m.rps)
	}
	return false, retry, nil
}

// requestKey prefers the authenticated subject (NAT friendly) and falls back to the client IP.
func requestKey(c *gin.Context) string {
	if sub := c.GetString(UserIDKey); sub != "" {
		return "sub:" + sub
	}
	if v, ok := c.Get(ClaimsKey); ok {
		if cm, ok := v.(map[string]interface{}); ok {
			if sub, ok := cm["sub"].(string); ok && sub != "" {
				return "sub:" + sub
			}
		}
	}
	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	return "ip:" + ip
}

// RateLimit rejects requests over the limit with 429. Buckets are separate per scope.
func RateLimit(scope string, l Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := scope + ":" + requestKey(c)
		ok, retry, err := l.Allow(c.Request.Context(), key)
		if err != nil {
			apperr.Respond(c, apperr.E(apperr.CodeUnavailable, "RateLimit", "Rate limit check failed", err))
			return
		}
		if !ok {
			secs := int(retry.Round(time.Second).Seconds())
			if secs < 1 {
				secs = 1
			}
			c.Header("Retry-After", strconv.Itoa(secs))
			metrics.RateLimitRejected.WithLabelValues(l.Name(), scope).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apperr.Body{Code: "RATE_LIMITED", Message: "Rate limit exceeded"})
			return
		}
		metrics.RateLimitAllowed.WithLabelValues(l.Name(), scope).Inc()
		c.Next()
	}
}

// RateLimitMiddleware is the in-memory token bucket limiter for one scope.
func RateLimitMiddleware(scope string, rps float64, burst int) gin.HandlerFunc {
	return RateLimit(scope, NewMemoryLimiter(rps, burst))
}
