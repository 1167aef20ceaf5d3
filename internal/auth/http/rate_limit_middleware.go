package http

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	apperrors "github.com/allisson/coffeeshop/internal/errors"
	"github.com/allisson/coffeeshop/internal/httputil"
)

const (
	// limiterIdleTTL is how long an unused bucket is kept.
	limiterIdleTTL = time.Hour
	// limiterSweepInterval is the minimum time between sweeps of idle buckets.
	limiterSweepInterval = 5 * time.Minute
)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// keyedLimiter hands out one token bucket per key. Idle buckets are swept
// while serving requests, so no background goroutine is needed.
type keyedLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

func newKeyedLimiter(rps float64, burst int) *keyedLimiter {
	return &keyedLimiter{
		buckets:   make(map[string]*bucket),
		limit:     rate.Limit(rps),
		burst:     burst,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// reserve takes a token for key. It returns zero when the request may proceed,
// otherwise how long the caller should wait before retrying.
func (k *keyedLimiter) reserve(key string) time.Duration {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	if now.Sub(k.lastSweep) >= limiterSweepInterval {
		k.sweep(now.Add(-limiterIdleTTL))
		k.lastSweep = now
	}

	b, ok := k.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(k.limit, k.burst)}
		k.buckets[key] = b
	}
	b.lastSeen = now

	if b.limiter.AllowN(now, 1) {
		return 0
	}

	r := b.limiter.ReserveN(now, 1)
	defer r.CancelAt(now)
	if !r.OK() {
		return time.Second
	}
	return r.DelayFrom(now)
}

func (k *keyedLimiter) sweep(cutoff time.Time) {
	for key, b := range k.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(k.buckets, key)
		}
	}
}

func (k *keyedLimiter) handle(c *gin.Context, attr, key string, logger *slog.Logger) {
	wait := k.reserve(key)
	if wait == 0 {
		c.Next()
		return
	}

	retryAfter := max(1, int(math.Ceil(wait.Seconds())))
	logger.Debug("rate limit exceeded", slog.String(attr, key), slog.Int("retry_after", retryAfter))

	c.Header("Retry-After", strconv.Itoa(retryAfter))
	httputil.AbortWithStatus(c, http.StatusTooManyRequests)
}

// RateLimitMiddleware limits requests per token subject. It must run after
// RequiresAuth, which stores the verified claims.
func RateLimitMiddleware(rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	limiter := newKeyedLimiter(rps, burst)

	return func(c *gin.Context) {
		claims, ok := GetClaims(c.Request.Context())
		if !ok {
			logger.Error("rate limit middleware: no verified claims in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			return
		}
		limiter.handle(c, "subject", claims.Subject, logger)
	}
}

// IPRateLimitMiddleware limits requests per client IP, as resolved by gin's
// ClientIP, for endpoints reachable without a token.
func IPRateLimitMiddleware(rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	limiter := newKeyedLimiter(rps, burst)

	return func(c *gin.Context) {
		limiter.handle(c, "client_ip", c.ClientIP(), logger)
	}
}
