// Package httpkit provides HTTP middleware infrastructure.
// This is part of the platform layer and contains no business logic.
package httpkit

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"skrytki/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	// HeaderRequestID carries the request id in both directions.
	HeaderRequestID = "X-Request-ID"
	// ContextRequestIDKey is the gin context key for the request id.
	ContextRequestIDKey = "requestID"
)

// RequestID assigns every request an id, reusing a sane incoming one.
// The id is stored on the gin context and on the request context so that
// logger.WithContext picks it up.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.Set(ContextRequestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), logger.RequestIDKey, id))

		c.Next()
	}
}

// RequestLogger logs HTTP requests with timing, and errors attached by
// handlers via c.Error.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		clientIP := c.ClientIP()
		reqLog := log.WithContext(c.Request.Context())

		if len(c.Errors) > 0 && status >= http.StatusInternalServerError {
			reqLog.HTTPError(c.Request.Method, path, status, c.Errors.Last().Err, clientIP)
			return
		}
		reqLog.HTTPRequest(c.Request.Method, path, status, float64(latency.Milliseconds()), clientIP)
	}
}

// SecurityHeaders adds security headers to responses.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", "default-src 'self'")

		if c.Request.TLS != nil {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}

// limiterIdleTTL is how long a client's limiter survives without requests.
const limiterIdleTTL = 10 * time.Minute

// IPRateLimiter manages per-IP rate limiters. Limiters of clients idle for
// longer than idleTTL are dropped by a sweep that runs at most once per
// idleTTL, on the request path.
type IPRateLimiter struct {
	limiters sync.Map
	rate     rate.Limit
	burst    int
	log      *logger.Logger

	idleTTL   time.Duration
	now       func() time.Time
	lastSweep atomic.Int64
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

// NewIPRateLimiter creates a new IP-based rate limiter.
func NewIPRateLimiter(r rate.Limit, burst int, log *logger.Logger) *IPRateLimiter {
	l := &IPRateLimiter{
		rate:    r,
		burst:   burst,
		log:     log,
		idleTTL: limiterIdleTTL,
		now:     time.Now,
	}
	l.lastSweep.Store(l.now().UnixNano())
	return l
}

func (i *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	now := i.now().UnixNano()
	i.sweep(now)

	v, ok := i.limiters.Load(ip)
	if !ok {
		v, _ = i.limiters.LoadOrStore(ip, &visitor{limiter: rate.NewLimiter(i.rate, i.burst)})
	}
	vis := v.(*visitor)
	vis.lastSeen.Store(now)
	return vis.limiter
}

// sweep removes idle limiters. Only one caller per interval does the work.
func (i *IPRateLimiter) sweep(now int64) {
	last := i.lastSweep.Load()
	if now-last < int64(i.idleTTL) || !i.lastSweep.CompareAndSwap(last, now) {
		return
	}

	cutoff := now - int64(i.idleTTL)
	i.limiters.Range(func(key, value any) bool {
		if value.(*visitor).lastSeen.Load() < cutoff {
			i.limiters.Delete(key)
		}
		return true
	})
}

// RateLimit returns a middleware that rate limits by IP. A non-positive rate
// disables limiting.
func (i *IPRateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if i.rate <= 0 {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if !i.getLimiter(ip).Allow() {
			if i.log != nil {
				i.log.RateLimitExceeded(ip, c.Request.URL.Path)
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{Error: "rate limit exceeded"})
			return
		}

		c.Next()
	}
}
