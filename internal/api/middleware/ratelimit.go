package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"hiring-pipeline/internal/config"
	"hiring-pipeline/pkg/models"

	"github.com/labstack/echo/v4"
)

// ipLimiter tracks a token bucket per client IP. Entries idle past
// limiterTTL are evicted on the next sweep.
type ipLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	limit    rate.Limit
	burst    int
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const limiterTTL = 10 * time.Minute

func newIPLimiter(requestsPerMinute, burst int) *ipLimiter {
	l := &ipLimiter{
		limiters: make(map[string]*limiterEntry),
		limit:    rate.Limit(float64(requestsPerMinute) / 60.0),
		burst:    burst,
	}
	go l.sweep()
	return l
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.limiters[ip]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter.Allow()
}

func (l *ipLimiter) sweep() {
	ticker := time.NewTicker(limiterTTL)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-limiterTTL)
		l.mu.Lock()
		for ip, entry := range l.limiters {
			if entry.lastSeen.Before(cutoff) {
				delete(l.limiters, ip)
			}
		}
		l.mu.Unlock()
	}
}

// RateLimit returns per-IP rate limiting middleware for submission endpoints
func RateLimit(cfg *config.Config) echo.MiddlewareFunc {
	limiter := newIPLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.allow(c.RealIP()) {
				return c.JSON(http.StatusTooManyRequests, models.ErrorResponse{
					Error:     "rate_limited",
					Message:   "Too many applications from this address, try again later",
					Timestamp: time.Now(),
				})
			}
			return next(c)
		}
	}
}
