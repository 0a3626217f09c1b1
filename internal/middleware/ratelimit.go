package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// rateWindow counts one IP's requests in a fixed window.
type rateWindow struct {
	count int
	start time.Time
}

// rateLimiter is a fixed-window per-IP counter.
type rateLimiter struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	now     func() time.Time
	entries map[string]*rateWindow
	sweep   time.Time
}

func newRateLimiter(max int, window time.Duration, now func() time.Time) *rateLimiter {
	return &rateLimiter{
		max:     max,
		window:  window,
		now:     now,
		entries: make(map[string]*rateWindow),
		sweep:   now(),
	}
}

// allow records one request from ip and reports whether it is within the
// limit. Expired windows are swept at most once per window.
func (l *rateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.sweep) > l.window {
		for k, w := range l.entries {
			if now.Sub(w.start) > l.window {
				delete(l.entries, k)
			}
		}
		l.sweep = now
	}

	w, ok := l.entries[ip]
	if !ok || now.Sub(w.start) > l.window {
		l.entries[ip] = &rateWindow{count: 1, start: now}
		return true
	}
	w.count++
	return w.count <= l.max
}

// RateLimit allows maxRequests per client IP per window and answers 429
// beyond that. Login uses it against password guessing.
func RateLimit(maxRequests int, window time.Duration) echo.MiddlewareFunc {
	return rateLimitWith(newRateLimiter(maxRequests, window, time.Now))
}

func rateLimitWith(l *rateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !l.allow(c.RealIP()) {
				c.Response().Header().Set("Retry-After", retryAfter(l.window))
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many attempts, try again later")
			}
			return next(c)
		}
	}
}

func retryAfter(d time.Duration) string {
	secs := int(d.Seconds())
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
