// Package middleware provides the dashboard's Echo middleware: request
// logging, panic recovery, security headers, CSRF, rate limiting, trusted
// proxy handling, and the page render helper. Registration order lives in
// internal/app/routes.go.
package middleware

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "request_id"

// RequestLogger assigns every request an ID and logs method, path, status,
// latency and remote IP once the handler returns. 5xx log at error, 4xx at
// warn, the rest at info; /metrics and /healthz scrapes log at debug.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			id := req.Header.Get(RequestIDHeader)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}
			c.Set(requestIDKey, id)
			c.Response().Header().Set(RequestIDHeader, id)

			err := next(c)
			if err != nil {
				// Let the error handler write the status before it is logged.
				c.Error(err)
			}

			res := c.Response()
			attrs := []slog.Attr{
				slog.String("request_id", id),
				slog.String("method", req.Method),
				slog.String("path", req.URL.Path),
				slog.Int("status", res.Status),
				slog.Duration("latency", time.Since(start)),
				slog.String("remote_ip", c.RealIP()),
			}

			level := slog.LevelInfo
			switch {
			case res.Status >= 500:
				level = slog.LevelError
			case res.Status >= 400:
				level = slog.LevelWarn
			case req.URL.Path == "/metrics" || req.URL.Path == "/healthz":
				level = slog.LevelDebug
			}
			slog.LogAttrs(req.Context(), level, "request", attrs...)

			return nil
		}
	}
}

// GetRequestID returns the ID RequestLogger assigned, or "".
func GetRequestID(c echo.Context) string {
	id, _ := c.Get(requestIDKey).(string)
	return id
}
