package auth

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/molinar-iot/setup-dashboard/internal/middleware"
)

// RegisterRoutes mounts the login pages behind RequireGuest and the logout
// endpoints. Logout is outside RequireAuth so a stale token can still log
// out and forget the device.
//
// Login is rate-limited to 10 attempts per IP per minute.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	guest := e.Group("/auth", RequireGuest())
	guest.GET("/login", h.LoginForm)
	guest.POST("/login", h.Login, middleware.RateLimit(10, time.Minute))

	e.GET("/login", h.LegacyLogin)
	e.GET("/logout", h.LogoutConfirm)
	e.POST("/logout", h.Logout)
	e.POST("/app/logout", h.Logout)
}
