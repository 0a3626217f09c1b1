// Package app is the application bootstrap and dependency injection root.
// It holds the shared infrastructure (session manager, device client,
// settings repository, Echo instance) and wires the plugins together.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/securecookie"
	"github.com/labstack/echo/v4"

	"github.com/molinar-iot/setup-dashboard/internal/apperror"
	"github.com/molinar-iot/setup-dashboard/internal/config"
	"github.com/molinar-iot/setup-dashboard/internal/device"
	"github.com/molinar-iot/setup-dashboard/internal/middleware"
	"github.com/molinar-iot/setup-dashboard/internal/plugins/auth"
	"github.com/molinar-iot/setup-dashboard/internal/plugins/settings"
	"github.com/molinar-iot/setup-dashboard/internal/session"
	"github.com/molinar-iot/setup-dashboard/internal/templates"
)

// App holds all shared dependencies and the Echo HTTP server instance.
// Created once at startup in main.go and used to register all routes.
type App struct {
	// Config holds the loaded application configuration.
	Config *config.Config

	// Sessions resolves each browser's persisted state.
	Sessions *session.Manager

	// Codec signs the client cookie.
	Codec *securecookie.SecureCookie

	// Device talks to the telemetry unit's API.
	Device *device.Client

	// Settings stores the settings tabs; Sealer protects their secrets.
	Settings settings.SettingsRepository
	Sealer   *settings.Sealer

	// Echo is the HTTP server instance.
	Echo *echo.Echo
}

// Deps are the services main.go builds before the App.
type Deps struct {
	Sessions *session.Manager
	Codec    *securecookie.SecureCookie
	Device   *device.Client
	Settings settings.SettingsRepository
	Sealer   *settings.Sealer
}

// New creates the App and configures Echo with global middleware and
// error handling.
func New(cfg *config.Config, deps Deps) (*App, error) {
	e := echo.New()

	// We log our own startup line.
	e.HideBanner = true
	e.HidePort = true

	if err := middleware.TrustedProxies(e, cfg.TrustedProxies); err != nil {
		return nil, err
	}

	app := &App{
		Config:   cfg,
		Sessions: deps.Sessions,
		Codec:    deps.Codec,
		Device:   deps.Device,
		Settings: deps.Settings,
		Sealer:   deps.Sealer,
		Echo:     e,
	}

	app.setupMiddleware()
	e.HTTPErrorHandler = app.errorHandler

	return app, nil
}

// setupMiddleware registers global middleware on the Echo instance.
// Order matters: outermost (recovery) runs first, innermost (CSRF) runs last.
func (a *App) setupMiddleware() {
	// Panic recovery must be outermost to catch panics from all other middleware.
	a.Echo.Use(middleware.Recovery())
	a.Echo.Use(middleware.RequestLogger())
	a.Echo.Use(middleware.SecurityHeaders())

	// Client identity before CSRF so rejected requests still get a cookie.
	a.Echo.Use(session.Middleware(a.Sessions, a.Codec, !a.Config.IsDevelopment()))

	// CSRF: double-submit cookie on all state-changing requests.
	a.Echo.Use(middleware.CSRF())
}

// errorView is the data the error page renders.
type errorView struct {
	Code    int
	Message string
}

// errorHandler is the custom Echo error handler. It maps domain errors
// (AppError) to HTTP responses: JSON for API requests, a login redirect
// for 401s, and the rendered error page otherwise.
//
// For HTMX partial requests that hit errors, we set HX-Retarget and
// HX-Reswap headers so the error page replaces the full body instead of
// being swapped into a partial target.
func (a *App) errorHandler(err error, c echo.Context) {
	// Don't double-write if response is already committed.
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := defaultErrorMessage(code)

	var appErr *apperror.AppError
	var echoErr *echo.HTTPError
	switch {
	case errors.As(err, &appErr):
		code = appErr.Code
		message = appErr.Message
		if appErr.Internal != nil {
			slog.Error("internal error",
				slog.String("type", appErr.Type),
				slog.String("message", appErr.Message),
				slog.Any("internal", appErr.Internal),
				slog.String("path", c.Request().URL.Path),
				slog.String("request_id", middleware.GetRequestID(c)),
			)
		}
	case errors.As(err, &echoErr):
		code = echoErr.Code
		if msg, ok := echoErr.Message.(string); ok {
			message = msg
		} else {
			message = defaultErrorMessage(code)
		}
	default:
		slog.Error("unhandled error",
			slog.Any("error", err),
			slog.String("path", c.Request().URL.Path),
			slog.String("request_id", middleware.GetRequestID(c)),
		)
	}

	if isAPIRequest(c) {
		_ = c.JSON(code, map[string]string{
			"error":   http.StatusText(code),
			"message": message,
		})
		return
	}

	if code == http.StatusUnauthorized {
		_ = middleware.Redirect(c, auth.LoginPath)
		return
	}

	if middleware.IsHTMX(c) {
		c.Response().Header().Set("HX-Retarget", "body")
		c.Response().Header().Set("HX-Reswap", "innerHTML")
	}

	if err := middleware.Render(c, code, templates.Page(templates.PageError, errorView{Code: code, Message: message})); err != nil {
		slog.Error("rendering error page", slog.Any("error", err))
	}
}

// defaultErrorMessage returns a user-friendly message for common HTTP status codes
// when no specific message was provided by the error.
func defaultErrorMessage(code int) string {
	switch code {
	case http.StatusBadRequest:
		return "The request was invalid or cannot be processed."
	case http.StatusForbidden:
		return "You don't have permission to perform this action."
	case http.StatusNotFound:
		return "The page you're looking for doesn't exist or has been moved."
	case http.StatusMethodNotAllowed:
		return "This action is not allowed."
	case http.StatusRequestEntityTooLarge:
		return "The upload is too large."
	case http.StatusTooManyRequests:
		return "You're making too many requests. Please slow down."
	case http.StatusBadGateway:
		return "The device sent an invalid response."
	case http.StatusGatewayTimeout:
		return "The device did not answer in time."
	default:
		return "An unexpected error occurred."
	}
}

// isAPIRequest returns true if the request is targeting the API (JSON response expected).
func isAPIRequest(c echo.Context) bool {
	return strings.HasPrefix(c.Request().URL.Path, "/api/")
}

// Start begins listening for HTTP requests on the configured port.
func (a *App) Start() error {
	addr := fmt.Sprintf(":%d", a.Config.Port)
	slog.Info("starting setup dashboard",
		slog.String("addr", addr),
		slog.String("env", a.Config.Env),
		slog.String("gateway", a.Config.Device.GatewayURL),
	)
	return a.Echo.Start(addr)
}
