package middleware

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// LayoutInjector copies page-chrome data (language, CSRF token, active
// menu route, device host) from the Echo context into the Go context the
// page components render with. Registered once in app/routes.go so this
// package never imports session or plugin types.
var LayoutInjector func(echo.Context, context.Context) context.Context

// IsHTMX reports whether the request came from HTMX and is not a boosted
// navigation. Boosted requests expect full pages.
func IsHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true" &&
		c.Request().Header.Get("HX-Boosted") != "true"
}

// Redirect sends a 303 for browsers and an HX-Redirect header for HTMX, so
// the guarded URL is replaced rather than pushed onto history.
func Redirect(c echo.Context, location string) error {
	if c.Request().Header.Get("HX-Request") == "true" {
		c.Response().Header().Set("HX-Redirect", location)
		return c.NoContent(http.StatusNoContent)
	}
	return c.Redirect(http.StatusSeeOther, location)
}

// Render writes component with statusCode after running LayoutInjector.
func Render(c echo.Context, statusCode int, component templ.Component) error {
	ctx := c.Request().Context()
	if LayoutInjector != nil {
		ctx = LayoutInjector(c, ctx)
	}

	c.Response().Header().Set("Content-Type", "text/html; charset=utf-8")
	c.Response().WriteHeader(statusCode)
	return component.Render(ctx, c.Response().Writer)
}
