package app

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/molinar-iot/setup-dashboard/internal/apperror"
	"github.com/molinar-iot/setup-dashboard/internal/i18n"
	"github.com/molinar-iot/setup-dashboard/internal/middleware"
	"github.com/molinar-iot/setup-dashboard/internal/session"
	"github.com/molinar-iot/setup-dashboard/internal/templates"
)

// dashboardView is the data the dashboard summary renders.
type dashboardView struct {
	ModeLabel string
}

// landing renders the public start page (GET /).
func (a *App) landing(c echo.Context) error {
	return middleware.Render(c, http.StatusOK, templates.Page(templates.PageLanding, nil))
}

// dashboard renders the device summary (GET /app/dashboard).
func (a *App) dashboard(c echo.Context) error {
	sess := session.FromContext(c)
	if sess == nil {
		return apperror.NewMissingContext()
	}
	st, err := sess.State(c.Request().Context())
	if err != nil {
		return apperror.NewInternal(err)
	}
	return middleware.Render(c, http.StatusOK, templates.Page(templates.PageDashboard, dashboardView{
		ModeLabel: i18n.T(st.Language, modeLabel(st.WiFiMode)),
	}))
}

func modeLabel(m session.WiFiMode) i18n.Key {
	switch m {
	case session.ModeAccessPoint:
		return i18n.ModeAccessPoint
	case session.ModeStation:
		return i18n.ModeStation
	default:
		return i18n.ModeNone
	}
}

// toggleLanguage flips the session language (POST /language/toggle).
func (a *App) toggleLanguage(c echo.Context) error {
	sess := session.FromContext(c)
	if sess == nil {
		return apperror.NewMissingContext()
	}
	if _, err := sess.ToggleLanguage(c.Request().Context()); err != nil {
		return apperror.NewInternal(err)
	}
	return middleware.Redirect(c, backTo(c))
}

// setLanguage picks a language by tag (POST /language/:lang).
func (a *App) setLanguage(c echo.Context) error {
	sess := session.FromContext(c)
	if sess == nil {
		return apperror.NewMissingContext()
	}
	lang, ok := i18n.Parse(c.Param("lang"))
	if !ok {
		return apperror.NewBadRequest("unsupported language")
	}
	if err := sess.SetLanguage(c.Request().Context(), lang); err != nil {
		return apperror.NewInternal(err)
	}
	return middleware.Redirect(c, backTo(c))
}

// backTo returns the referring page when it belongs to this site, else
// the landing page.
func backTo(c echo.Context) string {
	ref, err := url.Parse(c.Request().Referer())
	if err != nil || ref.Host != c.Request().Host || ref.Path == "" {
		return "/"
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}
