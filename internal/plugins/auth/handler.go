package auth

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/molinar-iot/setup-dashboard/internal/apperror"
	"github.com/molinar-iot/setup-dashboard/internal/i18n"
	"github.com/molinar-iot/setup-dashboard/internal/middleware"
	"github.com/molinar-iot/setup-dashboard/internal/session"
	"github.com/molinar-iot/setup-dashboard/internal/templates"
)

// Handler handles the login and logout requests. Handlers are thin: they
// bind the form, call the service, and render or redirect.
type Handler struct {
	service AuthService
	gateway string
}

// NewHandler creates a new auth handler. gateway is the access-point
// address shown next to the mode choice.
func NewHandler(service AuthService, gateway string) *Handler {
	return &Handler{service: service, gateway: gateway}
}

// LoginForm renders the login page (GET /auth/login). The previous device
// association preselects the mode.
func (h *Handler) LoginForm(c echo.Context) error {
	sess := session.FromContext(c)
	if sess == nil {
		return apperror.NewMissingContext()
	}

	view := LoginView{Mode: string(session.ModeAccessPoint), Gateway: h.gateway}
	if st, err := sess.State(c.Request().Context()); err == nil && st.WiFiMode == session.ModeStation {
		view.Mode = string(session.ModeStation)
		view.IPAddress = st.IPAddress
	}
	return middleware.Render(c, http.StatusOK, templates.Page(templates.PageLogin, view))
}

// Login processes the login form (POST /auth/login).
func (h *Handler) Login(c echo.Context) error {
	sess := session.FromContext(c)
	if sess == nil {
		return apperror.NewMissingContext()
	}

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	input := LoginInput{
		Password:  req.Password,
		Mode:      parseMode(req.WiFiMode),
		IPAddress: req.IPAddress,
	}

	ctx := c.Request().Context()
	if err := h.service.Login(ctx, sess, input); err != nil {
		lang := i18n.Default
		if st, stErr := sess.State(ctx); stErr == nil {
			lang = st.Language
		}
		view := LoginView{
			Mode:      string(input.Mode),
			IPAddress: input.IPAddress,
			Gateway:   h.gateway,
			Error:     i18n.T(lang, LoginKey(err)),
		}
		page := templates.PageLogin
		if middleware.IsHTMX(c) {
			page = templates.PageLoginForm
		}
		return middleware.Render(c, http.StatusOK, templates.Page(page, view))
	}

	return middleware.Redirect(c, DashboardPath)
}

// Logout ends the device session and forgets the device (POST /app/logout,
// POST /logout). Device errors never block the local logout.
func (h *Handler) Logout(c echo.Context) error {
	sess := session.FromContext(c)
	if sess == nil {
		return apperror.NewMissingContext()
	}

	if err := h.service.Logout(c.Request().Context(), sess); err != nil {
		slog.Error("clearing session on logout failed", slog.Any("error", err))
		return apperror.NewInternal(err)
	}
	return middleware.Redirect(c, LoginPath)
}

// LogoutConfirm renders a confirmation form (GET /logout). Logging out
// changes state, so it only happens on the CSRF-checked POST.
func (h *Handler) LogoutConfirm(c echo.Context) error {
	return middleware.Render(c, http.StatusOK, templates.Page(templates.PageLogout, nil))
}

// LegacyLogin keeps the old /login bookmark working.
func (h *Handler) LegacyLogin(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, LoginPath)
}
