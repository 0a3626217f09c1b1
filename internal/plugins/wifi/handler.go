package wifi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/molinar-iot/setup-dashboard/internal/apperror"
	"github.com/molinar-iot/setup-dashboard/internal/device"
	"github.com/molinar-iot/setup-dashboard/internal/i18n"
	"github.com/molinar-iot/setup-dashboard/internal/middleware"
	"github.com/molinar-iot/setup-dashboard/internal/session"
	"github.com/molinar-iot/setup-dashboard/internal/templates"
)

// Handler handles the wifi page.
type Handler struct {
	service WiFiService
}

// NewHandler creates a new wifi handler.
func NewHandler(service WiFiService) *Handler {
	return &Handler{service: service}
}

// Page scans and renders the network lists (GET /app/wifi). A failed scan
// still renders the page with a notice.
func (h *Handler) Page(c echo.Context) error {
	sess := session.FromContext(c)
	if sess == nil {
		return apperror.NewMissingContext()
	}

	view, err := h.scan(c, sess, PageView{})
	if err != nil {
		return err
	}
	return middleware.Render(c, http.StatusOK, templates.Page(templates.PageWiFi, view))
}

// Connect asks the device to join a network (POST /app/wifi/connect) and
// renders the page again with the outcome.
func (h *Handler) Connect(c echo.Context) error {
	sess := session.FromContext(c)
	if sess == nil {
		return apperror.NewMissingContext()
	}

	var req ConnectRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	ctx := c.Request().Context()
	lang := language(c, sess)

	var view PageView
	err := h.service.Connect(ctx, sess, ConnectInput{
		SSID:     req.SSID,
		Password: req.Password,
		Security: parseSecurity(req.Security),
	})
	switch {
	case errors.Is(err, device.ErrInvalidToken):
		return apperror.NewUnauthorized("device session expired")
	case err != nil:
		view.Error = i18n.T(lang, ConnectKey(err))
	default:
		view.Success = i18n.T(lang, i18n.WiFiConnectOK) + ": " + req.SSID
	}

	view, err = h.scan(c, sess, view)
	if err != nil {
		return err
	}
	return middleware.Render(c, http.StatusOK, templates.Page(templates.PageWiFi, view))
}

// scan fills view with a fresh scan. Only an expired device token is an
// error; anything else becomes the page notice.
func (h *Handler) scan(c echo.Context, sess *session.Session, view PageView) (PageView, error) {
	result, err := h.service.Scan(c.Request().Context(), sess)
	if err != nil {
		if errors.Is(err, device.ErrInvalidToken) {
			return view, apperror.NewUnauthorized("device session expired")
		}
		view.Notice = i18n.T(language(c, sess), i18n.WiFiScanFailed)
		return view, nil
	}
	view.Networks = result.Networks
	view.Saved = result.Saved
	return view, nil
}

func language(c echo.Context, sess *session.Session) i18n.Language {
	st, err := sess.State(c.Request().Context())
	if err != nil {
		return i18n.Default
	}
	return st.Language
}
