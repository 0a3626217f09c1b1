package update

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/molinar-iot/setup-dashboard/internal/apperror"
	"github.com/molinar-iot/setup-dashboard/internal/deploy"
	"github.com/molinar-iot/setup-dashboard/internal/i18n"
	"github.com/molinar-iot/setup-dashboard/internal/middleware"
	"github.com/molinar-iot/setup-dashboard/internal/session"
	"github.com/molinar-iot/setup-dashboard/internal/templates"
)

// Handler handles the update manager page.
type Handler struct {
	service UpdateService
}

// NewHandler creates a new update handler.
func NewHandler(service UpdateService) *Handler {
	return &Handler{service: service}
}

// Page renders the upload form (GET /app/update).
func (h *Handler) Page(c echo.Context) error {
	return middleware.Render(c, http.StatusOK, templates.Page(templates.PageUpdate, PageView{}))
}

// Upload receives a bundle and pushes it to the device (POST /app/update).
func (h *Handler) Upload(c echo.Context) error {
	sess := session.FromContext(c)
	if sess == nil {
		return apperror.NewMissingContext()
	}
	lang := i18n.Default
	if st, err := sess.State(c.Request().Context()); err == nil {
		lang = st.Language
	}

	view := PageView{Include: c.FormValue("include"), Exclude: c.FormValue("exclude")}
	render := func(status int) error {
		return middleware.Render(c, status, templates.Page(templates.PageUpdate, view))
	}

	fh, err := c.FormFile("bundle")
	if err != nil {
		view.Error = i18n.T(lang, i18n.UpdateErrNoFile)
		return render(http.StatusBadRequest)
	}
	if fh.Size > deploy.MaxBundleSize {
		view.Error = i18n.T(lang, i18n.UpdateErrTooLarge)
		return render(http.StatusRequestEntityTooLarge)
	}
	f, err := fh.Open()
	if err != nil {
		return apperror.NewBadRequest("unreadable upload")
	}
	defer f.Close()

	res, err := h.service.Push(c.Request().Context(), sess, fh.Filename, f, fh.Size, PushInput{
		Include: deploy.SplitPatterns(view.Include),
		Exclude: deploy.SplitPatterns(view.Exclude),
	})
	var ue *UpdateError
	if errors.As(err, &ue) {
		view.Error = i18n.T(lang, ue.Key)
		return render(http.StatusUnprocessableEntity)
	}
	if res == nil {
		return apperror.NewInternal(err)
	}

	for _, fr := range res.Files {
		fv := FileView{Path: fr.Path, Size: deploy.FormatSize(fr.Size)}
		if fr.Err != nil {
			fv.Err = fr.Err.Error()
		}
		view.Files = append(view.Files, fv)
	}
	view.Failed = res.Failed > 0
	if view.Failed {
		view.Summary = fmt.Sprintf(i18n.T(lang, i18n.UpdateDoneWithErrors), res.Failed, res.Uploaded, res.Failed)
	} else {
		view.Summary = fmt.Sprintf(i18n.T(lang, i18n.UpdateDone), res.Uploaded)
	}
	if err != nil {
		view.Error = apperror.SafeMessage(err)
	}
	return render(http.StatusOK)
}
