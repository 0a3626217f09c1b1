package settings

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/molinar-iot/setup-dashboard/internal/apperror"
	"github.com/molinar-iot/setup-dashboard/internal/i18n"
	"github.com/molinar-iot/setup-dashboard/internal/middleware"
	"github.com/molinar-iot/setup-dashboard/internal/session"
	"github.com/molinar-iot/setup-dashboard/internal/templates"
)

// basePath is where the settings pages are mounted.
const basePath = "/app/settings"

// Handler handles the settings pages.
type Handler struct {
	service SettingsService
}

// NewHandler creates a new settings handler.
func NewHandler(service SettingsService) *Handler {
	return &Handler{service: service}
}

// Index sends the bare settings URL to the first tab (GET /app/settings).
func (h *Handler) Index(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, basePath+"/"+TabIdentity.Slug())
}

// Show renders one tab (GET /app/settings/:tab).
func (h *Handler) Show(c echo.Context) error {
	tab, err := tabParam(c)
	if err != nil {
		return err
	}

	values, err := h.service.Values(c.Request().Context(), tab)
	if err != nil {
		return err
	}

	lang := language(c)
	view := buildView(lang, tab, values, nil)
	view.Saved = c.QueryParam("saved") == "1"
	return middleware.Render(c, http.StatusOK, templates.Page(templates.PageSettings, view))
}

// Update saves one tab (POST /app/settings/:tab). Invalid input renders
// the form again with the submitted values and per-field messages.
func (h *Handler) Update(c echo.Context) error {
	tab, err := tabParam(c)
	if err != nil {
		return err
	}

	params, err := c.FormParams()
	if err != nil {
		return apperror.NewBadRequest("invalid form")
	}
	form := make(map[string]string, len(schema[tab].fields))
	for _, f := range schema[tab].fields {
		form[f.name] = params.Get(f.name)
	}

	errs, err := h.service.Save(c.Request().Context(), tab, form)
	if err != nil {
		return err
	}
	if len(errs) > 0 {
		view := buildView(language(c), tab, form, errs)
		return middleware.Render(c, http.StatusUnprocessableEntity, templates.Page(templates.PageSettings, view))
	}
	return middleware.Redirect(c, basePath+"/"+tab.Slug()+"?saved=1")
}

func tabParam(c echo.Context) (Tab, error) {
	tab, ok := ParseTab(c.Param("tab"))
	if !ok {
		return 0, apperror.NewNotFound(i18n.T(language(c), i18n.SettingsErrUnknownTab))
	}
	return tab, nil
}

func language(c echo.Context) i18n.Language {
	sess := session.FromContext(c)
	if sess == nil {
		return i18n.Default
	}
	st, err := sess.State(c.Request().Context())
	if err != nil {
		return i18n.Default
	}
	return st.Language
}

// buildView lays out tab's form. Secret values are never echoed back; a
// stored secret shows a hint that leaving the field empty keeps it.
func buildView(lang i18n.Language, tab Tab, values map[string]string, errs FieldErrors) PageView {
	view := PageView{
		Heading: i18n.T(lang, tab.Heading()),
		Slug:    tab.Slug(),
	}
	for _, t := range allTabs {
		view.Tabs = append(view.Tabs, TabView{
			Slug:   t.Slug(),
			Label:  i18n.T(lang, t.Label()),
			Active: t == tab,
		})
	}

	for _, f := range schema[tab].fields {
		value := values[f.name]
		fv := FieldView{
			Name:        f.name,
			Label:       i18n.T(lang, f.label),
			Type:        string(f.kind),
			Value:       value,
			Placeholder: f.placeholder,
		}
		if key, ok := errs[f.name]; ok {
			fv.Error = i18n.T(lang, key)
		}
		switch f.kind {
		case kindCheckbox:
			fv.Checked = value == "true"
		case kindSelect:
			for _, o := range f.options {
				label := o.value
				if o.label != "" {
					label = i18n.T(lang, o.label)
				}
				fv.Options = append(fv.Options, OptionView{Value: o.value, Label: label, Selected: o.value == value})
			}
		}
		if f.secret {
			fv.Value = ""
			if value != "" {
				fv.Placeholder = i18n.T(lang, i18n.SettingsSecretUnchanged)
			}
		}
		view.Fields = append(view.Fields, fv)
	}
	return view
}
