// Package templates holds the dashboard's pages and static assets. Pages
// are html/template files embedded in the binary and exposed as
// templ.Component so handlers render them through middleware.Render like
// any other component.
package templates

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/a-h/templ"

	"github.com/molinar-iot/setup-dashboard/internal/templates/layouts"
)

//go:embed pages/*.html
var pageFS embed.FS

//go:embed static
var staticFS embed.FS

// Page names, one per top-level template.
const (
	PageLanding   = "landing"
	PageLogin     = "login"
	PageLoginForm = "login_form"
	PageDashboard = "dashboard"
	PageWiFi      = "wifi"
	PageSettings  = "settings"
	PageUpdate    = "update"
	PageError     = "error"
	PageLogout    = "logout"
)

var pages = template.Must(template.New("pages").ParseFS(pageFS, "pages/*.html"))

// View is what every page template receives: the shared frame read from
// the request context plus the page's own data.
type View struct {
	layouts.Chrome
	Data any
}

// Page returns the named page as a component. The frame data is read from
// the render context, so layout middleware must have run.
func Page(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t := pages.Lookup(name)
		if t == nil {
			return fmt.Errorf("page %q not found", name)
		}
		return templ.FromGoHTML(t, View{Chrome: layouts.ChromeFrom(ctx), Data: data}).Render(ctx, w)
	})
}

// Static returns the embedded asset tree rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
