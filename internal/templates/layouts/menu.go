package layouts

import "github.com/molinar-iot/setup-dashboard/internal/i18n"

// Route identifies one entry of the dashboard sidebar.
type Route int

const (
	RouteNone Route = iota
	RouteDashboard
	RouteWiFi
	RouteSettings
	RouteUpdate
)

// MenuItem is the display metadata for a Route.
type MenuItem struct {
	Route Route
	Path  string
	Label i18n.Key
	Icon  string
}

// menu is the sidebar in display order.
var menu = []MenuItem{
	{Route: RouteDashboard, Path: "/app/dashboard", Label: i18n.MenuDashboard, Icon: "home"},
	{Route: RouteWiFi, Path: "/app/wifi", Label: i18n.MenuWiFi, Icon: "wifi"},
	{Route: RouteSettings, Path: "/app/settings", Label: i18n.MenuSettings, Icon: "settings"},
	{Route: RouteUpdate, Path: "/app/update", Label: i18n.MenuUpdate, Icon: "upload"},
}

// Item returns the metadata for r.
func Item(r Route) (MenuItem, bool) {
	for _, m := range menu {
		if m.Route == r {
			return m, true
		}
	}
	return MenuItem{}, false
}

// Path returns the URL of r, or "/app/dashboard" for unknown routes.
func (r Route) Path() string {
	if m, ok := Item(r); ok {
		return m.Path
	}
	return "/app/dashboard"
}

// MenuEntry is a MenuItem rendered for one language and active route.
type MenuEntry struct {
	Path   string
	Label  string
	Icon   string
	Active bool
}

// Menu returns the sidebar entries for lang with active highlighted.
func Menu(lang i18n.Language, active Route) []MenuEntry {
	out := make([]MenuEntry, 0, len(menu))
	for _, m := range menu {
		out = append(out, MenuEntry{
			Path:   m.Path,
			Label:  i18n.T(lang, m.Label),
			Icon:   m.Icon,
			Active: m.Route == active,
		})
	}
	return out
}

// Title returns the header title for active, the localized menu label.
func Title(lang i18n.Language, active Route) string {
	if m, ok := Item(active); ok {
		return i18n.T(lang, m.Label)
	}
	return i18n.T(lang, i18n.MenuDashboard)
}
