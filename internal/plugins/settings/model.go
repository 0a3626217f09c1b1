// Package settings edits the device configuration the dashboard keeps for
// each settings tab. Values are stored as key/value rows per tab; secrets
// are sealed before they reach the repository.
package settings

import (
	"github.com/molinar-iot/setup-dashboard/internal/i18n"
)

// Tab is one settings section.
type Tab int

const (
	TabIdentity Tab = iota
	TabNetwork
	TabWebServer
	TabServerIntegration
	TabLog
	TabUART
)

// allTabs is the display order.
var allTabs = []Tab{TabIdentity, TabNetwork, TabWebServer, TabServerIntegration, TabLog, TabUART}

// Tabs returns every tab in display order.
func Tabs() []Tab {
	return append([]Tab(nil), allTabs...)
}

var tabSlugs = map[Tab]string{
	TabIdentity:          "identity",
	TabNetwork:           "network",
	TabWebServer:         "webserver",
	TabServerIntegration: "server-integration",
	TabLog:               "log",
	TabUART:              "uart",
}

// Slug is the tab's URL segment and repository namespace.
func (t Tab) Slug() string {
	return tabSlugs[t]
}

// ParseTab looks a tab up by slug.
func ParseTab(slug string) (Tab, bool) {
	for _, t := range allTabs {
		if tabSlugs[t] == slug {
			return t, true
		}
	}
	return 0, false
}

// Label is the tab's menu label.
func (t Tab) Label() i18n.Key {
	return schema[t].label
}

// Heading is the title shown above the tab's form.
func (t Tab) Heading() i18n.Key {
	return schema[t].heading
}

// FieldErrors maps a field name to the message explaining why it was
// rejected. Empty means the form is valid.
type FieldErrors map[string]i18n.Key

// --- View data ---

// PageView is the data the settings page renders.
type PageView struct {
	Tabs    []TabView
	Heading string
	Slug    string
	Saved   bool
	Error   string
	Fields  []FieldView
}

// TabView is one entry of the tab bar.
type TabView struct {
	Slug   string
	Label  string
	Active bool
}

// FieldView is one rendered form control.
type FieldView struct {
	Name        string
	Label       string
	Type        string
	Value       string
	Options     []OptionView
	Checked     bool
	Error       string
	Placeholder string
}

// OptionView is one choice of a select field.
type OptionView struct {
	Value    string
	Label    string
	Selected bool
}
