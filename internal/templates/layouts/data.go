// data.go provides typed context helpers for passing page-chrome data from
// middleware to page components. Only simple types are stored so this
// package never imports session or plugin packages.
//
// Data flow: Middleware -> Echo Context -> LayoutInjector -> Go Context -> page
package layouts

import (
	"context"

	"github.com/molinar-iot/setup-dashboard/internal/i18n"
)

// ctxKey is a private type for context keys to prevent collisions.
type ctxKey string

const (
	keyLanguage        ctxKey = "layout_language"
	keyIsAuthenticated ctxKey = "layout_is_authenticated"
	keyCSRFToken       ctxKey = "layout_csrf_token"
	keyActiveRoute     ctxKey = "layout_active_route"
	keyDeviceHost      ctxKey = "layout_device_host"
	keyWiFiMode        ctxKey = "layout_wifi_mode"
	keyIPAddress       ctxKey = "layout_ip_address"
	keyRequestID       ctxKey = "layout_request_id"
)

// --- Setters (called by the layout injector in app/routes.go) ---

// SetLanguage stores the UI language.
func SetLanguage(ctx context.Context, lang i18n.Language) context.Context {
	return context.WithValue(ctx, keyLanguage, lang)
}

// SetIsAuthenticated marks whether the session holds a validated token.
func SetIsAuthenticated(ctx context.Context, authed bool) context.Context {
	return context.WithValue(ctx, keyIsAuthenticated, authed)
}

// SetCSRFToken stores the CSRF token for forms.
func SetCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, keyCSRFToken, token)
}

// SetActiveRoute stores the menu entry to highlight.
func SetActiveRoute(ctx context.Context, r Route) context.Context {
	return context.WithValue(ctx, keyActiveRoute, r)
}

// SetDevice stores how the device is reached.
func SetDevice(ctx context.Context, host, mode, ip string) context.Context {
	ctx = context.WithValue(ctx, keyDeviceHost, host)
	ctx = context.WithValue(ctx, keyWiFiMode, mode)
	return context.WithValue(ctx, keyIPAddress, ip)
}

// SetRequestID stores the request correlation ID for error pages.
func SetRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keyRequestID, id)
}

// --- Getters ---

// GetLanguage returns the UI language, defaulting to Indonesian.
func GetLanguage(ctx context.Context) i18n.Language {
	lang, ok := ctx.Value(keyLanguage).(i18n.Language)
	if !ok || !lang.Valid() {
		return i18n.Default
	}
	return lang
}

// IsAuthenticated reports whether the session holds a validated token.
func IsAuthenticated(ctx context.Context) bool {
	authed, _ := ctx.Value(keyIsAuthenticated).(bool)
	return authed
}

// GetCSRFToken returns the CSRF token, or "".
func GetCSRFToken(ctx context.Context) string {
	token, _ := ctx.Value(keyCSRFToken).(string)
	return token
}

// GetActiveRoute returns the highlighted menu entry, or RouteNone.
func GetActiveRoute(ctx context.Context) Route {
	r, _ := ctx.Value(keyActiveRoute).(Route)
	return r
}

// GetDeviceHost returns the resolved device base URL, or "".
func GetDeviceHost(ctx context.Context) string {
	host, _ := ctx.Value(keyDeviceHost).(string)
	return host
}

// GetWiFiMode returns the stored WiFi mode, or "".
func GetWiFiMode(ctx context.Context) string {
	mode, _ := ctx.Value(keyWiFiMode).(string)
	return mode
}

// GetIPAddress returns the stored device IP, or "".
func GetIPAddress(ctx context.Context) string {
	ip, _ := ctx.Value(keyIPAddress).(string)
	return ip
}

// GetRequestID returns the request correlation ID, or "".
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(keyRequestID).(string)
	return id
}

// Chrome is everything the shared page frame renders, read back from ctx.
type Chrome struct {
	Lang          i18n.Language
	Tr            i18n.Translator
	Authenticated bool
	CSRFToken     string
	Active        Route
	Menu          []MenuEntry
	DeviceHost    string
	WiFiMode      string
	IPAddress     string
	RequestID     string
}

// ChromeFrom assembles the page frame data from ctx.
func ChromeFrom(ctx context.Context) Chrome {
	lang := GetLanguage(ctx)
	active := GetActiveRoute(ctx)
	return Chrome{
		Lang:          lang,
		Tr:            i18n.Translator{Lang: lang},
		Authenticated: IsAuthenticated(ctx),
		CSRFToken:     GetCSRFToken(ctx),
		Active:        active,
		Menu:          Menu(lang, active),
		DeviceHost:    GetDeviceHost(ctx),
		WiFiMode:      GetWiFiMode(ctx),
		IPAddress:     GetIPAddress(ctx),
		RequestID:     GetRequestID(ctx),
	}
}
