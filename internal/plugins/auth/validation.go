package auth

import (
	"net/netip"
	"strings"

	"github.com/molinar-iot/setup-dashboard/internal/i18n"
	"github.com/molinar-iot/setup-dashboard/internal/session"
)

// parseMode maps the form's radio value to a WiFiMode. Anything but
// "station" means access point, the form's default.
func parseMode(v string) session.WiFiMode {
	if session.WiFiMode(strings.TrimSpace(v)) == session.ModeStation {
		return session.ModeStation
	}
	return session.ModeAccessPoint
}

// validateLogin checks a login attempt before any network call. It returns
// the message key of the first problem, or "" when the input is usable.
func validateLogin(in LoginInput) i18n.Key {
	if in.Password == "" {
		return i18n.LoginErrPasswordRequired
	}
	if in.Mode == session.ModeStation && !isIPv4(in.IPAddress) {
		return i18n.LoginErrInvalidIP
	}
	return ""
}

// isIPv4 reports whether s is a dotted-quad IPv4 address with no zone,
// prefix or leading zeros.
func isIPv4(s string) bool {
	addr, err := netip.ParseAddr(s)
	return err == nil && addr.Is4()
}
