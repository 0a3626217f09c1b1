package settings

import (
	"net/netip"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/molinar-iot/setup-dashboard/internal/i18n"
	"github.com/molinar-iot/setup-dashboard/internal/sanitize"
)

// normalize trims text input, strips markup from free text and maps
// checkbox presence to "true"/"false".
func normalize(f field, raw string) string {
	if f.kind == kindCheckbox {
		if raw == "" || raw == "false" || raw == "off" {
			return "false"
		}
		return "true"
	}
	switch f.kind {
	case kindPassword:
		return raw
	case kindText, kindTextarea:
		return strings.TrimSpace(sanitize.Text(raw))
	}
	return strings.TrimSpace(raw)
}

// validate checks one normalized value. Blank secrets are allowed; they
// keep the stored value.
func validate(f field, value string) i18n.Key {
	if value == "" {
		if f.required && !f.secret {
			return i18n.SettingsErrRequired
		}
		return ""
	}
	if f.kind == kindSelect && !slices.ContainsFunc(f.options, func(o option) bool { return o.value == value }) {
		return i18n.SettingsErrChoice
	}
	if f.check != nil {
		return f.check(value)
	}
	return ""
}

func checkIPv4(s string) i18n.Key {
	addr, err := netip.ParseAddr(s)
	if err != nil || !addr.Is4() {
		return i18n.SettingsErrInvalidIP
	}
	return ""
}

func checkPort(s string) i18n.Key {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 65535 {
		return i18n.SettingsErrPort
	}
	return ""
}

func checkPositive(s string) i18n.Key {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return i18n.SettingsErrPositive
	}
	return ""
}

func checkRetry(s string) i18n.Key {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 10 {
		return i18n.SettingsErrRetry
	}
	return ""
}

func checkHTTPURL(s string) i18n.Key {
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return i18n.SettingsErrURL
	}
	return ""
}
