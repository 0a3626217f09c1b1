package session

import (
	"net/url"
	"strings"
)

// HostConfig holds the fixed addresses host resolution falls back on.
type HostConfig struct {
	// GatewayURL is the device's base URL in access-point mode.
	GatewayURL string

	// HostAPI replaces a localhost page origin when set.
	HostAPI string
}

// GatewayAddress is the host part of GatewayURL, stored as the session's
// IP address in access-point mode.
func (h HostConfig) GatewayAddress() string {
	u, err := url.Parse(h.GatewayURL)
	if err != nil || u.Host == "" {
		return strings.TrimPrefix(strings.TrimPrefix(h.GatewayURL, "http://"), "https://")
	}
	return u.Host
}

// ResolveHost returns the base URL used to reach the device for st.
// Access-point mode always yields the gateway, whatever IP is stored.
// Station mode with an IP yields http://<ip>. Anything else falls back to
// origin, the page's own origin, unless that origin is localhost and
// HostAPI is configured.
func ResolveHost(st State, origin string, hosts HostConfig) string {
	switch {
	case st.WiFiMode == ModeAccessPoint:
		return strings.TrimRight(hosts.GatewayURL, "/")
	case st.WiFiMode == ModeStation && st.IPAddress != "":
		return "http://" + st.IPAddress
	}

	if hosts.HostAPI != "" && isLocalOrigin(origin) {
		return strings.TrimRight(hosts.HostAPI, "/")
	}
	return strings.TrimRight(origin, "/")
}

// isLocalOrigin reports whether origin points at the loopback host.
func isLocalOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	switch u.Hostname() {
	case "localhost", "127.0.0.1", "::1":
		return true
	}
	return false
}
