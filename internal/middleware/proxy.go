package middleware

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/labstack/echo/v4"
)

// TrustedProxies makes c.RealIP() honour X-Real-IP and X-Forwarded-For,
// but only when the direct peer is inside one of trustedCIDRs. With no
// CIDRs the peer address is always used. Rate limiting keys on this IP.
func TrustedProxies(e *echo.Echo, trustedCIDRs []string) error {
	prefixes := make([]netip.Prefix, 0, len(trustedCIDRs))
	for _, cidr := range trustedCIDRs {
		cidr = strings.TrimSpace(cidr)
		if cidr == "" {
			continue
		}
		p, err := netip.ParsePrefix(cidr)
		if err != nil {
			return fmt.Errorf("parsing trusted proxy %q: %w", cidr, err)
		}
		prefixes = append(prefixes, p.Masked())
	}
	e.IPExtractor = buildIPExtractor(prefixes)
	return nil
}

func buildIPExtractor(trusted []netip.Prefix) echo.IPExtractor {
	return func(req *http.Request) string {
		direct := directIP(req.RemoteAddr)
		if !isTrusted(direct, trusted) {
			return direct
		}
		if realIP := strings.TrimSpace(req.Header.Get("X-Real-IP")); realIP != "" {
			return realIP
		}
		if xff := req.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if first = strings.TrimSpace(first); first != "" {
				return first
			}
		}
		return direct
	}
}

func directIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}

func isTrusted(ip string, trusted []netip.Prefix) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
