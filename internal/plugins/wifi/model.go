// Package wifi lets the operator scan for networks from the device and tell
// it to join one in station mode.
package wifi

import (
	"errors"
	"math"
	"slices"

	"github.com/molinar-iot/setup-dashboard/internal/device"
	"github.com/molinar-iot/setup-dashboard/internal/i18n"
)

// Security is the protection a network advertises.
type Security string

const (
	SecurityOpen Security = "open"
	SecurityWEP  Security = "wep"
	SecurityWPA  Security = "wpa"
	SecurityWPA2 Security = "wpa2"
)

// unknownLastConnected is shown when the device never recorded a join.
const unknownLastConnected = "Unknown"

// Network is a scanned network ready for display.
type Network struct {
	SSID      string
	Security  Security
	Channel   int
	Signal    int
	Connected bool
}

// Open reports whether the network can be joined without a password.
func (n Network) Open() bool {
	return n.Security == SecurityOpen
}

// Saved is a remembered network ready for display.
type Saved struct {
	SSID          string
	LastConnected string
	AutoConnect   bool
	Connected     bool
}

// Scan is the result of one device scan.
type Scan struct {
	Networks  []Network
	Saved     []Saved
	Connected string
}

// --- Request DTOs ---

// ConnectRequest holds the data submitted by a network's connect form.
type ConnectRequest struct {
	SSID     string `form:"ssid"`
	Password string `form:"password"`
	Security string `form:"security"`
}

// ConnectInput is a connect attempt passed from handler to service.
type ConnectInput struct {
	SSID     string
	Password string
	Security Security
}

// ConnectError is a failed connect with the message key the page shows.
type ConnectError struct {
	Key   i18n.Key
	Cause error
}

func (e *ConnectError) Error() string {
	if e.Cause != nil {
		return string(e.Key) + ": " + e.Cause.Error()
	}
	return string(e.Key)
}

func (e *ConnectError) Unwrap() error {
	return e.Cause
}

// ConnectKey returns the message key for err, or WiFiConnectFailed.
func ConnectKey(err error) i18n.Key {
	var ce *ConnectError
	if errors.As(err, &ce) {
		return ce.Key
	}
	return i18n.WiFiConnectFailed
}

// --- View data ---

// PageView is the data the wifi page renders.
type PageView struct {
	Notice   string
	Error    string
	Success  string
	Networks []Network
	Saved    []Saved
}

// --- Conversions from the device payload ---

// SignalPercent maps an RSSI in dBm onto 0..100. -30 dBm or better is full
// strength, -90 dBm or worse is none.
func SignalPercent(rssi int) int {
	switch {
	case rssi >= -30:
		return 100
	case rssi <= -90:
		return 0
	}
	return int(math.Round(float64(rssi+90) / 60 * 100))
}

// SecurityFor maps the device's authmode number. Unknown modes are shown as
// WPA2 so a password is always asked for.
func SecurityFor(authmode int) Security {
	switch authmode {
	case 0:
		return SecurityOpen
	case 1:
		return SecurityWEP
	case 2:
		return SecurityWPA
	default:
		return SecurityWPA2
	}
}

// parseSecurity reads the security a connect form echoes back.
func parseSecurity(s string) Security {
	switch Security(s) {
	case SecurityOpen, SecurityWEP, SecurityWPA:
		return Security(s)
	}
	return SecurityWPA2
}

// fromDevice builds the display lists. Hidden and nameless networks are
// dropped and the rest sorted strongest first; ties keep scan order.
func fromDevice(list *device.WiFiList) *Scan {
	scan := &Scan{Connected: list.SSIDConnected}

	for _, n := range list.Availables {
		if n.Hidden || n.SSID == "" {
			continue
		}
		scan.Networks = append(scan.Networks, Network{
			SSID:      n.SSID,
			Security:  SecurityFor(n.AuthMode),
			Channel:   n.Channel,
			Signal:    SignalPercent(n.RSSI),
			Connected: n.SSID == list.SSIDConnected,
		})
	}
	slices.SortStableFunc(scan.Networks, func(a, b Network) int {
		return b.Signal - a.Signal
	})

	for _, s := range list.Saveds {
		// Plain-string entries decode with only SSID set and are matched the same way.
		last := s.LastConnected
		if last == "" {
			last = unknownLastConnected
		}
		scan.Saved = append(scan.Saved, Saved{
			SSID:          s.SSID,
			LastConnected: last,
			AutoConnect:   s.AutoConnect,
			Connected:     s.SSID == list.SSIDConnected,
		})
	}
	return scan
}
