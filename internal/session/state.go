// Package session is the dashboard's persisted session layer. Each browser
// is identified by a signed client cookie and owns one State: its device
// token, how the device is reached, and its UI language. State outlives a
// single request and survives server restarts through a Store.
package session

import (
	"github.com/molinar-iot/setup-dashboard/internal/i18n"
)

// WiFiMode selects how the device is reached.
type WiFiMode string

const (
	// ModeNone means no device association; the page origin is used.
	ModeNone WiFiMode = ""

	// ModeAccessPoint means the device hosts its own network at a fixed
	// gateway address.
	ModeAccessPoint WiFiMode = "access-point"

	// ModeStation means the device joined an existing network at an address
	// the operator typed in.
	ModeStation WiFiMode = "station"
)

// Valid reports whether m is a known mode.
func (m WiFiMode) Valid() bool {
	switch m {
	case ModeNone, ModeAccessPoint, ModeStation:
		return true
	}
	return false
}

// State is the persisted record for one browser. Token present implies
// IsAuthenticated was true at the last successful validation; it may be
// stale until validated again.
type State struct {
	Language        i18n.Language `json:"language"`
	Token           string        `json:"token,omitempty"`
	IsAuthenticated bool          `json:"isAuthenticated"`
	IPAddress       string        `json:"ipAddress,omitempty"`
	WiFiMode        WiFiMode      `json:"wifiMode,omitempty"`

	// Rev increases whenever the credential or device association changes.
	// A validation started at one Rev must not write at another.
	Rev uint64 `json:"rev"`
}

// DefaultState is the state of a browser seen for the first time.
func DefaultState() State {
	return State{Language: i18n.Default}
}

// HasToken reports whether a token is stored.
func (s State) HasToken() bool {
	return s.Token != ""
}

// clearToken drops the credential and keeps the device association.
func (s *State) clearToken() {
	s.Token = ""
	s.IsAuthenticated = false
}

// clearAuth drops the credential and the device association.
func (s *State) clearAuth() {
	s.clearToken()
	s.IPAddress = ""
	s.WiFiMode = ModeNone
}

// sameIdentity reports whether the credential and association match.
func (s State) sameIdentity(o State) bool {
	return s.Token == o.Token &&
		s.IsAuthenticated == o.IsAuthenticated &&
		s.IPAddress == o.IPAddress &&
		s.WiFiMode == o.WiFiMode
}

// normalize repairs values a hand-edited or older store might hold.
func (s *State) normalize() {
	if !s.Language.Valid() {
		s.Language = i18n.Default
	}
	if !s.WiFiMode.Valid() {
		s.WiFiMode = ModeNone
	}
	if s.Token == "" {
		s.IsAuthenticated = false
	}
}
