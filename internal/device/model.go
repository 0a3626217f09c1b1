// Package device is the HTTP client for the Molinar telemetry unit's own
// API. The device is a black box reached at a base URL chosen by the
// session's host resolution; every call carries the session token as a
// query parameter.
package device

import (
	"encoding/json"
	"fmt"
)

// loginRequest is the body of POST /api/auth/login.
type loginRequest struct {
	Password string `json:"password"`
}

// loginResponse is the body of a successful login.
type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// AvailableNetwork is one entry of a station scan as the device reports it.
type AvailableNetwork struct {
	SSID     string `json:"ssid"`
	BSSID    string `json:"bssid"`
	Channel  int    `json:"channel"`
	RSSI     int    `json:"rssi"`
	AuthMode int    `json:"authmode"`
	Hidden   bool   `json:"hidden"`
}

// SavedNetwork is a network the device remembers. The device stores either
// a bare SSID string or an object; both decode into this type.
type SavedNetwork struct {
	SSID          string `json:"ssid"`
	LastConnected string `json:"lastConnected,omitempty"`
	AutoConnect   bool   `json:"autoConnect,omitempty"`
}

// UnmarshalJSON accepts `"ssid"` as well as the object form.
func (s *SavedNetwork) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*s = SavedNetwork{SSID: name}
		return nil
	}

	type plain SavedNetwork
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("decoding saved network: %w", err)
	}
	*s = SavedNetwork(p)
	return nil
}

// WiFiList is the payload of GET /api/wifi/list. The device spells the
// connected-SSID field with three n's.
type WiFiList struct {
	Availables    []AvailableNetwork `json:"availables"`
	Saveds        []SavedNetwork     `json:"saveds"`
	SSIDConnected string             `json:"ssid_connnected"`
}

type wifiListEnvelope struct {
	Data *WiFiList `json:"data"`
}

// connectRequest is the body of POST /api/wifi/connect.
type connectRequest struct {
	SSID     string `json:"ssid"`
	Password string `json:"password"`
}

// uploadFileRequest is the body of POST /api/upload/ok.
type uploadFileRequest struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// BundleResult is the device's answer to a whole-bundle push.
type BundleResult struct {
	OK             bool     `json:"ok"`
	Message        string   `json:"message,omitempty"`
	Error          string   `json:"error,omitempty"`
	ExtractedFiles []string `json:"extracted_files"`
}
