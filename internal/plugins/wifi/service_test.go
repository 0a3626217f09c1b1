package wifi

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/molinar-iot/setup-dashboard/internal/device"
	"github.com/molinar-iot/setup-dashboard/internal/i18n"
	"github.com/molinar-iot/setup-dashboard/internal/session"
)

// mockDeviceWiFi implements DeviceWiFi for testing.
type mockDeviceWiFi struct {
	listFn    func(ctx context.Context, host, token string) (*device.WiFiList, error)
	connectFn func(ctx context.Context, host, token, ssid, password string) error

	connectCalls int
	lastHost     string
	lastToken    string
	lastPassword string
}

func (m *mockDeviceWiFi) ListWiFi(ctx context.Context, host, token string) (*device.WiFiList, error) {
	m.lastHost, m.lastToken = host, token
	if m.listFn != nil {
		return m.listFn(ctx, host, token)
	}
	return &device.WiFiList{}, nil
}

func (m *mockDeviceWiFi) ConnectWiFi(ctx context.Context, host, token, ssid, password string) error {
	m.connectCalls++
	m.lastHost, m.lastToken, m.lastPassword = host, token, password
	if m.connectFn != nil {
		return m.connectFn(ctx, host, token, ssid, password)
	}
	return nil
}

// newAuthedSession returns a station-mode session holding token "tok".
func newAuthedSession(t *testing.T) *session.Session {
	t.Helper()
	m := session.NewManager(session.NewMemoryStore(), nil, session.HostConfig{GatewayURL: "http://192.168.4.1"})
	sess := m.Session("c1", "http://dashboard.local")
	ctx := context.Background()
	if err := sess.SetIPAddress(ctx, "10.0.0.7", session.ModeStation); err != nil {
		t.Fatal(err)
	}
	if err := sess.SetToken(ctx, "tok"); err != nil {
		t.Fatal(err)
	}
	return sess
}

func TestScanUsesSessionHostAndToken(t *testing.T) {
	dev := &mockDeviceWiFi{}
	if _, err := NewWiFiService(dev).Scan(context.Background(), newAuthedSession(t)); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if dev.lastHost != "http://10.0.0.7" || dev.lastToken != "tok" {
		t.Errorf("scan went to %q with %q", dev.lastHost, dev.lastToken)
	}
}

func TestScanInvalidTokenClearsSession(t *testing.T) {
	dev := &mockDeviceWiFi{listFn: func(context.Context, string, string) (*device.WiFiList, error) {
		return nil, fmt.Errorf("wifi-list: %w", device.ErrInvalidToken)
	}}
	sess := newAuthedSession(t)

	_, err := NewWiFiService(dev).Scan(context.Background(), sess)
	if !errors.Is(err, device.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	st, _ := sess.State(context.Background())
	if st.HasToken() || st.IsAuthenticated {
		t.Error("rejected token should be cleared")
	}
	if st.WiFiMode != session.ModeStation {
		t.Error("device association should survive a rejected token")
	}
}

func TestConnectValidation(t *testing.T) {
	tests := []struct {
		name  string
		input ConnectInput
		want  i18n.Key
	}{
		{"blank ssid", ConnectInput{SSID: "  ", Security: SecurityOpen}, i18n.WiFiErrSSIDRequired},
		{"secured without password", ConnectInput{SSID: "home", Security: SecurityWPA2}, i18n.WiFiErrPasswordNeeded},
	}
	for _, tt := range tests {
		dev := &mockDeviceWiFi{}
		err := NewWiFiService(dev).Connect(context.Background(), newAuthedSession(t), tt.input)
		if got := ConnectKey(err); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
		if dev.connectCalls != 0 {
			t.Errorf("%s: device should not be called", tt.name)
		}
	}
}

func TestConnectOpenNetworkDropsPassword(t *testing.T) {
	dev := &mockDeviceWiFi{}
	err := NewWiFiService(dev).Connect(context.Background(), newAuthedSession(t), ConnectInput{SSID: "cafe", Password: "typed", Security: SecurityOpen})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if dev.connectCalls != 1 || dev.lastPassword != "" {
		t.Errorf("expected one call without password, got %d %q", dev.connectCalls, dev.lastPassword)
	}
}

func TestConnectDeviceFailure(t *testing.T) {
	dev := &mockDeviceWiFi{connectFn: func(context.Context, string, string, string, string) error {
		return fmt.Errorf("wifi-connect: %w", device.ErrUnreachable)
	}}
	err := NewWiFiService(dev).Connect(context.Background(), newAuthedSession(t), ConnectInput{SSID: "home", Password: "pw", Security: SecurityWPA2})
	if ConnectKey(err) != i18n.WiFiConnectFailed {
		t.Errorf("got %q", ConnectKey(err))
	}
	if !errors.Is(err, device.ErrUnreachable) {
		t.Error("cause should be wrapped")
	}
}
