package wifi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/molinar-iot/setup-dashboard/internal/device"
	"github.com/molinar-iot/setup-dashboard/internal/i18n"
	"github.com/molinar-iot/setup-dashboard/internal/session"
)

// DeviceWiFi is the part of the device API this plugin needs. device.Client
// satisfies it.
type DeviceWiFi interface {
	ListWiFi(ctx context.Context, host, token string) (*device.WiFiList, error)
	ConnectWiFi(ctx context.Context, host, token, ssid, password string) error
}

// WiFiService scans and joins networks through the session's device.
type WiFiService interface {
	Scan(ctx context.Context, sess *session.Session) (*Scan, error)
	Connect(ctx context.Context, sess *session.Session, input ConnectInput) error
}

type wifiService struct {
	device DeviceWiFi
}

// NewWiFiService creates the wifi service.
func NewWiFiService(d DeviceWiFi) WiFiService {
	return &wifiService{device: d}
}

// Scan asks the device for visible and saved networks.
func (s *wifiService) Scan(ctx context.Context, sess *session.Session) (*Scan, error) {
	host, token, err := target(ctx, sess)
	if err != nil {
		return nil, err
	}

	list, err := s.device.ListWiFi(ctx, host, token)
	if err != nil {
		return nil, s.deviceFailure(ctx, sess, err)
	}
	return fromDevice(list), nil
}

// Connect validates input and asks the device to join the network. A
// failure returns a *ConnectError naming the message to show.
func (s *wifiService) Connect(ctx context.Context, sess *session.Session, input ConnectInput) error {
	input.SSID = strings.TrimSpace(input.SSID)
	if input.SSID == "" {
		return &ConnectError{Key: i18n.WiFiErrSSIDRequired}
	}
	if input.Security != SecurityOpen && input.Password == "" {
		return &ConnectError{Key: i18n.WiFiErrPasswordNeeded}
	}
	if input.Security == SecurityOpen {
		input.Password = ""
	}

	host, token, err := target(ctx, sess)
	if err != nil {
		return &ConnectError{Key: i18n.WiFiConnectFailed, Cause: err}
	}

	if err := s.device.ConnectWiFi(ctx, host, token, input.SSID, input.Password); err != nil {
		return &ConnectError{Key: i18n.WiFiConnectFailed, Cause: s.deviceFailure(ctx, sess, err)}
	}

	slog.Info("device joining network",
		slog.String("client_id", sess.ClientID()),
		slog.String("ssid", input.SSID),
	)
	return nil
}

// deviceFailure logs err and drops the token when the device no longer
// accepts it, so the next guarded request goes back to login.
func (s *wifiService) deviceFailure(ctx context.Context, sess *session.Session, err error) error {
	slog.Warn("device wifi request failed",
		slog.String("client_id", sess.ClientID()),
		slog.Any("error", err),
	)
	if errors.Is(err, device.ErrInvalidToken) {
		if clearErr := sess.ClearToken(ctx); clearErr != nil {
			slog.Error("clearing rejected token failed", slog.Any("error", clearErr))
		}
	}
	return err
}

// target returns the device host and token for sess.
func target(ctx context.Context, sess *session.Session) (string, string, error) {
	st, err := sess.State(ctx)
	if err != nil {
		return "", "", fmt.Errorf("loading session: %w", err)
	}
	host, err := sess.HostURL(ctx)
	if err != nil {
		return "", "", fmt.Errorf("resolving device host: %w", err)
	}
	return host, st.Token, nil
}
