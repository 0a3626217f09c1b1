package wifi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/molinar-iot/setup-dashboard/internal/apperror"
	"github.com/molinar-iot/setup-dashboard/internal/device"
	"github.com/molinar-iot/setup-dashboard/internal/session"
)

func serve(t *testing.T, h *Handler, sess *session.Session, method, target string, form url.Values) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	session.Attach(c, sess)

	var err error
	if method == http.MethodGet {
		err = h.Page(c)
	} else {
		err = h.Connect(c)
	}
	return rec, err
}

func TestPageRendersNetworks(t *testing.T) {
	dev := &mockDeviceWiFi{listFn: func(context.Context, string, string) (*device.WiFiList, error) {
		return &device.WiFiList{
			Availables:    []device.AvailableNetwork{{SSID: "home-net", RSSI: -40, AuthMode: 3}},
			Saveds:        []device.SavedNetwork{{SSID: "old-net"}},
			SSIDConnected: "home-net",
		}, nil
	}}
	rec, err := serve(t, NewHandler(NewWiFiService(dev)), newAuthedSession(t), http.MethodGet, "/app/wifi", nil)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	body := rec.Body.String()
	for _, want := range []string{"home-net", "old-net", "Unknown", "83%"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestPageScanFailureShowsNotice(t *testing.T) {
	dev := &mockDeviceWiFi{listFn: func(context.Context, string, string) (*device.WiFiList, error) {
		return nil, fmt.Errorf("wifi-list: %w", device.ErrTimeout)
	}}
	rec, err := serve(t, NewHandler(NewWiFiService(dev)), newAuthedSession(t), http.MethodGet, "/app/wifi", nil)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Gagal memindai jaringan WiFi") {
		t.Error("expected scan-failed notice")
	}
}

func TestPageExpiredTokenIsUnauthorized(t *testing.T) {
	dev := &mockDeviceWiFi{listFn: func(context.Context, string, string) (*device.WiFiList, error) {
		return nil, device.ErrInvalidToken
	}}
	_, err := serve(t, NewHandler(NewWiFiService(dev)), newAuthedSession(t), http.MethodGet, "/app/wifi", nil)
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 AppError, got %v", err)
	}
}

func TestConnectReportsOutcome(t *testing.T) {
	dev := &mockDeviceWiFi{}
	h := NewHandler(NewWiFiService(dev))

	rec, err := serve(t, h, newAuthedSession(t), http.MethodPost, "/app/wifi/connect",
		url.Values{"ssid": {"home-net"}, "password": {"pw"}, "security": {"wpa2"}})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "Berhasil terhubung: home-net") {
		t.Error("expected success message")
	}

	rec, err = serve(t, h, newAuthedSession(t), http.MethodPost, "/app/wifi/connect",
		url.Values{"ssid": {"home-net"}, "security": {"wpa2"}})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "Password WiFi diperlukan untuk jaringan ini") {
		t.Error("expected password-required message")
	}
	if dev.connectCalls != 1 {
		t.Errorf("expected one device call, got %d", dev.connectCalls)
	}
}
