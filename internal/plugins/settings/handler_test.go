package settings

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/molinar-iot/setup-dashboard/internal/apperror"
)

func newRequest(method, target string, form url.Values) (*httptest.ResponseRecorder, echo.Context) {
	e := echo.New()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return rec, e.NewContext(req, rec)
}

func TestShowUnknownTab(t *testing.T) {
	svc, _ := newTestService(t)
	_, c := newRequest(http.MethodGet, "/app/settings/pins", nil)
	c.SetParamNames("tab")
	c.SetParamValues("pins")

	err := NewHandler(svc).Show(c)
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestShowMasksSecrets(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	if errs, err := svc.Save(ctx, TabNetwork, map[string]string{"wifi_mode": "ap", "ssid": "Molinar-IoT", "wifi_password": "hunter2"}); err != nil || len(errs) != 0 {
		t.Fatalf("Save: %v %v", errs, err)
	}

	rec, c := newRequest(http.MethodGet, "/app/settings/network?saved=1", nil)
	c.SetParamNames("tab")
	c.SetParamValues("network")
	if err := NewHandler(svc).Show(c); err != nil {
		t.Fatalf("Show: %v", err)
	}

	body := rec.Body.String()
	if strings.Contains(body, "hunter2") {
		t.Error("secret leaked into the page")
	}
	for _, want := range []string{"Kosongkan untuk mempertahankan nilai lama", "Pengaturan tersimpan", `value="Molinar-IoT"`} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestUpdateRedirectsOnSuccess(t *testing.T) {
	svc, _ := newTestService(t)
	form := url.Values{"port": {"8080"}, "timeout": {"15"}, "https": {"true"}}
	rec, c := newRequest(http.MethodPost, "/app/settings/webserver", form)
	c.SetParamNames("tab")
	c.SetParamValues("webserver")

	if err := NewHandler(svc).Update(c); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/app/settings/webserver?saved=1" {
		t.Errorf("got %d %q", rec.Code, rec.Header().Get("Location"))
	}

	values, _ := svc.Values(context.Background(), TabWebServer)
	if values["port"] != "8080" || values["https"] != "true" {
		t.Errorf("unexpected stored values %v", values)
	}
}

func TestUpdateRendersFieldErrors(t *testing.T) {
	svc, _ := newTestService(t)
	form := url.Values{"server_url": {"ftp://nope"}, "send_interval": {"60"}, "retry_count": {"3"}}
	rec, c := newRequest(http.MethodPost, "/app/settings/server-integration", form)
	c.SetParamNames("tab")
	c.SetParamValues("server-integration")

	if err := NewHandler(svc).Update(c); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "harus berupa URL http atau https") || !strings.Contains(body, `value="ftp://nope"`) {
		t.Error("expected the submitted value and its error")
	}
}

func TestIndexRedirectsToFirstTab(t *testing.T) {
	svc, _ := newTestService(t)
	rec, c := newRequest(http.MethodGet, "/app/settings", nil)
	if err := NewHandler(svc).Index(c); err != nil {
		t.Fatal(err)
	}
	if rec.Header().Get("Location") != "/app/settings/identity" {
		t.Errorf("got %q", rec.Header().Get("Location"))
	}
}
