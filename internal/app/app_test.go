package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/molinar-iot/setup-dashboard/internal/config"
	"github.com/molinar-iot/setup-dashboard/internal/device"
	"github.com/molinar-iot/setup-dashboard/internal/i18n"
	"github.com/molinar-iot/setup-dashboard/internal/plugins/auth"
	"github.com/molinar-iot/setup-dashboard/internal/plugins/settings"
	"github.com/molinar-iot/setup-dashboard/internal/session"
)

const (
	testSecret = "test-secret-key-that-is-long-enough!!"
	testCSRF   = "csrf-test-token"
)

type testApp struct {
	t     *testing.T
	app   *App
	store *session.MemoryStore
}

// newTestApp builds the full application against a fake device that
// accepts the token "tok".
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/token-validate", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("token") != "tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	dev := httptest.NewServer(mux)
	t.Cleanup(dev.Close)

	cfg := &config.Config{
		Env:       "development",
		Port:      8080,
		SecretKey: testSecret,
		Device:    config.DeviceConfig{GatewayURL: dev.URL},
		Upload:    config.UploadConfig{Pause: time.Millisecond},
	}

	client := device.NewClient(device.Timeouts{
		Validate: time.Second,
		Login:    time.Second,
		Logout:   time.Second,
		Request:  time.Second,
	}, nil)
	store := session.NewMemoryStore()
	codec, err := session.NewCookieCodec(testSecret)
	if err != nil {
		t.Fatal(err)
	}
	sealer, err := settings.NewSealer(testSecret)
	if err != nil {
		t.Fatal(err)
	}

	a, err := New(cfg, Deps{
		Sessions: session.NewManager(store, client, session.HostConfig{GatewayURL: dev.URL}),
		Codec:    codec,
		Device:   client,
		Settings: settings.NewMemoryRepository(),
		Sealer:   sealer,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	a.RegisterRoutes()
	return &testApp{t: t, app: a, store: store}
}

// client stores st for a fresh browser and returns its ID.
func (ta *testApp) client(st session.State) string {
	ta.t.Helper()
	id := uuid.NewString()
	if err := ta.store.Save(context.Background(), id, st); err != nil {
		ta.t.Fatal(err)
	}
	return id
}

func (ta *testApp) do(clientID string, req *http.Request) *httptest.ResponseRecorder {
	ta.t.Helper()
	if clientID != "" {
		value, err := ta.app.Codec.Encode(session.CookieName, clientID)
		if err != nil {
			ta.t.Fatal(err)
		}
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: value})
	}
	rec := httptest.NewRecorder()
	ta.app.Echo.ServeHTTP(rec, req)
	return rec
}

func postWithCSRF(path string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(url.Values{"csrf_token": {testCSRF}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "molinar_csrf", Value: testCSRF})
	return req
}

func authedState() session.State {
	return session.State{
		Language:        i18n.EN,
		Token:           "tok",
		IsAuthenticated: true,
		WiFiMode:        session.ModeAccessPoint,
		IPAddress:       "192.168.4.1",
	}
}

func TestHealthz(t *testing.T) {
	ta := newTestApp(t)
	rec := ta.do("", httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("got %d %q", rec.Code, rec.Body.String())
	}
}

func TestLandingSetsClientCookie(t *testing.T) {
	ta := newTestApp(t)
	rec := ta.do("", httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Setup IoT Molinar") {
		t.Error("expected the Indonesian landing page")
	}
	if !strings.Contains(rec.Header().Get("Set-Cookie"), session.CookieName) {
		t.Error("expected the client cookie to be issued")
	}
}

func TestDashboardRequiresAuth(t *testing.T) {
	ta := newTestApp(t)
	id := ta.client(session.DefaultState())
	rec := ta.do(id, httptest.NewRequest(http.MethodGet, "/app/dashboard", nil))
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/auth/login" {
		t.Errorf("got %d -> %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestDashboardRendersDevice(t *testing.T) {
	ta := newTestApp(t)
	id := ta.client(authedState())
	rec := ta.do(id, httptest.NewRequest(http.MethodGet, "/app/dashboard", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	for _, want := range []string{"Access Point", "192.168.4.1", `href="/app/dashboard" class="nav-item active"`} {
		if !strings.Contains(body, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}
}

func TestAppRootRedirectsToDashboard(t *testing.T) {
	ta := newTestApp(t)
	id := ta.client(authedState())
	rec := ta.do(id, httptest.NewRequest(http.MethodGet, "/app", nil))
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/app/dashboard" {
		t.Errorf("got %d -> %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestSettingsMenuActive(t *testing.T) {
	ta := newTestApp(t)
	id := ta.client(authedState())
	rec := ta.do(id, httptest.NewRequest(http.MethodGet, "/app/settings/network", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `href="/app/settings" class="nav-item active"`) {
		t.Error("settings menu entry should be active")
	}
}

func TestUnknownSettingsTabRendersErrorPage(t *testing.T) {
	ta := newTestApp(t)
	id := ta.client(authedState())
	rec := ta.do(id, httptest.NewRequest(http.MethodGet, "/app/settings/bogus", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("Content-Type"), "text/html") {
		t.Error("expected the HTML error page")
	}
}

func TestAPIErrorsAreJSON(t *testing.T) {
	ta := newTestApp(t)
	rec := ta.do("", httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("expected JSON: %v", err)
	}
	if body["error"] != "Not Found" {
		t.Errorf("got %v", body)
	}
}

func TestToggleLanguage(t *testing.T) {
	ta := newTestApp(t)
	id := ta.client(session.DefaultState())

	req := postWithCSRF("/language/toggle")
	req.Header.Set("Referer", "http://example.com/auth/login?x=1")
	rec := ta.do(id, req)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/auth/login?x=1" {
		t.Fatalf("got %d -> %q", rec.Code, rec.Header().Get("Location"))
	}

	st, _ := ta.store.Load(context.Background(), id)
	if st.Language != i18n.EN {
		t.Errorf("expected en, got %q", st.Language)
	}
}

func TestToggleLanguageIgnoresForeignReferer(t *testing.T) {
	ta := newTestApp(t)
	id := ta.client(session.DefaultState())

	req := postWithCSRF("/language/toggle")
	req.Header.Set("Referer", "http://evil.test/phish")
	rec := ta.do(id, req)
	if rec.Header().Get("Location") != "/" {
		t.Errorf("expected redirect to /, got %q", rec.Header().Get("Location"))
	}
}

func TestToggleLanguageRequiresCSRF(t *testing.T) {
	ta := newTestApp(t)
	id := ta.client(session.DefaultState())
	rec := ta.do(id, httptest.NewRequest(http.MethodPost, "/language/toggle", nil))
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
	st, _ := ta.store.Load(context.Background(), id)
	if st.Language != i18n.ID {
		t.Error("language must not change without a CSRF token")
	}
}

func TestLogoutRequiresCSRF(t *testing.T) {
	ta := newTestApp(t)
	id := ta.client(authedState())

	rec := ta.do(id, httptest.NewRequest(http.MethodPost, "/logout", nil))
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
	got, _ := ta.store.Load(context.Background(), id)
	if !got.HasToken() {
		t.Error("session must survive a logout without a CSRF token")
	}

	rec = ta.do(id, httptest.NewRequest(http.MethodGet, "/logout", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected confirmation page, got %d", rec.Code)
	}

	rec = ta.do(id, postWithCSRF("/logout"))
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != auth.LoginPath {
		t.Errorf("expected redirect to login, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	got, _ = ta.store.Load(context.Background(), id)
	if got.HasToken() {
		t.Error("expected token cleared after confirmed logout")
	}
}

func TestSetLanguage(t *testing.T) {
	ta := newTestApp(t)
	id := ta.client(session.DefaultState())

	rec := ta.do(id, postWithCSRF("/language/en-US"))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	st, _ := ta.store.Load(context.Background(), id)
	if st.Language != i18n.EN {
		t.Errorf("expected en, got %q", st.Language)
	}

	rec = ta.do(id, postWithCSRF("/language/xx-!!"))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for an unknown tag, got %d", rec.Code)
	}
}
