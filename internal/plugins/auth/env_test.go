package auth

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/labstack/echo/v4"

	"github.com/molinar-iot/setup-dashboard/internal/device"
	"github.com/molinar-iot/setup-dashboard/internal/session"
)

// fakeDevice is an httptest device API with call counters.
type fakeDevice struct {
	srv *httptest.Server

	validateCalls atomic.Int32
	loginCalls    atomic.Int32
	logoutCalls   atomic.Int32

	validateStatus atomic.Int32
	validateDelay  atomic.Int64
	logoutStatus   atomic.Int32
}

func newFakeDevice(t *testing.T) *fakeDevice {
	t.Helper()
	d := &fakeDevice{}
	d.validateStatus.Store(http.StatusOK)
	d.logoutStatus.Store(http.StatusOK)
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/token-validate", func(w http.ResponseWriter, r *http.Request) {
		d.validateCalls.Add(1)
		if delay := time.Duration(d.validateDelay.Load()); delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}
		w.WriteHeader(int(d.validateStatus.Load()))
	})
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		d.loginCalls.Add(1)
		if !strings.Contains(readBody(r), `"password":"secret"`) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"message":"Login successful","token":"tok-new"}`))
	})
	mux.HandleFunc("/api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		d.logoutCalls.Add(1)
		w.WriteHeader(int(d.logoutStatus.Load()))
	})
	d.srv = httptest.NewServer(mux)
	t.Cleanup(d.srv.Close)
	return d
}

func readBody(r *http.Request) string {
	b, _ := io.ReadAll(r.Body)
	return string(b)
}

// guardEnv wires a real session manager and device client into an Echo
// instance with the auth routes and one guarded page.
type guardEnv struct {
	t       *testing.T
	e       *echo.Echo
	device  *fakeDevice
	store   *session.MemoryStore
	manager *session.Manager
	codec   *securecookie.SecureCookie
}

func newGuardEnv(t *testing.T) *guardEnv {
	t.Helper()
	d := newFakeDevice(t)
	client := device.NewClient(device.Timeouts{
		Validate: 100 * time.Millisecond,
		Login:    time.Second,
		Logout:   time.Second,
		Request:  time.Second,
	}, nil)

	store := session.NewMemoryStore()
	m := session.NewManager(store, client, session.HostConfig{GatewayURL: d.srv.URL})
	codec, err := session.NewCookieCodec("test-secret-key-that-is-long-enough!!")
	if err != nil {
		t.Fatalf("NewCookieCodec: %v", err)
	}

	e := echo.New()
	e.Use(session.Middleware(m, codec, false))
	protected := e.Group("/app", RequireAuth())
	protected.GET("/dashboard", func(c echo.Context) error {
		return c.String(http.StatusOK, "guarded content")
	})
	RegisterRoutes(e, NewHandler(NewAuthService(client), "192.168.4.1"))

	return &guardEnv{t: t, e: e, device: d, store: store, manager: m, codec: codec}
}

// client creates a browser whose stored state is st (nil for a new one)
// and returns its ID. A stored state without a mode is pointed at the
// fake device through access-point mode.
func (env *guardEnv) client(st *session.State) string {
	env.t.Helper()
	id := uuid.NewString()
	if st != nil {
		if st.WiFiMode == session.ModeNone {
			st.WiFiMode = session.ModeAccessPoint
		}
		if err := env.store.Save(context.Background(), id, *st); err != nil {
			env.t.Fatal(err)
		}
	}
	return id
}

func (env *guardEnv) do(clientID, method, path string, form url.Values, headers map[string]string) *httptest.ResponseRecorder {
	env.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	value, err := env.codec.Encode(session.CookieName, clientID)
	if err != nil {
		env.t.Fatal(err)
	}
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: value})

	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func (env *guardEnv) state(clientID string) session.State {
	env.t.Helper()
	st, err := env.manager.Session(clientID, "http://test").State(context.Background())
	if err != nil {
		env.t.Fatal(err)
	}
	return st
}
