package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func runMiddleware(t *testing.T, m *Manager, req *http.Request) (*httptest.ResponseRecorder, *Session) {
	t.Helper()
	codec, err := NewCookieCodec("test-secret-key-that-is-long-enough!!")
	if err != nil {
		t.Fatalf("NewCookieCodec: %v", err)
	}

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got *Session
	h := Middleware(m, codec, false)(func(c echo.Context) error {
		got = FromContext(c)
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	return rec, got
}

func TestMiddlewareIssuesAndReusesCookie(t *testing.T) {
	m := NewManager(newMemStore(), &mockValidator{}, testHosts)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "dashboard.local"
	rec, first := runMiddleware(t, m, req)
	if first == nil {
		t.Fatal("expected a session in context")
	}
	if first.origin != "http://dashboard.local" {
		t.Errorf("origin = %q", first.origin)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName || !cookies[0].HttpOnly {
		t.Fatalf("expected one HttpOnly client cookie, got %+v", cookies)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	req2.AddCookie(cookies[0])
	rec2, second := runMiddleware(t, m, req2)
	if second.ClientID() != first.ClientID() {
		t.Errorf("client ID changed: %q -> %q", first.ClientID(), second.ClientID())
	}
	if len(rec2.Result().Cookies()) != 0 {
		t.Error("valid cookie should not be reissued")
	}
}

func TestMiddlewareRejectsTamperedCookie(t *testing.T) {
	m := NewManager(newMemStore(), &mockValidator{}, testHosts)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "forged"})
	rec, s := runMiddleware(t, m, req)

	if s == nil || s.ClientID() == "forged" {
		t.Fatal("forged client ID accepted")
	}
	if len(rec.Result().Cookies()) != 1 {
		t.Error("expected a fresh cookie")
	}
}

func TestFromContextWithoutMiddleware(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if FromContext(c) != nil {
		t.Error("expected nil session")
	}
}
