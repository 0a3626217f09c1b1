package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/molinar-iot/setup-dashboard/internal/device"
	"github.com/molinar-iot/setup-dashboard/internal/i18n"
)

// --- Mocks ---

// mockValidator implements Validator for testing.
type mockValidator struct {
	mu         sync.Mutex
	calls      atomic.Int32
	lastHost   string
	lastToken  string
	validateFn func(ctx context.Context, host, token string) (bool, error)
}

func (m *mockValidator) ValidateToken(ctx context.Context, host, token string) (bool, error) {
	m.calls.Add(1)
	m.mu.Lock()
	m.lastHost, m.lastToken = host, token
	m.mu.Unlock()
	if m.validateFn != nil {
		return m.validateFn(ctx, host, token)
	}
	return true, nil
}

// memStore is an in-memory Store.
type memStore struct {
	mu      sync.Mutex
	states  map[string]State
	saves   int
	saveErr error
}

func newMemStore() *memStore {
	return &memStore{states: map[string]State{}}
}

func (s *memStore) Load(_ context.Context, id string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[id]
	if !ok {
		return State{}, ErrNotFound
	}
	return st, nil
}

func (s *memStore) Save(_ context.Context, id string, st State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.states[id] = st
	return nil
}

func (s *memStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, id)
	return nil
}

var testHosts = HostConfig{GatewayURL: "http://192.168.4.1"}

func newTestSession(v Validator) (*Session, *memStore) {
	store := newMemStore()
	m := NewManager(store, v, testHosts)
	return m.Session("client-1", "http://dashboard.local"), store
}

func mustState(t *testing.T, s *Session) State {
	t.Helper()
	st, err := s.State(context.Background())
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	return st
}

// --- Mutators ---

func TestNewClientGetsDefaultState(t *testing.T) {
	s, _ := newTestSession(&mockValidator{})
	st := mustState(t, s)
	if st.Language != i18n.ID || st.HasToken() || st.IsAuthenticated {
		t.Errorf("unexpected default state: %+v", st)
	}
}

func TestSetToken(t *testing.T) {
	s, _ := newTestSession(&mockValidator{})
	ctx := context.Background()

	if err := s.SetToken(ctx, "abc"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	st := mustState(t, s)
	if st.Token != "abc" || !st.IsAuthenticated {
		t.Errorf("expected authenticated with token, got %+v", st)
	}
	if st.Rev == 0 {
		t.Error("expected Rev to advance")
	}
}

func TestClearTokenAlwaysUnauthenticates(t *testing.T) {
	prior := []State{
		{},
		{Token: "abc", IsAuthenticated: true},
		{Token: "abc", IsAuthenticated: false, WiFiMode: ModeStation, IPAddress: "10.0.0.5"},
		{IsAuthenticated: true},
	}
	for _, p := range prior {
		s, store := newTestSession(&mockValidator{})
		store.states["client-1"] = p

		if err := s.ClearToken(context.Background()); err != nil {
			t.Fatalf("ClearToken: %v", err)
		}
		st := mustState(t, s)
		if st.Token != "" || st.IsAuthenticated {
			t.Errorf("from %+v: expected cleared credential, got %+v", p, st)
		}
		if st.WiFiMode != p.WiFiMode || st.IPAddress != p.IPAddress {
			t.Errorf("from %+v: device association should be kept, got %+v", p, st)
		}
	}
}

func TestClearAuthIdempotent(t *testing.T) {
	s, _ := newTestSession(&mockValidator{})
	ctx := context.Background()

	_ = s.SetIPAddress(ctx, "10.0.0.5", ModeStation)
	_ = s.SetToken(ctx, "abc")

	if err := s.ClearAuth(ctx); err != nil {
		t.Fatalf("ClearAuth: %v", err)
	}
	once := mustState(t, s)
	if err := s.ClearAuth(ctx); err != nil {
		t.Fatalf("ClearAuth: %v", err)
	}
	twice := mustState(t, s)

	if once != twice {
		t.Errorf("second ClearAuth changed state: %+v -> %+v", once, twice)
	}
	if once.Token != "" || once.IsAuthenticated || once.IPAddress != "" || once.WiFiMode != ModeNone {
		t.Errorf("expected fully cleared state, got %+v", once)
	}
}

func TestSetIPAddress(t *testing.T) {
	s, _ := newTestSession(&mockValidator{})
	ctx := context.Background()

	if err := s.SetIPAddress(ctx, "10.0.0.5", ModeAccessPoint); err != nil {
		t.Fatalf("SetIPAddress: %v", err)
	}
	st := mustState(t, s)
	if st.IPAddress != "192.168.4.1" || st.WiFiMode != ModeAccessPoint {
		t.Errorf("access point should store gateway, got %+v", st)
	}

	if err := s.SetIPAddress(ctx, "10.0.0.5", ModeStation); err != nil {
		t.Fatalf("SetIPAddress: %v", err)
	}
	host, _ := s.HostURL(ctx)
	if host != "http://10.0.0.5" {
		t.Errorf("HostURL() = %q", host)
	}

	if err := s.SetIPAddress(ctx, "", WiFiMode("mesh")); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestResolveCandidateLeavesStateAlone(t *testing.T) {
	s, store := newTestSession(&mockValidator{})
	host, err := s.ResolveCandidate(context.Background(), "10.0.0.9", ModeStation)
	if err != nil {
		t.Fatalf("ResolveCandidate: %v", err)
	}
	if host != "http://10.0.0.9" {
		t.Errorf("got %q", host)
	}
	if store.saves != 0 {
		t.Errorf("expected no writes, got %d", store.saves)
	}
}

func TestToggleLanguage(t *testing.T) {
	s, _ := newTestSession(&mockValidator{})
	ctx := context.Background()

	lang, err := s.ToggleLanguage(ctx)
	if err != nil || lang != i18n.EN {
		t.Fatalf("ToggleLanguage() = %q, %v", lang, err)
	}
	lang, _ = s.ToggleLanguage(ctx)
	if lang != i18n.ID {
		t.Errorf("expected id after second toggle, got %q", lang)
	}

	if err := s.SetLanguage(ctx, i18n.EN); err != nil {
		t.Fatalf("SetLanguage: %v", err)
	}
	if st := mustState(t, s); st.Language != i18n.EN {
		t.Errorf("got %q", st.Language)
	}
	if err := s.SetLanguage(ctx, "fr"); err == nil {
		t.Error("expected error for unsupported language")
	}
}

func TestLanguageChangeKeepsRev(t *testing.T) {
	s, _ := newTestSession(&mockValidator{})
	ctx := context.Background()
	_ = s.SetToken(ctx, "abc")
	before := mustState(t, s).Rev

	_, _ = s.ToggleLanguage(ctx)
	if after := mustState(t, s).Rev; after != before {
		t.Errorf("language change bumped Rev %d -> %d", before, after)
	}
}

func TestMutatorStoreError(t *testing.T) {
	s, store := newTestSession(&mockValidator{})
	store.saveErr = errors.New("disk full")
	if err := s.SetToken(context.Background(), "abc"); err == nil {
		t.Error("expected store error to surface")
	}
}

// --- ValidateToken ---

func TestValidateTokenNoToken(t *testing.T) {
	v := &mockValidator{}
	s, _ := newTestSession(v)

	if s.ValidateToken(context.Background(), "") {
		t.Error("expected false without a token")
	}
	if n := v.calls.Load(); n != 0 {
		t.Errorf("expected no network call, got %d", n)
	}
}

func TestValidateTokenValid(t *testing.T) {
	v := &mockValidator{}
	s, store := newTestSession(v)
	store.states["client-1"] = State{Language: i18n.ID, Token: "abc", WiFiMode: ModeStation, IPAddress: "10.0.0.5"}

	if !s.ValidateToken(context.Background(), "") {
		t.Fatal("expected valid token")
	}
	if v.calls.Load() != 1 {
		t.Errorf("expected exactly one call, got %d", v.calls.Load())
	}
	if v.lastHost != "http://10.0.0.5" || v.lastToken != "abc" {
		t.Errorf("called %q with %q", v.lastHost, v.lastToken)
	}
	if st := mustState(t, s); !st.IsAuthenticated || st.Token != "abc" {
		t.Errorf("expected authenticated, got %+v", st)
	}
}

func TestValidateTokenHostOverride(t *testing.T) {
	v := &mockValidator{}
	s, store := newTestSession(v)
	store.states["client-1"] = State{Token: "abc", WiFiMode: ModeAccessPoint}

	s.ValidateToken(context.Background(), "http://10.9.9.9")
	if v.lastHost != "http://10.9.9.9" {
		t.Errorf("override ignored, called %q", v.lastHost)
	}
}

func TestValidateTokenRejected(t *testing.T) {
	v := &mockValidator{validateFn: func(context.Context, string, string) (bool, error) {
		return false, nil
	}}
	s, store := newTestSession(v)
	store.states["client-1"] = State{Token: "abc", IsAuthenticated: true, WiFiMode: ModeStation, IPAddress: "10.0.0.5"}

	if s.ValidateToken(context.Background(), "") {
		t.Fatal("expected false")
	}
	st := mustState(t, s)
	if st.HasToken() || st.IsAuthenticated {
		t.Errorf("expected token cleared, got %+v", st)
	}
	if st.IPAddress != "10.0.0.5" {
		t.Errorf("association should survive a failed validation, got %+v", st)
	}
}

func TestValidateTokenTransportErrors(t *testing.T) {
	for _, cause := range []error{device.ErrTimeout, device.ErrUnreachable, errors.New("boom")} {
		v := &mockValidator{validateFn: func(context.Context, string, string) (bool, error) {
			return false, cause
		}}
		s, store := newTestSession(v)
		store.states["client-1"] = State{Token: "abc", IsAuthenticated: true}

		if s.ValidateToken(context.Background(), "") {
			t.Errorf("%v: expected false", cause)
		}
		if st := mustState(t, s); st.HasToken() {
			t.Errorf("%v: expected token cleared", cause)
		}
	}
}

func TestValidateTokenCancelledDiscardsResult(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	v := &mockValidator{validateFn: func(context.Context, string, string) (bool, error) {
		cancel()
		return false, context.Canceled
	}}
	s, store := newTestSession(v)
	store.states["client-1"] = State{Token: "abc", IsAuthenticated: true}

	if s.ValidateToken(ctx, "") {
		t.Error("expected false for a cancelled validation")
	}
	if st := mustState(t, s); st.Token != "abc" {
		t.Errorf("cancelled validation must not mutate the store, got %+v", st)
	}
}

func TestValidateTokenStaleGenerationDiscarded(t *testing.T) {
	var s *Session
	v := &mockValidator{validateFn: func(ctx context.Context, _, _ string) (bool, error) {
		// A login completes while the old token is being checked.
		if err := s.SetToken(ctx, "fresh"); err != nil {
			t.Errorf("SetToken: %v", err)
		}
		return false, nil
	}}
	s, store := newTestSession(v)
	store.states["client-1"] = State{Token: "stale", IsAuthenticated: true, Rev: 3}

	if s.ValidateToken(context.Background(), "") {
		t.Error("expected false")
	}
	if st := mustState(t, s); st.Token != "fresh" || !st.IsAuthenticated {
		t.Errorf("stale result overwrote a newer login: %+v", st)
	}
}

func TestValidateTokenConcurrent(t *testing.T) {
	v := &mockValidator{}
	s, store := newTestSession(v)
	store.states["client-1"] = State{Token: "abc"}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.ValidateToken(context.Background(), "")
		}()
	}
	wg.Wait()

	if st := mustState(t, s); st.Token != "abc" || !st.IsAuthenticated {
		t.Errorf("unexpected state after concurrent validations: %+v", st)
	}
}
