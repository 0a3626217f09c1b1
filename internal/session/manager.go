package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/molinar-iot/setup-dashboard/internal/i18n"
	"github.com/molinar-iot/setup-dashboard/internal/metrics"
)

// Validator checks a token against the device at host. device.Client
// satisfies it.
type Validator interface {
	ValidateToken(ctx context.Context, host, token string) (bool, error)
}

// Manager owns the session store and hands out request-bound Session
// handles. One Manager is built at startup and shared by every request.
type Manager struct {
	store     Store
	validator Validator
	hosts     HostConfig
	locks     *keyedMutex
}

// NewManager creates the session service.
func NewManager(store Store, validator Validator, hosts HostConfig) *Manager {
	return &Manager{
		store:     store,
		validator: validator,
		hosts:     hosts,
		locks:     newKeyedMutex(),
	}
}

// Hosts returns the host resolution settings.
func (m *Manager) Hosts() HostConfig {
	return m.hosts
}

// Session returns the handle for one browser. origin is the scheme and host
// the page was loaded from, used as the last host-resolution fallback.
func (m *Manager) Session(clientID, origin string) *Session {
	return &Session{m: m, clientID: clientID, origin: origin}
}

// load returns the stored state or the default for a new client.
func (m *Manager) load(ctx context.Context, clientID string) (State, error) {
	st, err := m.store.Load(ctx, clientID)
	if errors.Is(err, ErrNotFound) {
		return DefaultState(), nil
	}
	if err != nil {
		return State{}, err
	}
	st.normalize()
	return st, nil
}

// update applies fn to the client's state under its lock and persists the
// result. Rev is bumped when fn changed the credential or association;
// nothing is written when fn changed nothing at all.
func (m *Manager) update(ctx context.Context, clientID string, fn func(st *State)) (State, error) {
	unlock := m.locks.lock(clientID)
	defer unlock()

	before, err := m.load(ctx, clientID)
	if err != nil {
		return State{}, err
	}

	after := before
	fn(&after)
	if !after.sameIdentity(before) {
		after.Rev = before.Rev + 1
	}
	if after == before {
		return after, nil
	}

	if err := m.store.Save(ctx, clientID, after); err != nil {
		return State{}, err
	}
	return after, nil
}

// Session is one browser's view of the session service. It is cheap to
// create and holds no state of its own; every call reads the store.
type Session struct {
	m        *Manager
	clientID string
	origin   string
}

// ClientID is the browser's stable identifier.
func (s *Session) ClientID() string {
	return s.clientID
}

// State returns the current persisted state.
func (s *Session) State(ctx context.Context) (State, error) {
	return s.m.load(ctx, s.clientID)
}

// HostURL resolves the device base URL from the current state.
func (s *Session) HostURL(ctx context.Context) (string, error) {
	st, err := s.State(ctx)
	if err != nil {
		return "", err
	}
	return ResolveHost(st, s.origin, s.m.hosts), nil
}

// ResolveCandidate resolves the host a login attempt with the given mode
// and IP would use, without touching the stored state.
func (s *Session) ResolveCandidate(ctx context.Context, ip string, mode WiFiMode) (string, error) {
	st, err := s.State(ctx)
	if err != nil {
		return "", err
	}
	applyAddress(&st, ip, mode, s.m.hosts)
	return ResolveHost(st, s.origin, s.m.hosts), nil
}

// SetToken stores a token the device just issued and marks the session
// authenticated. The token is not validated here.
func (s *Session) SetToken(ctx context.Context, token string) error {
	_, err := s.m.update(ctx, s.clientID, func(st *State) {
		st.Token = token
		st.IsAuthenticated = token != ""
	})
	if err != nil {
		return fmt.Errorf("setting token: %w", err)
	}
	return nil
}

// SetIPAddress selects how the device is reached. Access-point mode stores
// the gateway address whatever ip says; station mode stores ip verbatim.
// Callers validate ip first.
func (s *Session) SetIPAddress(ctx context.Context, ip string, mode WiFiMode) error {
	if !mode.Valid() {
		return fmt.Errorf("setting ip address: unknown wifi mode %q", mode)
	}
	_, err := s.m.update(ctx, s.clientID, func(st *State) {
		applyAddress(st, ip, mode, s.m.hosts)
	})
	if err != nil {
		return fmt.Errorf("setting ip address: %w", err)
	}
	return nil
}

func applyAddress(st *State, ip string, mode WiFiMode, hosts HostConfig) {
	switch mode {
	case ModeAccessPoint:
		st.IPAddress = hosts.GatewayAddress()
	case ModeStation:
		st.IPAddress = ip
	default:
		st.IPAddress = ""
	}
	st.WiFiMode = mode
}

// ClearToken drops the token and the authenticated flag. The device
// association is kept so the next login goes to the same device.
func (s *Session) ClearToken(ctx context.Context) error {
	_, err := s.m.update(ctx, s.clientID, (*State).clearToken)
	if err != nil {
		return fmt.Errorf("clearing token: %w", err)
	}
	return nil
}

// ClearAuth drops the token, the authenticated flag, and the device
// association. Used on explicit logout. Calling it twice is the same as
// calling it once.
func (s *Session) ClearAuth(ctx context.Context) error {
	_, err := s.m.update(ctx, s.clientID, (*State).clearAuth)
	if err != nil {
		return fmt.Errorf("clearing auth: %w", err)
	}
	return nil
}

// SetLanguage sets the UI language.
func (s *Session) SetLanguage(ctx context.Context, lang i18n.Language) error {
	if !lang.Valid() {
		return fmt.Errorf("setting language: unsupported language %q", lang)
	}
	_, err := s.m.update(ctx, s.clientID, func(st *State) {
		st.Language = lang
	})
	if err != nil {
		return fmt.Errorf("setting language: %w", err)
	}
	return nil
}

// ToggleLanguage flips between Indonesian and English and returns the new
// language.
func (s *Session) ToggleLanguage(ctx context.Context) (i18n.Language, error) {
	st, err := s.m.update(ctx, s.clientID, func(st *State) {
		st.Language = st.Language.Toggle()
	})
	if err != nil {
		return "", fmt.Errorf("toggling language: %w", err)
	}
	return st.Language, nil
}

// Validation outcomes, also used as metric labels.
const (
	ValidationAbsent    = "absent"
	ValidationValid     = "valid"
	ValidationInvalid   = "invalid"
	ValidationDiscarded = "discarded"
)

// ValidateToken checks the stored token against the device and never
// returns an error.
//
// With no token it clears the credential and returns false without any
// network call. Otherwise it asks hostOverride, or the resolved host when
// hostOverride is empty. A 200 marks the session authenticated; any other
// answer, a transport failure, or the timeout clears the token.
//
// If ctx ends before the answer arrives, or the credential or association
// changed while the request was in flight, the answer is dropped and the
// store is left alone.
func (s *Session) ValidateToken(ctx context.Context, hostOverride string) bool {
	outcome := s.validate(ctx, hostOverride)
	metrics.IncValidation(outcome)
	return outcome == ValidationValid
}

func (s *Session) validate(ctx context.Context, hostOverride string) string {
	st, err := s.State(ctx)
	if err != nil {
		slog.Warn("session load failed during validation",
			slog.String("client_id", s.clientID),
			slog.Any("error", err),
		)
		return ValidationInvalid
	}

	if !st.HasToken() {
		if err := s.ClearToken(ctx); err != nil {
			slog.Warn("clearing absent token failed", slog.Any("error", err))
		}
		return ValidationAbsent
	}

	host := hostOverride
	if host == "" {
		host = ResolveHost(st, s.origin, s.m.hosts)
	}

	valid, err := s.m.validator.ValidateToken(ctx, host, st.Token)
	if err != nil {
		slog.Debug("token validation failed",
			slog.String("host", host),
			slog.Any("error", err),
		)
		valid = false
	}

	if ctx.Err() != nil {
		return ValidationDiscarded
	}

	discarded := false
	_, err = s.m.update(ctx, s.clientID, func(cur *State) {
		if cur.Rev != st.Rev || cur.Token != st.Token {
			discarded = true
			return
		}
		if valid {
			cur.IsAuthenticated = true
		} else {
			cur.clearToken()
		}
	})
	if err != nil {
		slog.Warn("saving validation result failed",
			slog.String("client_id", s.clientID),
			slog.Any("error", err),
		)
		return ValidationInvalid
	}

	switch {
	case discarded:
		return ValidationDiscarded
	case valid:
		return ValidationValid
	default:
		return ValidationInvalid
	}
}
