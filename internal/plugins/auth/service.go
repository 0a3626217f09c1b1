package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/molinar-iot/setup-dashboard/internal/device"
	"github.com/molinar-iot/setup-dashboard/internal/i18n"
	"github.com/molinar-iot/setup-dashboard/internal/metrics"
	"github.com/molinar-iot/setup-dashboard/internal/session"
)

// DeviceAuth is the part of the device API auth needs. device.Client
// satisfies it.
type DeviceAuth interface {
	Login(ctx context.Context, host, password string) (string, error)
	Logout(ctx context.Context, host, token string) error
}

// AuthService defines the business logic contract for login and logout.
// Handlers call these methods; they never talk to the device directly.
type AuthService interface {
	Login(ctx context.Context, sess *session.Session, input LoginInput) error
	Logout(ctx context.Context, sess *session.Session) error
}

type authService struct {
	device DeviceAuth
}

// NewAuthService creates the auth service.
func NewAuthService(d DeviceAuth) AuthService {
	return &authService{device: d}
}

// Login validates input, asks the device at the host the chosen mode
// resolves to, and on success stores the association and the token. A
// failure returns a *LoginError naming the message to show; the session
// is left untouched.
func (s *authService) Login(ctx context.Context, sess *session.Session, input LoginInput) error {
	if key := validateLogin(input); key != "" {
		metrics.IncLogin("rejected")
		return &LoginError{Key: key}
	}

	host, err := sess.ResolveCandidate(ctx, input.IPAddress, input.Mode)
	if err != nil {
		metrics.IncLogin("error")
		return &LoginError{Key: i18n.LoginErrGeneric, Cause: err}
	}

	token, err := s.device.Login(ctx, host, input.Password)
	if err != nil {
		key := loginErrorKey(err)
		metrics.IncLogin(string(key))
		slog.Info("device login failed",
			slog.String("host", host),
			slog.String("mode", string(input.Mode)),
			slog.Any("error", err),
		)
		return &LoginError{Key: key, Cause: err}
	}

	if err := sess.SetIPAddress(ctx, input.IPAddress, input.Mode); err != nil {
		metrics.IncLogin("error")
		return &LoginError{Key: i18n.LoginErrGeneric, Cause: err}
	}
	if err := sess.SetToken(ctx, token); err != nil {
		metrics.IncLogin("error")
		return &LoginError{Key: i18n.LoginErrGeneric, Cause: err}
	}

	metrics.IncLogin("success")
	slog.Info("device login succeeded",
		slog.String("client_id", sess.ClientID()),
		slog.String("host", host),
	)
	return nil
}

// loginErrorKey maps a device error to its form message.
func loginErrorKey(err error) i18n.Key {
	switch {
	case errors.Is(err, device.ErrInvalidPassword):
		return i18n.LoginErrInvalidPassword
	case errors.Is(err, device.ErrEndpointNotFound):
		return i18n.LoginErrEndpointNotFound
	case errors.Is(err, device.ErrTimeout):
		return i18n.LoginErrTimeout
	case errors.Is(err, device.ErrUnreachable):
		return i18n.LoginErrUnreachable
	default:
		return i18n.LoginErrGeneric
	}
}

// Logout tells the device to drop the token, ignoring any failure, and
// then clears the credential and device association locally.
func (s *authService) Logout(ctx context.Context, sess *session.Session) error {
	st, err := sess.State(ctx)
	if err == nil && st.HasToken() {
		host, _ := sess.HostURL(ctx)
		if err := s.device.Logout(ctx, host, st.Token); err != nil {
			slog.Warn("device logout failed, clearing session anyway",
				slog.String("host", host),
				slog.Any("error", err),
			)
		}
	}
	return sess.ClearAuth(ctx)
}
