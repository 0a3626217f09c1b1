package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/molinar-iot/setup-dashboard/internal/apperror"
	"github.com/molinar-iot/setup-dashboard/internal/metrics"
	"github.com/molinar-iot/setup-dashboard/internal/middleware"
	"github.com/molinar-iot/setup-dashboard/internal/session"
)

// Redirect targets.
const (
	LoginPath     = "/auth/login"
	DashboardPath = "/app/dashboard"
)

// GuardStatus is where a guard evaluation stands.
type GuardStatus int

const (
	// Checking is the state before validation resolves. No guarded
	// content is written while a guard is Checking.
	Checking GuardStatus = iota
	// Authorized lets an /app request through.
	Authorized
	// UnauthorizedOK lets an /auth request through.
	UnauthorizedOK
	// Redirecting sends the browser to Decision.Location.
	Redirecting
)

func (s GuardStatus) String() string {
	switch s {
	case Checking:
		return "checking"
	case Authorized:
		return "authorized"
	case UnauthorizedOK:
		return "unauthorized_ok"
	case Redirecting:
		return "redirecting"
	}
	return fmt.Sprintf("GuardStatus(%d)", int(s))
}

// Decision is the final outcome of one guard evaluation.
type Decision struct {
	Status   GuardStatus
	Location string
}

// guardSession is what the guards need from a session.
type guardSession interface {
	State(ctx context.Context) (session.State, error)
	ValidateToken(ctx context.Context, hostOverride string) bool
	ClearToken(ctx context.Context) error
}

// checkToken reports whether the session holds a token and, if it does,
// whether the device accepted it. A panic or store failure during the
// check counts as rejection and clears the token. ValidateToken clears a
// rejected token itself.
func checkToken(ctx context.Context, s guardSession) (hasToken, valid bool) {
	st, err := s.State(ctx)
	if err != nil {
		slog.Warn("guard could not load session", slog.Any("error", err))
		return true, false
	}
	if !st.HasToken() {
		return false, false
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic during token validation", slog.Any("panic", r))
			if err := s.ClearToken(ctx); err != nil {
				slog.Warn("clearing token after panic failed", slog.Any("error", err))
			}
			hasToken, valid = true, false
		}
	}()
	return true, s.ValidateToken(ctx, "")
}

// EvaluateAuth decides an authenticated-only request. No token redirects
// to login without any network call; otherwise exactly one validation
// runs and only a valid token is Authorized.
func EvaluateAuth(ctx context.Context, s guardSession) Decision {
	hasToken, valid := checkToken(ctx, s)
	switch {
	case !hasToken:
		return Decision{Status: Redirecting, Location: LoginPath}
	case valid:
		return Decision{Status: Authorized}
	default:
		return Decision{Status: Redirecting, Location: LoginPath}
	}
}

// EvaluateGuest decides a logged-out-only request. No token shows the
// page without a network call; a valid token goes to the dashboard; a bad
// one has been cleared and the page is shown.
func EvaluateGuest(ctx context.Context, s guardSession) Decision {
	_, valid := checkToken(ctx, s)
	if valid {
		return Decision{Status: Redirecting, Location: DashboardPath}
	}
	return Decision{Status: UnauthorizedOK}
}

// RequireAuth guards /app routes. It runs on every request, so a token
// cleared elsewhere or a changed device address is seen on the next page.
func RequireAuth() echo.MiddlewareFunc {
	return guard("auth", EvaluateAuth)
}

// RequireGuest guards /auth routes.
func RequireGuest() echo.MiddlewareFunc {
	return guard("guest", EvaluateGuest)
}

func guard(name string, evaluate func(context.Context, guardSession) Decision) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := session.FromContext(c)
			if sess == nil {
				return apperror.NewMissingContext()
			}

			d := evaluate(c.Request().Context(), sess)
			metrics.IncGuardDecision(name, d.Status.String())
			slog.Debug("guard decision",
				slog.String("guard", name),
				slog.String("path", c.Request().URL.Path),
				slog.String("status", d.Status.String()),
			)

			if d.Status == Redirecting {
				return middleware.Redirect(c, d.Location)
			}
			c.Set(contextKeyGuardStatus, d.Status)
			return next(c)
		}
	}
}

const contextKeyGuardStatus = "auth_guard_status"

// GetGuardStatus returns the status the guard let the request through
// with, or Checking when no guard ran.
func GetGuardStatus(c echo.Context) GuardStatus {
	s, _ := c.Get(contextKeyGuardStatus).(GuardStatus)
	return s
}
