// Package auth gates the dashboard behind the device's own password. It
// owns the two route guards, the login form that exchanges the password
// for a device token, and logout.
//
// This is a CORE plugin: every /app and /auth route depends on it.
package auth

import (
	"errors"

	"github.com/molinar-iot/setup-dashboard/internal/i18n"
	"github.com/molinar-iot/setup-dashboard/internal/session"
)

// --- Request DTOs (bound from HTTP requests) ---

// LoginRequest holds the data submitted by the login form.
type LoginRequest struct {
	Password  string `form:"password"`
	WiFiMode  string `form:"wifi_mode"`
	IPAddress string `form:"ip_address"`
}

// --- Service input ---

// LoginInput is the login attempt passed from handler to service.
type LoginInput struct {
	Password  string
	Mode      session.WiFiMode
	IPAddress string
}

// LoginError is a failed login with the message key the form shows.
type LoginError struct {
	Key   i18n.Key
	Cause error
}

func (e *LoginError) Error() string {
	if e.Cause != nil {
		return string(e.Key) + ": " + e.Cause.Error()
	}
	return string(e.Key)
}

func (e *LoginError) Unwrap() error {
	return e.Cause
}

// LoginKey returns the message key for err, or LoginErrGeneric.
func LoginKey(err error) i18n.Key {
	var le *LoginError
	if errors.As(err, &le) {
		return le.Key
	}
	return i18n.LoginErrGeneric
}

// --- View data ---

// LoginView is the data the login page renders.
type LoginView struct {
	Mode      string
	IPAddress string
	Gateway   string
	Error     string
}
