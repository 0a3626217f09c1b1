package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestSafeMessage(t *testing.T) {
	if got := SafeMessage(NewNotFound("tab not found")); got != "tab not found" {
		t.Errorf("got %q", got)
	}
	if got := SafeMessage(errors.New("dial tcp 192.168.4.1:80: refused")); got != "an unexpected error occurred" {
		t.Errorf("raw error leaked: %q", got)
	}

	wrapped := fmt.Errorf("saving: %w", NewValidation("port out of range"))
	if got := SafeMessage(wrapped); got != "port out of range" {
		t.Errorf("expected wrapped message, got %q", got)
	}
}

func TestSafeCode(t *testing.T) {
	cause := errors.New("timeout")
	tests := []struct {
		err  error
		want int
	}{
		{NewBadRequest("x"), http.StatusBadRequest},
		{NewUnauthorized("x"), http.StatusUnauthorized},
		{NewTooLarge("x"), http.StatusRequestEntityTooLarge},
		{NewBadGateway("x", cause), http.StatusBadGateway},
		{NewGatewayTimeout("x", cause), http.StatusGatewayTimeout},
		{NewMissingContext(), http.StatusInternalServerError},
		{cause, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := SafeCode(tt.err); got != tt.want {
			t.Errorf("SafeCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewBadGateway("device unreachable", cause)
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to reach the internal cause")
	}
}
