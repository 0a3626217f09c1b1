package device

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Sentinel errors returned by Client. Callers branch on them with errors.Is;
// the wrapped cause is kept for logging.
var (
	ErrInvalidPassword  = errors.New("device rejected the password")
	ErrEndpointNotFound = errors.New("device endpoint not found")
	ErrTimeout          = errors.New("device request timed out")
	ErrUnreachable      = errors.New("device unreachable")
	ErrInvalidToken     = errors.New("device rejected the token")
	ErrBadResponse      = errors.New("device sent a malformed response")
)

// StatusError is an HTTP status the caller did not expect.
type StatusError struct {
	Op   string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Code)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.Code, e.Body)
}

// classifyTransport maps a failed round trip to ErrTimeout or ErrUnreachable.
// A parent context cancellation is returned unchanged so callers can tell an
// abandoned request from a dead device.
func classifyTransport(op string, err error) error {
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w: %v", op, ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%s: %w: %v", op, ErrTimeout, err)
	}
	return fmt.Errorf("%s: %w: %v", op, ErrUnreachable, err)
}
