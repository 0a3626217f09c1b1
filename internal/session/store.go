package session

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Store.Load when a client has no saved state.
var ErrNotFound = errors.New("session state not found")

// Store persists one State per client ID.
type Store interface {
	// Load returns the saved state or ErrNotFound.
	Load(ctx context.Context, clientID string) (State, error)

	// Save replaces the state for clientID.
	Save(ctx context.Context, clientID string, st State) error

	// Delete forgets clientID. Deleting an unknown client is not an error.
	Delete(ctx context.Context, clientID string) error
}
