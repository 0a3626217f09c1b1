package session

import (
	"context"
	"sync"
)

// MemoryStore keeps states in process memory. Nothing survives a restart;
// used for SESSION_STORE=memory and in tests.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]State
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]State)}
}

func (s *MemoryStore) Load(_ context.Context, clientID string) (State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.states[clientID]
	if !ok {
		return State{}, ErrNotFound
	}
	return st, nil
}

func (s *MemoryStore) Save(_ context.Context, clientID string, st State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[clientID] = st
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, clientID)
	return nil
}
