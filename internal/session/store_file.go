package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"
)

// DefaultMaxFileClients caps how many clients one file document holds.
const DefaultMaxFileClients = 10000

// fileDocument is the on-disk layout: one named entry holding every client.
type fileDocument struct {
	Name    string               `json:"name"`
	Version int                  `json:"version"`
	Clients map[string]fileEntry `json:"clients"`
}

// fileEntry is a client state plus when the client was last seen. Version 1
// documents have no lastSeen; they decode with a zero time.
type fileEntry struct {
	State
	LastSeen time.Time `json:"lastSeen"`
}

const fileDocumentVersion = 2

// FileStore keeps all client states in a single JSON document. Every Save
// rewrites the document through a temp file and rename. Clients idle for
// longer than the TTL are dropped, and past maxClients the least recently
// seen client is evicted.
type FileStore struct {
	mu         sync.Mutex
	path       string
	ttl        time.Duration
	maxClients int
	now        func() time.Time
	doc        fileDocument
}

// NewFileStore opens the document at path, creating its directory when
// needed. A missing file starts an empty store named name. ttl <= 0 keeps
// idle clients forever.
func NewFileStore(path, name string, ttl time.Duration) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating session directory: %w", err)
	}

	s := &FileStore{
		path:       path,
		ttl:        ttl,
		maxClients: DefaultMaxFileClients,
		now:        time.Now,
		doc:        fileDocument{Name: name, Version: fileDocumentVersion, Clients: map[string]fileEntry{}},
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading session store: %w", err)
	}
	if len(data) == 0 {
		return s, nil
	}

	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding session store %s: %w", path, err)
	}
	if doc.Name != "" && doc.Name != name {
		return nil, fmt.Errorf("session store %s holds %q, want %q", path, doc.Name, name)
	}
	now := s.now()
	for id, e := range doc.Clients {
		// Entries from before lastSeen was recorded start their TTL now.
		if e.LastSeen.IsZero() {
			e.LastSeen = now
		}
		s.doc.Clients[id] = e
	}
	s.prune(now)
	return s, nil
}

// Load returns the saved state for clientID and marks it seen. The new
// lastSeen reaches disk with the next flush.
func (s *FileStore) Load(_ context.Context, clientID string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.doc.Clients[clientID]
	if !ok {
		return State{}, ErrNotFound
	}
	now := s.now()
	if s.expired(e, now) {
		delete(s.doc.Clients, clientID)
		return State{}, ErrNotFound
	}
	e.LastSeen = now
	s.doc.Clients[clientID] = e
	return e.State, nil
}

// Save stores st and flushes the document.
func (s *FileStore) Save(_ context.Context, clientID string, st State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.doc.Clients[clientID]
	s.doc.Clients[clientID] = fileEntry{State: st, LastSeen: s.now()}
	if err := s.flush(); err != nil {
		if existed {
			s.doc.Clients[clientID] = prev
		} else {
			delete(s.doc.Clients, clientID)
		}
		return err
	}
	return nil
}

// Delete removes clientID and flushes the document.
func (s *FileStore) Delete(_ context.Context, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.doc.Clients[clientID]; !ok {
		return nil
	}
	delete(s.doc.Clients, clientID)
	return s.flush()
}

// Len reports how many clients the document holds.
func (s *FileStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.doc.Clients)
}

func (s *FileStore) expired(e fileEntry, now time.Time) bool {
	return s.ttl > 0 && now.Sub(e.LastSeen) > s.ttl
}

// prune drops expired clients, then evicts the least recently seen ones
// until at most maxClients remain. Caller holds s.mu.
func (s *FileStore) prune(now time.Time) {
	for id, e := range s.doc.Clients {
		if s.expired(e, now) {
			delete(s.doc.Clients, id)
		}
	}
	excess := len(s.doc.Clients) - s.maxClients
	if s.maxClients <= 0 || excess <= 0 {
		return
	}
	ids := make([]string, 0, len(s.doc.Clients))
	for id := range s.doc.Clients {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b string) int {
		return s.doc.Clients[a].LastSeen.Compare(s.doc.Clients[b].LastSeen)
	})
	for _, id := range ids[:excess] {
		delete(s.doc.Clients, id)
	}
}

// flush prunes and writes the document atomically. Caller holds s.mu.
func (s *FileStore) flush() error {
	s.prune(s.now())

	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session store: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".app-store-*")
	if err != nil {
		return fmt.Errorf("creating temp session file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing session store: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("setting session store permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing session store: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replacing session store: %w", err)
	}
	return nil
}
