package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps one JSON value per client under "<name>:<clientID>".
// Each Save refreshes the key's TTL, so idle browsers expire.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a store on an already connected client.
func NewRedisStore(client *redis.Client, name string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: name + ":", ttl: ttl}
}

func (s *RedisStore) key(clientID string) string {
	return s.prefix + clientID
}

// Load returns the saved state for clientID.
func (s *RedisStore) Load(ctx context.Context, clientID string) (State, error) {
	data, err := s.client.Get(ctx, s.key(clientID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return State{}, ErrNotFound
	}
	if err != nil {
		return State{}, fmt.Errorf("loading session state: %w", err)
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}, fmt.Errorf("decoding session state: %w", err)
	}
	return st, nil
}

// Save stores st with the configured TTL.
func (s *RedisStore) Save(ctx context.Context, clientID string, st State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encoding session state: %w", err)
	}
	if err := s.client.Set(ctx, s.key(clientID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("saving session state: %w", err)
	}
	return nil
}

// Delete removes clientID.
func (s *RedisStore) Delete(ctx context.Context, clientID string) error {
	if err := s.client.Del(ctx, s.key(clientID)).Err(); err != nil {
		return fmt.Errorf("deleting session state: %w", err)
	}
	return nil
}
