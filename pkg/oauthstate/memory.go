package oauthstate

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps states in process memory. Suitable for tests and
// single-instance development setups only.
type MemoryStore struct {
	mu     sync.Mutex
	states map[string]time.Time // state -> expiry
}

// NewMemoryStore creates an empty in-memory state store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]time.Time)}
}

func (s *MemoryStore) Save(ctx context.Context, state string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state] = time.Now().Add(ttl)
	return nil
}

func (s *MemoryStore) Consume(ctx context.Context, state string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiry, ok := s.states[state]
	if !ok {
		return ErrStateNotFound
	}
	delete(s.states, state)
	if time.Now().After(expiry) {
		return ErrStateNotFound
	}
	return nil
}

// Compile-time interface assertion
var _ Store = (*MemoryStore)(nil)
