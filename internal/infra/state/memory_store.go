package state

import (
	"context"
	"sync"
	"time"

	"taskhub/internal/domain/service"
)

// memoryStore keeps state nonces in process memory. Suitable for a single
// instance; expired entries are swept lazily on each Issue.
type memoryStore struct {
	mu     sync.Mutex
	nonces map[string]time.Time
}

// NewMemoryStore creates an in-memory state store.
func NewMemoryStore() service.StateStore {
	return &memoryStore{nonces: make(map[string]time.Time)}
}

// Issue creates a nonce and remembers its expiry.
func (s *memoryStore) Issue(_ context.Context) (string, error) {
	nonce, err := newNonce()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for k, exp := range s.nonces {
		if now.After(exp) {
			delete(s.nonces, k)
		}
	}
	s.nonces[nonce] = now.Add(stateTTL)

	return nonce, nil
}

// Verify consumes the nonce. A nonce can only be verified once.
func (s *memoryStore) Verify(_ context.Context, state string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	exp, ok := s.nonces[state]
	if !ok {
		return service.ErrStateNotFound
	}
	delete(s.nonces, state)

	if time.Now().After(exp) {
		return service.ErrStateNotFound
	}

	return nil
}
