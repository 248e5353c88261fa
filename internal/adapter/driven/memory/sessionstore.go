// Package memory implements the session-scoped KeyValue port as a mutexed
// in-process map. Its contents live for the process lifetime only, the
// analogue of the browser's session storage.
package memory

import (
	"context"
	"sync"

	"github.com/SebasHerPorras/produs-panel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.KeyValue = (*SessionStore)(nil)

// SessionStore is an in-memory KeyValue implementation. All operations are
// guarded by a single mutex, so multi-key writes are atomic to readers.
type SessionStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewSessionStore creates an empty SessionStore.
func NewSessionStore() *SessionStore {
	return &SessionStore{values: make(map[string]string)}
}

// Get returns the value for key, with ok=false when absent.
func (s *SessionStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

// Set stores or replaces the value for key.
func (s *SessionStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// SetMany stores all given pairs under one lock acquisition.
func (s *SessionStore) SetMany(_ context.Context, values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range values {
		s.values[k] = v
	}
	return nil
}

// Delete removes the given keys. Missing keys are ignored.
func (s *SessionStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.values, k)
	}
	return nil
}
