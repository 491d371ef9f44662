package localstore

import (
	"context"
	"sync"
)

// MemoryStore keeps records in a mutex-guarded map. Useful for tests and for
// sessions that should not outlive the process.
type MemoryStore struct {
	mu    sync.RWMutex
	store map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{store: make(map[string][]byte)}
}

// Get returns a copy of the record stored under key
func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.store[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set overwrites the record stored under key
func (m *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	m.store[key] = stored
	return nil
}

// Delete removes the record stored under key. Deleting an absent key is not
// an error.
func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.store, key)
	return nil
}
