package credentials

import (
	"context"
	"sync"
)

// MemoryStore implements Store in process memory. Used by tests and by
// worker deployments that scope credentials to a single invocation.
type MemoryStore struct {
	mu   sync.RWMutex
	pair *Pair
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get retrieves the stored pair
func (m *MemoryStore) Get(ctx context.Context) (*Pair, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.pair == nil {
		return nil, ErrNotFound
	}
	copied := *m.pair
	return &copied, nil
}

// Set stores a copy of the pair
func (m *MemoryStore) Set(ctx context.Context, pair *Pair) error {
	if !pair.Complete() {
		return ErrIncompletePair
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *pair
	m.pair = &copied
	return nil
}

// Clear drops the stored pair
func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pair = nil
	return nil
}

// Name returns the store name
func (m *MemoryStore) Name() string {
	return "MemoryStore"
}
