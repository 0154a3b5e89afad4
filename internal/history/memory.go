package history

import (
	"context"
	"sync"
)

// MemoryStore keeps entries in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	capacity int
	owners   map[string][]Entry
}

func NewMemoryStore(capacity int) *MemoryStore {
	return &MemoryStore{
		capacity: normalizeCapacity(capacity),
		owners:   make(map[string][]Entry),
	}
}

func (m *MemoryStore) Append(_ context.Context, owner string, e Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.owners[owner] = merge(m.owners[owner], e, m.capacity)
	return nil
}

func (m *MemoryStore) Recent(_ context.Context, owner string) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := m.owners[owner]
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out, nil
}

func (m *MemoryStore) Close() error { return nil }
