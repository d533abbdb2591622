package history

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store that keeps at most capacity records.
type MemoryStore struct {
	mu       sync.Mutex
	capacity int
	data     []Record
}

// NewMemoryStore creates a store holding the last capacity records.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = 1000
	}
	return &MemoryStore{
		capacity: capacity,
		data:     []Record{},
	}
}

func (m *MemoryStore) Save(_ context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = append(m.data, rec)
	if over := len(m.data) - m.capacity; over > 0 {
		m.data = append([]Record(nil), m.data[over:]...)
	}
	return nil
}

func (m *MemoryStore) Recent(_ context.Context, limit int) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	limit = clampLimit(limit)
	out := make([]Record, 0, limit)
	for i := len(m.data) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.data[i])
	}
	return out, nil
}
