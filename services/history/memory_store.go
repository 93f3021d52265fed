package history

import (
	"context"
	"sync"
)

// MemoryStore keeps the most recent entries in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []View
	limit   int
	nextID  uint
}

// NewMemoryStore keeps at most limit entries; limit <= 0 keeps everything.
func NewMemoryStore(limit int) *MemoryStore {
	return &MemoryStore{limit: limit}
}

func (s *MemoryStore) Append(_ context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	s.entries = append(s.entries, View{ID: s.nextID, Entry: e})
	if s.limit > 0 && len(s.entries) > s.limit {
		s.entries = append([]View(nil), s.entries[len(s.entries)-s.limit:]...)
	}
	return nil
}

func (s *MemoryStore) Recent(_ context.Context, pool string, limit int) ([]View, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []View
	for i := len(s.entries) - 1; i >= 0; i-- {
		if pool != "" && s.entries[i].PoolName != pool {
			continue
		}
		out = append(out, s.entries[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
