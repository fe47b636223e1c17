package history

import (
	"context"
	"sort"
	"sync"
)

// Memory is an in-process Store for development and tests.
type Memory struct {
	mu   sync.RWMutex
	data []Record
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Save(_ context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append(m.data, rec)
	return nil
}

func (m *Memory) Get(_ context.Context, clientID, id string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, rec := range m.data {
		if rec.ID == id && rec.ClientID == clientID {
			out := rec
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) List(_ context.Context, clientID string, limit int) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Record
	for _, rec := range m.data {
		if rec.ClientID == clientID {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
