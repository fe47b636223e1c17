package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultMemoryEntries bounds the in-process cache when no size is configured.
const DefaultMemoryEntries = 10_000

// Memory is a process-local Store: least recently used entries are evicted past
// size, and every entry expires after ttl like the Redis store.
type Memory struct {
	lru *expirable.LRU[string, string]
}

// NewMemory returns a cache holding at most size entries for ttl each.
// size <= 0 uses DefaultMemoryEntries; ttl <= 0 disables expiry.
func NewMemory(size int, ttl time.Duration) *Memory {
	if size <= 0 {
		size = DefaultMemoryEntries
	}
	if ttl < 0 {
		ttl = 0
	}
	return &Memory{lru: expirable.NewLRU[string, string](size, nil, ttl)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool) {
	return m.lru.Get(key)
}

func (m *Memory) Set(_ context.Context, key string, value string) error {
	m.lru.Add(key, value)
	return nil
}

func (m *Memory) Len() int {
	return m.lru.Len()
}
