package storage

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	DefaultMemoryEntries = 256
	DefaultMemoryTTL     = 24 * time.Hour
)

// MemoryStore is an in-process Store for local runs and tests. It holds at
// most maxEntries files, each for ttl; older files are evicted first.
type MemoryStore struct {
	items *expirable.LRU[string, []byte]
}

// NewMemoryStore returns a bounded store. Non-positive arguments select the defaults.
func NewMemoryStore(maxEntries int, ttl time.Duration) *MemoryStore {
	if maxEntries <= 0 {
		maxEntries = DefaultMemoryEntries
	}
	if ttl <= 0 {
		ttl = DefaultMemoryTTL
	}
	return &MemoryStore{items: expirable.NewLRU[string, []byte](maxEntries, nil, ttl)}
}

func (m *MemoryStore) Put(_ context.Context, key string, data []byte) error {
	buf := make([]byte, len(data))
	copy(buf, data)
	m.items.Add(key, buf)
	return nil
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	data, ok := m.items.Get(key)
	if !ok {
		return nil, ErrNotFound
	}
	return data, nil
}

// Len is the number of files currently held.
func (m *MemoryStore) Len() int {
	return m.items.Len()
}

func (m *MemoryStore) Name() string { return "memory" }
