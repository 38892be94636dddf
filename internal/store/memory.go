package store

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is an in-process Settings implementation.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
	subs   subscribers
}

// NewMemoryStore returns a store seeded with values.
func NewMemoryStore(values map[string]string) *MemoryStore {
	m := &MemoryStore{values: make(map[string]string, len(values))}
	for k, v := range values {
		m.values[k] = v
	}
	return m
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return v, nil
}

func (m *MemoryStore) Put(_ context.Context, key, value string) error {
	m.mu.Lock()
	m.values[key] = value
	m.mu.Unlock()
	m.subs.notify(key)
	return nil
}

func (m *MemoryStore) Subscribe(fn func(key string)) func() {
	return m.subs.add(fn)
}
