// Package storage provides abstractions for the local persistent key-value store.
package storage

import (
	"context"
	"sync"
)

// Well-known keys read and written by the inventory core.
const (
	KeyAuthToken         = "authToken"
	KeySelectedHouseID   = "selectedHouseId"
	KeySelectedHouseName = "selectedHouseName"

	kitchenKeyPrefix = "kitchen_"
)

// KitchenKey returns the cache key holding the kitchen id resolved for houseID.
func KitchenKey(houseID string) string {
	return kitchenKeyPrefix + houseID
}

// Store defines the local key-value operations the core relies on.
// Plain get/set semantics: no transactions, no locking across keys.
// This abstraction allows swapping backends (SQLite file, in-memory)
// without changing the components that use it.
type Store interface {
	// Get returns the value stored under key.
	// A missing key is not an error: it returns "", false, nil.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)

// MemoryStore is a process-local Store used by tests and the fake backend mode.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryStore) Close() error { return nil }
