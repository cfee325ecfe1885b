package testutil

import (
	"context"
	"sync"
)

// MemStore is an in-memory publish.ObjectStore.
type MemStore struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Puts    int
	// Err, when set, is returned by every call.
	Err error
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{Objects: make(map[string][]byte)}
}

// Exists implements publish.ObjectStore.
func (m *MemStore) Exists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return false, m.Err
	}
	_, ok := m.Objects[key]
	return ok, nil
}

// Put implements publish.ObjectStore.
func (m *MemStore) Put(_ context.Context, key string, content []byte, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Objects[key] = append([]byte(nil), content...)
	m.Puts++
	return nil
}

// Keys returns the number of stored objects.
func (m *MemStore) Keys() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Objects)
}
