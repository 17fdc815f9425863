package mocks

import (
	"context"
	"sync"
	"time"
)

// MockCacheBackend implements cache.Backend with an in-memory map.
// TTLs are recorded but not enforced.
type MockCacheBackend struct {
	GetErr    error
	SetErr    error
	DeleteErr error

	// BeforeSet, when set, runs at the start of Set without the lock held.
	BeforeSet func(key string)

	mu      sync.Mutex
	entries map[string][]byte
	ttls    map[string]time.Duration

	Gets    int
	Sets    int
	Deletes int
}

// NewMockCacheBackend creates an empty backend.
func NewMockCacheBackend() *MockCacheBackend {
	return &MockCacheBackend{
		entries: make(map[string][]byte),
		ttls:    make(map[string]time.Duration),
	}
}

// Get implements the Backend interface
func (m *MockCacheBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Gets++
	if m.GetErr != nil {
		return nil, false, m.GetErr
	}
	v, ok := m.entries[key]
	return v, ok, nil
}

// Set implements the Backend interface
func (m *MockCacheBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.BeforeSet != nil {
		m.BeforeSet(key)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Sets++
	if m.SetErr != nil {
		return m.SetErr
	}
	m.entries[key] = append([]byte(nil), value...)
	m.ttls[key] = ttl
	return nil
}

// Delete implements the Backend interface
func (m *MockCacheBackend) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Deletes++
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	for _, k := range keys {
		delete(m.entries, k)
		delete(m.ttls, k)
	}
	return nil
}

// Has reports whether key is currently stored.
func (m *MockCacheBackend) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[key]
	return ok
}

// Put stores raw bytes under key, bypassing SetErr.
func (m *MockCacheBackend) Put(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
}

// TTL returns the ttl recorded for key.
func (m *MockCacheBackend) TTL(key string) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ttls[key]
}
