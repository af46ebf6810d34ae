package favorites

import (
	"context"
	"sync"
)

// Memory is a process-local Backend for tests and throwaway sessions
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory creates an empty in-memory backend
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get returns the value under key
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set stores value under key
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Close is a no-op
func (m *Memory) Close() error { return nil }

// Ensure Memory implements Backend
var _ Backend = (*Memory)(nil)
