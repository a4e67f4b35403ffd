package kvstore

import (
	"context"
	"strings"
	"sync"
)

var _ Backend = (*MemoryBackend)(nil)

type MemoryBackend struct {
	values map[string]string
	mutex  sync.Mutex
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		values: make(map[string]string),
	}
}

func (m *MemoryBackend) Get(_ context.Context, key string) (string, bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	val, ok := m.values[key]
	return val, ok, nil
}

func (m *MemoryBackend) Set(_ context.Context, key, value string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryBackend) Remove(_ context.Context, key string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.values, key)
	return nil
}

func (m *MemoryBackend) RemovePrefix(_ context.Context, prefix string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for k := range m.values {
		if strings.HasPrefix(k, prefix) {
			delete(m.values, k)
		}
	}
	return nil
}

// Len is used by tests to assert sweeps.
func (m *MemoryBackend) Len() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.values)
}
