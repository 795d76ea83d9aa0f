package store

import (
	"errors"
	"sync"
)

// ErrKeyNotFound is returned by a Medium when the key has never been written.
var ErrKeyNotFound = errors.New("key not found")

// Medium is the byte-level key-value backend under a ListStore.
type Medium interface {
	// Get returns the value for key, or ErrKeyNotFound
	Get(key string) ([]byte, error)

	// Put replaces the value for key
	Put(key string, value []byte) error

	// Delete removes key; deleting a missing key is not an error
	Delete(key string) error
}

// MemoryMedium is a map-backed Medium.
type MemoryMedium struct {
	mu     sync.Mutex
	values map[string][]byte
}

// NewMemoryMedium creates an empty MemoryMedium.
func NewMemoryMedium() *MemoryMedium {
	return &MemoryMedium{values: make(map[string][]byte)}
}

// Get returns a copy of the stored value.
func (m *MemoryMedium) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.values[key]
	if !ok {
		return nil, ErrKeyNotFound
	}

	copied := make([]byte, len(v))
	copy(copied, v)
	return copied, nil
}

// Put stores a copy of value.
func (m *MemoryMedium) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make([]byte, len(value))
	copy(copied, value)
	m.values[key] = copied
	return nil
}

// Delete removes key.
func (m *MemoryMedium) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}
