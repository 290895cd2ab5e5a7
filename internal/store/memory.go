// internal/store/memory.go
//
// Durable key/value storage for guessed words, plus its in-memory implementation.
// Values are opaque strings owned by the session engine; the store only
// partitions them by device so that each device sees a private key space,
// the way a browser's local storage would.
//
// Characteristics of the memory store:
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"
)

// Store defines the persistence interface for guess lists.
// Implementations may be backed by memory (this file) or SQLite (sqlite.go).
type Store interface {
	// Load returns the value saved under key for device. ok is false when
	// nothing has been saved yet.
	Load(ctx context.Context, device, key string) (value string, ok bool, err error)

	// Save replaces the value under key for device.
	Save(ctx context.Context, device, key, value string) error
}

type entryKey struct {
	device string
	key    string
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu      sync.RWMutex        // guards entries
	entries map[entryKey]string // keyed by device + storage key
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{entries: make(map[entryKey]string)}
}

// Save adds or updates the entry.
func (m *memory) Save(ctx context.Context, device, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entryKey{device, key}] = value
	return nil
}

// Load looks up an entry.
func (m *memory) Load(ctx context.Context, device, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[entryKey{device, key}]
	return v, ok, nil
}
