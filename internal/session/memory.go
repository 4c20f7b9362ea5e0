package session

import (
	"context"
	"sync"
)

// MemoryStore keeps sessions in process memory
type MemoryStore struct {
	entries map[int64]Entry
	mu      sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[int64]Entry),
	}
}

// Save replaces the user's entry
func (m *MemoryStore) Save(_ context.Context, userID int64, entry Entry) error {
	entry.Metadata.Alternatives = append([]string(nil), entry.Metadata.Alternatives...)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[userID] = entry
	return nil
}

// Load returns the user's entry if one was saved
func (m *MemoryStore) Load(_ context.Context, userID int64) (Entry, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, exists := m.entries[userID]
	return entry, exists, nil
}

// Clear removes the user's entry
func (m *MemoryStore) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, userID)
}
