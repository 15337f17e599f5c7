package store

import (
	"sync"
	"time"
)

// Memory is an in-memory store for testing.
type Memory struct {
	mu      sync.RWMutex
	entries []Entry
	nextID  int64
}

// NewMemory creates a new in-memory store.
func NewMemory() *Memory {
	return &Memory{nextID: 1}
}

// Append records an entry.
func (m *Memory) Append(e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n := len(m.entries); n > 0 && sameEntry(m.entries[n-1], e) {
		return nil
	}
	e.ID = m.nextID
	m.nextID++
	if e.Ts == "" {
		e.Ts = time.Now().UTC().Format(time.RFC3339)
	}
	m.entries = append(m.entries, e)
	return nil
}

// Recent returns the newest entries, oldest first.
func (m *Memory) Recent(limit int) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	start := 0
	if limit > 0 && len(m.entries) > limit {
		start = len(m.entries) - limit
	}
	if start == len(m.entries) {
		return nil, nil
	}
	return append([]Entry(nil), m.entries[start:]...), nil
}

// Close is a no-op for memory store.
func (m *Memory) Close() error {
	return nil
}
