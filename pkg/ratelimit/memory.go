package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Store is the fixed-window counter surface the auth middleware depends on.
// Both the in-memory store and the redis client satisfy it.
type Store interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

type windowEntry struct {
	count    int64
	windowAt time.Time
}

// MemoryStore is a process-local fixed-window counter. Keys are never evicted
// until their window lapses, so the map grows with the number of distinct
// scopes seen; acceptable for per-IP auth throttling on a single instance.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]windowEntry
	now     func() time.Time
}

// NewMemoryStore returns an empty in-memory fixed-window store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]windowEntry),
		now:     time.Now,
	}
}

// FixedWindowAllow increments the counter for scope and reports whether the
// call is within limit for the current window.
func (s *MemoryStore) FixedWindowAllow(_ context.Context, scope string, limit int64, window time.Duration) (bool, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry, ok := s.entries[scope]
	if !ok || now.Sub(entry.windowAt) >= window {
		entry = windowEntry{count: 0, windowAt: now}
	}

	entry.count++
	s.entries[scope] = entry

	return entry.count <= limit, entry.count, nil
}

// Len reports the number of tracked scopes. Used by tests.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
