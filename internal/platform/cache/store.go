package cache

import (
	"context"
	"sync"
	"time"
)

// Store is a byte-oriented key/value cache with per-entry lifetimes.
//
// Get reports how long the entry has left to live. A store that cannot tell
// returns a zero duration alongside found=true.
type Store interface {
	Get(ctx context.Context, key string) (payload []byte, remaining time.Duration, found bool, err error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type entry struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryStore keeps entries in process. It serves single-instance deployments and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(time.Now)
}

// NewMemoryStoreWithClock lets tests drive expiry with a simulated clock.
func NewMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{
		entries: make(map[string]entry),
		now:     now,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, time.Duration, bool, error) {
	if key == "" {
		return nil, 0, false, nil
	}

	now := s.now()
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, 0, false, nil
	}

	remaining := e.expiresAt.Sub(now)
	if remaining <= 0 {
		s.mu.Lock()
		if current, still := s.entries[key]; still && !current.expiresAt.After(now) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, 0, false, nil
	}

	out := make([]byte, len(e.payload))
	copy(out, e.payload)
	return out, remaining, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, payload []byte, ttl time.Duration) error {
	if key == "" || ttl <= 0 {
		return nil
	}

	stored := make([]byte, len(payload))
	copy(stored, payload)

	s.mu.Lock()
	s.entries[key] = entry{
		payload:   stored,
		expiresAt: s.now().Add(ttl),
	}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

// Len counts live and not-yet-collected entries.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
