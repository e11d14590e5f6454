package quota

import (
	"context"
	"sync"
	"time"
)

// MemoryCounterStore is an in-process CounterStore for tests and
// single-instance deployments. Expired windows are dropped lazily.
type MemoryCounterStore struct {
	mu       sync.Mutex
	counters map[string]*memoryCounter
}

type memoryCounter struct {
	count     int64
	expiresAt time.Time
}

func NewMemoryCounterStore() *MemoryCounterStore {
	return &MemoryCounterStore{
		counters: make(map[string]*memoryCounter),
	}
}

func (s *MemoryCounterStore) IncrementIfBelow(_ context.Context, key string, limit int64, ttl time.Duration) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.live(key)

	if c.count >= limit {
		return c.count, false, nil
	}

	c.count++

	if c.expiresAt.IsZero() && ttl > 0 {
		c.expiresAt = time.Now().Add(ttl)
	}

	return c.count, true, nil
}

func (s *MemoryCounterStore) Decrement(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.live(key)
	if c.count > 0 {
		c.count--
	}

	return nil
}

func (s *MemoryCounterStore) Get(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.live(key).count, nil
}

// returns the counter for key, replacing it if its window expired;
// callers must hold the lock
func (s *MemoryCounterStore) live(key string) *memoryCounter {
	c, ok := s.counters[key]

	if !ok || (!c.expiresAt.IsZero() && time.Now().After(c.expiresAt)) {
		c = &memoryCounter{}
		s.counters[key] = c
	}

	return c
}
