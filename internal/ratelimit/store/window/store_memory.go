package window

import (
	"context"
	"sync"
	"time"

	"aquads/internal/ratelimit/models"
)

// InMemoryStore counts requests per key in fixed windows held in process memory.
// Counters are not shared between replicas; use RedisStore for that.
type InMemoryStore struct {
	mu      sync.Mutex
	windows map[string]*fixedWindow
	now     func() time.Time
}

type fixedWindow struct {
	count   int
	resetAt time.Time
}

// NewInMemory creates an empty in-memory store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		windows: make(map[string]*fixedWindow),
		now:     time.Now,
	}
}

// Allow increments the counter for key and reports whether it is still within limit.
func (s *InMemoryStore) Allow(_ context.Context, key string, limit int, window time.Duration) (models.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	fw := s.windows[key]
	if fw == nil || !now.Before(fw.resetAt) {
		fw = &fixedWindow{resetAt: now.Add(window)}
		s.windows[key] = fw
	}
	fw.count++

	return result(fw.count, limit, fw.resetAt), nil
}

// Sweep drops windows that have already expired.
func (s *InMemoryStore) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, fw := range s.windows {
		if !now.Before(fw.resetAt) {
			delete(s.windows, key)
		}
	}
}

func result(count, limit int, resetAt time.Time) models.Result {
	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}
	return models.Result{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *InMemoryStore) RunSweeper(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
