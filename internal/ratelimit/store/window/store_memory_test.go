package window

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	testLimit  = 3
	testWindow = time.Minute
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	clock time.Time
	ctx   context.Context
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.clock = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.store = NewInMemory()
	s.store.now = func() time.Time { return s.clock }
	s.ctx = context.Background()
}

func (s *InMemoryStoreSuite) TestAllow() {
	s.Run("first request allowed", func() {
		result, err := s.store.Allow(s.ctx, "first", testLimit, testWindow)
		s.Require().NoError(err)
		s.True(result.Allowed)
		s.Equal(testLimit, result.Limit)
		s.Equal(testLimit-1, result.Remaining)
		s.Equal(s.clock.Add(testWindow), result.ResetAt)
	})

	s.Run("request over limit denied", func() {
		for i := 0; i < testLimit; i++ {
			result, err := s.store.Allow(s.ctx, "over", testLimit, testWindow)
			s.Require().NoError(err)
			s.True(result.Allowed)
		}
		result, err := s.store.Allow(s.ctx, "over", testLimit, testWindow)
		s.Require().NoError(err)
		s.False(result.Allowed)
		s.Equal(0, result.Remaining)
	})

	s.Run("keys are independent", func() {
		for i := 0; i < testLimit+1; i++ {
			_, err := s.store.Allow(s.ctx, "busy", testLimit, testWindow)
			s.Require().NoError(err)
		}
		result, err := s.store.Allow(s.ctx, "quiet", testLimit, testWindow)
		s.Require().NoError(err)
		s.True(result.Allowed)
	})
}

func (s *InMemoryStoreSuite) TestWindowExpiry() {
	for i := 0; i < testLimit+1; i++ {
		_, err := s.store.Allow(s.ctx, "reset", testLimit, testWindow)
		s.Require().NoError(err)
	}

	s.clock = s.clock.Add(testWindow)

	result, err := s.store.Allow(s.ctx, "reset", testLimit, testWindow)
	s.Require().NoError(err)
	s.True(result.Allowed)
	s.Equal(testLimit-1, result.Remaining)
}

func (s *InMemoryStoreSuite) TestSweep() {
	_, err := s.store.Allow(s.ctx, "stale", testLimit, testWindow)
	s.Require().NoError(err)
	s.clock = s.clock.Add(2 * testWindow)
	_, err = s.store.Allow(s.ctx, "fresh", testLimit, testWindow)
	s.Require().NoError(err)

	s.store.Sweep()

	s.NotContains(s.store.windows, "stale")
	s.Contains(s.store.windows, "fresh")
}

func (s *InMemoryStoreSuite) TestConcurrentAllow() {
	const goroutines = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := s.store.Allow(s.ctx, "concurrent", testLimit, testWindow)
			if err != nil {
				return
			}
			if result.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	s.Equal(testLimit, allowed)
}
