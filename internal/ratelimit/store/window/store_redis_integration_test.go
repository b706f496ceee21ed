//go:build integration

package window_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"aquads/internal/ratelimit/store/window"
	"aquads/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *window.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = window.NewRedis(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestAllowUpToLimit() {
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		result, err := s.store.Allow(ctx, "ip:203.0.113.9", 3, time.Minute)
		s.Require().NoError(err)
		s.True(result.Allowed)
		s.Equal(2-i, result.Remaining)
	}

	result, err := s.store.Allow(ctx, "ip:203.0.113.9", 3, time.Minute)
	s.Require().NoError(err)
	s.False(result.Allowed)
	s.Equal(0, result.Remaining)
	s.WithinDuration(time.Now().Add(time.Minute), result.ResetAt, 5*time.Second)
}

func (s *RedisStoreSuite) TestWindowExpires() {
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		_, err := s.store.Allow(ctx, "short", 1, 200*time.Millisecond)
		s.Require().NoError(err)
	}

	s.Eventually(func() bool {
		result, err := s.store.Allow(ctx, "short", 1, 200*time.Millisecond)
		return err == nil && result.Allowed
	}, 3*time.Second, 100*time.Millisecond)
}

func (s *RedisStoreSuite) TestSetsExpiry() {
	ctx := context.Background()
	_, err := s.store.Allow(ctx, "ttl", 5, time.Minute)
	s.Require().NoError(err)

	ttl, err := s.redis.Client.PTTL(ctx, "aquads:ratelimit:ttl").Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
	s.LessOrEqual(ttl, time.Minute)
}
