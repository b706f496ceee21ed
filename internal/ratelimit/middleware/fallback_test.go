package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"aquads/internal/ratelimit/models"
	"aquads/internal/ratelimit/store/window"
	"aquads/pkg/platform/circuit"
)

type switchableStore struct {
	inner Store
	down  bool
}

func (s *switchableStore) Allow(ctx context.Context, key string, limit int, w time.Duration) (models.Result, error) {
	if s.down {
		return models.Result{}, errors.New("redis: connection refused")
	}
	return s.inner.Allow(ctx, key, limit, w)
}

type FallbackStoreSuite struct {
	suite.Suite
	primary *switchableStore
	store   *FallbackStore
	ctx     context.Context
}

func TestFallbackStoreSuite(t *testing.T) {
	suite.Run(t, new(FallbackStoreSuite))
}

func (s *FallbackStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.primary = &switchableStore{inner: window.NewInMemory()}
	breaker := circuit.New("ratelimit", circuit.WithFailureThreshold(2), circuit.WithSuccessThreshold(2))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.store = NewFallbackStore(s.primary, window.NewInMemory(), breaker, logger)
}

func (s *FallbackStoreSuite) allow() (models.Result, error) {
	return s.store.Allow(s.ctx, "ip", 10, time.Minute)
}

func (s *FallbackStoreSuite) TestHealthyPrimary() {
	result, err := s.allow()
	s.Require().NoError(err)
	s.True(result.Allowed)
	s.False(s.store.Degraded())
}

func (s *FallbackStoreSuite) TestErrorsBeforeThresholdSurface() {
	s.primary.down = true

	_, err := s.allow()

	s.Error(err)
	s.False(s.store.Degraded())
}

func (s *FallbackStoreSuite) TestOpensAndUsesFallback() {
	s.primary.down = true
	_, _ = s.allow()

	result, err := s.allow()

	s.Require().NoError(err)
	s.True(result.Allowed)
	s.Equal(9, result.Remaining)
	s.True(s.store.Degraded())
}

func (s *FallbackStoreSuite) TestRecoversAfterSuccesses() {
	s.primary.down = true
	_, _ = s.allow()
	_, _ = s.allow()
	s.Require().True(s.store.Degraded())

	s.primary.down = false
	_, err := s.allow()
	s.Require().NoError(err)
	s.True(s.store.Degraded(), "one success is not enough to close")

	_, err = s.allow()
	s.Require().NoError(err)
	s.False(s.store.Degraded())
}
