package window

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"aquads/internal/ratelimit/models"
)

const keyPrefix = "aquads:ratelimit:"

// RedisStore counts requests per key in fixed windows shared through Redis.
type RedisStore struct {
	client redis.Cmdable
	now    func() time.Time
}

// NewRedis creates a store backed by client.
func NewRedis(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

// Allow increments the counter for key. The first hit in a window sets its expiry.
func (s *RedisStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (models.Result, error) {
	redisKey := keyPrefix + key

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, window)
	ttl := pipe.PTTL(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return models.Result{}, fmt.Errorf("rate limit pipeline: %w", err)
	}

	remainingTTL := ttl.Val()
	if remainingTTL <= 0 {
		remainingTTL = window
	}
	return result(int(incr.Val()), limit, s.now().Add(remainingTTL)), nil
}
