package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements a fixed-window counter shared across instances.
// One INCR per request; the key expires when the window elapses. Used when
// the site runs behind more than one backend process, where the in-memory
// store would give each instance its own quota.
type RedisStore struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
}

func NewRedisStore(client *redis.Client, prefix string, limit int, window time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
		limit:  limit,
		window: window,
	}
}

func (s *RedisStore) Allow(ctx context.Context, key string) (Decision, error) {
	redisKey := fmt.Sprintf("ratelimit:%s:%s", s.prefix, key)

	count, err := s.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return Decision{Allowed: true}, fmt.Errorf("rate limit incr: %w", err)
	}

	if count == 1 {
		if err := s.client.PExpire(ctx, redisKey, s.window).Err(); err != nil {
			return Decision{Allowed: true}, fmt.Errorf("rate limit expire: %w", err)
		}
	}

	if count > int64(s.limit) {
		ttl, err := s.client.PTTL(ctx, redisKey).Result()
		if err != nil || ttl < 0 {
			ttl = s.window
		}
		return Decision{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: ttl,
		}, nil
	}

	return Decision{
		Allowed:   true,
		Remaining: s.limit - int(count),
	}, nil
}
