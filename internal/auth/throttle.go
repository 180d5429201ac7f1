package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginThrottle counts failed logins per username.
type LoginThrottle interface {
	Blocked(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

// NoopThrottle never blocks.
type NoopThrottle struct{}

func (NoopThrottle) Blocked(context.Context, string) (bool, error) { return false, nil }
func (NoopThrottle) RecordFailure(context.Context, string) error { return nil }
func (NoopThrottle) Reset(context.Context, string) error { return nil }

// RedisThrottle keeps a fixed-window failure counter per username in Redis.
type RedisThrottle struct {
	client      *redis.Client
	maxFailures int64
	window      time.Duration
	prefix      string
}

// NewRedisThrottle returns a throttle blocking after maxFailures failures within window.
func NewRedisThrottle(client *redis.Client, maxFailures int, window time.Duration) *RedisThrottle {
	return &RedisThrottle{
		client:      client,
		maxFailures: int64(maxFailures),
		window:      window,
		prefix:      "login:failures:",
	}
}

func (t *RedisThrottle) key(username string) string {
	return t.prefix + username
}

// Blocked reports whether the username reached the failure limit in the current window.
func (t *RedisThrottle) Blocked(ctx context.Context, username string) (bool, error) {
	count, err := t.client.Get(ctx, t.key(username)).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return count >= t.maxFailures, nil
}

// RecordFailure increments the counter, starting the window on the first failure.
func (t *RedisThrottle) RecordFailure(ctx context.Context, username string) error {
	key := t.key(username)
	count, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		return err
	}
	if count == 1 {
		return t.client.Expire(ctx, key, t.window).Err()
	}
	return nil
}

// Reset clears the counter after a successful login.
func (t *RedisThrottle) Reset(ctx context.Context, username string) error {
	return t.client.Del(ctx, t.key(username)).Err()
}
