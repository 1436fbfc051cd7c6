package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// incrementScript bumps the counter and starts its window on the first hit,
// in one round trip so no increment or expiry can be lost between instances.
var incrementScript = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return count
`)

// RedisRateLimiter implements RateLimiter on a shared redis.
type RedisRateLimiter struct {
	client      *redis.Client
	keyPrefix   string
	maxRequests int64
	window      time.Duration
}

// NewRedisRateLimiter builds a limiter allowing maxRequests per window for
// each subject. keyPrefix namespaces one limiter's counters from another's.
func NewRedisRateLimiter(client *redis.Client, keyPrefix string, maxRequests int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{
		client:      client,
		keyPrefix:   keyPrefix,
		maxRequests: int64(maxRequests),
		window:      window,
	}
}

func (l *RedisRateLimiter) key(subjectKey string) string {
	return l.keyPrefix + ":" + subjectKey
}

// IncrementAndCheckLimit implements RateLimiter.
func (l *RedisRateLimiter) IncrementAndCheckLimit(ctx context.Context, subjectKey string) (bool, error) {
	count, err := incrementScript.Run(ctx, l.client, []string{l.key(subjectKey)}, l.window.Milliseconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter %s: %w", l.key(subjectKey), err)
	}
	return count <= l.maxRequests, nil
}

// Reset removes the counter for subjectKey. Only for tests and ops tooling.
func (l *RedisRateLimiter) Reset(ctx context.Context, subjectKey string) error {
	if err := l.client.Del(ctx, l.key(subjectKey)).Err(); err != nil {
		return fmt.Errorf("failed to reset rate limit counter %s: %w", l.key(subjectKey), err)
	}
	return nil
}

// Name returns the key prefix, used to label metrics and logs.
func (l *RedisRateLimiter) Name() string {
	return l.keyPrefix
}
