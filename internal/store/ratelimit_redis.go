package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// The window starts with the first hit; INCR and PEXPIRE run atomically so a crash
// between them cannot leave a counter without expiry.
var fixedWindowScript = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return count
`)

// RateLimitRedisStore is a fixed-window ratelimit.Store shared by every instance.
type RateLimitRedisStore struct {
	client *redis.Client
}

func NewRateLimitRedisStore(client *redis.Client) *RateLimitRedisStore {
	return &RateLimitRedisStore{client: client}
}

func (s *RateLimitRedisStore) Record(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := fixedWindowScript.Run(ctx, s.client, []string{key}, window.Milliseconds()).Int64()
	if err != nil {
		return 0, fmt.Errorf("rate limit record %s: %w", key, err)
	}

	return count, nil
}
