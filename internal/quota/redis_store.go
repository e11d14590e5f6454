package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// single round trip compare-and-increment: the increment applies only when
// the current count is strictly below the limit
var incrementIfBelowScript = redis.NewScript(`
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
if current >= tonumber(ARGV[1]) then
  return {current, 0}
end
local updated = redis.call('INCR', KEYS[1])
if updated == 1 and tonumber(ARGV[2]) > 0 then
  redis.call('EXPIRE', KEYS[1], ARGV[2])
end
return {updated, 1}
`)

// RedisCounterStore is the production CounterStore. Counter keys carry the
// period window in their name, so period rollover needs no in-place reset:
// a new window is simply a new key, and old keys expire with the window.
type RedisCounterStore struct {
	client *redis.Client
}

func NewRedisCounterStore(client *redis.Client) *RedisCounterStore {
	return &RedisCounterStore{client: client}
}

// creates a Redis-backed counter store from a URL
func NewRedisCounterStoreFromURL(redisURL string) (*RedisCounterStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCounterStore{client: client}, nil
}

func (s *RedisCounterStore) IncrementIfBelow(ctx context.Context, key string, limit int64, ttl time.Duration) (int64, bool, error) {
	ttlSeconds := int64(ttl / time.Second)
	if ttl > 0 && ttlSeconds == 0 {
		ttlSeconds = 1
	}

	raw, err := incrementIfBelowScript.Run(ctx, s.client, []string{key}, limit, ttlSeconds).Result()
	if err != nil {
		return 0, false, fmt.Errorf("quota script failed: %w", err)
	}

	reply, ok := raw.([]interface{})
	if !ok || len(reply) != 2 {
		return 0, false, fmt.Errorf("unexpected quota script reply: %v", raw)
	}

	count, ok := reply[0].(int64)
	if !ok {
		return 0, false, fmt.Errorf("unexpected quota script count: %v", reply[0])
	}

	applied, ok := reply[1].(int64)
	if !ok {
		return 0, false, fmt.Errorf("unexpected quota script flag: %v", reply[1])
	}

	return count, applied == 1, nil
}

func (s *RedisCounterStore) Decrement(ctx context.Context, key string) error {
	return s.client.Decr(ctx, key).Err()
}

func (s *RedisCounterStore) Get(ctx context.Context, key string) (int64, error) {
	val, err := s.client.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}

	if err != nil {
		return 0, err
	}

	return val, nil
}

// closes the underlying redis connection
func (s *RedisCounterStore) Close() error {
	return s.client.Close()
}

// exposes the redis client for components sharing the connection
func (s *RedisCounterStore) Client() *redis.Client {
	return s.client
}
