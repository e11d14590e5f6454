package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"codeberg.org/wayfare/server/internal/logger"
	"codeberg.org/wayfare/server/internal/providers"
	"codeberg.org/wayfare/server/internal/tiers"
)

const defaultTTL = 6 * time.Hour

// Entry is the cached outcome of a successful creative call
type Entry struct {
	Itinerary *providers.Itinerary        `json:"itinerary"`
	Report    *providers.ValidationReport `json:"report,omitempty"`
}

// ResultCache stores finished creative payloads in Redis so repeated
// requests for the same normalized parameters skip the provider call.
// All cache failures degrade to a miss; the cache is never on the
// correctness path.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client) *ResultCache {
	return &ResultCache{
		client: client,
		ttl:    defaultTTL,
	}
}

// Get returns the cached entry for the normalized parameters, or nil on miss
func (c *ResultCache) Get(ctx context.Context, tier tiers.Tier, params providers.Params) *Entry {
	key := Key(tier, params)

	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil
	}

	if err != nil {
		logger.ErrorErr(err, "cache read failed", "key", key)
		return nil
	}

	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		logger.ErrorErr(err, "cache entry corrupt, dropping", "key", key)
		c.client.Del(ctx, key) //nolint:errcheck,gosec // best-effort cleanup
		return nil
	}

	if entry.Itinerary == nil {
		return nil
	}

	return &entry
}

// Set stores a successful creative result; failures are logged only
func (c *ResultCache) Set(ctx context.Context, tier tiers.Tier, params providers.Params, entry Entry) {
	if entry.Itinerary == nil {
		return
	}

	key := Key(tier, params)

	raw, err := json.Marshal(entry)
	if err != nil {
		logger.ErrorErr(err, "cache encode failed", "key", key)
		return
	}

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		logger.ErrorErr(err, "cache write failed", "key", key)
	}
}
