package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"codeberg.org/wayfare/server/internal/providers"
	"codeberg.org/wayfare/server/internal/tiers"
)

func newTestCache(t *testing.T) (*ResultCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	t.Cleanup(func() {
		client.Close()
	})

	return New(client), mr
}

func testEntry() Entry {
	return Entry{
		Itinerary: &providers.Itinerary{
			Title: "Three days in Seoul",
			Days:  []providers.DayPlan{{Day: 1, Activities: []providers.Activity{{Name: "Gwangjang Market"}}}},
		},
		Report: &providers.ValidationReport{QualityScore: 82},
	}
}

func TestCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	params := providers.Params{Location: "Seoul", Days: 3}

	c.Set(ctx, tiers.TierPro, params, testEntry())

	got := c.Get(ctx, tiers.TierPro, params)
	if got == nil {
		t.Fatal("expected a cache hit")
	}

	if got.Itinerary.Title != "Three days in Seoul" {
		t.Errorf("unexpected cached title %q", got.Itinerary.Title)
	}

	if got.Report == nil || got.Report.QualityScore != 82 {
		t.Error("the report should round-trip with the entry")
	}
}

func TestCacheMiss(t *testing.T) {
	c, _ := newTestCache(t)

	if got := c.Get(context.Background(), tiers.TierPro, providers.Params{Location: "Busan", Days: 2}); got != nil {
		t.Error("expected a miss for unwritten parameters")
	}
}

func TestCacheEntryExpires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	params := providers.Params{Location: "Seoul", Days: 3}
	c.Set(ctx, tiers.TierFree, params, testEntry())

	mr.FastForward(defaultTTL + time.Minute)

	if got := c.Get(ctx, tiers.TierFree, params); got != nil {
		t.Error("expected a miss after the TTL elapsed")
	}
}

func TestCacheCorruptEntryBecomesMiss(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	params := providers.Params{Location: "Seoul", Days: 3}
	key := Key(tiers.TierFree, params)

	if err := mr.Set(key, "{not json"); err != nil {
		t.Fatalf("failed to seed corrupt entry: %v", err)
	}

	if got := c.Get(ctx, tiers.TierFree, params); got != nil {
		t.Fatal("corrupt entries must read as a miss")
	}

	// and the corrupt key is dropped
	if mr.Exists(key) {
		t.Error("corrupt entry should have been deleted")
	}
}

func TestCacheSkipsEmptyEntries(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	params := providers.Params{Location: "Seoul", Days: 3}
	c.Set(ctx, tiers.TierFree, params, Entry{})

	if mr.Exists(Key(tiers.TierFree, params)) {
		t.Error("entries without an itinerary must not be written")
	}
}

func TestCacheUnreachableRedisDegradesToMiss(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := New(client)

	mr.Close()

	params := providers.Params{Location: "Seoul", Days: 3}

	// neither call may panic or error out
	c.Set(context.Background(), tiers.TierFree, params, testEntry())

	if got := c.Get(context.Background(), tiers.TierFree, params); got != nil {
		t.Error("an unreachable cache reads as a miss")
	}
}
