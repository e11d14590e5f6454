package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// Limiter is the anti-burst throttle guarding the generation endpoints.
// It is independent of the quota gate: a rejection here is immediate and
// consumes no quota.
type Limiter struct {
	instance *limiter.Limiter
}

// creates a per-identity sliding window limiter backed by an in-memory store
func New(window time.Duration, maxRequests int64) *Limiter {
	rate := limiter.Rate{
		Period: window,
		Limit:  maxRequests,
	}

	return &Limiter{
		instance: limiter.New(memory.NewStore(), rate),
	}
}

// Admit records one request for the identity and reports whether it is
// within the window budget
func (l *Limiter) Admit(ctx context.Context, identity string) (bool, error) {
	lctx, err := l.instance.Get(ctx, identity)
	if err != nil {
		return false, fmt.Errorf("rate limiter store failed: %w", err)
	}

	return !lctx.Reached, nil
}
