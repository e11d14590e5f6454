package quota

import (
	"context"
	"time"
)

// PeriodType is the accounting window granularity for a counter
type PeriodType string

const (
	PeriodDaily   PeriodType = "daily"
	PeriodMonthly PeriodType = "monthly"
)

// Usage reports the state of the binding quota window for a caller
type Usage struct {
	CurrentUsage  int64     `json:"current_usage"`
	Limit         int64     `json:"limit"`
	PeriodResetAt time.Time `json:"period_reset_at"`
}

// Decision is the outcome of one check-and-increment
type Decision struct {
	Allowed bool  `json:"allowed"`
	Usage   Usage `json:"usage"`
}

// CounterStore is the only mutation path for usage counters. Implementations
// must make IncrementIfBelow a single atomic read-modify-write: the increment
// is applied only when the pre-increment count is strictly below the limit.
type CounterStore interface {
	// returns the post-operation count and whether the increment was applied
	IncrementIfBelow(ctx context.Context, key string, limit int64, ttl time.Duration) (count int64, allowed bool, err error)

	// undoes one increment; used to roll back a partial multi-window reservation
	Decrement(ctx context.Context, key string) error

	// pure read, returns 0 for unknown keys
	Get(ctx context.Context, key string) (int64, error)
}
