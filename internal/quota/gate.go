package quota

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/wayfare/server/internal/tiers"
)

// Gate enforces per-user, per-period consumption limits before expensive
// work is allowed to start. Only a successful check mutates state; failed
// checks are pure reads. Store errors fail closed.
type Gate struct {
	store    CounterStore
	resolver tiers.Resolver
}

func NewGate(store CounterStore, resolver tiers.Resolver) *Gate {
	return &Gate{
		store:    store,
		resolver: resolver,
	}
}

// counter key for one (user, usage type, period) window
func counterKey(userID string, usageType tiers.UsageType, period PeriodType, periodStart string) string {
	return fmt.Sprintf("quota:%s:%s:%s:%s", userID, usageType, period, periodStart)
}

// returns the period key and reset instant for a window at the given time
func periodWindow(period PeriodType, now time.Time) (string, time.Time) {
	now = now.UTC()

	switch period {
	case PeriodMonthly:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start.Format("2006-01"), start.AddDate(0, 1, 0)
	default:
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		return start.Format("2006-01-02"), start.AddDate(0, 0, 1)
	}
}

// CheckAndIncrement atomically reserves one unit of usage for the caller.
// Both the daily and monthly windows must have headroom; a daily increment
// whose monthly check rejects is rolled back so a denied caller is charged
// nothing. Two concurrent calls for a user at limit-1 result in exactly one
// success.
func (g *Gate) CheckAndIncrement(ctx context.Context, userID string, usageType tiers.UsageType) (Decision, error) {
	tier, err := g.resolver.ResolveTier(ctx, userID)
	if err != nil {
		return Decision{}, fmt.Errorf("failed to resolve tier: %w", err)
	}

	limits := tiers.LimitsFor(tier, usageType)
	now := time.Now()

	dailyKey, dailyReset := periodWindow(PeriodDaily, now)
	monthlyKey, monthlyReset := periodWindow(PeriodMonthly, now)

	dailyCounter := counterKey(userID, usageType, PeriodDaily, dailyKey)
	monthlyCounter := counterKey(userID, usageType, PeriodMonthly, monthlyKey)

	dailyCount, dailyOK, err := g.store.IncrementIfBelow(ctx, dailyCounter, limits.Daily, time.Until(dailyReset))
	if err != nil {
		// fail closed: an unreachable store never permits unlimited usage
		return Decision{}, fmt.Errorf("quota store unavailable: %w", err)
	}

	if !dailyOK {
		return Decision{
			Allowed: false,
			Usage: Usage{
				CurrentUsage:  dailyCount,
				Limit:         limits.Daily,
				PeriodResetAt: dailyReset,
			},
		}, nil
	}

	monthlyCount, monthlyOK, err := g.store.IncrementIfBelow(ctx, monthlyCounter, limits.Monthly, time.Until(monthlyReset))
	if err != nil {
		g.rollback(ctx, dailyCounter)
		return Decision{}, fmt.Errorf("quota store unavailable: %w", err)
	}

	if !monthlyOK {
		g.rollback(ctx, dailyCounter)

		return Decision{
			Allowed: false,
			Usage: Usage{
				CurrentUsage:  monthlyCount,
				Limit:         limits.Monthly,
				PeriodResetAt: monthlyReset,
			},
		}, nil
	}

	// report the daily window: it is the tighter one and resets soonest
	return Decision{
		Allowed: true,
		Usage: Usage{
			CurrentUsage:  dailyCount,
			Limit:         limits.Daily,
			PeriodResetAt: dailyReset,
		},
	}, nil
}

// Peek reports current usage without consuming anything
func (g *Gate) Peek(ctx context.Context, userID string, usageType tiers.UsageType) (Usage, Usage, error) {
	tier, err := g.resolver.ResolveTier(ctx, userID)
	if err != nil {
		return Usage{}, Usage{}, fmt.Errorf("failed to resolve tier: %w", err)
	}

	limits := tiers.LimitsFor(tier, usageType)
	now := time.Now()

	dailyKey, dailyReset := periodWindow(PeriodDaily, now)
	monthlyKey, monthlyReset := periodWindow(PeriodMonthly, now)

	dailyCount, err := g.store.Get(ctx, counterKey(userID, usageType, PeriodDaily, dailyKey))
	if err != nil {
		return Usage{}, Usage{}, fmt.Errorf("quota store unavailable: %w", err)
	}

	monthlyCount, err := g.store.Get(ctx, counterKey(userID, usageType, PeriodMonthly, monthlyKey))
	if err != nil {
		return Usage{}, Usage{}, fmt.Errorf("quota store unavailable: %w", err)
	}

	daily := Usage{CurrentUsage: dailyCount, Limit: limits.Daily, PeriodResetAt: dailyReset}
	monthly := Usage{CurrentUsage: monthlyCount, Limit: limits.Monthly, PeriodResetAt: monthlyReset}

	return daily, monthly, nil
}

// best-effort decrement after a partial reservation; failure leaves the
// counter over-charged for at most one period, never under-charged
func (g *Gate) rollback(ctx context.Context, key string) {
	if err := g.store.Decrement(ctx, key); err != nil {
		_ = err // counted against the user until the window rolls over
	}
}
