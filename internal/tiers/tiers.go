package tiers

import "context"

// Tier is an ordered subscription level controlling feature entitlement
type Tier string

const (
	TierFree    Tier = "free"
	TierPro     Tier = "pro"
	TierPremium Tier = "premium"
)

// numeric rank used for ordering comparisons (free < pro < premium)
var tierRank = map[Tier]int{
	TierFree:    0,
	TierPro:     1,
	TierPremium: 2,
}

// reports whether the tier is a known value
func (t Tier) Valid() bool {
	_, ok := tierRank[t]
	return ok
}

// reports whether t is at least as high as other
func (t Tier) AtLeast(other Tier) bool {
	return tierRank[t] >= tierRank[other]
}

// parses a tier string, defaulting unknown values to free
func Parse(s string) Tier {
	t := Tier(s)
	if !t.Valid() {
		return TierFree
	}

	return t
}

// Resolver maps a user to their subscription tier. Subscription state
// lives outside this core; callers inject an implementation.
type Resolver interface {
	ResolveTier(ctx context.Context, userID string) (Tier, error)
}

// StaticResolver returns the same tier for every user, used in tests
// and single-tenant deployments.
type StaticResolver struct {
	Tier Tier
}

func (r StaticResolver) ResolveTier(_ context.Context, _ string) (Tier, error) {
	return r.Tier, nil
}
