package tiers

// UsageType identifies a billable operation tracked by the quota gate
type UsageType string

const (
	UsageItineraryGeneration UsageType = "itinerary_generation"
)

// Limits holds per-period consumption ceilings for one usage type
type Limits struct {
	Daily   int64
	Monthly int64
}

// per-tier quota table for itinerary generation
var generationLimits = map[Tier]Limits{
	TierFree:    {Daily: 3, Monthly: 20},
	TierPro:     {Daily: 20, Monthly: 200},
	TierPremium: {Daily: 50, Monthly: 1000},
}

// returns the quota limits for a tier and usage type
func LimitsFor(tier Tier, usageType UsageType) Limits {
	switch usageType {
	case UsageItineraryGeneration:
		if l, ok := generationLimits[tier]; ok {
			return l
		}
	}

	// unknown tiers and usage types get the free allocation
	return generationLimits[TierFree]
}
