package tiers

import "testing"

func TestParse(t *testing.T) {
	cases := []struct {
		input string
		want  Tier
	}{
		{"free", TierFree},
		{"pro", TierPro},
		{"premium", TierPremium},
		{"", TierFree},
		{"enterprise", TierFree},
		{"PRO", TierFree}, // tiers are stored lowercase
	}

	for _, c := range cases {
		if got := Parse(c.input); got != c.want {
			t.Errorf("Parse(%q) = %s, want %s", c.input, got, c.want)
		}
	}
}

func TestAtLeast(t *testing.T) {
	if !TierPremium.AtLeast(TierPro) {
		t.Error("premium should rank at least pro")
	}

	if !TierPro.AtLeast(TierPro) {
		t.Error("a tier ranks at least itself")
	}

	if TierFree.AtLeast(TierPro) {
		t.Error("free should not rank at least pro")
	}
}

func TestLimitsForOrdering(t *testing.T) {
	free := LimitsFor(TierFree, UsageItineraryGeneration)
	pro := LimitsFor(TierPro, UsageItineraryGeneration)
	premium := LimitsFor(TierPremium, UsageItineraryGeneration)

	if !(free.Daily < pro.Daily && pro.Daily < premium.Daily) {
		t.Errorf("daily limits should grow with tier: %d, %d, %d", free.Daily, pro.Daily, premium.Daily)
	}

	if !(free.Monthly < pro.Monthly && pro.Monthly < premium.Monthly) {
		t.Errorf("monthly limits should grow with tier: %d, %d, %d", free.Monthly, pro.Monthly, premium.Monthly)
	}
}

func TestLimitsForUnknownFallsBackToFree(t *testing.T) {
	free := LimitsFor(TierFree, UsageItineraryGeneration)

	if got := LimitsFor(Tier("mystery"), UsageItineraryGeneration); got != free {
		t.Errorf("unknown tier should get the free allocation, got %+v", got)
	}

	if got := LimitsFor(TierPremium, UsageType("unknown_usage")); got != free {
		t.Errorf("unknown usage type should get the free allocation, got %+v", got)
	}
}

func TestPhase2EnabledForTier(t *testing.T) {
	enabled := FeatureFlags{SupervisorEnabled: true}
	disabled := FeatureFlags{SupervisorEnabled: false}

	if enabled.Phase2EnabledForTier(TierFree) {
		t.Error("free tier must never get phase 2, even with the flag on")
	}

	if !enabled.Phase2EnabledForTier(TierPro) {
		t.Error("pro tier should get phase 2 when enabled")
	}

	if !enabled.Phase2EnabledForTier(TierPremium) {
		t.Error("premium tier should get phase 2 when enabled")
	}

	for _, tier := range []Tier{TierFree, TierPro, TierPremium} {
		if disabled.Phase2EnabledForTier(tier) {
			t.Errorf("phase 2 should be off for %s when globally disabled", tier)
		}
	}
}
