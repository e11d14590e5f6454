package tiers

// FeatureFlags controls optional orchestration capabilities. The supervisor
// pass can be disabled globally without a deploy via configuration.
type FeatureFlags struct {
	SupervisorEnabled bool
}

// reports whether supervisory QA (Phase 2) runs for the given tier.
// Free tier is a hard ceiling: the flag never overrides it.
func (f FeatureFlags) Phase2EnabledForTier(tier Tier) bool {
	if !tier.AtLeast(TierPro) {
		return false
	}

	return f.SupervisorEnabled
}
