package cache

import (
	"strings"
	"testing"

	"codeberg.org/wayfare/server/internal/providers"
	"codeberg.org/wayfare/server/internal/tiers"
)

func TestKeyNormalization(t *testing.T) {
	base := Key(tiers.TierFree, providers.Params{
		Location:    "Seoul",
		Days:        3,
		Preferences: []string{"food", "history"},
	})

	// case, whitespace, tag order and duplicate tags do not change the key
	equivalent := []providers.Params{
		{Location: "  seoul ", Days: 3, Preferences: []string{"Food", "History"}},
		{Location: "SEOUL", Days: 3, Preferences: []string{"history", "food"}},
		{Location: "Seoul", Days: 3, Preferences: []string{"food", "food", "history", ""}},
	}

	for i, params := range equivalent {
		if got := Key(tiers.TierFree, params); got != base {
			t.Errorf("variant %d should normalize to the same key", i)
		}
	}
}

func TestKeyDistinguishesParameters(t *testing.T) {
	base := Key(tiers.TierFree, providers.Params{Location: "Seoul", Days: 3})

	different := []providers.Params{
		{Location: "Busan", Days: 3},
		{Location: "Seoul", Days: 4},
		{Location: "Seoul", Days: 3, Preferences: []string{"food"}},
	}

	for i, params := range different {
		if got := Key(tiers.TierFree, params); got == base {
			t.Errorf("variant %d should produce a distinct key", i)
		}
	}
}

func TestKeyIsTierScoped(t *testing.T) {
	params := providers.Params{Location: "Seoul", Days: 3}

	free := Key(tiers.TierFree, params)
	premium := Key(tiers.TierPremium, params)

	if free == premium {
		t.Error("identical parameters across tiers must not share a key")
	}
}

func TestKeyIgnoresSupervisorInputs(t *testing.T) {
	params := providers.Params{Location: "Seoul", Days: 3}

	withDraft := params
	withDraft.Draft = &providers.Itinerary{Title: "draft"}
	withDraft.Preliminary = &providers.ValidationReport{QualityScore: 50}

	if Key(tiers.TierPro, params) != Key(tiers.TierPro, withDraft) {
		t.Error("draft and preliminary report are not cache inputs")
	}
}

func TestKeyShape(t *testing.T) {
	key := Key(tiers.TierPro, providers.Params{Location: "Seoul", Days: 3})

	if !strings.HasPrefix(key, "itinerary:cache:pro:") {
		t.Errorf("unexpected key shape: %s", key)
	}

	// sha256 hex digest after the prefix
	digest := strings.TrimPrefix(key, "itinerary:cache:pro:")
	if len(digest) != 64 {
		t.Errorf("expected a 64 char digest, got %d chars", len(digest))
	}
}
