package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"codeberg.org/wayfare/server/internal/providers"
	"codeberg.org/wayfare/server/internal/tiers"
)

// Key builds the cache key from a normalization of the generation
// parameters. The tier is part of the key: a premium request never reads
// an entry produced for a free one.
func Key(tier tiers.Tier, params providers.Params) string {
	location := strings.ToLower(strings.TrimSpace(params.Location))

	tags := make([]string, 0, len(params.Preferences))
	seen := make(map[string]bool)

	for _, tag := range params.Preferences {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}

		seen[tag] = true
		tags = append(tags, tag)
	}

	sort.Strings(tags)

	raw := fmt.Sprintf("%s|%d|%s", location, params.Days, strings.Join(tags, ","))
	sum := sha256.Sum256([]byte(raw))

	return fmt.Sprintf("itinerary:cache:%s:%s", tier, hex.EncodeToString(sum[:]))
}
