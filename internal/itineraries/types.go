package itineraries

import (
	"time"

	"codeberg.org/wayfare/server/internal/providers"
)

// Record is one persisted generation outcome. Persistence is
// fire-after-success: a failed write never fails the generation itself.
type Record struct {
	ID             string               `json:"id"`
	RequestID      string               `json:"request_id"`
	UserID         string               `json:"user_id"`
	Tier           string               `json:"tier"`
	Location       string               `json:"location"`
	Days           int                  `json:"days"`
	Itinerary      *providers.Itinerary `json:"itinerary"`
	QualityScore   *int                 `json:"quality_score,omitempty"`
	FallbackUsed   bool                 `json:"fallback_used"`
	ProvidersUsed  []string             `json:"providers_used"`
	CacheHits      int                  `json:"cache_hits"`
	TotalLatencyMs int64                `json:"total_latency_ms"`
	CreatedAt      time.Time            `json:"created_at"`
}
