package orchestrator

import (
	"context"
	"time"

	"codeberg.org/wayfare/server/internal/cache"
	"codeberg.org/wayfare/server/internal/providers"
	"codeberg.org/wayfare/server/internal/tiers"
)

// Request is the immutable input to one generation attempt. It is created
// at the orchestrator entry point and never mutated.
type Request struct {
	RequestID string
	UserID    string
	Tier      tiers.Tier
	Params    providers.Params
	Deadline  time.Time
}

// Metrics summarizes one generation attempt
type Metrics struct {
	// wall-clock time from request start to terminal state; Phase 1
	// sub-calls run in parallel so adapter latencies do not sum to this
	TotalLatencyMs int64 `json:"total_latency_ms"`

	// roles whose result was actually incorporated into the data
	ProvidersUsed []providers.Role `json:"providers_used"`

	CacheHits int `json:"cache_hits"`
}

// Result is the terminal value returned to the caller
type Result struct {
	Success bool `json:"success"`

	// absent whenever Success is false
	Data *providers.Itinerary `json:"data,omitempty"`

	// omitted when neither Phase 1 adapter produced a validation signal
	QualityScore *int `json:"quality_score,omitempty"`

	Report       *providers.ValidationReport `json:"validation_report,omitempty"`
	FallbackUsed bool                        `json:"fallback_used"`
	Metrics      Metrics                     `json:"metrics"`

	// populated on failure with the creative adapter's failure taxonomy
	FailureReason providers.FailureReason `json:"failure_reason,omitempty"`
}

// Phase identifies a lifecycle transition reported to progress listeners
type Phase string

const (
	PhaseStarted     Phase = "started"
	Phase1Dispatched Phase = "phase1_dispatched"
	Phase1Completed  Phase = "phase1_completed"
	Phase2Dispatched Phase = "phase2_dispatched"
	Phase2Completed  Phase = "phase2_completed"
	PhaseAssembling  Phase = "assembling"
)

// ProgressFunc receives lifecycle transitions during one generation.
// Callbacks run on the orchestrator goroutine and must not block.
type ProgressFunc func(phase Phase)

// ResultCache short-circuits provider calls for repeated parameter sets
type ResultCache interface {
	Get(ctx context.Context, tier tiers.Tier, params providers.Params) *cache.Entry
	Set(ctx context.Context, tier tiers.Tier, params providers.Params, entry cache.Entry)
}

// Timeouts bounds each orchestration phase
type Timeouts struct {
	Phase1 time.Duration

	// extra wait for a validator still running after the creative result lands
	ValidatorGrace time.Duration

	Phase2 time.Duration
}

// MaxBudget is the total time a request may spend across both phases
func (t Timeouts) MaxBudget() time.Duration {
	return t.Phase1 + t.Phase2
}
