package providers

import (
	"context"
	"time"
)

// Role identifies which part a provider plays in orchestration
type Role string

const (
	RoleCreative   Role = "creative"
	RoleValidator  Role = "validator"
	RoleSupervisor Role = "supervisor"
)

// FailureReason is the normalized taxonomy for adapter failures
type FailureReason string

const (
	FailureTimeout         FailureReason = "timeout"
	FailureInvalidResponse FailureReason = "invalid_response"
	FailureTransportError  FailureReason = "transport_error"
	FailureRejected        FailureReason = "rejected"
)

// Params carries the generation inputs forwarded to every provider.
// Draft and Preliminary are only populated for the supervisor role,
// which reviews an existing Phase 1 result.
type Params struct {
	Location    string   `json:"location"`
	Days        int      `json:"days"`
	Preferences []string `json:"preferences,omitempty"`
	Template    string   `json:"template,omitempty"`

	Draft       *Itinerary        `json:"draft,omitempty"`
	Preliminary *ValidationReport `json:"preliminary,omitempty"`
}

// Itinerary is the creative payload exchanged between providers
type Itinerary struct {
	Title   string    `json:"title"`
	Summary string    `json:"summary,omitempty"`
	Days    []DayPlan `json:"days"`
}

type DayPlan struct {
	Day        int        `json:"day"`
	Theme      string     `json:"theme,omitempty"`
	Activities []Activity `json:"activities"`
}

type Activity struct {
	Time        string `json:"time,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Area        string `json:"area,omitempty"`
}

// severity levels for validation issues
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// Issue is one flagged problem in a validation report
type Issue struct {
	Severity string `json:"severity"`
	Reason   string `json:"reason"`
}

// ValidationReport is the structured output of the validator and
// supervisor roles; the supervisor's report supersedes the validator's.
type ValidationReport struct {
	Issues       []Issue `json:"issues"`
	QualityScore int     `json:"quality_score"` // 0-100
}

// Result is the tagged outcome of one adapter call. Latency is always
// recorded, even on failure.
type Result struct {
	Role          Role
	Succeeded     bool
	Payload       *Itinerary
	Report        *ValidationReport
	FailureReason FailureReason
	Latency       time.Duration
}

// Adapter is a single provider call boundary. Invoke never panics and
// never returns an error: all failure modes are normalized into the
// Result. Cancellation arrives via ctx; adapters do not retry.
type Adapter interface {
	Role() Role
	Invoke(ctx context.Context, params Params) Result
}

// builds a failed result for a role
func failure(role Role, reason FailureReason, latency time.Duration) Result {
	return Result{
		Role:          role,
		FailureReason: reason,
		Latency:       latency,
	}
}
