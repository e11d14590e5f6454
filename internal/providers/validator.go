package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// ValidatorConfig configures the validation/enrichment adapter
type ValidatorConfig struct {
	URL    string
	APIKey string
}

// ValidatorAdapter calls the external validation provider that checks an
// itinerary request for feasibility and produces a preliminary quality
// report. It runs alongside the creative provider in Phase 1.
type ValidatorAdapter struct {
	config     ValidatorConfig
	httpClient *http.Client
}

func NewValidatorAdapter(config ValidatorConfig) *ValidatorAdapter {
	return &ValidatorAdapter{
		config:     config,
		httpClient: providerHTTPClient,
	}
}

func (a *ValidatorAdapter) Role() Role {
	return RoleValidator
}

type validatorRequest struct {
	Location    string   `json:"location"`
	Days        int      `json:"days"`
	Preferences []string `json:"preferences,omitempty"`
}

type validatorResponse struct {
	Report *ValidationReport `json:"report"`
}

// requests a preliminary validation report for the generation parameters
func (a *ValidatorAdapter) Invoke(ctx context.Context, params Params) Result {
	start := time.Now()

	outcome := postJSON(ctx, a.httpClient, a.config.URL, a.config.APIKey, validatorRequest{
		Location:    params.Location,
		Days:        params.Days,
		Preferences: params.Preferences,
	})

	if outcome.failed {
		return failure(RoleValidator, outcome.failure, time.Since(start))
	}

	var resp validatorResponse
	if err := json.Unmarshal(outcome.body, &resp); err != nil {
		return failure(RoleValidator, FailureInvalidResponse, time.Since(start))
	}

	if resp.Report == nil {
		return failure(RoleValidator, FailureInvalidResponse, time.Since(start))
	}

	return Result{
		Role:      RoleValidator,
		Succeeded: true,
		Report:    resp.Report,
		Latency:   time.Since(start),
	}
}
