package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// SupervisorConfig configures the supervisory QA adapter
type SupervisorConfig struct {
	URL    string
	APIKey string
	Model  string
}

// SupervisorAdapter calls the external QA provider that reviews a Phase 1
// draft, optionally revises it, and issues the authoritative validation
// report. Only pro and premium requests reach this adapter.
type SupervisorAdapter struct {
	config     SupervisorConfig
	httpClient *http.Client
}

func NewSupervisorAdapter(config SupervisorConfig) *SupervisorAdapter {
	return &SupervisorAdapter{
		config:     config,
		httpClient: providerHTTPClient,
	}
}

func (a *SupervisorAdapter) Role() Role {
	return RoleSupervisor
}

type supervisorRequest struct {
	Model       string            `json:"model"`
	Location    string            `json:"location"`
	Days        int               `json:"days"`
	Draft       *Itinerary        `json:"draft"`
	Preliminary *ValidationReport `json:"preliminary,omitempty"`
}

type supervisorResponse struct {
	Itinerary *Itinerary        `json:"itinerary"`
	Report    *ValidationReport `json:"report"`
}

// submits the Phase 1 draft for supervisory review
func (a *SupervisorAdapter) Invoke(ctx context.Context, params Params) Result {
	start := time.Now()

	// nothing to review without a draft
	if params.Draft == nil {
		return failure(RoleSupervisor, FailureRejected, time.Since(start))
	}

	outcome := postJSON(ctx, a.httpClient, a.config.URL, a.config.APIKey, supervisorRequest{
		Model:       a.config.Model,
		Location:    params.Location,
		Days:        params.Days,
		Draft:       params.Draft,
		Preliminary: params.Preliminary,
	})

	if outcome.failed {
		return failure(RoleSupervisor, outcome.failure, time.Since(start))
	}

	var resp supervisorResponse
	if err := json.Unmarshal(outcome.body, &resp); err != nil {
		return failure(RoleSupervisor, FailureInvalidResponse, time.Since(start))
	}

	if resp.Report == nil {
		return failure(RoleSupervisor, FailureInvalidResponse, time.Since(start))
	}

	// a supervisor may approve the draft without revising it
	payload := resp.Itinerary
	if payload == nil {
		payload = params.Draft
	}

	return Result{
		Role:      RoleSupervisor,
		Succeeded: true,
		Payload:   payload,
		Report:    resp.Report,
		Latency:   time.Since(start),
	}
}
