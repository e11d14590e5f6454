package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// CreativeConfig configures the creative generation adapter
type CreativeConfig struct {
	URL    string
	APIKey string
	Model  string
}

// CreativeAdapter calls the external creative generation provider that
// drafts the itinerary itself
type CreativeAdapter struct {
	config     CreativeConfig
	httpClient *http.Client
}

func NewCreativeAdapter(config CreativeConfig) *CreativeAdapter {
	return &CreativeAdapter{
		config:     config,
		httpClient: providerHTTPClient,
	}
}

func (a *CreativeAdapter) Role() Role {
	return RoleCreative
}

type creativeRequest struct {
	Model       string   `json:"model"`
	Location    string   `json:"location"`
	Days        int      `json:"days"`
	Preferences []string `json:"preferences,omitempty"`
	Template    string   `json:"template,omitempty"`
}

type creativeResponse struct {
	Itinerary *Itinerary `json:"itinerary"`
	Model     string     `json:"model"`
}

// requests a fresh itinerary draft from the provider
func (a *CreativeAdapter) Invoke(ctx context.Context, params Params) Result {
	start := time.Now()

	outcome := postJSON(ctx, a.httpClient, a.config.URL, a.config.APIKey, creativeRequest{
		Model:       a.config.Model,
		Location:    params.Location,
		Days:        params.Days,
		Preferences: params.Preferences,
		Template:    params.Template,
	})

	if outcome.failed {
		return failure(RoleCreative, outcome.failure, time.Since(start))
	}

	var resp creativeResponse
	if err := json.Unmarshal(outcome.body, &resp); err != nil {
		return failure(RoleCreative, FailureInvalidResponse, time.Since(start))
	}

	// a draft with no days is unusable, treat it as malformed
	if resp.Itinerary == nil || len(resp.Itinerary.Days) == 0 {
		return failure(RoleCreative, FailureInvalidResponse, time.Since(start))
	}

	return Result{
		Role:      RoleCreative,
		Succeeded: true,
		Payload:   resp.Itinerary,
		Latency:   time.Since(start),
	}
}
