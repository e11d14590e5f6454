package generate

import "codeberg.org/wayfare/server/internal/orchestrator"

// Request represents the request body for itinerary generation
type Request struct {
	Location    string   `json:"location" binding:"required,min=1,max=120"`
	Days        int      `json:"days" binding:"required,min=1,max=30"`
	Preferences []string `json:"preferences" binding:"max=20"`
	Template    string   `json:"template" binding:"max=2000"`
}

// Response wraps the terminal generation result for the blocking endpoint
type Response struct {
	RequestID string `json:"request_id"`
	orchestrator.Result
}
