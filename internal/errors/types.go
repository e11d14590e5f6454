package errors

import "time"

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error   string `json:"error"`             // error code (e.g., "unauthorized", "limit_exceeded")
	Message string `json:"message"`           // user-friendly message
	Details string `json:"details,omitempty"` // optional details (sanitized in production)

	// quota context, present only on limit_exceeded responses
	Usage *UsageDetails `json:"usage,omitempty"`
}

// UsageDetails carries quota state alongside a limit_exceeded error
type UsageDetails struct {
	CurrentUsage  int64     `json:"current_usage"`
	Limit         int64     `json:"limit"`
	PeriodResetAt time.Time `json:"period_reset_at"`
}

type ErrorInfo struct {
	category  string
	sanitized string
}
