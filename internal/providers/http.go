package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// shared HTTP client for provider API calls
var providerHTTPClient = &http.Client{
	Timeout: 60 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

// outbound throttle shared across all provider adapters
// (50 requests/second with burst capacity of 10)
var providerRateLimiter = rate.NewLimiter(50, 10)

// outcome of one raw HTTP exchange before role-specific decoding
type httpOutcome struct {
	body    []byte
	failure FailureReason
	failed  bool
}

// posts a JSON body to a provider endpoint and normalizes every failure
// mode into the adapter taxonomy; it never returns an error
func postJSON(ctx context.Context, client *http.Client, url, apiKey string, reqBody any) httpOutcome {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return httpOutcome{failure: FailureInvalidResponse, failed: true}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return httpOutcome{failure: FailureTransportError, failed: true}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	// outbound rate limiting
	if err := providerRateLimiter.Wait(ctx); err != nil {
		return httpOutcome{failure: classifyCtxErr(ctx, err), failed: true}
	}

	resp, err := client.Do(req)
	if err != nil {
		return httpOutcome{failure: classifyCtxErr(ctx, err), failed: true}
	}

	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return httpOutcome{failure: classifyCtxErr(ctx, err), failed: true}
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return httpOutcome{body: body}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return httpOutcome{failure: FailureRejected, failed: true}
	default:
		return httpOutcome{failure: FailureTransportError, failed: true}
	}
}

// maps a transport error to timeout when the deadline or cancellation caused it
func classifyCtxErr(ctx context.Context, err error) FailureReason {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return FailureTimeout
	}

	if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
		return FailureTimeout
	}

	return FailureTransportError
}
