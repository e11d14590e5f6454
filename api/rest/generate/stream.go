package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"codeberg.org/wayfare/server/internal/auth"
	"codeberg.org/wayfare/server/internal/config"
	"codeberg.org/wayfare/server/internal/errors"
	"codeberg.org/wayfare/server/internal/itineraries"
	"codeberg.org/wayfare/server/internal/orchestrator"
	"codeberg.org/wayfare/server/internal/providers"
	"codeberg.org/wayfare/server/internal/quota"
	"codeberg.org/wayfare/server/internal/rewards"
	"codeberg.org/wayfare/server/internal/stream"
	"codeberg.org/wayfare/server/internal/tiers"
)

// creates the handler for streaming itinerary generation over SSE
func StreamHandler(orc *orchestrator.Orchestrator, gate *quota.Gate, resolver tiers.Resolver, repo *itineraries.Repository, rewardQueue *rewards.Queue, limits config.LimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			errors.Unauthorized(c, "")
			return
		}

		req, err := bindStreamRequest(c)
		if err != nil {
			errors.ValidationError(c, err)
			return
		}

		tier, err := resolver.ResolveTier(c.Request.Context(), userID)
		if err != nil {
			errors.InternalError(c, "failed to resolve subscription tier", err)
			return
		}

		// SSE transport headers; no-buffering so intermediaries do not
		// coalesce or delay events
		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")
		c.Header("X-Accel-Buffering", "no")

		s := stream.New(limits.HeartbeatInterval, limits.StreamTimeout)

		// quota is re-checked at the protocol boundary, before the
		// orchestrator is invoked
		decision, err := gate.CheckAndIncrement(c.Request.Context(), userID, tiers.UsageItineraryGeneration)

		switch {
		case err != nil:
			go s.Reject(errors.CodeInternalError, "quota check failed", nil)

		case !decision.Allowed:
			go s.Reject(errors.CodeLimitExceeded, "generation limit reached for the current period", quota.Usage{
				CurrentUsage:  decision.Usage.CurrentUsage,
				Limit:         decision.Usage.Limit,
				PeriodResetAt: decision.Usage.PeriodResetAt,
			})

		default:
			request := orc.NewRequest(uuid.NewString(), userID, tier, providers.Params{
				Location:    req.Location,
				Days:        req.Days,
				Preferences: req.Preferences,
				Template:    req.Template,
			})

			go s.Run(c.Request.Context(), func(ctx context.Context, notify orchestrator.ProgressFunc) orchestrator.Result {
				result := orc.GenerateWithProgress(ctx, request, notify)

				if result.Success {
					finishGeneration(request, result, repo, rewardQueue)
				}

				return result
			})
		}

		defer s.Close()

		// single consumer loop; each message is `data: <JSON>\n\n`
		c.Stream(func(w io.Writer) bool {
			event, open := <-s.Events()
			if !open {
				return false
			}

			data, err := json.Marshal(event)
			if err != nil {
				return false
			}

			fmt.Fprintf(w, "data: %s\n\n", data) //nolint:errcheck,gosec // flushed by gin per step

			return true
		})
	}
}

// binds the generation request from a JSON body (POST) or query string
// (GET, for native EventSource clients)
func bindStreamRequest(c *gin.Context) (Request, error) {
	if c.Request.Method == "POST" {
		var req Request
		if err := c.ShouldBindJSON(&req); err != nil {
			return Request{}, err
		}

		return req, nil
	}

	location := strings.TrimSpace(c.Query("location"))
	if location == "" {
		return Request{}, fmt.Errorf("location query parameter is required")
	}

	days, err := strconv.Atoi(c.Query("days"))
	if err != nil || days < 1 || days > 30 {
		return Request{}, fmt.Errorf("days must be an integer between 1 and 30")
	}

	var preferences []string
	if raw := c.Query("preferences"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				preferences = append(preferences, tag)
			}
		}
	}

	return Request{
		Location:    location,
		Days:        days,
		Preferences: preferences,
		Template:    c.Query("template"),
	}, nil
}
