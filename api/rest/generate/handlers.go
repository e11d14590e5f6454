package generate

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"codeberg.org/wayfare/server/internal/auth"
	"codeberg.org/wayfare/server/internal/errors"
	"codeberg.org/wayfare/server/internal/itineraries"
	"codeberg.org/wayfare/server/internal/logger"
	"codeberg.org/wayfare/server/internal/orchestrator"
	"codeberg.org/wayfare/server/internal/providers"
	"codeberg.org/wayfare/server/internal/quota"
	"codeberg.org/wayfare/server/internal/rewards"
	"codeberg.org/wayfare/server/internal/tiers"
)

const persistTimeout = 10 * time.Second

// creates the handler for blocking itinerary generation
func Handler(orc *orchestrator.Orchestrator, gate *quota.Gate, resolver tiers.Resolver, repo *itineraries.Repository, rewardQueue *rewards.Queue) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			errors.Unauthorized(c, "")
			return
		}

		var req Request
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		tier, err := resolver.ResolveTier(c.Request.Context(), userID)
		if err != nil {
			errors.InternalError(c, "failed to resolve subscription tier", err)
			return
		}

		// quota is reserved before any provider is invoked; a rejection
		// charges nothing
		decision, err := gate.CheckAndIncrement(c.Request.Context(), userID, tiers.UsageItineraryGeneration)
		if err != nil {
			errors.InternalError(c, "quota check failed", err)
			return
		}

		if !decision.Allowed {
			errors.LimitExceeded(c, &errors.UsageDetails{
				CurrentUsage:  decision.Usage.CurrentUsage,
				Limit:         decision.Usage.Limit,
				PeriodResetAt: decision.Usage.PeriodResetAt,
			})
			return
		}

		request := orc.NewRequest(uuid.NewString(), userID, tier, providers.Params{
			Location:    req.Location,
			Days:        req.Days,
			Preferences: req.Preferences,
			Template:    req.Template,
		})

		result := orc.Generate(c.Request.Context(), request)

		if !result.Success {
			errors.GenerationFailed(c, "", fmt.Errorf("creative provider failed: %s", result.FailureReason))
			return
		}

		finishGeneration(request, result, repo, rewardQueue)

		c.JSON(http.StatusOK, Response{
			RequestID: request.RequestID,
			Result:    result,
		})
	}
}

// runs the fire-after-success side effects: persistence and rewards.
// Neither is on the generation critical path; failures are logged only.
func finishGeneration(request orchestrator.Request, result orchestrator.Result, repo *itineraries.Repository, rewardQueue *rewards.Queue) {
	if repo != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
			defer cancel()

			providersUsed := make([]string, 0, len(result.Metrics.ProvidersUsed))
			for _, role := range result.Metrics.ProvidersUsed {
				providersUsed = append(providersUsed, string(role))
			}

			record := itineraries.Record{
				RequestID:      request.RequestID,
				UserID:         request.UserID,
				Tier:           string(request.Tier),
				Location:       request.Params.Location,
				Days:           request.Params.Days,
				Itinerary:      result.Data,
				QualityScore:   result.QualityScore,
				FallbackUsed:   result.FallbackUsed,
				ProvidersUsed:  providersUsed,
				CacheHits:      result.Metrics.CacheHits,
				TotalLatencyMs: result.Metrics.TotalLatencyMs,
			}

			if err := repo.Save(ctx, &record); err != nil {
				logger.ErrorErr(err, "failed to persist itinerary",
					"request_id", request.RequestID,
					"user_id", request.UserID,
				)
			}
		}()
	}

	if rewardQueue != nil {
		rewardQueue.Enqueue(request.UserID, request.RequestID, rewards.KindGenerationReward)
	}
}
