package generate

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/wayfare/server/internal/auth"
	"codeberg.org/wayfare/server/internal/config"
	"codeberg.org/wayfare/server/internal/itineraries"
	"codeberg.org/wayfare/server/internal/orchestrator"
	"codeberg.org/wayfare/server/internal/quota"
	"codeberg.org/wayfare/server/internal/ratelimit"
	"codeberg.org/wayfare/server/internal/rewards"
	"codeberg.org/wayfare/server/internal/tiers"
)

// registers itinerary generation routes
func RegisterRoutes(router *gin.RouterGroup, orc *orchestrator.Orchestrator, gate *quota.Gate, resolver tiers.Resolver, repo *itineraries.Repository, rewardQueue *rewards.Queue, limiter *ratelimit.Limiter, limits config.LimitConfig) {
	group := router.Group("/generate", auth.AuthMiddleware(), ratelimit.Middleware(limiter))
	{
		group.POST("", Handler(orc, gate, resolver, repo, rewardQueue))
		group.POST("/stream", StreamHandler(orc, gate, resolver, repo, rewardQueue, limits))

		// native EventSource clients cannot POST
		group.GET("/stream", StreamHandler(orc, gate, resolver, repo, rewardQueue, limits))
	}
}
