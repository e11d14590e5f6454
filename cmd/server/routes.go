package main

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"codeberg.org/wayfare/server/api/rest/generate"
	"codeberg.org/wayfare/server/api/rest/health"
	itinerariesapi "codeberg.org/wayfare/server/api/rest/itineraries"
	quotaapi "codeberg.org/wayfare/server/api/rest/quota"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(corsMiddleware())
	router.GET("/health", health.Handler)

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)

		generate.RegisterRoutes(v1,
			server.services.Orchestrator,
			server.quotaGate,
			server.tierResolver,
			server.itineraryRepo,
			server.rewardQueue,
			server.limiter,
			server.config.Limits,
		)

		quotaapi.RegisterRoutes(v1, server.quotaGate)
		itinerariesapi.RegisterRoutes(v1, server.itineraryRepo)
	}
}

func corsMiddleware() gin.HandlerFunc {
	origins := []string{"http://localhost:3000"}

	if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
		origins = strings.Split(raw, ",")
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Cache-Control"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
