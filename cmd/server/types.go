package main

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"codeberg.org/wayfare/server/internal/config"
	"codeberg.org/wayfare/server/internal/itineraries"
	"codeberg.org/wayfare/server/internal/orchestrator"
	"codeberg.org/wayfare/server/internal/quota"
	"codeberg.org/wayfare/server/internal/ratelimit"
	"codeberg.org/wayfare/server/internal/rewards"
	"codeberg.org/wayfare/server/internal/tiers"
)

// holds all dependencies and state for the API server
type Server struct {
	db            *pgxpool.Pool
	config        *config.Config
	itineraryRepo *itineraries.Repository
	quotaStore    *quota.RedisCounterStore
	quotaGate     *quota.Gate
	tierResolver  tiers.Resolver
	limiter       *ratelimit.Limiter
	rewardQueue   *rewards.Queue
	services      *Services
	router        *gin.Engine
}

// holds the orchestration core and its provider adapters
type Services struct {
	Orchestrator *orchestrator.Orchestrator
}
