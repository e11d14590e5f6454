package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"codeberg.org/wayfare/server/internal/config"
	"codeberg.org/wayfare/server/internal/itineraries"
	"codeberg.org/wayfare/server/internal/quota"
	"codeberg.org/wayfare/server/internal/ratelimit"
	"codeberg.org/wayfare/server/internal/rewards"
	"codeberg.org/wayfare/server/internal/tiers"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	quotaStore, err := quota.NewRedisCounterStoreFromURL(cfg.RedisURL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize quota store: %w", err)
	}

	tierResolver := tiers.NewPGResolver(db)
	quotaGate := quota.NewGate(quotaStore, tierResolver)
	itineraryRepo := itineraries.NewRepository(db)
	limiter := ratelimit.New(cfg.Limits.RateLimitWindow, cfg.Limits.RateLimitMax)
	rewardQueue := rewards.NewQueue(nil)

	services := InitializeServices(cfg, quotaStore.Client())

	router := gin.Default()

	server := &Server{
		db:            db,
		config:        cfg,
		itineraryRepo: itineraryRepo,
		quotaStore:    quotaStore,
		quotaGate:     quotaGate,
		tierResolver:  tierResolver,
		limiter:       limiter,
		rewardQueue:   rewardQueue,
		services:      services,
		router:        router,
	}

	RegisterRoutes(router, server)

	return server, nil
}
