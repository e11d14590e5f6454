package main

import (
	"os"

	"codeberg.org/wayfare/server/internal/cache"
	"codeberg.org/wayfare/server/internal/config"
	"codeberg.org/wayfare/server/internal/orchestrator"
	"codeberg.org/wayfare/server/internal/providers"
	"codeberg.org/wayfare/server/internal/tiers"
	"github.com/redis/go-redis/v9"
)

// creates and configures the orchestration core with its provider adapters.
// Adapters are constructor-injected; nothing here is process-global.
func InitializeServices(cfg *config.Config, redisClient *redis.Client) *Services {
	creative := providers.NewCreativeAdapter(providers.CreativeConfig{
		URL:    cfg.Providers.CreativeURL,
		APIKey: cfg.Providers.CreativeKey,
		Model:  cfg.Providers.CreativeModel,
	})

	validator := providers.NewValidatorAdapter(providers.ValidatorConfig{
		URL:    cfg.Providers.ValidatorURL,
		APIKey: cfg.Providers.ValidatorKey,
	})

	supervisor := providers.NewSupervisorAdapter(providers.SupervisorConfig{
		URL:    cfg.Providers.SupervisorURL,
		APIKey: cfg.Providers.SupervisorKey,
		Model:  cfg.Providers.SupervisorModel,
	})

	flags := tiers.FeatureFlags{
		SupervisorEnabled: os.Getenv("SUPERVISOR_DISABLED") != "true",
	}

	orc := orchestrator.New(creative, validator, supervisor, flags, orchestrator.Timeouts{
		Phase1:         cfg.Limits.Phase1Timeout,
		ValidatorGrace: cfg.Limits.ValidatorGrace,
		Phase2:         cfg.Limits.Phase2Timeout,
	})

	orc.SetCache(cache.New(redisClient))

	return &Services{
		Orchestrator: orc,
	}
}
