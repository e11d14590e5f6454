package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// defaults for the orchestration core; overridable via environment
const (
	defaultPhase1Timeout     = 30 * time.Second
	defaultPhase2Timeout     = 20 * time.Second
	defaultValidatorGrace    = 2 * time.Second
	defaultHeartbeatInterval = 10 * time.Second
	defaultRateLimitWindow   = time.Minute
	defaultRateLimitMax      = 10
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	databaseURL := os.Getenv("DATABASE_URL")
	redisURL := os.Getenv("REDIS_URL")
	jwtSecret := os.Getenv("JWT_SECRET")
	environment := os.Getenv("ENVIRONMENT")

	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL environment variable is required")
	}

	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	if environment == "" {
		environment = "development"
	}

	providers, err := loadProviderConfig()
	if err != nil {
		return nil, err
	}

	limits := loadLimitConfig()

	return &Config{
		DatabaseURL: databaseURL,
		RedisURL:    redisURL,
		JWTSecret:   jwtSecret,
		Environment: environment,
		Providers:   providers,
		Limits:      limits,
	}, nil
}

func loadProviderConfig() (ProviderConfig, error) {
	creativeURL := os.Getenv("CREATIVE_PROVIDER_URL")
	creativeKey := os.Getenv("CREATIVE_PROVIDER_API_KEY")
	validatorURL := os.Getenv("VALIDATOR_PROVIDER_URL")
	validatorKey := os.Getenv("VALIDATOR_PROVIDER_API_KEY")
	supervisorURL := os.Getenv("SUPERVISOR_PROVIDER_URL")
	supervisorKey := os.Getenv("SUPERVISOR_PROVIDER_API_KEY")

	if creativeURL == "" || creativeKey == "" {
		return ProviderConfig{}, fmt.Errorf("CREATIVE_PROVIDER_URL and CREATIVE_PROVIDER_API_KEY are required")
	}

	if validatorURL == "" || validatorKey == "" {
		return ProviderConfig{}, fmt.Errorf("VALIDATOR_PROVIDER_URL and VALIDATOR_PROVIDER_API_KEY are required")
	}

	if supervisorURL == "" || supervisorKey == "" {
		return ProviderConfig{}, fmt.Errorf("SUPERVISOR_PROVIDER_URL and SUPERVISOR_PROVIDER_API_KEY are required")
	}

	creativeModel := os.Getenv("CREATIVE_PROVIDER_MODEL")
	if creativeModel == "" {
		creativeModel = "itinerary-gen-large"
	}

	supervisorModel := os.Getenv("SUPERVISOR_PROVIDER_MODEL")
	if supervisorModel == "" {
		supervisorModel = "itinerary-qa-large"
	}

	return ProviderConfig{
		CreativeURL:     creativeURL,
		CreativeKey:     creativeKey,
		ValidatorURL:    validatorURL,
		ValidatorKey:    validatorKey,
		SupervisorURL:   supervisorURL,
		SupervisorKey:   supervisorKey,
		CreativeModel:   creativeModel,
		SupervisorModel: supervisorModel,
	}, nil
}

func loadLimitConfig() LimitConfig {
	limits := LimitConfig{
		Phase1Timeout:     durationEnv("PHASE1_TIMEOUT", defaultPhase1Timeout),
		Phase2Timeout:     durationEnv("PHASE2_TIMEOUT", defaultPhase2Timeout),
		ValidatorGrace:    durationEnv("VALIDATOR_GRACE", defaultValidatorGrace),
		HeartbeatInterval: durationEnv("HEARTBEAT_INTERVAL", defaultHeartbeatInterval),
		RateLimitWindow:   durationEnv("RATE_LIMIT_WINDOW", defaultRateLimitWindow),
		RateLimitMax:      defaultRateLimitMax,
	}

	if maxStr := os.Getenv("RATE_LIMIT_MAX"); maxStr != "" {
		if val, err := strconv.ParseInt(maxStr, 10, 64); err == nil && val > 0 {
			limits.RateLimitMax = val
		}
	}

	// the stream timeout must exceed the combined phase budgets so it only
	// fires on protocol-layer hangs, never on slow generation
	streamFloor := limits.Phase1Timeout + limits.Phase2Timeout + 10*time.Second

	limits.StreamTimeout = durationEnv("STREAM_TIMEOUT", streamFloor)
	if limits.StreamTimeout < streamFloor {
		limits.StreamTimeout = streamFloor
	}

	return limits
}

// reads a duration env var, falling back to a default on absence or parse failure
func durationEnv(name string, fallback time.Duration) time.Duration {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}

	val, err := time.ParseDuration(raw)
	if err != nil || val <= 0 {
		return fallback
	}

	return val
}
