package config

import "time"

type Config struct {
	DatabaseURL string
	RedisURL    string
	JWTSecret   string
	Environment string

	Providers ProviderConfig
	Limits    LimitConfig
}

// endpoints and credentials for the three generation providers
type ProviderConfig struct {
	CreativeURL     string
	CreativeKey     string
	ValidatorURL    string
	ValidatorKey    string
	SupervisorURL   string
	SupervisorKey   string
	CreativeModel   string
	SupervisorModel string
}

// timeouts and throttle settings for the orchestration core
type LimitConfig struct {
	Phase1Timeout     time.Duration
	Phase2Timeout     time.Duration
	ValidatorGrace    time.Duration
	StreamTimeout     time.Duration
	HeartbeatInterval time.Duration
	RateLimitWindow   time.Duration
	RateLimitMax      int64
}
