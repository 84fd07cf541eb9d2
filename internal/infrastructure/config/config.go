package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	AI        AIConfig
	Cache     CacheConfig
	Estimate  EstimateConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8000"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	MaxBodyBytes    int64         `envconfig:"MAX_BODY_BYTES" default:"1048576"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// AIConfig configures the language-model advisor.
type AIConfig struct {
	Enabled bool          `envconfig:"AI_ENABLED" default:"true"`
	URL     string        `envconfig:"AI_URL" default:"http://localhost:11434"`
	Model   string        `envconfig:"AI_MODEL" default:"granite:3.3-2b"`
	Timeout time.Duration `envconfig:"AI_TIMEOUT" default:"30s"`
}

// CacheConfig configures the advisory response cache. An empty RedisAddr
// keeps the cache in process memory.
type CacheConfig struct {
	RedisAddr     string        `envconfig:"CACHE_REDIS_ADDR" default:""`
	RedisPassword string        `envconfig:"CACHE_REDIS_PASSWORD" default:""`
	RedisDB       int           `envconfig:"CACHE_REDIS_DB" default:"0"`
	TTL           time.Duration `envconfig:"CACHE_TTL" default:"6h"`
}

// EstimateConfig configures the cost calculator.
type EstimateConfig struct {
	Location  string `envconfig:"ESTIMATE_LOCATION" default:"Generic"`
	RatesFile string `envconfig:"ESTIMATE_RATES_FILE" default:""`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Validate rejects values the server cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("invalid config: PORT is empty")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("invalid config: MAX_BODY_BYTES must be positive")
	}
	if c.AI.Enabled && c.AI.URL == "" {
		return fmt.Errorf("invalid config: AI_URL is required when AI_ENABLED is set")
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("invalid config: RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	return nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8000",
			Host:            "0.0.0.0",
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    1 << 20,
		},
		AI: AIConfig{
			Enabled: true,
			URL:     "http://localhost:11434",
			Model:   "granite:3.3-2b",
			Timeout: 30 * time.Second,
		},
		Cache: CacheConfig{
			TTL: 6 * time.Hour,
		},
		Estimate: EstimateConfig{
			Location: "Generic",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}
