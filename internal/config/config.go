package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/robfig/cron/v3"
)

// Config holds the application configuration.
type Config struct {
	ServerPort   int    `env:"PORT" envDefault:"3001"`
	DataFile     string `env:"DATA_FILE" envDefault:"./data/events.json"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"./eventboard.db"`
	SeedSamples  bool   `env:"SEED_SAMPLE_EVENTS" envDefault:"false"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`

	ShareSecret   string        `env:"SHARE_SECRET"`
	ShareTokenTTL time.Duration `env:"SHARE_TOKEN_TTL" envDefault:"0s"` // 0 keeps share links valid forever
	PublicBaseURL string        `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:3001"`

	AllowedOrigins  []string `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:5173,http://localhost:3000" envSeparator:","`
	DefaultRadiusKm float64  `env:"DEFAULT_RADIUS_KM" envDefault:"10"`

	ReconcileSchedule     string `env:"RECONCILE_SCHEDULE" envDefault:"@hourly"`
	ActivityRetentionDays int    `env:"ACTIVITY_RETENTION_DAYS" envDefault:"30"`

	AnalyticsPushInterval time.Duration `env:"ANALYTICS_PUSH_INTERVAL" envDefault:"15s"`
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ActivityRetention is the retention window for daily activity counters.
func (c *Config) ActivityRetention() time.Duration {
	return time.Duration(c.ActivityRetentionDays) * 24 * time.Hour
}

func (c *Config) validate() error {
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.ServerPort)
	}
	if c.DefaultRadiusKm < 0 {
		return fmt.Errorf("DEFAULT_RADIUS_KM must not be negative")
	}
	if c.ActivityRetentionDays < 7 {
		return fmt.Errorf("ACTIVITY_RETENTION_DAYS must cover the 7-day report, got %d", c.ActivityRetentionDays)
	}
	if c.AnalyticsPushInterval <= 0 {
		return fmt.Errorf("ANALYTICS_PUSH_INTERVAL must be positive, got %s", c.AnalyticsPushInterval)
	}
	if _, err := cron.ParseStandard(c.ReconcileSchedule); err != nil {
		return fmt.Errorf("invalid RECONCILE_SCHEDULE: %w", err)
	}
	return nil
}
