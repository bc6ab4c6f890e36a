package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the configuration settings for the backend.
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	HTTP          HTTPConfig          `yaml:"http"`
	Jobs          JobsConfig          `yaml:"jobs"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// HTTPConfig holds the query-serving HTTP listener configuration.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// JobsConfig tunes the batch pipeline.
type JobsConfig struct {
	// ScoringFanOut bounds concurrent per-artist metric fetches in the
	// daily scoring job.
	ScoringFanOut int `yaml:"scoring_fan_out"`
	// FetchTimeout is the per-collaborator-call timeout; a timed-out fetch
	// is treated as that platform being unavailable.
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
	// AnalyticsInterval is the minimum spacing between analytics
	// collaborator calls in the weekly tiering job.
	AnalyticsInterval time.Duration `yaml:"analytics_interval"`
	// RankLookbackDays bounds the backward search for a previous day with
	// score data.
	RankLookbackDays int `yaml:"rank_lookback_days"`
	// DailyScoringSchedule and WeeklyTieringSchedule are the periodic job
	// intervals.
	DailyScoringSchedule  time.Duration `yaml:"daily_scoring_schedule"`
	WeeklyTieringSchedule time.Duration `yaml:"weekly_tiering_schedule"`
}

// ObservabilityConfig holds configuration for observability components.
type ObservabilityConfig struct {
	MetricsAddress string `yaml:"metrics_address"`
	Environment    string `yaml:"environment"`
}

// LoadConfig loads the configuration from a YAML file, falling back to
// environment variables when the file is absent. Env vars always win.
func LoadConfig(filename string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(filename)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("SCORING_FAN_OUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Jobs.ScoringFanOut = n
		}
	}
	if v := os.Getenv("FETCH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Jobs.FetchTimeout = d
		}
	}
	if v := os.Getenv("ANALYTICS_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Jobs.AnalyticsInterval = d
		}
	}

	cfg.applyDefaults()

	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("postgres DSN is required (config file or DATABASE_URL)")
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.Observability.MetricsAddress == "" {
		c.Observability.MetricsAddress = ":9090"
	}
	if c.Jobs.ScoringFanOut <= 0 {
		c.Jobs.ScoringFanOut = 8
	}
	if c.Jobs.FetchTimeout <= 0 {
		c.Jobs.FetchTimeout = 10 * time.Second
	}
	if c.Jobs.AnalyticsInterval <= 0 {
		// The analytics collaborator rate-limits hard; stay just above one
		// call per second.
		c.Jobs.AnalyticsInterval = 1100 * time.Millisecond
	}
	if c.Jobs.RankLookbackDays <= 0 {
		c.Jobs.RankLookbackDays = 30
	}
	if c.Jobs.DailyScoringSchedule <= 0 {
		c.Jobs.DailyScoringSchedule = 24 * time.Hour
	}
	if c.Jobs.WeeklyTieringSchedule <= 0 {
		c.Jobs.WeeklyTieringSchedule = 7 * 24 * time.Hour
	}
}
