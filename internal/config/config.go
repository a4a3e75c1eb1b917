// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	domain "github.com/exile-tools/poemarket/pkg/types"
)

// Config is the top-level application configuration.
type Config struct {
	Ninja   NinjaConfig   `yaml:"ninja"`
	Trade   TradeConfig   `yaml:"trade"`
	Context ContextConfig `yaml:"context"`
	Logging LoggingConfig `yaml:"logging"`
}

// NinjaConfig defines poe.ninja item overview API settings.
type NinjaConfig struct {
	BaseURL string      `yaml:"base_url"`
	Retry   RetryConfig `yaml:"retry"`
}

// RetryConfig defines the overview retry budget.
type RetryConfig struct {
	Attempts int           `yaml:"attempts"`
	Delay    time.Duration `yaml:"delay"`
}

// TradeConfig defines trade API settings.
type TradeConfig struct {
	BaseURL   string          `yaml:"base_url"`
	Fetch     FetchConfig     `yaml:"fetch"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// FetchConfig defines listing batch fetch settings.
type FetchConfig struct {
	BatchSize   int `yaml:"batch_size"`
	Concurrency int `yaml:"concurrency"`
}

// RateLimitConfig defines trade API rate limiting settings.
type RateLimitConfig struct {
	PerSecond  float64 `yaml:"per_second"`
	Burst      int     `yaml:"burst"`
	DailyLimit int64   `yaml:"daily_limit"`
}

// ContextConfig defines the league and language every request is scoped to
// unless a caller overrides them explicitly.
type ContextConfig struct {
	LeagueID string          `yaml:"league_id"`
	Language domain.Language `yaml:"language"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	ApplyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns a configuration with every default applied and no file read.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills in every unset field.
func ApplyDefaults(cfg *Config) {
	applyNinjaDefaults(&cfg.Ninja)
	applyTradeDefaults(&cfg.Trade)
	applyContextDefaults(&cfg.Context)
	applyLoggingDefaults(&cfg.Logging)
}

func applyNinjaDefaults(n *NinjaConfig) {
	if n.BaseURL == "" {
		n.BaseURL = "https://poe.ninja"
	}
	if n.Retry.Attempts == 0 {
		n.Retry.Attempts = 3
	}
	if n.Retry.Delay == 0 {
		n.Retry.Delay = 100 * time.Millisecond
	}
}

func applyTradeDefaults(t *TradeConfig) {
	if t.BaseURL == "" {
		t.BaseURL = "https://www.pathofexile.com"
	}
	if t.Fetch.BatchSize == 0 {
		t.Fetch.BatchSize = 10
	}
	if t.Fetch.Concurrency == 0 {
		t.Fetch.Concurrency = 5
	}
	applyRateLimitDefaults(&t.RateLimit)
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond == 0 {
		r.PerSecond = 2.0
	}
	if r.Burst == 0 {
		r.Burst = 4
	}
	if r.DailyLimit == 0 {
		r.DailyLimit = 10000
	}
}

func applyContextDefaults(c *ContextConfig) {
	if c.LeagueID == "" {
		c.LeagueID = "Standard"
	}
	if c.Language == "" {
		c.Language = domain.LanguageEnglish
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Ninja.Retry.Attempts < 1 {
		errs = append(errs, fmt.Errorf("ninja.retry.attempts must be at least 1"))
	}
	if cfg.Trade.Fetch.BatchSize < 1 {
		errs = append(errs, fmt.Errorf("trade.fetch.batch_size must be at least 1"))
	}
	if cfg.Trade.Fetch.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("trade.fetch.concurrency must be at least 1"))
	}
	if cfg.Trade.RateLimit.PerSecond < 0 {
		errs = append(errs, fmt.Errorf("trade.rate_limit.per_second must not be negative"))
	}
	if cfg.Context.LeagueID == "" {
		errs = append(errs, fmt.Errorf("context.league_id is required"))
	}

	return errors.Join(errs...)
}
