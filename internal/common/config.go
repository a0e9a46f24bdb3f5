// Package common provides shared utilities for SellerPulse
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for SellerPulse
type Config struct {
	Environment string            `toml:"environment"`
	Server      ServerConfig      `toml:"server"`
	Marketplace MarketplaceConfig `toml:"marketplace"`
	Report      ReportConfig      `toml:"report"`
	Logging     LoggingConfig     `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// MarketplaceConfig holds marketplace API client configuration
type MarketplaceConfig struct {
	BaseURL    string `toml:"base_url"`
	Token      string `toml:"token"`
	PageSize   int    `toml:"page_size"`
	MaxPages   int    `toml:"max_pages"`
	PageDelay  string `toml:"page_delay"` // minimum spacing between page requests, e.g. "150ms"
	Timeout    string `toml:"timeout"`    // per-page request timeout
	MaxRetries int    `toml:"max_retries"`
}

// GetPageDelay parses and returns the inter-page delay duration
func (c *MarketplaceConfig) GetPageDelay() time.Duration {
	d, err := time.ParseDuration(c.PageDelay)
	if err != nil {
		return 150 * time.Millisecond
	}
	return d
}

// GetTimeout parses and returns the per-page timeout duration
func (c *MarketplaceConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// ReportConfig holds report aggregation configuration
type ReportConfig struct {
	Timezone string `toml:"timezone"` // IANA zone for calendar-day bucketing
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Marketplace: MarketplaceConfig{
			BaseURL:    "https://api-seller.marketplace.example/api/seller",
			PageSize:   100,
			MaxPages:   50,
			PageDelay:  "150ms",
			Timeout:    "30s",
			MaxRetries: 3,
		},
		Report: ReportConfig{
			Timezone: "Asia/Tashkent",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("SELLERPULSE_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("SELLERPULSE_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("SELLERPULSE_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("SELLERPULSE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if url := os.Getenv("SELLERPULSE_MARKETPLACE_URL"); url != "" {
		config.Marketplace.BaseURL = url
	}

	if token := os.Getenv("SELLERPULSE_MARKETPLACE_TOKEN"); token != "" {
		config.Marketplace.Token = token
	}

	if tz := os.Getenv("SELLERPULSE_TIMEZONE"); tz != "" {
		config.Report.Timezone = tz
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
