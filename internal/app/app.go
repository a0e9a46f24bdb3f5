// Package app wires configuration, clients, and services into the shared
// application core used by the server binary.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rustamq/sellerpulse/internal/clients/marketplace"
	"github.com/rustamq/sellerpulse/internal/common"
	"github.com/rustamq/sellerpulse/internal/interfaces"
	"github.com/rustamq/sellerpulse/internal/services/report"
)

// App holds all initialized services and clients.
type App struct {
	Config            *common.Config
	Logger            *common.Logger
	MarketplaceClient interfaces.MarketplaceClient
	ReportService     interfaces.ReportService
	StartupTime       time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, logging, the marketplace client, and
// the report service. configPath may be empty, in which case the default
// resolution logic is used.
func NewApp(configPath string) (*App, error) {
	if configPath == "" {
		configPath = os.Getenv("SELLERPULSE_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(getBinaryDir(), "sellerpulse.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/sellerpulse.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLogger(config.Logging.Level)

	if config.Marketplace.Token == "" {
		logger.Warn().Msg("Marketplace token not configured - report requests will be rejected upstream")
	}

	client := marketplace.NewClient(config.Marketplace.Token,
		marketplace.WithBaseURL(config.Marketplace.BaseURL),
		marketplace.WithLogger(logger),
		marketplace.WithPageSize(config.Marketplace.PageSize),
		marketplace.WithMaxPages(config.Marketplace.MaxPages),
		marketplace.WithPageDelay(config.Marketplace.GetPageDelay()),
		marketplace.WithTimeout(config.Marketplace.GetTimeout()),
		marketplace.WithMaxRetries(config.Marketplace.MaxRetries),
	)

	reportService := report.NewService(client, logger, config.Report.Timezone)

	logger.Info().
		Str("version", common.GetFullVersion()).
		Str("environment", config.Environment).
		Str("timezone", config.Report.Timezone).
		Msg("SellerPulse initialized")

	return &App{
		Config:            config,
		Logger:            logger,
		MarketplaceClient: client,
		ReportService:     reportService,
		StartupTime:       time.Now(),
	}, nil
}
