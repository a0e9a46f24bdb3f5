package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	if config.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", config.Server.Port)
	}
	if config.Marketplace.PageSize != 100 {
		t.Errorf("PageSize = %d, want 100", config.Marketplace.PageSize)
	}
	if config.Marketplace.MaxPages != 50 {
		t.Errorf("MaxPages = %d, want 50", config.Marketplace.MaxPages)
	}
	if config.Report.Timezone == "" {
		t.Error("Timezone is empty")
	}
	if config.IsProduction() {
		t.Error("default config must not be production")
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig("/nonexistent/sellerpulse.toml")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if config.Server.Port != 8080 {
		t.Errorf("Port = %d, want default 8080", config.Server.Port)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sellerpulse.toml")

	data := `
environment = "production"

[server]
port = 9090

[marketplace]
base_url = "https://example.test/api"
page_size = 50
page_delay = "200ms"

[report]
timezone = "UTC"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if !config.IsProduction() {
		t.Error("IsProduction() = false, want true")
	}
	if config.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", config.Server.Port)
	}
	if config.Marketplace.BaseURL != "https://example.test/api" {
		t.Errorf("BaseURL = %q", config.Marketplace.BaseURL)
	}
	if config.Marketplace.PageSize != 50 {
		t.Errorf("PageSize = %d, want 50", config.Marketplace.PageSize)
	}
	if got := config.Marketplace.GetPageDelay(); got != 200*time.Millisecond {
		t.Errorf("GetPageDelay() = %v, want 200ms", got)
	}
	if config.Report.Timezone != "UTC" {
		t.Errorf("Timezone = %q, want UTC", config.Report.Timezone)
	}
	// Unset sections keep their defaults.
	if config.Marketplace.MaxPages != 50 {
		t.Errorf("MaxPages = %d, want default 50", config.Marketplace.MaxPages)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SELLERPULSE_ENV", "production")
	t.Setenv("SELLERPULSE_PORT", "7070")
	t.Setenv("SELLERPULSE_MARKETPLACE_TOKEN", "secret-token")
	t.Setenv("SELLERPULSE_TIMEZONE", "Europe/Moscow")

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if config.Environment != "production" {
		t.Errorf("Environment = %q, want production", config.Environment)
	}
	if config.Server.Port != 7070 {
		t.Errorf("Port = %d, want 7070", config.Server.Port)
	}
	if config.Marketplace.Token != "secret-token" {
		t.Errorf("Token = %q", config.Marketplace.Token)
	}
	if config.Report.Timezone != "Europe/Moscow" {
		t.Errorf("Timezone = %q, want Europe/Moscow", config.Report.Timezone)
	}
}

func TestDurationAccessorsFallBack(t *testing.T) {
	c := MarketplaceConfig{PageDelay: "garbage", Timeout: ""}

	if got := c.GetPageDelay(); got != 150*time.Millisecond {
		t.Errorf("GetPageDelay() = %v, want 150ms fallback", got)
	}
	if got := c.GetTimeout(); got != 30*time.Second {
		t.Errorf("GetTimeout() = %v, want 30s fallback", got)
	}
}
