package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// ── Load / Defaults ──

func TestLoadReturnsDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// API defaults
	if cfg.API.Host != "0.0.0.0" {
		t.Errorf("API.Host: got %q, want %q", cfg.API.Host, "0.0.0.0")
	}
	if cfg.API.Port != 8080 {
		t.Errorf("API.Port: got %d, want 8080", cfg.API.Port)
	}
	if len(cfg.API.CORSOrigins) != 1 || cfg.API.CORSOrigins[0] != "*" {
		t.Errorf("API.CORSOrigins: got %v", cfg.API.CORSOrigins)
	}

	// Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level: got %q, want %q", cfg.Logging.Level, "info")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format: got %q, want %q", cfg.Logging.Format, "json")
	}

	// Tracing defaults
	if cfg.Tracing.Enabled {
		t.Error("Tracing.Enabled should be false by default")
	}

	// Upstream defaults
	if cfg.Upstream.TimeoutSec != 10 {
		t.Errorf("Upstream.TimeoutSec: got %d, want 10", cfg.Upstream.TimeoutSec)
	}
	if cfg.Upstream.Timeout() != 10*time.Second {
		t.Errorf("Upstream.Timeout(): got %v", cfg.Upstream.Timeout())
	}
	if !strings.Contains(cfg.Upstream.UniverseURL, "wikipedia.org") {
		t.Errorf("Upstream.UniverseURL: got %q", cfg.Upstream.UniverseURL)
	}
	if cfg.Upstream.UserAgent != DefaultUserAgent {
		t.Errorf("Upstream.UserAgent: got %q", cfg.Upstream.UserAgent)
	}

	// Earnings defaults
	if cfg.Earnings.WindowDays != 7 {
		t.Errorf("Earnings.WindowDays: got %d, want 7", cfg.Earnings.WindowDays)
	}
	if cfg.Earnings.Concurrency != 8 {
		t.Errorf("Earnings.Concurrency: got %d, want 8", cfg.Earnings.Concurrency)
	}
	if cfg.Earnings.UniverseSource != "wikipedia" || cfg.Earnings.Source != "yfinance" {
		t.Errorf("Earnings sources: got %q / %q", cfg.Earnings.UniverseSource, cfg.Earnings.Source)
	}
	if cfg.UsesFMP() {
		t.Error("UsesFMP should be false by default")
	}

	// News defaults
	if cfg.News.Source != "search" {
		t.Errorf("News.Source: got %q, want %q", cfg.News.Source, "search")
	}
	if cfg.News.Limit != 10 {
		t.Errorf("News.Limit: got %d, want 10", cfg.News.Limit)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("EARNINGSTRACKER_API_PORT", "9191")
	t.Setenv("EARNINGSTRACKER_NEWS_SOURCE", "rss")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.API.Port != 9191 {
		t.Errorf("API.Port: got %d, want 9191", cfg.API.Port)
	}
	if cfg.News.Source != "rss" {
		t.Errorf("News.Source: got %q, want %q", cfg.News.Source, "rss")
	}
}

func TestLoadFMPKeyFromPlainEnv(t *testing.T) {
	t.Setenv("FMP_API_KEY", "plain-key")
	t.Setenv("EARNINGSTRACKER_EARNINGS_SOURCE", "fmp")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Upstream.FMPAPIKey != "plain-key" {
		t.Errorf("Upstream.FMPAPIKey: got %q, want %q", cfg.Upstream.FMPAPIKey, "plain-key")
	}
	if !cfg.UsesFMP() {
		t.Error("UsesFMP should be true")
	}
}

// ── LoadFromFile ──

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "test_config.yaml")
	content := []byte(`
api:
  port: 9090
  cors_origins: ["https://dash.example.com"]
logging:
  level: "debug"
  format: "text"
earnings:
  window_days: 14
  concurrency: 2
news:
  source: "rss"
  limit: 5
`)
	if err := os.WriteFile(cfgPath, content, 0644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := LoadFromFile(cfgPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error: %v", err)
	}
	if cfg.API.Port != 9090 {
		t.Errorf("API.Port: got %d, want 9090", cfg.API.Port)
	}
	if len(cfg.API.CORSOrigins) != 1 || cfg.API.CORSOrigins[0] != "https://dash.example.com" {
		t.Errorf("API.CORSOrigins: got %v", cfg.API.CORSOrigins)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level: got %q, want %q", cfg.Logging.Level, "debug")
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Logging.Format: got %q, want %q", cfg.Logging.Format, "text")
	}
	if cfg.Earnings.WindowDays != 14 {
		t.Errorf("Earnings.WindowDays: got %d, want 14", cfg.Earnings.WindowDays)
	}
	if cfg.Earnings.Concurrency != 2 {
		t.Errorf("Earnings.Concurrency: got %d, want 2", cfg.Earnings.Concurrency)
	}
	if cfg.News.Source != "rss" || cfg.News.Limit != 5 {
		t.Errorf("News: got %+v", cfg.News)
	}
	// Untouched sections keep their defaults.
	if cfg.Upstream.TimeoutSec != 10 {
		t.Errorf("Upstream.TimeoutSec: got %d, want 10", cfg.Upstream.TimeoutSec)
	}
}

func TestLoadFromFileNotFound(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("LoadFromFile() with nonexistent path should return error")
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(cfgPath, []byte("news:\n  source: \"twitter\"\n"), 0644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	_, err := LoadFromFile(cfgPath)
	if err == nil {
		t.Fatal("expected validation error for unknown news source")
	}
	if !strings.Contains(err.Error(), "invalid config") {
		t.Errorf("unexpected error: %v", err)
	}
}

// ── Validate ──

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero window", func(c *Config) { c.Earnings.WindowDays = 0 }, false},
		{"port out of range", func(c *Config) { c.API.Port = 70000 }, true},
		{"negative window", func(c *Config) { c.Earnings.WindowDays = -1 }, true},
		{"zero concurrency", func(c *Config) { c.Earnings.Concurrency = 0 }, true},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, true},
		{"bad universe url", func(c *Config) { c.Upstream.UniverseURL = "not a url" }, true},
		{"zero timeout", func(c *Config) { c.Upstream.TimeoutSec = 0 }, true},
		{"unknown earnings source", func(c *Config) { c.Earnings.Source = "zacks" }, true},
		{"fmp without key", func(c *Config) { c.Earnings.Source = "fmp" }, true},
		{"fmp news without key", func(c *Config) { c.News.Source = "fmp" }, true},
		{"fmp with key", func(c *Config) {
			c.Earnings.UniverseSource = "fmp"
			c.Upstream.FMPAPIKey = "demo"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// ── .env ──

func TestLoadDotEnv(t *testing.T) {
	const key = "EARNINGSTRACKER_TEST_DOTENV"
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(key+"=from-dotenv\n"), 0644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	defer os.Unsetenv(key)

	if err := loadDotEnv(path); err != nil {
		t.Fatalf("loadDotEnv() error: %v", err)
	}
	if got := os.Getenv(key); got != "from-dotenv" {
		t.Errorf("%s: got %q, want %q", key, got, "from-dotenv")
	}
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	if err := loadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("missing .env should be ignored, got %v", err)
	}
}
