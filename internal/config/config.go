// Package config handles configuration loading for the earnings tracker.
// It supports YAML config files, a local .env file, and environment
// variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "EARNINGSTRACKER"

// Config represents the complete application configuration.
type Config struct {
	API      APIConfig      `mapstructure:"api"      yaml:"api"`
	Logging  LoggingConfig  `mapstructure:"logging"  yaml:"logging"`
	Tracing  TracingConfig  `mapstructure:"tracing"  yaml:"tracing"`
	Upstream UpstreamConfig `mapstructure:"upstream" yaml:"upstream"`
	Earnings EarningsConfig `mapstructure:"earnings" yaml:"earnings"`
	News     NewsConfig     `mapstructure:"news"     yaml:"news"`
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"         validate:"min=1,max=65535"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"  validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=json text"` // "text" is human-readable console output
}

// TracingConfig holds OpenTelemetry settings.
type TracingConfig struct {
	Enabled     bool   `mapstructure:"enabled"      yaml:"enabled"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name" validate:"required"`
}

// UpstreamConfig holds settings for the third-party data sources.
type UpstreamConfig struct {
	TimeoutSec  int    `mapstructure:"timeout_sec"  yaml:"timeout_sec"  validate:"min=1"`
	UserAgent   string `mapstructure:"user_agent"   yaml:"user_agent"   validate:"required"`
	UniverseURL string `mapstructure:"universe_url" yaml:"universe_url" validate:"required,url"`
	CalendarURL string `mapstructure:"calendar_url" yaml:"calendar_url" validate:"required,url"`
	SearchURL   string `mapstructure:"search_url"   yaml:"search_url"   validate:"required,url"`
	RSSURL      string `mapstructure:"rss_url"      yaml:"rss_url"      validate:"required,url"`
	FMPURL      string `mapstructure:"fmp_url"      yaml:"fmp_url"      validate:"required,url"`
	FMPAPIKey   string `mapstructure:"fmp_api_key"  yaml:"fmp_api_key"` // also read from FMP_API_KEY
}

// Timeout returns the per-call upstream timeout.
func (u UpstreamConfig) Timeout() time.Duration {
	return time.Duration(u.TimeoutSec) * time.Second
}

// EarningsConfig holds earnings scan settings.
type EarningsConfig struct {
	UniverseSource string `mapstructure:"universe_source" yaml:"universe_source" validate:"oneof=wikipedia fmp"`
	Source         string `mapstructure:"source"          yaml:"source"          validate:"oneof=yfinance fmp"`
	WindowDays     int    `mapstructure:"window_days"     yaml:"window_days"     validate:"min=0"`
	Concurrency    int    `mapstructure:"concurrency"     yaml:"concurrency"     validate:"min=1,max=64"`
	HistorySize    int    `mapstructure:"history_size"    yaml:"history_size"    validate:"min=1,max=100"` // rows requested per ticker
}

// NewsConfig holds headline retrieval settings.
type NewsConfig struct {
	Source string `mapstructure:"source" yaml:"source" validate:"oneof=search rss fmp"`
	Limit  int    `mapstructure:"limit"  yaml:"limit"  validate:"min=0"`
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.earningstracker/config.yaml (home directory)
//  3. /etc/earningstracker/config.yaml (system)
//
// A .env file in the working directory is loaded into the process
// environment first. Environment variables override config file values.
// Format: EARNINGSTRACKER_<SECTION>_<KEY>, e.g., EARNINGSTRACKER_API_PORT
func Load() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".earningstracker"))
	v.AddConfigPath("/etc/earningstracker")

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return decode(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	return decode(v)
}

// Validate checks field constraints declared in the struct tags, and that
// an FMP API key is present when any source is set to fmp.
func (c *Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.UsesFMP() && c.Upstream.FMPAPIKey == "" {
		return fmt.Errorf("invalid config: fmp source selected but upstream.fmp_api_key is not set")
	}
	return nil
}

// UsesFMP reports whether any data source is set to Financial Modeling Prep.
func (c *Config) UsesFMP() bool {
	return c.Earnings.UniverseSource == "fmp" || c.Earnings.Source == "fmp" || c.News.Source == "fmp"
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("upstream.fmp_api_key", EnvPrefix+"_UPSTREAM_FMP_API_KEY", "FMP_API_KEY")
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultUserAgent is sent on upstream requests; Yahoo rejects the Go default.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"*"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Tracing defaults
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "earningstracker")

	// Upstream defaults
	v.SetDefault("upstream.timeout_sec", 10)
	v.SetDefault("upstream.user_agent", DefaultUserAgent)
	v.SetDefault("upstream.universe_url", "https://en.wikipedia.org/wiki/List_of_S%26P_500_companies")
	v.SetDefault("upstream.calendar_url", "https://finance.yahoo.com/calendar/earnings")
	v.SetDefault("upstream.search_url", "https://query1.finance.yahoo.com/v1/finance/search")
	v.SetDefault("upstream.rss_url", "https://feeds.finance.yahoo.com/rss/2.0/headline")
	v.SetDefault("upstream.fmp_url", "https://financialmodelingprep.com/api/v3")
	v.SetDefault("upstream.fmp_api_key", "")

	// Earnings defaults
	v.SetDefault("earnings.universe_source", "wikipedia")
	v.SetDefault("earnings.source", "yfinance")
	v.SetDefault("earnings.window_days", 7)
	v.SetDefault("earnings.concurrency", 8)
	v.SetDefault("earnings.history_size", 25)

	// News defaults
	v.SetDefault("news.source", "search")
	v.SetDefault("news.limit", 10)
}

// loadDotEnv loads KEY=VALUE pairs from path into the environment.
// Variables already set in the environment win; a missing file is fine.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error loading %s: %w", path, err)
	}
	return nil
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
