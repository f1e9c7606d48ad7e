// Copyright Product Decoder Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the main configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Client    ClientConfig    `yaml:"client"`
	Providers ProvidersConfig `yaml:"providers"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host    string        `yaml:"host"`
	Port    int           `yaml:"port"`
	Timeout time.Duration `yaml:"timeout"`
}

// ClientConfig contains outbound HTTP client configuration. Every upstream
// call carries this timeout; there is no per-call negotiation.
type ClientConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// ProvidersConfig contains credentials and endpoints for the upstream APIs.
// Keys are read-only after startup.
type ProvidersConfig struct {
	GNews  GNewsConfig  `yaml:"gnews"`
	Google GoogleConfig `yaml:"google"`
}

// GNewsConfig contains GNews API configuration
type GNewsConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"` // default "https://gnews.io/api/v4"
}

// GoogleConfig contains configuration shared by the Google upstreams
// (Custom Search, YouTube Data, Cloud Vision). The YouTube and Vision
// calls reuse the same API key as CSE, matching the deployment this
// gateway fronts.
type GoogleConfig struct {
	APIKey          string `yaml:"api_key"`
	CSEID           string `yaml:"cse_id"`
	CSEEndpoint     string `yaml:"cse_endpoint"`     // default customsearch endpoint
	YouTubeEndpoint string `yaml:"youtube_endpoint"` // default youtube/v3/search
	VisionEndpoint  string `yaml:"vision_endpoint"`  // default images:annotate
}

// RateLimitConfig contains admission-control configuration
type RateLimitConfig struct {
	MaxRequests int           `yaml:"max_requests"` // default 100
	Window      time.Duration `yaml:"window"`       // default 60s
	Store       string        `yaml:"store"`        // "memory" (default), "sqlite" or "postgres"
	SQLitePath  string        `yaml:"sqlite_path"`
	PostgresDSN string        `yaml:"postgres_dsn"`
}

// Load loads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	return &cfg, nil
}

// Default returns default configuration
func Default() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8080,
			Timeout: 60 * time.Second,
		},
	}
	applyEnvOverrides(cfg)
	applyDefaults(cfg)
	return cfg
}

// Validate checks that required provider credentials are present. Called
// once at startup so a misconfigured deployment fails fast instead of
// emitting 502s at request time.
func (c *Config) Validate() error {
	if c.Providers.GNews.APIKey == "" {
		return fmt.Errorf("GNEWS_API_KEY is missing")
	}
	if c.Providers.Google.APIKey == "" {
		return fmt.Errorf("GOOGLE_API_KEY is missing")
	}
	if c.Providers.Google.CSEID == "" {
		return fmt.Errorf("GOOGLE_SEARCH_ENGINE_ID is missing")
	}
	switch c.RateLimit.Store {
	case "", "memory":
	case "sqlite":
		if c.RateLimit.SQLitePath == "" {
			return fmt.Errorf("rate_limit.sqlite_path is required for the sqlite store")
		}
	case "postgres":
		if c.RateLimit.PostgresDSN == "" {
			return fmt.Errorf("rate_limit.postgres_dsn is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown rate_limit.store: %q", c.RateLimit.Store)
	}
	return nil
}

// applyEnvOverrides loads credentials from environment variables
// (override file config)
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GNEWS_API_KEY"); v != "" {
		cfg.Providers.GNews.APIKey = v
	}
	if v := os.Getenv("GOOGLE_API_KEY"); v != "" {
		cfg.Providers.Google.APIKey = v
	}
	if v := os.Getenv("GOOGLE_SEARCH_ENGINE_ID"); v != "" {
		cfg.Providers.Google.CSEID = v
	}
	if v := os.Getenv("RATE_LIMIT_POSTGRES_DSN"); v != "" {
		cfg.RateLimit.PostgresDSN = v
		cfg.RateLimit.Store = "postgres"
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 60 * time.Second
	}
	if cfg.Client.Timeout == 0 {
		cfg.Client.Timeout = 15 * time.Second
	}
	if cfg.Providers.GNews.BaseURL == "" {
		cfg.Providers.GNews.BaseURL = "https://gnews.io/api/v4"
	}
	if cfg.Providers.Google.CSEEndpoint == "" {
		cfg.Providers.Google.CSEEndpoint = "https://customsearch.googleapis.com/customsearch/v1"
	}
	if cfg.Providers.Google.YouTubeEndpoint == "" {
		cfg.Providers.Google.YouTubeEndpoint = "https://www.googleapis.com/youtube/v3/search"
	}
	if cfg.Providers.Google.VisionEndpoint == "" {
		cfg.Providers.Google.VisionEndpoint = "https://vision.googleapis.com/v1/images:annotate"
	}
	if cfg.RateLimit.MaxRequests == 0 {
		cfg.RateLimit.MaxRequests = 100
	}
	if cfg.RateLimit.Window == 0 {
		cfg.RateLimit.Window = 60 * time.Second
	}
	if cfg.RateLimit.Store == "" {
		cfg.RateLimit.Store = "memory"
	}
}
