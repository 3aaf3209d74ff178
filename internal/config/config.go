// Package config provides YAML-based configuration with environment
// overrides for the console.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	Upstream UpstreamConfig `yaml:"upstream"`
	Server   ServerConfig   `yaml:"server"`
	Feed     FeedConfig     `yaml:"feed"`
	Alerts   AlertsConfig   `yaml:"alerts"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// UpstreamConfig locates the orchestrator's realtime feed.
type UpstreamConfig struct {
	URL string `yaml:"url"`
}

// ServerConfig contains local HTTP server settings.
type ServerConfig struct {
	ListenAddr   string   `yaml:"listenAddr"`
	ReadTimeout  int      `yaml:"readTimeoutSeconds"`
	WriteTimeout int      `yaml:"writeTimeoutSeconds"`
	EnableCORS   bool     `yaml:"enableCors"`
	AllowOrigins []string `yaml:"allowOrigins"`
}

// FeedConfig tunes the event log and API defaults.
type FeedConfig struct {
	LogCapacity       int `yaml:"logCapacity"`
	RecentEventsLimit int `yaml:"recentEventsLimit"`
}

// AlertsConfig tunes the alert ring.
type AlertsConfig struct {
	Capacity int `yaml:"capacity"`
}

// LoggingConfig controls the console's own logging.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Upstream: UpstreamConfig{
			URL: "ws://localhost:8000/ws",
		},
		Server: ServerConfig{
			ListenAddr:   "127.0.0.1:8090",
			ReadTimeout:  30,
			WriteTimeout: 30,
			EnableCORS:   true,
			AllowOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		},
		Feed: FeedConfig{
			LogCapacity:       1024,
			RecentEventsLimit: 100,
		},
		Alerts: AlertsConfig{
			Capacity: 10,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from path, falling back to defaults when the file
// does not exist, then applies environment overrides and validates.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults + env only.
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := getEnv("CONSOLE_UPSTREAM_URL", ""); v != "" {
		c.Upstream.URL = v
	}
	if v := getEnv("CONSOLE_LISTEN_ADDR", ""); v != "" {
		c.Server.ListenAddr = v
	}
	if v := getEnv("CONSOLE_LOG_LEVEL", ""); v != "" {
		c.Logging.Level = v
	}
	if v := getEnv("CONSOLE_EVENT_LOG_CAPACITY", ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Feed.LogCapacity = n
		}
	}
}

// Validate checks the configuration for values the console cannot run with.
func (c *Config) Validate() error {
	if c.Upstream.URL == "" {
		return fmt.Errorf("upstream.url must be set")
	}
	if !strings.HasPrefix(c.Upstream.URL, "ws://") && !strings.HasPrefix(c.Upstream.URL, "wss://") {
		return fmt.Errorf("upstream.url must be a ws:// or wss:// URL, got %q", c.Upstream.URL)
	}
	if c.Server.ListenAddr == "" {
		return fmt.Errorf("server.listenAddr must be set")
	}
	if c.Feed.LogCapacity <= 0 {
		return fmt.Errorf("feed.logCapacity must be positive, got %d", c.Feed.LogCapacity)
	}
	if c.Alerts.Capacity <= 0 {
		return fmt.Errorf("alerts.capacity must be positive, got %d", c.Alerts.Capacity)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return strings.TrimSpace(value)
	}
	return fallback
}
