// Package config provides configuration for the portfolio server
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for the site
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	Charts  ChartsConfig  `toml:"charts"`
	Assets  AssetsConfig  `toml:"assets"`
	Unlock  UnlockConfig  `toml:"unlock"`
	Admin   AdminConfig   `toml:"admin"`
	Session SessionConfig `toml:"session"`
	Logging LoggingConfig `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
	Mode string `toml:"mode"` // gin mode: debug, release or test
}

// Addr returns host:port
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// StorageConfig holds the sqlite database location
type StorageConfig struct {
	Path string `toml:"path"`
}

// ChartsConfig points at chart specs on disk. Empty Dir serves the embedded specs.
type ChartsConfig struct {
	Dir   string `toml:"dir"`
	Watch bool   `toml:"watch"`
}

// AssetsConfig describes the carousel images
type AssetsConfig struct {
	Dir      string `toml:"dir"`      // empty serves the embedded images
	Manifest string `toml:"manifest"` // manifest path relative to Dir
	Prefix   string `toml:"prefix"`
	Ext      string `toml:"ext"`
	Count    int    `toml:"count"`
	Label    string `toml:"label"`
}

// UnlockConfig holds the resume gate settings
type UnlockConfig struct {
	Secret      string  `toml:"secret"`
	DownloadURL string  `toml:"download_url"`
	RevealDelay string  `toml:"reveal_delay"`
	Rate        float64 `toml:"rate"` // attempts per second
	Burst       int     `toml:"burst"`
}

// GetRevealDelay parses the reveal delay, defaulting to 5s
func (c UnlockConfig) GetRevealDelay() time.Duration {
	return parseDuration(c.RevealDelay, 5*time.Second)
}

// AdminConfig holds the admin dashboard credentials
type AdminConfig struct {
	Username string `toml:"username"`
	Password string `toml:"password"`
}

// SessionConfig controls visitor session expiry
type SessionConfig struct {
	IdleTTL       string `toml:"idle_ttl"`
	SweepInterval string `toml:"sweep_interval"`
}

// GetIdleTTL parses the idle ttl, defaulting to 30m
func (c SessionConfig) GetIdleTTL() time.Duration {
	return parseDuration(c.IdleTTL, 30*time.Minute)
}

// GetSweepInterval parses the sweep interval, defaulting to 1m
func (c SessionConfig) GetSweepInterval() time.Duration {
	return parseDuration(c.SweepInterval, time.Minute)
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// NewDefaultConfig returns a configuration with default values
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "",
			Port: 8080,
			Mode: "release",
		},
		Storage: StorageConfig{
			Path: "data/portfolio.db",
		},
		Assets: AssetsConfig{
			Manifest: "games/manifest.yaml",
			Prefix:   "Games",
			Ext:      "jpeg",
			Count:    36,
			Label:    "Game",
		},
		Unlock: UnlockConfig{
			Secret:      "Raccoons",
			DownloadURL: "https://drive.usercontent.google.com/uc?id=1yRhiuFHrN6sypAu8CX8y7U4O1krd0JJ2&export=download",
			RevealDelay: "5s",
			Rate:        5,
			Burst:       20,
		},
		Admin: AdminConfig{
			Username: "admin",
		},
		Session: SessionConfig{
			IdleTTL:       "30m",
			SweepInterval: "1m",
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

	// Later files override earlier ones
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
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
	// PORT is what most hosts inject
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if port := os.Getenv("PORTFOLIO_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("PORTFOLIO_HOST"); host != "" {
		config.Server.Host = host
	}
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		config.Server.Mode = mode
	}
	if path := os.Getenv("PORTFOLIO_DB_PATH"); path != "" {
		config.Storage.Path = path
	}
	if dir := os.Getenv("PORTFOLIO_CHARTS_DIR"); dir != "" {
		config.Charts.Dir = dir
	}
	if dir := os.Getenv("PORTFOLIO_ASSETS_DIR"); dir != "" {
		config.Assets.Dir = dir
	}
	if secret := os.Getenv("RESUME_SECRET"); secret != "" {
		config.Unlock.Secret = secret
	}
	if url := os.Getenv("RESUME_URL"); url != "" {
		config.Unlock.DownloadURL = url
	}
	if user := os.Getenv("ADMIN_USERNAME"); user != "" {
		config.Admin.Username = user
	}
	if pass := os.Getenv("ADMIN_PASSWORD"); pass != "" {
		config.Admin.Password = pass
	}
	if level := os.Getenv("PORTFOLIO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("PORTFOLIO_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}
}
