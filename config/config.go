// Package config loads engine configuration from an optional YAML file with
// environment-variable overrides. Index bounds (token lengths, posting caps,
// cache sizes) are part of the engine contract and are compiled in, not
// configured here.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	DataDir string        `yaml:"dataDir"`
	Server  ServerConfig  `yaml:"server"`
	Search  SearchConfig  `yaml:"search"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ServerConfig holds the serve-mode HTTP settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	RateRPS         float64       `yaml:"rateRps"`
	RateBurst       int           `yaml:"rateBurst"`
}

// SearchConfig holds query defaults.
type SearchConfig struct {
	ResultsPerPage    int  `yaml:"resultsPerPage"`
	AutocompleteLimit int  `yaml:"autocompleteLimit"`
	ExpandLimit       int  `yaml:"expandLimit"`
	PerDocLengthNorm  bool `yaml:"perDocLengthNorm"`
}

// LoggingConfig controls structured logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// MetricsConfig controls the Prometheus endpoint in serve mode.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Load reads a YAML config file (if path is non-empty) over the defaults and
// applies environment-variable overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataDir: "./Data",
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateRPS:         50,
			RateBurst:       100,
		},
		Search: SearchConfig{
			ResultsPerPage:    10,
			AutocompleteLimit: 10,
			ExpandLimit:       100,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MINIGOOGLE_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("MINIGOOGLE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("MINIGOOGLE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("MINIGOOGLE_LOG_PRETTY"); v != "" {
		if pretty, err := strconv.ParseBool(v); err == nil {
			cfg.Logging.Pretty = pretty
		}
	}
	if v := os.Getenv("MINIGOOGLE_METRICS_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = enabled
		}
	}
}

// Validate rejects configurations the engine cannot run with.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("dataDir cannot be empty")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	if c.Search.ResultsPerPage < 1 {
		return fmt.Errorf("resultsPerPage must be positive, got %d", c.Search.ResultsPerPage)
	}
	if c.Search.AutocompleteLimit < 1 {
		return fmt.Errorf("autocompleteLimit must be positive, got %d", c.Search.AutocompleteLimit)
	}
	if c.Search.ExpandLimit < 1 {
		return fmt.Errorf("expandLimit must be positive, got %d", c.Search.ExpandLimit)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	if c.Server.RateRPS < 0 {
		return fmt.Errorf("rateRps cannot be negative")
	}
	return nil
}
