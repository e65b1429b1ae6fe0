// Package config loads pane-columns configuration from file and environment.
//
// Precedence (highest to lowest):
//  1. Command-line flags (applied by cmd)
//  2. Environment variables (PANE_COLUMNS_*)
//  3. Config file
//  4. Built-in defaults
//
// Config file search order:
//  1. .pane-columns.yaml in current directory
//  2. ~/.config/pane-columns/config.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// Config holds all pane-columns configuration.
type Config struct {
	// Multiplexer selection: "tmux" or empty to auto-detect.
	Mux string `yaml:"mux"`
	// Socket is a tmux server socket path passed as -S.
	Socket string `yaml:"socket"`
	// Target is the tmux window to operate on (e.g. "work:2"). Empty means
	// the current window.
	Target string `yaml:"target"`

	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	// OTEL
	OTELEndpoint string `yaml:"otel_endpoint"`
	OTELHeaders  string `yaml:"otel_headers"` // Comma-separated key=value pairs, e.g. "Authorization=Basic abc123"

	// Level is LogLevel parsed (not from YAML, set after loading).
	Level log.Level `yaml:"-"`

	// ConfigFile is the path to the config file that was loaded (empty if none).
	ConfigFile string `yaml:"-"`
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		LogLevel: "info",
		Level:    log.InfoLevel,
	}
}

// Load reads configuration from file and environment variables.
// Environment variables always override file values.
func Load() (*Config, error) {
	cfg := Defaults()

	if path, data, err := findConfigFile(); err == nil {
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
		cfg.ConfigFile = path
		mergeFile(cfg, &fileCfg)
	}

	mergeEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated fields and parses the log level.
func (c *Config) Validate() error {
	switch c.Mux {
	case "", "tmux":
	default:
		return fmt.Errorf("invalid mux %q (supported: tmux)", c.Mux)
	}
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	c.Level = level
	return nil
}

// findConfigFile searches for a config file and returns its path and contents.
func findConfigFile() (string, []byte, error) {
	if data, err := os.ReadFile(".pane-columns.yaml"); err == nil {
		return ".pane-columns.yaml", data, nil
	}

	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".config", "pane-columns", "config.yaml")
		if data, err := os.ReadFile(path); err == nil {
			return path, data, nil
		}
	}

	return "", nil, fmt.Errorf("no config file found")
}

// mergeFile applies non-zero file values onto cfg.
func mergeFile(cfg *Config, file *Config) {
	if file.Mux != "" {
		cfg.Mux = file.Mux
	}
	if file.Socket != "" {
		cfg.Socket = file.Socket
	}
	if file.Target != "" {
		cfg.Target = file.Target
	}
	if file.LogLevel != "" {
		cfg.LogLevel = file.LogLevel
	}
	if file.OTELEndpoint != "" {
		cfg.OTELEndpoint = file.OTELEndpoint
	}
	if file.OTELHeaders != "" {
		cfg.OTELHeaders = file.OTELHeaders
	}
}

// mergeEnv applies environment variables onto cfg. Env always wins.
func mergeEnv(cfg *Config) {
	if v := os.Getenv("PANE_COLUMNS_MUX"); v != "" {
		cfg.Mux = v
	}
	if v := os.Getenv("PANE_COLUMNS_SOCKET"); v != "" {
		cfg.Socket = v
	}
	if v := os.Getenv("PANE_COLUMNS_TARGET"); v != "" {
		cfg.Target = v
	}
	if v := os.Getenv("PANE_COLUMNS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.OTELEndpoint = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"); v != "" {
		cfg.OTELHeaders = v
	}
}
