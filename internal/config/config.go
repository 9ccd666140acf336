// Package config provides configuration management for bbparse.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Defaults applied when neither the config file nor the environment set a value.
const (
	DefaultOutputFormat = "table"
	DefaultLogLevel     = "warn"
)

// Config holds the bbparse configuration.
type Config struct {
	OutputFormat string `yaml:"output_format,omitempty"`
	MaxDepth     int    `yaml:"max_depth,omitempty"`
	WrapWidth    int    `yaml:"wrap_width,omitempty"`
	LogLevel     string `yaml:"log_level,omitempty"`
}

// Validate checks that all fields hold usable values. Zero values mean "use the default".
func (c *Config) Validate() error {
	switch c.OutputFormat {
	case "", "table", "json", "plain":
	default:
		return fmt.Errorf("output_format must be one of table, json, plain (got %q)", c.OutputFormat)
	}
	if c.MaxDepth < 0 {
		return errors.New("max_depth must not be negative")
	}
	if c.WrapWidth < 0 {
		return errors.New("wrap_width must not be negative")
	}
	if c.LogLevel != "" {
		if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("log_level is invalid: %w", err)
		}
	}
	return nil
}

// ApplyDefaults fills unset fields with their defaults.
func (c *Config) ApplyDefaults() {
	if c.OutputFormat == "" {
		c.OutputFormat = DefaultOutputFormat
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
// Numeric variables that do not parse are ignored.
func (c *Config) LoadFromEnv() {
	if format := os.Getenv("BBPARSE_OUTPUT"); format != "" {
		c.OutputFormat = format
	}
	if depth, ok := getEnvInt("BBPARSE_MAX_DEPTH"); ok {
		c.MaxDepth = depth
	}
	if width, ok := getEnvInt("BBPARSE_WRAP_WIDTH"); ok {
		c.WrapWidth = width
	}
	if level := os.Getenv("BBPARSE_LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
}

// EnvVars lists the environment variables LoadFromEnv reads.
func EnvVars() []string {
	return []string{"BBPARSE_OUTPUT", "BBPARSE_MAX_DEPTH", "BBPARSE_WRAP_WIDTH", "BBPARSE_LOG_LEVEL"}
}

func getEnvInt(name string) (int, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	// Try XDG config directory first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "bbparse", "config.yml")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".bbparse", "config.yml")
	}

	return filepath.Join(home, ".config", "bbparse", "config.yml")
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file and overrides with environment variables.
// A missing file is not an error; defaults are applied last.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = &Config{}
	}

	cfg.LoadFromEnv()
	cfg.ApplyDefaults()
	return cfg, nil
}
