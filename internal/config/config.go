// Package config provides configuration for the completion resolver. It
// handles loading the ~/.stevedore/complete.yaml file and applying
// environment overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Environment variables recognized as overrides.
const (
	EnvHost     = "STEVEDORE_HOST"
	EnvLogLevel = "STEVEDORE_COMPLETE_LOG_LEVEL"
)

// Config holds the resolver's settings.
type Config struct {
	// Host is the daemon address, e.g. "unix:///var/run/stevedore.sock" or
	// "tcp://127.0.0.1:2375". A --host flag typed on the completed line
	// still wins over this value.
	Host string `yaml:"host"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `yaml:"logLevel"`

	// History enables recording completion requests to the local sqlite db.
	History bool `yaml:"history"`

	// FuzzyFallback enables fuzzy candidate ranking when prefix filtering
	// matches nothing.
	FuzzyFallback bool `yaml:"fuzzyFallback"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
	}
}

// LoadResult contains the result of loading a configuration file.
type LoadResult struct {
	Config *Config
	Errors []error
}

// LoadFromFile loads configuration from a YAML file. A missing file returns
// defaults with no error; a malformed file returns defaults and records the
// parse error as non-fatal. Environment overrides are applied last.
func LoadFromFile(path string) (*LoadResult, error) {
	result := &LoadResult{
		Config: DefaultConfig(),
		Errors: []error{},
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(result.Config)
			return result, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(content, result.Config); err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("parse error: %w", err))
		result.Config = DefaultConfig()
	}

	applyEnvOverrides(result.Config)
	return result, nil
}

func applyEnvOverrides(cfg *Config) {
	if host := os.Getenv(EnvHost); host != "" {
		cfg.Host = host
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.LogLevel = level
	}
}
