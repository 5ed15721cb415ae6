// Package config provides configuration management for the hrdash CLI.
package config

import (
	"github.com/leapstack-labs/hrdash/internal/dataset"
)

// UIConfig holds configuration for the UI server.
type UIConfig struct {
	Port          int    `koanf:"port"`
	AutoOpen      bool   `koanf:"auto_open"`
	Watch         bool   `koanf:"watch"`
	SessionSecret string `koanf:"session_secret"`
}

// FiltersConfig is the selection commands start from.
type FiltersConfig struct {
	Year   string `koanf:"year"`
	Status string `koanf:"status"`
	Source string `koanf:"source"`
}

// Config holds all CLI configuration options.
type Config struct {
	Dataset      dataset.Config `koanf:"dataset"`
	Filters      FiltersConfig  `koanf:"filters"`
	UI           UIConfig       `koanf:"ui"`
	Verbose      bool           `koanf:"verbose"`
	LogLevel     string         `koanf:"log_level"`
	OutputFormat string         `koanf:"output"`
	ProjectRoot  string         `koanf:"-"`
}

// Default configuration values.
const (
	DefaultDatasetType = "csv"
	DefaultDatasetPath = "HRDataset.csv"
	DefaultLogLevel    = "warn"
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultUIPort      = 8765
	DefaultConfigFile  = "hrdash.yaml"

	// DefaultSessionSecret signs cookies when none is configured. Set
	// ui.session_secret or HRDASH_UI_SESSION_SECRET outside local use.
	DefaultSessionSecret = "hrdash-dev-secret-change-in-production" //nolint:gosec
)

// Defaults returns the default configuration as a flat koanf map.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"dataset.type":      DefaultDatasetType,
		"dataset.path":      DefaultDatasetPath,
		"verbose":           false,
		"log_level":         DefaultLogLevel,
		"output":            DefaultOutput,
		"ui.port":           DefaultUIPort,
		"ui.auto_open":      true,
		"ui.watch":          true,
		"ui.session_secret": DefaultSessionSecret,
	}
}
