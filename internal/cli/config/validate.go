package config

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/hrdash/internal/cli/output"
	"github.com/leapstack-labs/hrdash/internal/dataset"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, ok := dataset.Get(c.Dataset.Type); !ok {
		return &dataset.UnknownSourceError{Type: c.Dataset.Type, Available: dataset.ListSources()}
	}
	if _, err := output.ParseMode(c.OutputFormat); err != nil {
		return err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid log_level %q (expected debug, info, warn or error)", c.LogLevel)
	}

	if c.UI.Port < 1 || c.UI.Port > 65535 {
		return fmt.Errorf("invalid ui.port %d\nHint: use a port between 1 and 65535", c.UI.Port)
	}
	return nil
}

// FileBacked reports whether the dataset lives in a local file that can be
// watched for changes.
func (c *Config) FileBacked() bool {
	switch c.Dataset.Type {
	case "csv", "sqlite":
		return c.Dataset.Path != ""
	case "duckdb":
		return c.Dataset.Path != "" && c.Dataset.Path != ":memory:"
	default:
		return false
	}
}
