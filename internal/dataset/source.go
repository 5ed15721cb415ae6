// Package dataset loads the employee table from a configured source.
//
// Sources register themselves by type name in init functions. Every source
// reads the same required columns and funnels each record through the shared
// row parser, so a CSV file and a database table yield identical tables.
package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/leapstack-labs/hrdash/pkg/core"
)

// Source loads the employee table.
type Source interface {
	// Load reads every row. A missing source, missing required columns or an
	// unparseable row is a *core.LoadError.
	Load(ctx context.Context) (*core.Table, error)

	// Describe names what is being read, e.g. a file path or table.
	Describe() string
}

// Config selects and configures a source.
type Config struct {
	Type   string         `koanf:"type"`
	Path   string         `koanf:"path"`
	DSN    string         `koanf:"dsn"`
	Table  string         `koanf:"table"`
	Params map[string]any `koanf:"params"`
}

// Factory builds a source from its config.
type Factory func(cfg Config, logger *slog.Logger) (Source, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register adds a source factory. Called from init functions.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// Get retrieves a source factory by name.
func Get(name string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[name]
	return f, ok
}

// ListSources returns all registered source names (sorted).
func ListSources() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds the source named by cfg.Type. An empty type means csv.
// A nil logger discards.
func New(cfg Config, logger *slog.Logger) (Source, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Type == "" {
		cfg.Type = "csv"
	}

	factory, ok := Get(cfg.Type)
	if !ok {
		return nil, &UnknownSourceError{Type: cfg.Type, Available: ListSources()}
	}
	return factory(cfg, logger.With(slog.String("source", cfg.Type)))
}

// Load builds the configured source and reads it.
func Load(ctx context.Context, cfg Config, logger *slog.Logger) (*core.Table, error) {
	src, err := New(cfg, logger)
	if err != nil {
		return nil, err
	}
	return src.Load(ctx)
}

// UnknownSourceError is returned when an unknown source type is requested.
type UnknownSourceError struct {
	Type      string
	Available []string
}

func (e *UnknownSourceError) Error() string {
	return fmt.Sprintf("unknown dataset type %q\nAvailable types: %v\nHint: Check dataset.type in hrdash.yaml", e.Type, e.Available)
}
