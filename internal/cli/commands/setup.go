package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/hrdash/internal/cli/config"
	"github.com/leapstack-labs/hrdash/internal/cli/output"
	"github.com/leapstack-labs/hrdash/internal/dataset"
	"github.com/leapstack-labs/hrdash/internal/pipeline"
	"github.com/leapstack-labs/hrdash/pkg/core"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with config, logger and renderer.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// LoadRunner reads the configured dataset and prepares a runner over it.
func (c *CommandContext) LoadRunner(ctx context.Context) (*pipeline.Runner, error) {
	raw, err := dataset.Load(ctx, c.Cfg.Dataset, c.Logger)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(raw, pipeline.WithLogger(c.Logger))
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	return &config.Config{
		Dataset: dataset.Config{
			Type:  getEnvOrDefault(config.EnvPrefix+"DATASET_TYPE", config.DefaultDatasetType),
			Path:  getEnvOrDefault(config.EnvPrefix+"DATASET_PATH", config.DefaultDatasetPath),
			DSN:   os.Getenv(config.EnvPrefix + "DATASET_DSN"),
			Table: os.Getenv(config.EnvPrefix + "DATASET_TABLE"),
		},
		UI: config.UIConfig{
			Port:          config.DefaultUIPort,
			Watch:         true,
			SessionSecret: getEnvOrDefault(config.EnvPrefix+"UI_SESSION_SECRET", config.DefaultSessionSecret),
		},
		Verbose:      os.Getenv(config.EnvPrefix+"VERBOSE") == "true",
		LogLevel:     getEnvOrDefault(config.EnvPrefix+"LOG_LEVEL", config.DefaultLogLevel),
		OutputFormat: os.Getenv(config.EnvPrefix + "OUTPUT"),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// selectionFlags registers --year, --status and --source on cmd.
func selectionFlags(cmd *cobra.Command, sel *core.Selection) {
	cmd.Flags().StringVar(&sel.YearOfHire, "year", "", "Year of hire to show (default: All)")
	cmd.Flags().StringVar(&sel.EmploymentStatus, "status", "", "Employment status to show (default: All)")
	cmd.Flags().StringVar(&sel.RecruitmentSource, "source", "", "Recruitment source to show (default: All)")
}

// resolveSelection starts from the configured filters and applies the
// flags that were set.
func resolveSelection(cmd *cobra.Command, cfg *config.Config, flags core.Selection) core.Selection {
	sel := core.Selection{
		YearOfHire:        cfg.Filters.Year,
		EmploymentStatus:  cfg.Filters.Status,
		RecruitmentSource: cfg.Filters.Source,
	}
	if cmd.Flags().Changed("year") {
		sel.YearOfHire = flags.YearOfHire
	}
	if cmd.Flags().Changed("status") {
		sel.EmploymentStatus = flags.EmploymentStatus
	}
	if cmd.Flags().Changed("source") {
		sel.RecruitmentSource = flags.RecruitmentSource
	}
	return sel.Normalize()
}

// unknownSelections lists the selected values the dataset does not offer.
// Such filters match no rows.
func unknownSelections(sel core.Selection, opts core.FilterOptions) []string {
	sel = sel.Normalize()
	var out []string
	check := func(d core.Dimension, value string, choices []string) {
		if !slices.Contains(choices, value) {
			out = append(out, fmt.Sprintf("%s %q does not occur in the dataset", d.Label(), value))
		}
	}
	check(core.DimYearOfHire, sel.YearOfHire, opts.Years)
	check(core.DimEmploymentStatus, sel.EmploymentStatus, opts.Statuses)
	check(core.DimRecruitmentSource, sel.RecruitmentSource, opts.Sources)
	return out
}
