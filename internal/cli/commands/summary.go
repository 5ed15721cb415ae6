package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/hrdash/internal/cli/output"
	"github.com/leapstack-labs/hrdash/internal/pipeline"
	"github.com/leapstack-labs/hrdash/internal/render"
	"github.com/leapstack-labs/hrdash/pkg/core"
)

// SummaryOptions holds options for the summary command.
type SummaryOptions struct {
	Selection   core.Selection
	MetricsOnly bool
}

// NewSummaryCommand creates the summary command.
func NewSummaryCommand() *cobra.Command {
	opts := &SummaryOptions{}

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show dashboard metrics and charts for a selection",
		Long: `Show the dashboard for the selected employees: the metric cards followed by
every chart as a table.

Output format depends on context:
  - Terminal (TTY): bordered cards and tables
  - Piped/redirected: Markdown
  - --output json: the full dashboard as JSON`,
		Example: `  # Everyone
  hrdash summary

  # Employees hired in 2011 who left voluntarily
  hrdash summary --year 2011 --status "Voluntarily Terminated"

  # Machine-readable
  hrdash summary --source LinkedIn -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSummary(cmd, opts)
		},
	}

	selectionFlags(cmd, &opts.Selection)
	cmd.Flags().BoolVar(&opts.MetricsOnly, "metrics-only", false, "Only show the metric cards")

	return cmd
}

func runSummary(cmd *cobra.Command, opts *SummaryOptions) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer

	runner, err := cc.LoadRunner(cmd.Context())
	if err != nil {
		return err
	}

	sel := resolveSelection(cmd, cc.Cfg, opts.Selection)
	for _, warning := range unknownSelections(sel, runner.Options()) {
		r.Warning(warning)
	}

	dash, err := runner.Build(sel)
	if err != nil {
		return err
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		if opts.MetricsOnly {
			return r.JSON(dash.Summary)
		}
		return r.JSON(dash)
	case output.ModeMarkdown:
		return summaryMarkdown(r, dash, opts.MetricsOnly)
	default:
		return summaryText(r, dash, opts.MetricsOnly)
	}
}

func showing(dash *pipeline.Dashboard) string {
	return fmt.Sprintf("Showing %s of %s employees", render.Count(dash.Matched), render.Count(dash.Total))
}

func summaryText(r *output.Renderer, dash *pipeline.Dashboard, metricsOnly bool) error {
	r.Header(1, "HR Dashboard")
	r.Muted(render.SelectionLine(dash.Selection))
	r.Muted(showing(dash))
	r.Println("")
	r.Println(render.Cards(dash.Summary, render.CardStylesFor(r.Lipgloss()), 4))

	if metricsOnly {
		return nil
	}
	for _, chart := range dash.Charts {
		r.Println("")
		render.Table(r.Writer(), chart)
	}
	return nil
}

func summaryMarkdown(r *output.Renderer, dash *pipeline.Dashboard, metricsOnly bool) error {
	r.Header(1, "HR Dashboard")
	r.Println(render.SelectionLine(dash.Selection))
	r.Println("")
	r.Println(showing(dash))
	r.Println("")
	r.Header(2, "Summary Metrics")
	render.SummaryMarkdown(r.Writer(), dash.Summary)

	if metricsOnly {
		return nil
	}
	for _, chart := range dash.Charts {
		r.Println("")
		render.Markdown(r.Writer(), chart)
	}
	return nil
}
