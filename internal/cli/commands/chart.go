package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/hrdash/internal/cli/output"
	"github.com/leapstack-labs/hrdash/internal/pipeline"
	"github.com/leapstack-labs/hrdash/internal/render"
	"github.com/leapstack-labs/hrdash/pkg/core"
)

// ChartOptions holds options for the chart command.
type ChartOptions struct {
	Selection core.Selection
	All       bool
	OutDir    string
	Width     int
	Height    int
}

// NewChartCommand creates the chart command.
func NewChartCommand() *cobra.Command {
	opts := &ChartOptions{}

	cmd := &cobra.Command{
		Use:   "chart [name]",
		Short: "Export dashboard charts as SVG",
		Long: `Render one chart, or every chart with --all, as SVG files named <chart>.svg.

With a single chart and --out -, the SVG is written to standard output.
Run "hrdash chart --list" for the chart names.`,
		Example: `  # One chart into the current directory
  hrdash chart sex_distribution

  # Every chart for 2011 hires into ./charts
  hrdash chart --all --year 2011 --out charts

  # Pipe a chart somewhere else
  hrdash chart hires_per_year --out - > hires.svg`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return pipeline.ChartNames(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if list, _ := cmd.Flags().GetBool("list"); list {
				return listCharts(NewCommandContext(cmd).Renderer)
			}
			return runChart(cmd, args, opts)
		},
	}

	selectionFlags(cmd, &opts.Selection)
	cmd.Flags().BoolVar(&opts.All, "all", false, "Export every chart")
	cmd.Flags().Bool("list", false, "List chart names")
	cmd.Flags().StringVar(&opts.OutDir, "out", ".", "Output directory, or - for standard output")
	cmd.Flags().IntVar(&opts.Width, "width", 0, "Chart width in pixels")
	cmd.Flags().IntVar(&opts.Height, "height", 0, "Chart height in pixels")

	return cmd
}

func listCharts(r *output.Renderer) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(pipeline.ChartNames())
	}
	for _, agg := range pipeline.Catalogue {
		r.Println(output.FormatKeyValue(agg.Name(), agg.Title()))
	}
	return nil
}

func runChart(cmd *cobra.Command, args []string, opts *ChartOptions) error {
	var names []string
	switch {
	case opts.All && len(args) > 0:
		return errors.New("give a chart name or --all, not both")
	case opts.All:
		names = pipeline.ChartNames()
	case len(args) == 1:
		if _, ok := pipeline.Lookup(args[0]); !ok {
			return &pipeline.UnknownChartError{Name: args[0], Available: pipeline.ChartNames()}
		}
		names = args
	default:
		return errors.New("chart name required\nHint: use --all to export every chart or --list to see the names")
	}
	if opts.OutDir == "-" && len(names) > 1 {
		return errors.New("--out - writes a single chart; give a directory with --all")
	}

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

	var chartOpts []render.ChartOption
	if opts.Width > 0 && opts.Height > 0 {
		chartOpts = append(chartOpts, render.WithSize(opts.Width, opts.Height))
	}

	if opts.OutDir == "-" {
		tbl, err := runner.Chart(names[0], sel)
		if err != nil {
			return err
		}
		return render.SVG(r.Writer(), tbl, chartOpts...)
	}

	if err := os.MkdirAll(opts.OutDir, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", opts.OutDir, err)
	}

	written := make([]string, 0, len(names))
	for _, name := range names {
		tbl, err := runner.Chart(name, sel)
		if err != nil {
			return err
		}
		path := filepath.Join(opts.OutDir, name+".svg")
		if err := writeSVG(path, tbl, chartOpts); err != nil {
			return err
		}
		cc.Logger.Debug("chart written", "chart", name, "path", path, "groups", len(tbl.Rows))
		written = append(written, path)
		if r.EffectiveMode() != output.ModeJSON {
			r.StatusLine(name, "success", path)
		}
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(map[string]any{"selection": sel, "files": written})
	}
	return nil
}

func writeSVG(path string, tbl core.AggregateTable, opts []render.ChartOption) (err error) {
	f, err := os.Create(path) //nolint:gosec // user-chosen output path
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return render.SVG(f, tbl, opts...)
}
