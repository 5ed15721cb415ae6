package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/hrdash/internal/cli/output"
	"github.com/leapstack-labs/hrdash/pkg/core"
)

// NewOptionsCommand creates the options command.
func NewOptionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List the values each filter accepts",
		Long: `List the choices for Year of Hire, Employment Status and Recruitment Source.
Every list starts with All and is computed from the whole dataset.`,
		Example: `  hrdash options
  hrdash options -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContext(cmd)
			runner, err := cc.LoadRunner(cmd.Context())
			if err != nil {
				return err
			}
			return renderOptions(cc.Renderer, runner.Options())
		},
	}
}

func renderOptions(r *output.Renderer, opts core.FilterOptions) error {
	groups := []struct {
		dim    core.Dimension
		values []string
	}{
		{core.DimYearOfHire, opts.Years},
		{core.DimEmploymentStatus, opts.Statuses},
		{core.DimRecruitmentSource, opts.Sources},
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(opts)
	case output.ModeMarkdown:
		for _, g := range groups {
			r.Header(2, g.dim.Label())
			for _, v := range g.values {
				r.Println("- " + v)
			}
			r.Println("")
		}
	default:
		for _, g := range groups {
			r.Println(r.Styles().Bold.Render(g.dim.Label()+":") + " " + strings.Join(g.values, ", "))
		}
	}
	return nil
}
