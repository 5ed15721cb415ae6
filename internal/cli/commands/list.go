package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/hrdash/internal/cli/output"
	"github.com/leapstack-labs/hrdash/internal/render"
	"github.com/leapstack-labs/hrdash/pkg/core"
)

const dateLayout = "2006-01-02"

// ListOptions holds options for the list command.
type ListOptions struct {
	Selection core.Selection
	Limit     int
}

// EmployeeList is the JSON shape of the list command.
type EmployeeList struct {
	Selection core.Selection  `json:"selection"`
	Matched   int             `json:"matched"`
	Total     int             `json:"total"`
	Employees []core.Employee `json:"employees"`
}

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	opts := &ListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the employees a selection matches",
		Long: `List the employees matched by the current filters, numbered from 1.

Output adapts to environment:
  - Terminal: boxed table
  - Piped/Scripted: Markdown table
  
Use --output to override: auto, text, markdown, json`,
		Example: `  # Everyone hired in 2012
  hrdash list --year 2012

  # First ten active employees as JSON
  hrdash list --status Active --limit 10 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, opts)
		},
	}

	selectionFlags(cmd, &opts.Selection)
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "Show at most this many employees (0 for all)")

	return cmd
}

func runList(cmd *cobra.Command, opts *ListOptions) error {
	if opts.Limit < 0 {
		return fmt.Errorf("invalid --limit %d: must not be negative", opts.Limit)
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

	tbl, err := runner.Table(sel)
	if err != nil {
		return err
	}
	rows := tbl.Rows()
	if opts.Limit > 0 && len(rows) > opts.Limit {
		rows = rows[:opts.Limit]
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(EmployeeList{
			Selection: sel,
			Matched:   tbl.Len(),
			Total:     runner.Rows(),
			Employees: rows,
		})
	case output.ModeMarkdown:
		r.Header(1, fmt.Sprintf("Employees (%s of %s)", render.Count(tbl.Len()), render.Count(runner.Rows())))
		r.Println(render.SelectionLine(sel))
		r.Println("")
		if len(rows) == 0 {
			r.Println("_No employees match the current filters._")
			return nil
		}
		r.Println(employeeTable(rows).RenderMarkdown())
	default:
		r.Header(1, fmt.Sprintf("Employees (%s of %s)", render.Count(tbl.Len()), render.Count(runner.Rows())))
		r.Muted(render.SelectionLine(sel))
		if len(rows) == 0 {
			r.Println("(0 rows)")
			return nil
		}
		t := employeeTable(rows)
		t.SetStyle(table.StyleLight)
		r.Println(t.Render())
	}
	if len(rows) < tbl.Len() {
		r.Muted(fmt.Sprintf("%d more not shown", tbl.Len()-len(rows)))
	}
	return nil
}

func employeeTable(rows []core.Employee) table.Writer {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Name", "Sex", "State", "Hired", "Status", "Source", "Salary"})
	for i, e := range rows {
		salary := "N/A"
		if e.HasSalary {
			salary = "$" + render.Count(int(e.Salary))
		}
		t.AppendRow(table.Row{
			i + 1,
			e.Name,
			e.Sex,
			e.State,
			e.HireDate.Format(dateLayout),
			e.EmploymentStatus,
			e.RecruitmentSource,
			salary,
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 8, Align: text.AlignRight},
	})
	return t
}
