package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/leapstack-labs/hrdash/pkg/core"
)

var printer = message.NewPrinter(language.English)

// Count formats an integer with thousands separators.
func Count(n int) string {
	return printer.Sprintf("%d", n)
}

func rowCells(tbl core.AggregateTable, r core.AggregateRow) table.Row {
	row := make(table.Row, 0, len(r.Keys)+1)
	for _, k := range r.Keys {
		row = append(row, keyLabel(k))
	}
	if tbl.Measure == core.MeasureCount && !r.Missing {
		return append(row, Count(int(r.Value)))
	}
	return append(row, r.Display)
}

func newTableWriter(tbl core.AggregateTable) table.Writer {
	t := table.NewWriter()
	header := make(table.Row, 0, len(tbl.Dimensions)+1)
	for _, h := range tbl.Header() {
		header = append(header, h)
	}
	t.AppendHeader(header)
	for _, r := range tbl.Rows {
		t.AppendRow(rowCells(tbl, r))
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: len(header), Align: text.AlignRight},
	})
	return t
}

// Table writes tbl as a boxed text table followed by a row count.
func Table(w io.Writer, tbl core.AggregateTable) {
	_, _ = fmt.Fprintln(w, tbl.Title)
	if tbl.Empty() {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return
	}
	t := newTableWriter(tbl)
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", len(tbl.Rows))
}

// Markdown writes tbl as a titled markdown table.
func Markdown(w io.Writer, tbl core.AggregateTable) {
	_, _ = fmt.Fprintf(w, "## %s\n\n", tbl.Title)
	if tbl.Empty() {
		_, _ = fmt.Fprintln(w, "_No data for the current filters._")
		return
	}
	_, _ = fmt.Fprintln(w, newTableWriter(tbl).RenderMarkdown())
}

// SummaryMarkdown writes the metric cards as a two-column markdown table.
func SummaryMarkdown(w io.Writer, s core.Summary) {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Metric", "Value"})
	for _, m := range s.Metrics() {
		t.AppendRow(table.Row{m.Label, m.Value})
	}
	_, _ = fmt.Fprintln(w, t.RenderMarkdown())
}

// CardStyles styles metric cards.
type CardStyles struct {
	Box   lipgloss.Style
	Label lipgloss.Style
	Value lipgloss.Style
}

// DefaultCardStyles returns rounded bordered cards for the default renderer.
func DefaultCardStyles() CardStyles {
	return CardStylesFor(lipgloss.DefaultRenderer())
}

// CardStylesFor builds card styles bound to r, so colors follow r's
// terminal profile.
func CardStylesFor(r *lipgloss.Renderer) CardStyles {
	return CardStyles{
		Box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1).
			MarginRight(1),
		Label: r.NewStyle().Foreground(lipgloss.Color("8")),
		Value: r.NewStyle().Bold(true),
	}
}

// Cards lays out the summary metrics as bordered boxes, perRow to a line.
func Cards(s core.Summary, styles CardStyles, perRow int) string {
	if perRow <= 0 {
		perRow = 4
	}
	metrics := s.Metrics()
	boxes := make([]string, len(metrics))
	for i, m := range metrics {
		value := m.Value
		if n, err := strconv.Atoi(value); err == nil {
			value = Count(n)
		}
		boxes[i] = styles.Box.Render(styles.Label.Render(m.Label) + "\n" + styles.Value.Render(value))
	}

	var rows []string
	for start := 0; start < len(boxes); start += perRow {
		end := min(start+perRow, len(boxes))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, boxes[start:end]...))
	}
	return strings.Join(rows, "\n")
}

// SelectionLine describes the active filters, e.g.
// "Year of Hire: 2011 · Employment Status: All · Recruitment Source: All".
func SelectionLine(sel core.Selection) string {
	sel = sel.Normalize()
	return strings.Join([]string{
		core.DimYearOfHire.Label() + ": " + sel.YearOfHire,
		core.DimEmploymentStatus.Label() + ": " + sel.EmploymentStatus,
		core.DimRecruitmentSource.Label() + ": " + sel.RecruitmentSource,
	}, " · ")
}
