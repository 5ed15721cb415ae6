package pipeline

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/leapstack-labs/hrdash/pkg/core"
)

// Dashboard is everything one render of the dashboard shows.
type Dashboard struct {
	Selection   core.Selection        `json:"selection"`
	Options     core.FilterOptions    `json:"options"`
	Summary     core.Summary          `json:"summary"`
	Charts      []core.AggregateTable `json:"charts"`
	Matched     int                   `json:"matched_rows"`
	Total       int                   `json:"total_rows"`
	GeneratedAt time.Time             `json:"generated_at"`
}

// Chart returns the named chart of the dashboard.
func (d *Dashboard) Chart(name string) (core.AggregateTable, bool) {
	for _, c := range d.Charts {
		if c.Name == name {
			return c, true
		}
	}
	return core.AggregateTable{}, false
}

// UnknownChartError is returned when a chart name is not in the catalogue.
type UnknownChartError struct {
	Name      string
	Available []string
}

func (e *UnknownChartError) Error() string {
	return fmt.Sprintf("unknown chart %q (available: %v)", e.Name, e.Available)
}

// Runner renders dashboards for one loaded dataset. The raw table is kept
// as loaded; every build derives it against the current clock, filters and
// aggregates from scratch. Safe for concurrent use.
type Runner struct {
	raw      *core.Table
	options  core.FilterOptions
	loadedAt time.Time
	now      func() time.Time
	logger   *slog.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithClock overrides the clock used for age derivation.
func WithClock(now func() time.Time) RunnerOption {
	return func(r *Runner) { r.now = now }
}

// WithLogger sets the runner's logger. A nil logger discards.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) { r.logger = logger }
}

// NewRunner prepares a runner over a raw table. Filter options are computed
// once here from the unfiltered data.
func NewRunner(raw *core.Table, opts ...RunnerOption) (*Runner, error) {
	r := &Runner{raw: raw, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}

	r.loadedAt = r.now()
	options, err := Options(Derive(raw, r.loadedAt))
	if err != nil {
		return nil, fmt.Errorf("compute filter options: %w", err)
	}
	r.options = options
	return r, nil
}

// Options returns the filter choices of the loaded dataset.
func (r *Runner) Options() core.FilterOptions { return r.options }

// Rows returns the number of loaded rows.
func (r *Runner) Rows() int { return r.raw.Len() }

// LoadedAt returns when the runner was built.
func (r *Runner) LoadedAt() time.Time { return r.loadedAt }

// Table returns the derived and filtered rows for sel.
func (r *Runner) Table(sel core.Selection) (*core.Table, error) {
	return Filter(Derive(r.raw, r.now()), sel)
}

// Build renders the full dashboard for sel.
func (r *Runner) Build(sel core.Selection) (*Dashboard, error) {
	start := time.Now()
	sel = sel.Normalize()

	filtered, err := r.Table(sel)
	if err != nil {
		return nil, err
	}
	summary, err := Summarize(filtered)
	if err != nil {
		return nil, err
	}

	charts := make([]core.AggregateTable, 0, len(Catalogue))
	for _, agg := range Catalogue {
		tbl, err := agg.Apply(filtered)
		if err != nil {
			return nil, fmt.Errorf("chart %s: %w", agg.Name(), err)
		}
		charts = append(charts, tbl)
	}

	r.logger.Debug("dashboard built",
		slog.String("year", sel.YearOfHire),
		slog.String("status", sel.EmploymentStatus),
		slog.String("source", sel.RecruitmentSource),
		slog.Int("matched", filtered.Len()),
		slog.Duration("duration", time.Since(start)))

	return &Dashboard{
		Selection:   sel,
		Options:     r.options,
		Summary:     summary,
		Charts:      charts,
		Matched:     filtered.Len(),
		Total:       r.raw.Len(),
		GeneratedAt: r.now(),
	}, nil
}

// Chart renders a single catalogue chart for sel.
func (r *Runner) Chart(name string, sel core.Selection) (core.AggregateTable, error) {
	agg, ok := Lookup(name)
	if !ok {
		return core.AggregateTable{}, &UnknownChartError{Name: name, Available: ChartNames()}
	}
	filtered, err := r.Table(sel)
	if err != nil {
		return core.AggregateTable{}, err
	}
	return agg.Apply(filtered)
}
