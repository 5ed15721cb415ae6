package pipeline

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/leapstack-labs/hrdash/pkg/core"
)

// Aggregation groups a table by one or two dimensions and reduces each group
// with a measure. Build one with NewAggregation; the zero value is unusable.
type Aggregation struct {
	name     string
	title    string
	kind     core.ChartKind
	dims     []core.Dimension
	measure  core.Measure
	byValue  bool
	decimals int32
}

// AggregationOption configures an Aggregation.
type AggregationOption func(*Aggregation)

// WithTitle sets the chart title carried on the result.
func WithTitle(title string) AggregationOption {
	return func(a *Aggregation) { a.title = title }
}

// WithKind sets the chart kind carried on the result.
func WithKind(kind core.ChartKind) AggregationOption {
	return func(a *Aggregation) { a.kind = kind }
}

// SortByValueDesc orders groups by value, largest first. Ties keep natural
// key order.
func SortByValueDesc() AggregationOption {
	return func(a *Aggregation) { a.byValue = true }
}

// WithDecimals sets the rounding applied to salary displays. Defaults to 2.
func WithDecimals(places int32) AggregationOption {
	return func(a *Aggregation) { a.decimals = places }
}

// NewAggregation validates and builds an aggregation.
func NewAggregation(name string, measure core.Measure, dims []core.Dimension, opts ...AggregationOption) (Aggregation, error) {
	if len(dims) == 0 || len(dims) > 2 {
		return Aggregation{}, fmt.Errorf("aggregation %s: need 1 or 2 grouping dimensions, got %d", name, len(dims))
	}
	for _, d := range dims {
		if !d.Valid() {
			return Aggregation{}, &core.SchemaError{Name: d.String()}
		}
	}
	if !measure.Valid() {
		return Aggregation{}, fmt.Errorf("aggregation %s: unknown measure %d", name, int(measure))
	}

	a := Aggregation{
		name:     name,
		title:    name,
		kind:     core.ChartBar,
		dims:     append([]core.Dimension(nil), dims...),
		measure:  measure,
		decimals: 2,
	}
	for _, opt := range opts {
		opt(&a)
	}
	return a, nil
}

// MustAggregation is NewAggregation for static definitions; it panics on error.
func MustAggregation(name string, measure core.Measure, dims []core.Dimension, opts ...AggregationOption) Aggregation {
	a, err := NewAggregation(name, measure, dims, opts...)
	if err != nil {
		panic(err)
	}
	return a
}

// Name returns the aggregation name.
func (a Aggregation) Name() string { return a.name }

// Title returns the chart title.
func (a Aggregation) Title() string { return a.title }

// Kind returns the chart kind.
func (a Aggregation) Kind() core.ChartKind { return a.kind }

// Measure returns the reduction.
func (a Aggregation) Measure() core.Measure { return a.measure }

// Dimensions returns a copy of the grouping dimensions.
func (a Aggregation) Dimensions() []core.Dimension {
	return append([]core.Dimension(nil), a.dims...)
}

type group struct {
	keys     []string
	names    map[string]struct{}
	salary   float64
	salaried int
}

// Apply groups t and reduces every group. Only combinations present in t
// produce rows; an empty table yields an empty aggregate.
func (a Aggregation) Apply(t *core.Table) (core.AggregateTable, error) {
	out := core.AggregateTable{
		Name:       a.name,
		Title:      a.title,
		Kind:       a.kind,
		Dimensions: a.Dimensions(),
		Measure:    a.measure,
	}
	if len(a.dims) == 0 {
		return out, fmt.Errorf("aggregation %q is not initialized", a.name)
	}
	for _, d := range a.dims {
		if err := requireDimension(t, d); err != nil {
			return out, err
		}
	}

	groups := make(map[string]*group)
	t.Each(func(e core.Employee) {
		keys := make([]string, len(a.dims))
		for i, d := range a.dims {
			keys[i] = d.Value(e)
		}
		id := strings.Join(keys, "\x00")
		g, ok := groups[id]
		if !ok {
			g = &group{keys: keys, names: make(map[string]struct{})}
			groups[id] = g
		}
		if e.Name != "" {
			g.names[e.Name] = struct{}{}
		}
		if e.HasSalary {
			g.salary += e.Salary
			g.salaried++
		}
	})

	out.Rows = make([]core.AggregateRow, 0, len(groups))
	for _, g := range groups {
		out.Rows = append(out.Rows, a.reduce(g))
	}

	sort.Slice(out.Rows, func(i, j int) bool {
		return a.keyLess(out.Rows[i].Keys, out.Rows[j].Keys)
	})
	if a.byValue {
		sort.SliceStable(out.Rows, func(i, j int) bool {
			return out.Rows[i].Value > out.Rows[j].Value
		})
	}
	return out, nil
}

func (a Aggregation) reduce(g *group) core.AggregateRow {
	row := core.AggregateRow{Keys: g.keys}
	switch a.measure {
	case core.MeasureCount:
		row.Value = float64(len(g.names))
		row.Display = strconv.Itoa(len(g.names))
	case core.MeasureSalarySum:
		row.Value = g.salary
		row.Display = Millions(g.salary)
	case core.MeasureSalaryMean:
		if g.salaried == 0 {
			row.Missing = true
			row.Display = NotAvailable
			break
		}
		row.Value = g.salary / float64(g.salaried)
		row.Display = Thousands(row.Value, a.decimals)
	}
	return row
}

// keyLess orders composite keys by the first dimension, then the second.
func (a Aggregation) keyLess(x, y []string) bool {
	for i, d := range a.dims {
		if x[i] == y[i] {
			continue
		}
		return d.Less(x[i], y[i])
	}
	return false
}
