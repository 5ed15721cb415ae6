package core

// Measure is the reduction applied to each group of an aggregate.
type Measure int

// Measures.
const (
	MeasureCount      Measure = iota + 1 // distinct employee names
	MeasureSalarySum                     // sum of salary, millions display
	MeasureSalaryMean                    // mean of salary, thousands display
)

var measureNames = map[Measure]string{
	MeasureCount:      "employee_count",
	MeasureSalarySum:  "salary_sum",
	MeasureSalaryMean: "salary_mean",
}

var measureLabels = map[Measure]string{
	MeasureCount:      "Employees",
	MeasureSalarySum:  "Total Salary",
	MeasureSalaryMean: "Average Salary",
}

// String returns the snake_case name of the measure.
func (m Measure) String() string {
	if n, ok := measureNames[m]; ok {
		return n
	}
	return "measure(?)"
}

// Label returns a human-readable axis label.
func (m Measure) Label() string {
	return measureLabels[m]
}

// Valid reports whether m is a known measure.
func (m Measure) Valid() bool {
	_, ok := measureNames[m]
	return ok
}

// MarshalText encodes the measure as its name.
func (m Measure) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// ChartKind tells the renderer how an aggregate is meant to be drawn.
type ChartKind string

// Chart kinds used by the dashboard.
const (
	ChartPie        ChartKind = "pie"
	ChartBar        ChartKind = "bar"
	ChartLine       ChartKind = "line"
	ChartFunnel     ChartKind = "funnel"
	ChartChoropleth ChartKind = "choropleth"
)

// AggregateRow is one group of an aggregate: its key per grouping dimension,
// the reduced value and the value formatted for display.
type AggregateRow struct {
	Keys    []string `json:"keys"`
	Value   float64  `json:"value"`
	Display string   `json:"display"`
	// Missing is set when the measure is undefined for the group, e.g. the
	// mean salary of a group with no salaries.
	Missing bool `json:"missing,omitempty"`
}

// AggregateTable is a grouped-and-reduced view of filtered employees, tagged
// with everything a renderer needs.
type AggregateTable struct {
	Name       string         `json:"name"`
	Title      string         `json:"title"`
	Kind       ChartKind      `json:"kind"`
	Dimensions []Dimension    `json:"dimensions"`
	Measure    Measure        `json:"measure"`
	Rows       []AggregateRow `json:"rows"`
}

// Empty reports whether the aggregate has no groups.
func (a AggregateTable) Empty() bool {
	return len(a.Rows) == 0
}

// Total sums the values of all groups.
func (a AggregateTable) Total() float64 {
	var total float64
	for _, r := range a.Rows {
		total += r.Value
	}
	return total
}

// Header returns the column titles: one per dimension, then the measure.
func (a AggregateTable) Header() []string {
	h := make([]string, 0, len(a.Dimensions)+1)
	for _, d := range a.Dimensions {
		h = append(h, d.Label())
	}
	return append(h, a.Measure.Label())
}
