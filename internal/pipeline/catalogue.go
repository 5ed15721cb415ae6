package pipeline

import "github.com/leapstack-labs/hrdash/pkg/core"

func dims(d ...core.Dimension) []core.Dimension { return d }

// Catalogue is the fixed set of dashboard charts in display order.
var Catalogue = []Aggregation{
	MustAggregation("sex_distribution", core.MeasureCount, dims(core.DimSex),
		WithTitle("Number of Employees per Sex"), WithKind(core.ChartPie)),
	MustAggregation("race_distribution", core.MeasureCount, dims(core.DimRace),
		WithTitle("Number of Employees per Race"), WithKind(core.ChartBar), SortByValueDesc()),
	MustAggregation("citizenship", core.MeasureCount, dims(core.DimCitizenship),
		WithTitle("Percentage of Employees per Citizenship"), WithKind(core.ChartPie)),
	MustAggregation("salary_by_sex", core.MeasureSalarySum, dims(core.DimSex),
		WithTitle("Sum of Salaries per Sex"), WithKind(core.ChartPie)),
	MustAggregation("employees_by_state", core.MeasureCount, dims(core.DimState),
		WithTitle("Number of Employees per U.S. State"), WithKind(core.ChartChoropleth)),
	MustAggregation("hires_per_year", core.MeasureCount, dims(core.DimYearOfHire, core.DimSex),
		WithTitle("Number of Employees Hired per Year"), WithKind(core.ChartLine)),
	MustAggregation("salary_by_satisfaction", core.MeasureSalaryMean, dims(core.DimSatisfaction, core.DimCitizenship),
		WithTitle("Average Salary by Employee Satisfaction"), WithKind(core.ChartLine), WithDecimals(1)),
	MustAggregation("salary_ranges", core.MeasureCount, dims(core.DimSalaryRange),
		WithTitle("Number of Employees by Range of Salaries"), WithKind(core.ChartFunnel)),
}

// Lookup finds a catalogue chart by name.
func Lookup(name string) (Aggregation, bool) {
	for _, a := range Catalogue {
		if a.name == name {
			return a, true
		}
	}
	return Aggregation{}, false
}

// ChartNames lists the catalogue names in display order.
func ChartNames() []string {
	names := make([]string, len(Catalogue))
	for i, a := range Catalogue {
		names[i] = a.name
	}
	return names
}
