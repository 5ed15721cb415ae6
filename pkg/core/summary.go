package core

import "strconv"

// Summary holds the scalar rollups over a filtered table.
//
// AverageSalary and AverageAge are nil when undefined (no rows, or no rows
// with a salary); the display strings then read "N/A".
type Summary struct {
	Employees     int      `json:"employees"`
	Races         int      `json:"races"`
	Females       int      `json:"females"`
	Absences      int      `json:"absences"`
	TotalSalary   float64  `json:"total_salary"`
	AverageSalary *float64 `json:"average_salary"`
	AverageAge    *float64 `json:"average_age"`

	TotalSalaryDisplay   string `json:"total_salary_display"`
	AverageSalaryDisplay string `json:"average_salary_display"`
	AverageAgeDisplay    string `json:"average_age_display"`
}

// Metric is a labelled display value for a metric card.
type Metric struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// Metrics returns the dashboard cards in display order.
func (s Summary) Metrics() []Metric {
	return []Metric{
		{Key: "employees", Label: "Total Employees", Value: strconv.Itoa(s.Employees)},
		{Key: "races", Label: "Races", Value: strconv.Itoa(s.Races)},
		{Key: "absences", Label: "Total Absences", Value: strconv.Itoa(s.Absences)},
		{Key: "total_salary", Label: "Total Salary", Value: s.TotalSalaryDisplay},
		{Key: "average_salary", Label: "Average Salary", Value: s.AverageSalaryDisplay},
		{Key: "average_age", Label: "Average Age", Value: s.AverageAgeDisplay},
		{Key: "females", Label: "Female Employees", Value: strconv.Itoa(s.Females)},
	}
}
