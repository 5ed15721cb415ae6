package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/hrdash/pkg/core"
)

func TestSummarize_TwoRowScenario(t *testing.T) {
	s, err := Summarize(derived(twoRows()))
	require.NoError(t, err)

	assert.Equal(t, 2, s.Employees)
	assert.Equal(t, 1, s.Races)
	assert.Equal(t, 1, s.Females)
	assert.Equal(t, 11, s.Absences)
	assert.Equal(t, 120000.0, s.TotalSalary)
	assert.Equal(t, "0.12M", s.TotalSalaryDisplay)
	require.NotNil(t, s.AverageSalary)
	assert.Equal(t, 60000.0, *s.AverageSalary)
	assert.Equal(t, "60.0K", s.AverageSalaryDisplay)
	require.NotNil(t, s.AverageAge)
	assert.Equal(t, 46.0, *s.AverageAge)
	assert.Equal(t, "46", s.AverageAgeDisplay)
}

func TestSummarize_EmptyResult(t *testing.T) {
	filtered, err := Filter(derived(twoRows()), core.Selection{RecruitmentSource: "nowhere"})
	require.NoError(t, err)
	require.Zero(t, filtered.Len())

	s, err := Summarize(filtered)
	require.NoError(t, err)

	assert.Zero(t, s.Employees)
	assert.Zero(t, s.Races)
	assert.Zero(t, s.Females)
	assert.Zero(t, s.Absences)
	assert.Zero(t, s.TotalSalary)
	assert.Equal(t, "0.0M", s.TotalSalaryDisplay)
	assert.Nil(t, s.AverageSalary)
	assert.Nil(t, s.AverageAge)
	assert.Equal(t, NotAvailable, s.AverageSalaryDisplay)
	assert.Equal(t, NotAvailable, s.AverageAgeDisplay)
}

func TestSummarize_SkipsMissingSalaries(t *testing.T) {
	tbl := derived(core.NewTable([]core.Employee{
		employee("A", "Female", 50000, 2010),
		employee("B", "Male", 0, 2010, withoutSalary()),
	}))

	s, err := Summarize(tbl)
	require.NoError(t, err)
	assert.Equal(t, "50.0K", s.AverageSalaryDisplay)
	assert.Equal(t, "0.05M", s.TotalSalaryDisplay)
}

func TestSummarize_RequiresDerivedTable(t *testing.T) {
	_, err := Summarize(twoRows())
	assert.Error(t, err)
}

func TestSummary_Metrics(t *testing.T) {
	s, err := Summarize(derived(twoRows()))
	require.NoError(t, err)

	metrics := s.Metrics()
	require.Len(t, metrics, 7)
	assert.Equal(t, "Total Employees", metrics[0].Label)
	assert.Equal(t, "2", metrics[0].Value)
	assert.Equal(t, "0.12M", metrics[3].Value)
	assert.Equal(t, "Female Employees", metrics[6].Label)
	assert.Equal(t, "1", metrics[6].Value)
}
