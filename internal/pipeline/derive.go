package pipeline

import (
	"math"
	"time"

	"github.com/leapstack-labs/hrdash/pkg/core"
)

type salaryBucket struct {
	rng   core.SalaryRange
	lower float64
	upper float64
}

// salaryBuckets are ascending, lower-inclusive and upper-exclusive. The first
// match wins; a salary matching none is Unknown.
var salaryBuckets = []salaryBucket{
	{rng: core.Range30To40, lower: 30_000, upper: 40_000},
	{rng: core.Range40To50, lower: 40_000, upper: 50_000},
	{rng: core.Range50To60, lower: 50_000, upper: 60_000},
	{rng: core.Range60To70, lower: 60_000, upper: 70_000},
	{rng: core.Range70Plus, lower: 70_000, upper: math.Inf(1)},
}

// BucketSalary assigns a salary to its range. It depends on the salary alone.
func BucketSalary(salary float64, known bool) core.SalaryRange {
	if !known || math.IsNaN(salary) {
		return core.RangeUnknown
	}
	for _, b := range salaryBuckets {
		if salary >= b.lower && salary < b.upper {
			return b.rng
		}
	}
	return core.RangeUnknown
}

// Derive returns a new table with YearOfHire, Age and SalaryRange populated.
// Age is now's calendar year minus the birth year, so it moves with the
// clock; callers pass wall-clock time for every render.
func Derive(t *core.Table, now time.Time) *core.Table {
	year := now.Year()
	rows := make([]core.Employee, 0, t.Len())
	t.Each(func(e core.Employee) {
		e.YearOfHire = e.HireDate.Year()
		e.Age = year - e.BirthDate.Year()
		e.SalaryRange = BucketSalary(e.Salary, e.HasSalary)
		rows = append(rows, e)
	})
	return core.NewDerivedTable(rows)
}
