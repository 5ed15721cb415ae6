package pipeline

import (
	"math"
	"strconv"

	"github.com/leapstack-labs/hrdash/pkg/core"
)

// femaleValue is the Sex value counted by the Female Employees card.
const femaleValue = "Female"

// Summarize computes the metric cards over a derived (and usually filtered)
// table. Means are nil when there is nothing to average.
func Summarize(t *core.Table) (core.Summary, error) {
	if !t.Derived() {
		return core.Summary{}, &core.SchemaError{Name: "age", Reason: "derived field not computed"}
	}

	var (
		names    = make(map[string]struct{})
		races    = make(map[string]struct{})
		females  = make(map[string]struct{})
		absences int
		salary   float64
		salaried int
		ageSum   float64
	)
	t.Each(func(e core.Employee) {
		if e.Name != "" {
			names[e.Name] = struct{}{}
			if e.Sex == femaleValue {
				females[e.Name] = struct{}{}
			}
		}
		if e.Race != "" {
			races[e.Race] = struct{}{}
		}
		absences += e.Absences
		if e.HasSalary {
			salary += e.Salary
			salaried++
		}
		ageSum += float64(e.Age)
	})

	s := core.Summary{
		Employees:            len(names),
		Races:                len(races),
		Females:              len(females),
		Absences:             absences,
		TotalSalary:          salary,
		TotalSalaryDisplay:   Millions(salary),
		AverageSalaryDisplay: NotAvailable,
		AverageAgeDisplay:    NotAvailable,
	}
	if salaried > 0 {
		avg := salary / float64(salaried)
		s.AverageSalary = &avg
		s.AverageSalaryDisplay = Thousands(avg, 2)
	}
	if n := t.Len(); n > 0 {
		age := ageSum / float64(n)
		s.AverageAge = &age
		s.AverageAgeDisplay = strconv.Itoa(int(math.RoundToEven(age)))
	}
	return s, nil
}
