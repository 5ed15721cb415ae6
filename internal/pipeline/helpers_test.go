package pipeline

import (
	"time"

	"github.com/leapstack-labs/hrdash/pkg/core"
)

var testNow = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type employeeOpt func(*core.Employee)

func employee(name, sex string, salary float64, hireYear int, opts ...employeeOpt) core.Employee {
	e := core.Employee{
		Name:              name,
		Sex:               sex,
		Race:              "White",
		Citizenship:       "US Citizen",
		State:             "MA",
		Salary:            salary,
		HasSalary:         true,
		BirthDate:         date(1980, time.June, 15),
		HireDate:          date(hireYear, time.January, 10),
		EmploymentStatus:  "Active",
		RecruitmentSource: "Indeed",
		Satisfaction:      3,
		Absences:          1,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

func withRace(r string) employeeOpt   { return func(e *core.Employee) { e.Race = r } }
func withStatus(s string) employeeOpt { return func(e *core.Employee) { e.EmploymentStatus = s } }
func withSource(s string) employeeOpt { return func(e *core.Employee) { e.RecruitmentSource = s } }
func withAbsences(n int) employeeOpt  { return func(e *core.Employee) { e.Absences = n } }
func withCitizen(c string) employeeOpt {
	return func(e *core.Employee) { e.Citizenship = c }
}
func withSatisfaction(n int) employeeOpt {
	return func(e *core.Employee) { e.Satisfaction = n }
}
func withoutSalary() employeeOpt {
	return func(e *core.Employee) { e.Salary, e.HasSalary = 0, false }
}
func withBirth(y int) employeeOpt {
	return func(e *core.Employee) { e.BirthDate = date(y, time.February, 2) }
}

// twoRows is the minimal Female/Male table.
func twoRows() *core.Table {
	return core.NewTable([]core.Employee{
		employee("Doe, Jane", "Female", 45000, 2010, withAbsences(4)),
		employee("Roe, Rick", "Male", 75000, 2012, withAbsences(7)),
	})
}

// mixed is a larger table exercising every filter dimension.
func mixed() *core.Table {
	return core.NewTable([]core.Employee{
		employee("A", "Female", 31000, 2010, withRace("Asian"), withSource("LinkedIn")),
		employee("B", "Male", 48000, 2010, withRace("White"), withStatus("Voluntarily Terminated")),
		employee("C", "Female", 52000, 2011, withRace("Asian"), withSource("LinkedIn")),
		employee("D", "Male", 64000, 2011, withRace("Black or African American"), withCitizen("Eligible NonCitizen")),
		employee("E", "Female", 81000, 2012, withRace("White"), withStatus("Terminated for Cause")),
		employee("F", "Male", 25000, 2012, withRace("Asian"), withSource("Google Search")),
		employee("G", "Female", 0, 2012, withoutSalary(), withRace("White")),
	})
}

func derived(t *core.Table) *core.Table {
	return Derive(t, testNow)
}
