package core

import "time"

// Employee is one row of the dataset.
//
// YearOfHire, Age and SalaryRange are derived fields. They are zero until the
// table has been through derivation (see Table.Derived).
type Employee struct {
	Name              string    `json:"name"`
	Sex               string    `json:"sex"`
	Race              string    `json:"race"`
	Citizenship       string    `json:"citizenship"`
	State             string    `json:"state"`
	Salary            float64   `json:"salary"`
	HasSalary         bool      `json:"has_salary"`
	BirthDate         time.Time `json:"birth_date"`
	HireDate          time.Time `json:"hire_date"`
	TerminationDate   time.Time `json:"termination_date,omitempty"`
	LastReviewDate    time.Time `json:"last_review_date,omitempty"`
	EmploymentStatus  string    `json:"employment_status"`
	RecruitmentSource string    `json:"recruitment_source"`
	Satisfaction      int       `json:"satisfaction"`
	Absences          int       `json:"absences"`

	YearOfHire  int         `json:"year_of_hire,omitempty"`
	Age         int         `json:"age,omitempty"`
	SalaryRange SalaryRange `json:"salary_range"`
}

// Terminated reports whether the employee has a termination date.
func (e Employee) Terminated() bool {
	return !e.TerminationDate.IsZero()
}
