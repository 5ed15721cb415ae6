package core

// All is the filter value meaning "no constraint". It is never compared
// against row values.
const All = "All"

// Selection is the set of equality constraints chosen by the user.
// Empty fields are treated as All.
type Selection struct {
	YearOfHire        string `json:"year" koanf:"year"`
	EmploymentStatus  string `json:"status" koanf:"status"`
	RecruitmentSource string `json:"source" koanf:"source"`
}

// Constraint is one active equality filter.
type Constraint struct {
	Dimension Dimension
	Value     string
}

// AllSelection returns a selection with no active constraints.
func AllSelection() Selection {
	return Selection{YearOfHire: All, EmploymentStatus: All, RecruitmentSource: All}
}

// Normalize replaces empty fields with All.
func (s Selection) Normalize() Selection {
	if s.YearOfHire == "" {
		s.YearOfHire = All
	}
	if s.EmploymentStatus == "" {
		s.EmploymentStatus = All
	}
	if s.RecruitmentSource == "" {
		s.RecruitmentSource = All
	}
	return s
}

// Constraints returns the active constraints.
func (s Selection) Constraints() []Constraint {
	s = s.Normalize()
	var out []Constraint
	if s.YearOfHire != All {
		out = append(out, Constraint{Dimension: DimYearOfHire, Value: s.YearOfHire})
	}
	if s.EmploymentStatus != All {
		out = append(out, Constraint{Dimension: DimEmploymentStatus, Value: s.EmploymentStatus})
	}
	if s.RecruitmentSource != All {
		out = append(out, Constraint{Dimension: DimRecruitmentSource, Value: s.RecruitmentSource})
	}
	return out
}

// IsAll reports whether the selection has no active constraints.
func (s Selection) IsAll() bool {
	return len(s.Constraints()) == 0
}

// FilterOptions lists the choices offered for each filter. Every list starts
// with All followed by the observed values in ascending order.
type FilterOptions struct {
	Years    []string `json:"years"`
	Statuses []string `json:"statuses"`
	Sources  []string `json:"sources"`
}
