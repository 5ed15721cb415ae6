package core

import (
	"strconv"
)

// Dimension is a categorical attribute employees can be grouped or filtered by.
type Dimension int

// Grouping dimensions. The last three are derived fields.
const (
	DimSex Dimension = iota + 1
	DimRace
	DimCitizenship
	DimState
	DimEmploymentStatus
	DimRecruitmentSource
	DimSatisfaction
	DimYearOfHire
	DimSalaryRange
)

type dimensionInfo struct {
	key     string
	label   string
	column  string
	numeric bool
	derived bool
}

var dimensions = map[Dimension]dimensionInfo{
	DimSex:               {key: "sex", label: "Sex", column: ColSex.String()},
	DimRace:              {key: "race", label: "Race", column: ColRaceDesc.String()},
	DimCitizenship:       {key: "citizenship", label: "Citizenship", column: ColCitizenDesc.String()},
	DimState:             {key: "state", label: "State", column: ColState.String()},
	DimEmploymentStatus:  {key: "employment_status", label: "Employment Status", column: ColEmploymentStatus.String()},
	DimRecruitmentSource: {key: "recruitment_source", label: "Recruitment Source", column: ColRecruitmentSource.String()},
	DimSatisfaction:      {key: "satisfaction", label: "Employee Satisfaction", column: ColEmpSatisfaction.String(), numeric: true},
	DimYearOfHire:        {key: "year_of_hire", label: "Year of Hire", column: "year_of_hire", numeric: true, derived: true},
	DimSalaryRange:       {key: "salary_range", label: "Salary Range", column: "salary_range", derived: true},
}

// AllDimensions lists every dimension in declaration order.
func AllDimensions() []Dimension {
	return []Dimension{
		DimSex, DimRace, DimCitizenship, DimState, DimEmploymentStatus,
		DimRecruitmentSource, DimSatisfaction, DimYearOfHire, DimSalaryRange,
	}
}

// Valid reports whether d is a known dimension.
func (d Dimension) Valid() bool {
	_, ok := dimensions[d]
	return ok
}

// String returns the snake_case key of the dimension.
func (d Dimension) String() string {
	if info, ok := dimensions[d]; ok {
		return info.key
	}
	return "dimension(" + strconv.Itoa(int(d)) + ")"
}

// Label returns a human-readable axis label.
func (d Dimension) Label() string {
	return dimensions[d].label
}

// Column returns the dataset column (or derived field) the dimension reads.
func (d Dimension) Column() string {
	return dimensions[d].column
}

// Derived reports whether the dimension is only available after derivation.
func (d Dimension) Derived() bool {
	return dimensions[d].derived
}

// Numeric reports whether values of the dimension order as integers.
func (d Dimension) Numeric() bool {
	return dimensions[d].numeric
}

// MarshalText encodes the dimension as its key.
func (d Dimension) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, &SchemaError{Name: d.String()}
	}
	return []byte(d.String()), nil
}

// UnmarshalText decodes a dimension key.
func (d *Dimension) UnmarshalText(b []byte) error {
	v, err := ParseDimension(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// ParseDimension resolves a dimension by key ("race") or by dataset column
// name ("RaceDesc"). Unknown names are a SchemaError.
func ParseDimension(name string) (Dimension, error) {
	for d, info := range dimensions {
		if info.key == name || info.column == name {
			return d, nil
		}
	}
	return 0, &SchemaError{Name: name}
}

// Value returns the group key of e along d.
func (d Dimension) Value(e Employee) string {
	switch d {
	case DimSex:
		return e.Sex
	case DimRace:
		return e.Race
	case DimCitizenship:
		return e.Citizenship
	case DimState:
		return e.State
	case DimEmploymentStatus:
		return e.EmploymentStatus
	case DimRecruitmentSource:
		return e.RecruitmentSource
	case DimSatisfaction:
		return strconv.Itoa(e.Satisfaction)
	case DimYearOfHire:
		return strconv.Itoa(e.YearOfHire)
	case DimSalaryRange:
		return e.SalaryRange.String()
	}
	return ""
}

// Less orders two values of d in natural key order: integers numerically,
// salary buckets ascending with Unknown last, everything else by byte order.
func (d Dimension) Less(a, b string) bool {
	switch {
	case d == DimSalaryRange:
		return ParseSalaryRange(a).rank() < ParseSalaryRange(b).rank()
	case d.Numeric():
		x, errA := strconv.Atoi(a)
		y, errB := strconv.Atoi(b)
		if errA == nil && errB == nil {
			return x < y
		}
	}
	return a < b
}
