package core

// Column identifies a required column of the employee dataset.
type Column int

// Dataset columns, in the order they are parsed.
const (
	ColEmployeeName Column = iota
	ColSex
	ColRaceDesc
	ColCitizenDesc
	ColState
	ColSalary
	ColDOB
	ColDateOfHire
	ColDateOfTermination
	ColLastPerformanceReview
	ColEmploymentStatus
	ColRecruitmentSource
	ColEmpSatisfaction
	ColAbsences

	numColumns
)

// Header names are case-sensitive.
var columnNames = [numColumns]string{
	ColEmployeeName:          "Employee_Name",
	ColSex:                   "Sex",
	ColRaceDesc:              "RaceDesc",
	ColCitizenDesc:           "CitizenDesc",
	ColState:                 "State",
	ColSalary:                "Salary",
	ColDOB:                   "DOB",
	ColDateOfHire:            "DateofHire",
	ColDateOfTermination:     "DateofTermination",
	ColLastPerformanceReview: "LastPerformanceReview_Date",
	ColEmploymentStatus:      "EmploymentStatus",
	ColRecruitmentSource:     "RecruitmentSource",
	ColEmpSatisfaction:       "EmpSatisfaction",
	ColAbsences:              "Absences",
}

// IgnoredColumns are identifier columns present in the HR dataset export.
// They are accepted by loaders and dropped immediately.
var IgnoredColumns = []string{
	"MarriedID",
	"MaritalStatusID",
	"GenderID",
	"EmpStatusID",
	"DeptID",
	"PerfScoreID",
	"FromDiversityJobFairID",
	"PositionID",
	"ManagerID",
	"Termd",
}

// String returns the header name of the column.
func (c Column) String() string {
	if c < 0 || c >= numColumns {
		return "Column(?)"
	}
	return columnNames[c]
}

// Columns returns all required columns in parse order.
func Columns() []Column {
	cols := make([]Column, numColumns)
	for i := range cols {
		cols[i] = Column(i)
	}
	return cols
}

// ParseColumn resolves a header name to a Column.
func ParseColumn(name string) (Column, bool) {
	for i, n := range columnNames {
		if n == name {
			return Column(i), true
		}
	}
	return 0, false
}

// IsIgnoredColumn reports whether name is one of the discarded identifier columns.
func IsIgnoredColumn(name string) bool {
	for _, n := range IgnoredColumns {
		if n == name {
			return true
		}
	}
	return false
}
