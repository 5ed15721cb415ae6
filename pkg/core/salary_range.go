package core

import "encoding/json"

// SalaryRange is the derived salary bucket of an employee.
type SalaryRange int

// Salary buckets in ascending order. RangeUnknown covers salaries below the
// lowest bucket and missing salaries.
const (
	RangeUnknown SalaryRange = iota
	Range30To40
	Range40To50
	Range50To60
	Range60To70
	Range70Plus
)

var salaryRangeLabels = map[SalaryRange]string{
	RangeUnknown: "Unknown",
	Range30To40:  "30-40K",
	Range40To50:  "40-50K",
	Range50To60:  "50-60K",
	Range60To70:  "60-70K",
	Range70Plus:  "+70K",
}

// String returns the display label of the bucket, e.g. "40-50K".
func (r SalaryRange) String() string {
	if l, ok := salaryRangeLabels[r]; ok {
		return l
	}
	return salaryRangeLabels[RangeUnknown]
}

// MarshalJSON encodes the bucket as its label.
func (r SalaryRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// rank orders buckets ascending with Unknown last.
func (r SalaryRange) rank() int {
	if r == RangeUnknown {
		return int(Range70Plus) + 1
	}
	return int(r)
}

// ParseSalaryRange resolves a bucket label. Unrecognized labels are Unknown.
func ParseSalaryRange(label string) SalaryRange {
	for r, l := range salaryRangeLabels {
		if l == label {
			return r
		}
	}
	return RangeUnknown
}
