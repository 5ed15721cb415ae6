package dataset

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/leapstack-labs/hrdash/pkg/core"
)

// layout maps each required column to its position in a source header.
type layout struct {
	source string
	pos    []int // indexed by core.Column
}

var requiredColumns = core.Columns()

// resolveHeader locates every required column in header. Extra columns,
// including the known identifier columns, are ignored. Header names are
// matched exactly after trimming surrounding whitespace.
func resolveHeader(source string, header []string) (*layout, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	l := &layout{source: source, pos: make([]int, len(requiredColumns))}
	var missing []string
	for _, col := range requiredColumns {
		p, ok := index[col.String()]
		if !ok {
			missing = append(missing, col.String())
			continue
		}
		l.pos[col] = p
	}
	if len(missing) > 0 {
		return nil, &core.LoadError{Source: source, Missing: missing}
	}
	return l, nil
}

// rowParser turns raw string records into employees. Two-digit years
// resolve against pivot.
type rowParser struct {
	layout *layout
	pivot  time.Time
}

func newRowParser(l *layout, now time.Time) *rowParser {
	return &rowParser{layout: l, pivot: now}
}

// parse converts one record. row is the 1-based data row used in errors.
func (p *rowParser) parse(row int, record []string) (core.Employee, error) {
	field := func(c core.Column) string {
		i := p.layout.pos[c]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	fail := func(c core.Column, err error) error {
		return &core.LoadError{
			Source: p.layout.source,
			Row:    row,
			Err:    fmt.Errorf("column %s: %w", c, err),
		}
	}

	e := core.Employee{
		Name:              field(core.ColEmployeeName),
		Sex:               field(core.ColSex),
		Race:              field(core.ColRaceDesc),
		Citizenship:       field(core.ColCitizenDesc),
		State:             field(core.ColState),
		EmploymentStatus:  field(core.ColEmploymentStatus),
		RecruitmentSource: field(core.ColRecruitmentSource),
	}

	if s := field(core.ColSalary); s != "" {
		v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
		if err != nil {
			return e, fail(core.ColSalary, err)
		}
		e.Salary, e.HasSalary = v, true
	}

	var err error
	if e.BirthDate, err = p.requiredDate(field(core.ColDOB)); err != nil {
		return e, fail(core.ColDOB, err)
	}
	if e.HireDate, err = p.requiredDate(field(core.ColDateOfHire)); err != nil {
		return e, fail(core.ColDateOfHire, err)
	}
	if e.TerminationDate, err = parseDate(field(core.ColDateOfTermination), p.pivot); err != nil {
		return e, fail(core.ColDateOfTermination, err)
	}
	if e.LastReviewDate, err = parseDate(field(core.ColLastPerformanceReview), p.pivot); err != nil {
		return e, fail(core.ColLastPerformanceReview, err)
	}
	if e.Satisfaction, err = parseInt(field(core.ColEmpSatisfaction)); err != nil {
		return e, fail(core.ColEmpSatisfaction, err)
	}
	if e.Absences, err = parseInt(field(core.ColAbsences)); err != nil {
		return e, fail(core.ColAbsences, err)
	}
	return e, nil
}

func (p *rowParser) requiredDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errEmptyDate
	}
	return parseDate(s, p.pivot)
}

// parseInt accepts integers and integral floats ("3", "3.0"). Empty is 0.
func parseInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("invalid integer %q", s)
	}
	return int(f), nil
}
