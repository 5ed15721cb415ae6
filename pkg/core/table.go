package core

// Table is an immutable, ordered collection of employees.
//
// A table is either materialized (it owns its rows) or a view over another
// table's rows selected by index. Neither kind is ever mutated after
// construction; filtering and derivation return new tables.
type Table struct {
	rows    []Employee
	index   []int
	derived bool
}

// NewTable returns a materialized table holding a copy of rows.
func NewTable(rows []Employee) *Table {
	own := make([]Employee, len(rows))
	copy(own, rows)
	return &Table{rows: own}
}

// NewDerivedTable is like NewTable but marks the derived fields as populated.
func NewDerivedTable(rows []Employee) *Table {
	t := NewTable(rows)
	t.derived = true
	return t
}

// Len returns the number of rows visible in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	if t.index != nil {
		return len(t.index)
	}
	return len(t.rows)
}

// At returns a copy of the i-th visible row.
func (t *Table) At(i int) Employee {
	if t.index != nil {
		return t.rows[t.index[i]]
	}
	return t.rows[i]
}

// Each calls fn for every visible row in order.
func (t *Table) Each(fn func(Employee)) {
	for i, n := 0, t.Len(); i < n; i++ {
		fn(t.At(i))
	}
}

// Rows returns a copy of the visible rows.
func (t *Table) Rows() []Employee {
	out := make([]Employee, 0, t.Len())
	t.Each(func(e Employee) { out = append(out, e) })
	return out
}

// Derived reports whether YearOfHire, Age and SalaryRange are populated.
func (t *Table) Derived() bool {
	return t != nil && t.derived
}

// Select returns a view of the rows for which keep returns true. The view
// shares storage with t.
func (t *Table) Select(keep func(Employee) bool) *Table {
	n := t.Len()
	idx := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if !keep(t.At(i)) {
			continue
		}
		if t.index != nil {
			idx = append(idx, t.index[i])
		} else {
			idx = append(idx, i)
		}
	}
	return &Table{rows: t.rows, index: idx, derived: t.derived}
}
