package pipeline

import (
	"sort"

	"github.com/leapstack-labs/hrdash/pkg/core"
)

// Filter returns the rows of t matching every active constraint of sel.
// Dimensions set to core.All pass every row. A value that does not occur in
// the table yields an empty view, not an error.
func Filter(t *core.Table, sel core.Selection) (*core.Table, error) {
	constraints := sel.Constraints()
	if len(constraints) == 0 {
		return t, nil
	}
	for _, c := range constraints {
		if err := requireDimension(t, c.Dimension); err != nil {
			return nil, err
		}
	}

	// Single pass: a row must match all constraints.
	return t.Select(func(e core.Employee) bool {
		for _, c := range constraints {
			if c.Dimension.Value(e) != c.Value {
				return false
			}
		}
		return true
	}), nil
}

// Where applies a single constraint. Chaining Where calls in any order gives
// the same rows as Filter.
func Where(t *core.Table, c core.Constraint) (*core.Table, error) {
	if c.Value == core.All || c.Value == "" {
		return t, nil
	}
	if err := requireDimension(t, c.Dimension); err != nil {
		return nil, err
	}
	return t.Select(func(e core.Employee) bool {
		return c.Dimension.Value(e) == c.Value
	}), nil
}

// Options returns the filter choices for t. Each list is All followed by the
// distinct non-empty values of the dimension in natural order. Options are
// computed from whatever table is passed in; the dashboard passes the
// unfiltered table so choices never narrow with the other selections.
func Options(t *core.Table) (core.FilterOptions, error) {
	years, err := Domain(t, core.DimYearOfHire)
	if err != nil {
		return core.FilterOptions{}, err
	}
	statuses, err := Domain(t, core.DimEmploymentStatus)
	if err != nil {
		return core.FilterOptions{}, err
	}
	sources, err := Domain(t, core.DimRecruitmentSource)
	if err != nil {
		return core.FilterOptions{}, err
	}
	return core.FilterOptions{
		Years:    append([]string{core.All}, years...),
		Statuses: append([]string{core.All}, statuses...),
		Sources:  append([]string{core.All}, sources...),
	}, nil
}

// Domain returns the distinct non-empty values of d in t, sorted.
func Domain(t *core.Table, d core.Dimension) ([]string, error) {
	if err := requireDimension(t, d); err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var values []string
	t.Each(func(e core.Employee) {
		v := d.Value(e)
		if v == "" {
			return
		}
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			values = append(values, v)
		}
	})
	sort.Slice(values, func(i, j int) bool { return d.Less(values[i], values[j]) })
	return values, nil
}

// requireDimension fails with a SchemaError when t cannot provide d.
func requireDimension(t *core.Table, d core.Dimension) error {
	if !d.Valid() {
		return &core.SchemaError{Name: d.String()}
	}
	if d.Derived() && !t.Derived() {
		return &core.SchemaError{Name: d.Column(), Reason: "derived field not computed"}
	}
	return nil
}
