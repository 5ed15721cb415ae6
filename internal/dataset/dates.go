package dataset

import (
	"errors"
	"fmt"
	"time"
)

var errEmptyDate = errors.New("date is required")

// dateLayouts are tried in order. The HR export writes month/day/year.
var dateLayouts = []string{
	"1/2/2006",
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05-07",
	"2006-01-02 15:04:05 -0700 MST",
}

// shortYearLayout is month/day/two-digit-year.
const shortYearLayout = "1/2/06"

// parseDate parses s, returning the zero time for an empty string.
//
// Two-digit years resolve to the most recent year not after pivot, so
// "5/6/87" is 1987 and "5/6/12" is 2012 when pivot is in 2026.
func parseDate(s string, pivot time.Time) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(shortYearLayout, s); err == nil {
		return resolveCentury(t, pivot), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// resolveCentury rewrites t's year (already in 1969..2068) to the latest
// year with the same last two digits that does not exceed pivot's year.
func resolveCentury(t, pivot time.Time) time.Time {
	yy := t.Year() % 100
	year := pivot.Year() - pivot.Year()%100 + yy
	if year > pivot.Year() {
		year -= 100
	}
	return time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
