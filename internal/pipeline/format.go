package pipeline

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NotAvailable is displayed for undefined means.
const NotAvailable = "N/A"

var (
	million  = decimal.NewFromInt(1_000_000)
	thousand = decimal.NewFromInt(1_000)
)

// Millions formats an amount in millions rounded to two places, e.g.
// 120000 -> "0.12M".
func Millions(v float64) string {
	return scaled(v, million, 2) + "M"
}

// Thousands formats an amount in thousands rounded to places, e.g.
// 60000 -> "60.0K".
func Thousands(v float64, places int32) string {
	return scaled(v, thousand, places) + "K"
}

// scaled divides and rounds half to even, then prints the shortest form with
// at least one fractional digit ("60.0", "0.12", "1.5").
func scaled(v float64, unit decimal.Decimal, places int32) string {
	s := decimal.NewFromFloat(v).Div(unit).RoundBank(places).String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
