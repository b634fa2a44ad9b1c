package report

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// numericRun matches a run of digits and separators inside a price cell.
var numericRun = regexp.MustCompile(`[0-9.,]+`)

// ParsePrice extracts a monetary amount from an arbitrarily formatted price
// cell. The first run of digits, dots and commas is taken, thousands commas
// are stripped, and the remainder is parsed as a decimal. The boolean
// reports whether a value was actually extracted; every failure path yields
// zero so a bad cell can never sink a report.
func ParsePrice(cell string) (decimal.Decimal, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return decimal.Zero, false
	}

	run := numericRun.FindString(cell)
	if run == "" {
		return decimal.Zero, false
	}

	value, err := decimal.NewFromString(strings.ReplaceAll(run, ",", ""))
	if err != nil || value.IsNegative() {
		return decimal.Zero, false
	}

	return value, true
}
