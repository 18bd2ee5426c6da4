// Package money parses amount strings the way bank statements print them.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// rupee is the currency glyph some layouts prefix amounts with.
const rupee = "₹"

// Clean strips thousands separators and the currency glyph from an amount
// string and trims surrounding whitespace.
func Clean(s string) string {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, rupee, "")
	return strings.TrimSpace(s)
}

// Parse converts an amount cell to a decimal. Blank and malformed input both
// yield zero; a ragged row must never abort a run over one bad cell.
func Parse(s string) decimal.Decimal {
	d, _ := ParseStrict(s)
	return d
}

// ParseStrict is Parse, except malformed non-blank input is reported so the
// caller can surface a data-quality warning. Blank input is zero with no
// error: that is simply how the source layouts render "no value".
func ParseStrict(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	cleaned := Clean(s)
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("malformed amount %q", s)
	}
	return d, nil
}

// Numeric reports whether s holds a clean amount. Blank is not numeric.
func Numeric(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	_, err := ParseStrict(s)
	return err == nil
}
