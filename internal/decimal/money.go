// Package decimal provides the monetary normalization helpers shared by
// the format modules. All amounts pass through shopspring/decimal so that
// "10", "10.0" and "10.00" canonicalize to the same scalar.
package decimal

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Zero is decimal zero
var Zero = decimal.Zero

// FromString parses a decimal from a string, trimming surrounding space
func FromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}

// MustFromString parses a decimal from a string, panics on error
func MustFromString(s string) decimal.Decimal {
	d, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// NormalizeAmount canonicalizes a monetary value to exactly two fractional
// digits. Returns "" when the input is empty or not a number.
func NormalizeAmount(s string) string {
	d, err := FromString(s)
	if err != nil {
		return ""
	}
	return d.StringFixed(2)
}

// NormalizeNumber canonicalizes a quantity or rate to its shortest decimal
// form ("2.0" becomes "2"). Returns "" when the input is empty or not a
// number.
func NormalizeNumber(s string) string {
	d, err := FromString(s)
	if err != nil {
		return ""
	}
	return d.String()
}

// LineTotal computes quantity times unit price as a canonical amount.
// Returns "" when either operand does not parse.
func LineTotal(quantity, unitPrice string) string {
	qty, err := FromString(quantity)
	if err != nil {
		return ""
	}
	price, err := FromString(unitPrice)
	if err != nil {
		return ""
	}
	return qty.Mul(price).StringFixed(2)
}

// Sum sums a slice of decimals
func Sum(values []decimal.Decimal) decimal.Decimal {
	result := Zero
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}
