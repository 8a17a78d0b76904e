// Package money wraps shopspring/decimal for amounts found in Fattura
// Elettronica documents, which use the comma as decimal separator.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Zero is decimal zero
var Zero = decimal.Zero

// ParseAmount parses a locale-formatted amount string. The first decimal
// comma is replaced with a dot before parsing, so both "1234,56" and
// "1234.56" are accepted.
func ParseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.Replace(s, ",", ".", 1))
}

// FromFloat creates a decimal from a float, rounded to 2 places.
func FromFloat(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// Sum adds a slice of decimals.
func Sum(values []decimal.Decimal) decimal.Decimal {
	result := Zero
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}

// SumFloats adds float amounts exactly, returning the result as a float
// rounded to 2 places. Used for batch metrics where naive float addition
// would accumulate representation error.
func SumFloats(values []float64) float64 {
	result := Zero
	for _, v := range values {
		result = result.Add(decimal.NewFromFloat(v))
	}
	return result.Round(2).InexactFloat64()
}

// IsPositive returns true if the decimal is greater than zero.
func IsPositive(d decimal.Decimal) bool {
	return d.GreaterThan(Zero)
}
