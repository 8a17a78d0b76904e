package xml

import (
	"strconv"
	"time"

	"github.com/rezonia/fattura-processor/internal/money"
)

// isoDate is the date layout FatturaPA documents are supposed to use.
const isoDate = "2006-01-02"

// Coercers turn raw element text into typed values. They are total: no input
// produces an error, only the documented fallback value.

// ParseFloat parses a locale-formatted number, honoring the comma as decimal
// separator. Empty input and parse failures both yield 0.
func ParseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	d, err := money.ParseAmount(s)
	if err != nil {
		return 0
	}
	return d.InexactFloat64()
}

// ParseInt parses an integer. Empty input and parse failures both yield 0.
func ParseInt(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// ParseDate canonicalizes a strict YYYY-MM-DD date string. Anything else is
// returned unchanged, so downstream consumers must tolerate non-ISO strings
// in date fields.
func ParseDate(s string) string {
	t, err := time.Parse(isoDate, s)
	if err != nil {
		return s
	}
	return t.Format(isoDate)
}
