// Package money provides an exact-decimal monetary amount for receipt
// totals and item prices. Amounts are never represented as binary
// floating-point: comparisons like "is this a multiple of 0.25" are wrong
// on float64 and must be computed on the decimal form.
package money

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

// pattern is the only accepted textual form: one or more digits, a dot,
// and exactly two fractional digits.
var pattern = regexp.MustCompile(`^\d+\.\d{2}$`)

// Amount is a non-negative monetary value with two-decimal precision.
// The zero value is 0.00.
type Amount struct {
	d decimal.Decimal
}

// Parse converts a string like "19.99" into an Amount.
// Anything that does not match ^\d+\.\d{2}$ is rejected, including
// negative values, missing cents, and too-long fractions like "15.339".
func Parse(s string) (Amount, error) {
	if !pattern.MatchString(s) {
		return Amount{}, fmt.Errorf("malformed amount %q", s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("malformed amount %q: %w", s, err)
	}
	return Amount{d: d}, nil
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount {
	return Amount{d: a.d.Add(b.d)}
}

// Equal reports exact decimal equality.
func (a Amount) Equal(b Amount) bool {
	return a.d.Equal(b.d)
}

// Cents returns the amount in whole cents.
func (a Amount) Cents() int64 {
	return a.d.Mul(decimal.NewFromInt(100)).IntPart()
}

// IsWholeDollars reports whether the amount has a zero fractional part.
func (a Amount) IsWholeDollars() bool {
	return a.Cents()%100 == 0
}

// IsMultipleOfQuarter reports whether the amount is an exact multiple of 0.25.
func (a Amount) IsMultipleOfQuarter() bool {
	return a.Cents()%25 == 0
}

// FifthCeil returns ceil(amount * 0.2) as an integer, computed on the
// decimal form so prices like 5.00 yield exactly 1 rather than drifting
// past an integer boundary the way float64 math can.
func (a Amount) FifthCeil() int64 {
	return a.d.Mul(decimal.NewFromFloat(0.2)).Ceil().IntPart()
}

// String returns the canonical two-decimal form.
func (a Amount) String() string {
	return a.d.StringFixed(2)
}
