// Package money provides an exact base-10 fixed-point monetary value.
//
// Amounts are persisted as SQLite REAL for schema compatibility, but every
// aggregation re-derives exact decimals via FromFloat before summing, so
// balances never accumulate binary floating-point drift.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/debtify/debtify/internal/common"
)

// Money is an exact decimal monetary value displayed with two decimal places.
type Money struct {
	value decimal.Decimal
}

// Zero returns a zero monetary value.
func Zero() Money {
	return Money{value: decimal.Zero}
}

// Parse converts user text to a Money value. Both '.' and ',' are accepted
// as the decimal separator. Returns common.ErrParse on non-numeric input.
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, fmt.Errorf("%w: empty amount", common.ErrParse)
	}
	s = strings.ReplaceAll(s, ",", ".")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: amount %q", common.ErrParse, s)
	}
	return Money{value: d}, nil
}

// ParseAmount parses user text as a transaction amount, which must be
// strictly positive. Returns common.ErrParse for malformed text and
// common.ErrValidation for values <= 0.
func ParseAmount(s string) (Money, error) {
	m, err := Parse(s)
	if err != nil {
		return Money{}, err
	}
	if !m.IsPositive() {
		return Money{}, fmt.Errorf("%w: amount must be positive", common.ErrValidation)
	}
	return m, nil
}

// FromFloat re-derives an exact decimal from a stored float using its
// shortest decimal representation. This mirrors reading the persisted
// numeric column back into exact arithmetic before any summation.
func FromFloat(f float64) Money {
	return Money{value: decimal.NewFromFloat(f)}
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{value: m.value.Add(other.value)}
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return Money{value: m.value.Sub(other.value)}
}

// Neg returns -m.
func (m Money) Neg() Money {
	return Money{value: m.value.Neg()}
}

// Cmp compares m with other: -1 if m < other, 0 if equal, 1 if m > other.
func (m Money) Cmp(other Money) int {
	return m.value.Cmp(other.value)
}

// Equal reports whether two values are numerically equal.
func (m Money) Equal(other Money) bool {
	return m.value.Equal(other.value)
}

// IsPositive reports whether m > 0.
func (m Money) IsPositive() bool {
	return m.value.IsPositive()
}

// IsZero reports whether m == 0.
func (m Money) IsZero() bool {
	return m.value.IsZero()
}

// Float64 returns the float representation used only for persistence.
func (m Money) Float64() float64 {
	f, _ := m.value.Float64()
	return f
}

// String formats the value with exactly two decimal places.
func (m Money) String() string {
	return m.value.StringFixed(2)
}
