// Package types provides common type aliases and utilities.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors anywhere on the
// ledger path; amounts are rounded to 2 decimal places at computation
// boundaries to match the NUMERIC(12,2) columns.
type Money = decimal.Decimal

// MoneyScale is the fractional precision carried by monetary columns.
const MoneyScale = 2

// NewMoneyFromString creates a Money value from a string.
// This is the preferred constructor for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// NewMoneyFromFloat creates a Money value from a float.
// WARNING: prefer NewMoneyFromString for values that originate as text.
func NewMoneyFromFloat(f float64) Money {
	return decimal.NewFromFloat(f)
}

// NewMoneyFromInt creates a Money value from an integer quantity.
func NewMoneyFromInt(n int64) Money {
	return decimal.NewFromInt(n)
}

// ZeroMoney returns zero Money value.
func ZeroMoney() Money {
	return decimal.Zero
}

// RoundMoney rounds to the ledger's monetary scale (2 decimal places).
func RoundMoney(m Money) Money {
	return m.Round(MoneyScale)
}

// MulMoney multiplies a per-unit amount by a quantity and rounds to the
// monetary scale. Used for derived totals (perGram × grams).
func MulMoney(perUnit, qty Money) Money {
	return RoundMoney(perUnit.Mul(qty))
}

// MinMoney returns the smaller of two amounts.
func MinMoney(a, b Money) Money {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Percentage returns part/whole × 100 rounded to 2 decimal places,
// or zero when whole is not positive.
func Percentage(part, whole Money) Money {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(decimal.NewFromInt(100)).Round(MoneyScale)
}
