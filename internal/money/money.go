// Package money formats Canadian dollar amounts for display.
package money

import (
	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the currency every amount in maple is held in.
const Currency = gomoney.CAD

var hundred = decimal.NewFromInt(100)

// MaxAmount is the largest magnitude accepted for any amount or rate.
var MaxAmount = decimal.NewFromInt(1_000_000_000)

// MaxPlaces is the most decimal places accepted on input.
const MaxPlaces = 10

// InRange reports whether d is at most MaxAmount in magnitude and carries at
// most MaxPlaces decimal places. Inputs outside it would make every formula
// work on arbitrarily large integers.
func InRange(d decimal.Decimal) bool {
	exp := d.Exponent()
	if exp < -MaxPlaces || exp > 9 {
		return d.IsZero() && exp >= -MaxPlaces
	}
	return d.Abs().LessThanOrEqual(MaxAmount)
}

// Cents rounds d to the nearest cent and returns it as an integer count of cents.
func Cents(d decimal.Decimal) int64 {
	return d.Mul(hundred).Round(0).IntPart()
}

// Format renders d as a CAD amount, e.g. "$1,234.56".
func Format(d decimal.Decimal) string {
	return gomoney.New(Cents(d), Currency).Display()
}

// Round rounds d to cents.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Percent renders a percentage with one decimal, e.g. "12.5%".
func Percent(d decimal.Decimal) string {
	return d.StringFixed(1) + "%"
}
