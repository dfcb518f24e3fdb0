// Package finance holds the time-value-of-money primitives shared by the
// calculators and the debt planner. Rates are per period, as fractions.
package finance

import (
	"math"

	"github.com/shopspring/decimal"
)

// Compounding selects how an annual rate converts to a periodic one.
type Compounding int

const (
	// CompoundPeriodic divides the nominal annual rate by the payment frequency.
	CompoundPeriodic Compounding = iota
	// CompoundSemiAnnual is the Canadian fixed-rate mortgage convention.
	CompoundSemiAnnual
)

// precision bounds intermediate results of repeated multiplication.
const precision = 20

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// PeriodicRate converts an annual percent rate to a per-period fraction.
func PeriodicRate(annualPercent decimal.Decimal, periodsPerYear int, c Compounding) decimal.Decimal {
	if periodsPerYear <= 0 || annualPercent.IsZero() {
		return decimal.Zero
	}
	annual := annualPercent.Div(hundred)
	if c == CompoundSemiAnnual {
		half, _ := annual.Div(decimal.NewFromInt(2)).Float64()
		r := math.Pow(1+half, 2/float64(periodsPerYear)) - 1
		return decimal.NewFromFloat(r)
	}
	return annual.Div(decimal.NewFromInt(int64(periodsPerYear)))
}

// Pow raises base to a non-negative integer power.
func Pow(base decimal.Decimal, n int) decimal.Decimal {
	result := one
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base).Round(precision)
		}
		base = base.Mul(base).Round(precision)
		n >>= 1
	}
	return result
}

// Annuity returns the unrounded payment per dollar borrowed over periods at rate.
func Annuity(rate decimal.Decimal, periods int) decimal.Decimal {
	if periods <= 0 {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(periods))
	if rate.IsZero() {
		return one.Div(n)
	}
	f := Pow(one.Add(rate), periods)
	return rate.Mul(f).Div(f.Sub(one))
}

// Payment returns the level payment, rounded to cents, that repays principal
// over periods at rate per period.
func Payment(principal, rate decimal.Decimal, periods int) decimal.Decimal {
	if periods <= 0 || !principal.IsPositive() {
		return decimal.Zero
	}
	if rate.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(periods))).Round(2)
	}
	f := Pow(one.Add(rate), periods)
	return principal.Mul(rate).Mul(f).Div(f.Sub(one)).Round(2)
}

// Balance returns the principal still owed after k payments, never negative.
func Balance(principal, rate, payment decimal.Decimal, k int) decimal.Decimal {
	var b decimal.Decimal
	if rate.IsZero() {
		b = principal.Sub(payment.Mul(decimal.NewFromInt(int64(k))))
	} else {
		f := Pow(one.Add(rate), k)
		b = principal.Mul(f).Sub(payment.Mul(f.Sub(one)).Div(rate))
	}
	if b.IsNegative() {
		return decimal.Zero
	}
	return b.Round(2)
}

// FutureValueAnnuity returns the value after periods of end-of-period payments.
func FutureValueAnnuity(payment, rate decimal.Decimal, periods int) decimal.Decimal {
	if rate.IsZero() {
		return payment.Mul(decimal.NewFromInt(int64(periods)))
	}
	f := Pow(one.Add(rate), periods)
	return payment.Mul(f.Sub(one)).Div(rate)
}

// Grow compounds amount at rate for periods.
func Grow(amount, rate decimal.Decimal, periods int) decimal.Decimal {
	return amount.Mul(Pow(one.Add(rate), periods))
}
