package model

import "github.com/shopspring/decimal"

// Frequency is how often a budget amount recurs.
type Frequency string

const (
	FrequencyWeekly      Frequency = "WEEKLY"
	FrequencyBiweekly    Frequency = "BIWEEKLY"
	FrequencySemimonthly Frequency = "SEMIMONTHLY"
	FrequencyMonthly     Frequency = "MONTHLY"
	FrequencyQuarterly   Frequency = "QUARTERLY"
	FrequencyYearly      Frequency = "YEARLY"
)

var twelve = decimal.NewFromInt(12)

// PeriodsPerYear returns the number of occurrences per year, or 0 for an unknown frequency.
func (f Frequency) PeriodsPerYear() int {
	switch f {
	case FrequencyWeekly:
		return 52
	case FrequencyBiweekly:
		return 26
	case FrequencySemimonthly:
		return 24
	case FrequencyMonthly:
		return 12
	case FrequencyQuarterly:
		return 4
	case FrequencyYearly:
		return 1
	}
	return 0
}

// Valid reports whether f is a known frequency.
func (f Frequency) Valid() bool { return f.PeriodsPerYear() > 0 }

// ToYearly converts an amount paid at this frequency to its yearly total.
func (f Frequency) ToYearly(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(int64(f.PeriodsPerYear())))
}

// ToMonthly converts an amount paid at this frequency to a monthly amount, rounded to cents.
func (f Frequency) ToMonthly(amount decimal.Decimal) decimal.Decimal {
	return f.ToYearly(amount).Div(twelve).Round(2)
}
