// Package calculator implements the stateless financial calculators. Every
// calculator validates its inputs and returns an error wrapping ErrInvalidInput
// and the model.ValidationErrors that caused it.
package calculator

import (
	"errors"
	"fmt"

	"github.com/maple-budget/maple/internal/model"
	"github.com/maple-budget/maple/internal/money"
	"github.com/shopspring/decimal"
)

// ErrInvalidInput marks calculator input that failed validation.
var ErrInvalidInput = errors.New("invalid calculator input")

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
	two     = decimal.NewFromInt(2)
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func pct(v decimal.Decimal) decimal.Decimal { return v.Div(hundred) }

func invalid(errs model.ValidationErrors) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, errs)
}

// checker accumulates field errors.
type checker struct{ errs model.ValidationErrors }

func (c *checker) add(field, msg string) {
	c.errs = append(c.errs, model.FieldError{Field: field, Message: msg})
}

func (c *checker) check(ok bool, field, msg string) {
	if !ok {
		c.add(field, msg)
	}
}

// amount rejects v when it is outside money.InRange. Validators that compute
// on an amount check it first and stop when it is out of range.
func (c *checker) amount(field string, v decimal.Decimal) {
	c.check(money.InRange(v), field, "Amount is out of range")
}

func between(v decimal.Decimal, lo, hi string) bool {
	return money.InRange(v) && !v.LessThan(d(lo)) && !v.GreaterThan(d(hi))
}

// PaymentFrequency is how often a loan or mortgage payment is made.
type PaymentFrequency string

const (
	Monthly             PaymentFrequency = "monthly"
	BiWeekly            PaymentFrequency = "bi-weekly"
	Weekly              PaymentFrequency = "weekly"
	AcceleratedBiWeekly PaymentFrequency = "accelerated-bi-weekly"
	AcceleratedWeekly   PaymentFrequency = "accelerated-weekly"
)

// PeriodsPerYear returns the payments per year, or 0 when unknown. Empty means monthly.
func (f PaymentFrequency) PeriodsPerYear() int {
	switch f {
	case "", Monthly:
		return 12
	case BiWeekly, AcceleratedBiWeekly:
		return 26
	case Weekly, AcceleratedWeekly:
		return 52
	}
	return 0
}

// accelerationDivisor splits the monthly payment for accelerated schedules, or returns 0.
func (f PaymentFrequency) accelerationDivisor() int64 {
	switch f {
	case AcceleratedBiWeekly:
		return 2
	case AcceleratedWeekly:
		return 4
	}
	return 0
}
