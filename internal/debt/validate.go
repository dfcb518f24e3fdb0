package debt

import (
	"strings"

	"github.com/maple-budget/maple/internal/model"
	"github.com/maple-budget/maple/internal/money"
	"github.com/shopspring/decimal"
)

// Validate checks a debt as entered by a user. Out-of-range amounts are
// reported alone, before any other rule looks at them.
func Validate(d model.Debt) model.ValidationErrors {
	var errs model.ValidationErrors
	add := func(field, msg string) {
		errs = append(errs, model.FieldError{Field: field, Message: msg})
	}

	for _, a := range []struct {
		field string
		v     decimal.Decimal
	}{
		{"balance", d.Balance},
		{"interestRate", d.InterestRate},
		{"limit", d.Limit},
		{"minPayment", d.MinPayment},
		{"userPayment", d.UserPayment},
	} {
		if !money.InRange(a.v) {
			add(a.field, "Amount is out of range")
		}
	}
	if len(errs) > 0 {
		return errs
	}

	switch {
	case d.Kind == "":
		add("kind", "Debt type is required")
	case !d.Kind.Valid():
		add("kind", "Debt type is not supported")
	}
	if strings.TrimSpace(d.Name) == "" {
		add("name", "Debt name is required")
	}
	if !d.Balance.IsPositive() {
		add("balance", "Balance must be greater than 0")
	}
	if d.InterestRate.IsNegative() {
		add("interestRate", "Interest rate cannot be negative")
	}
	if RequiresCreditLimit(d.Kind) {
		if !d.Limit.IsPositive() {
			add("limit", "Credit limit is required for this debt type")
		} else if d.Balance.GreaterThan(d.Limit) {
			add("balance", "Balance cannot exceed credit limit")
		}
	}
	if RequiresLoanTerm(d.Kind) && d.Term <= 0 {
		add("term", "Loan term is required for this debt type")
	}
	if d.UserPayment.IsNegative() {
		add("userPayment", "Custom payment cannot be negative")
	}
	return errs
}
