package networth

import (
	"strings"

	"github.com/maple-budget/maple/internal/model"
	"github.com/maple-budget/maple/internal/money"
	"github.com/shopspring/decimal"
)

// ValidateAsset checks an asset as entered by a user.
func ValidateAsset(a model.Asset) model.ValidationErrors {
	var errs model.ValidationErrors
	if !a.Type.Valid() {
		errs = append(errs, model.FieldError{Field: "type", Message: "Asset type is required"})
	}
	if strings.TrimSpace(a.Name) == "" {
		errs = append(errs, model.FieldError{Field: "name", Message: "Asset name is required"})
	}
	switch {
	case !money.InRange(a.Value):
		errs = append(errs, model.FieldError{Field: "value", Message: "Value is out of range"})
	case a.Value.IsNegative():
		errs = append(errs, model.FieldError{Field: "value", Message: "Value cannot be negative"})
	}
	return errs
}

// ValidateLiability checks a liability as entered by a user.
func ValidateLiability(l model.Liability) model.ValidationErrors {
	var errs model.ValidationErrors
	add := func(field, msg string) {
		errs = append(errs, model.FieldError{Field: field, Message: msg})
	}
	if !l.Type.Valid() {
		add("type", "Liability type is required")
	}
	if strings.TrimSpace(l.Name) == "" {
		add("name", "Liability name is required")
	}
	nonNegative := func(field, label string, v decimal.Decimal) {
		switch {
		case !money.InRange(v):
			add(field, label+" is out of range")
		case v.IsNegative():
			add(field, label+" cannot be negative")
		}
	}
	nonNegative("balance", "Balance", l.Balance)
	nonNegative("interestRate", "Interest rate", l.InterestRate)
	nonNegative("minimumPayment", "Minimum payment", l.MinimumPayment)
	if !money.InRange(l.CreditLimit) {
		add("creditLimit", "Credit limit is out of range")
	}
	if l.AmortizationYears < 0 || l.AmortizationYears > 40 {
		add("amortizationYears", "Amortization must be between 0 and 40 years")
	}
	return errs
}
