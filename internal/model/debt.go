package model

import "github.com/shopspring/decimal"

// DebtKind is the debt manager's view of a liability.
type DebtKind string

const (
	DebtLOC          DebtKind = "LOC"
	DebtCreditCard   DebtKind = "CreditCard"
	DebtPersonalLoan DebtKind = "PersonalLoan"
	DebtStudentLoan  DebtKind = "StudentLoan"
	DebtOtherLoan    DebtKind = "OtherLoan"
)

// DebtKinds lists the supported kinds.
var DebtKinds = []DebtKind{DebtLOC, DebtCreditCard, DebtPersonalLoan, DebtStudentLoan, DebtOtherLoan}

// Valid reports whether k is a supported debt kind.
func (k DebtKind) Valid() bool {
	for _, known := range DebtKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Debt is a revolving or installment debt with a computed minimum payment.
type Debt struct {
	ID           string          `json:"id,omitempty"`
	Kind         DebtKind        `json:"kind"`
	Name         string          `json:"name"`
	Balance      decimal.Decimal `json:"balance"`
	Limit        decimal.Decimal `json:"limit"`
	InterestRate decimal.Decimal `json:"interestRate"` // annual percent
	MinPayment   decimal.Decimal `json:"minPayment"`
	UserPayment  decimal.Decimal `json:"userPayment"` // zero = pay the minimum
	Term         int             `json:"term,omitempty"`
	Description  string          `json:"description,omitempty"`
}

// Payment returns the amount actually paid each month.
func (d Debt) Payment() decimal.Decimal {
	if d.UserPayment.IsPositive() {
		return d.UserPayment
	}
	return d.MinPayment
}
