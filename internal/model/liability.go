package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LiabilityType classifies what a user owes.
type LiabilityType string

const (
	LiabilityMortgage     LiabilityType = "mortgage"
	LiabilityAutoLoan     LiabilityType = "auto_loan"
	LiabilityCreditCard   LiabilityType = "credit_card"
	LiabilityLineOfCredit LiabilityType = "line_of_credit"
	LiabilityStudentLoan  LiabilityType = "student_loan"
	LiabilityPersonalLoan LiabilityType = "personal_loan"
	LiabilityOther        LiabilityType = "other"
)

// Valid reports whether t is a known liability type.
func (t LiabilityType) Valid() bool {
	switch t {
	case LiabilityMortgage, LiabilityAutoLoan, LiabilityCreditCard, LiabilityLineOfCredit,
		LiabilityStudentLoan, LiabilityPersonalLoan, LiabilityOther:
		return true
	}
	return false
}

// Liability is something a user owes. Zero numeric fields mean "not provided".
type Liability struct {
	ID                string           `json:"id"`
	UserID            string           `json:"userId"`
	Type              LiabilityType    `json:"type"`
	Name              string           `json:"name"`
	Balance           decimal.Decimal  `json:"balance"`
	InterestRate      decimal.Decimal  `json:"interestRate"` // annual percent
	MinimumPayment    decimal.Decimal  `json:"minimumPayment"`
	CreditLimit       decimal.Decimal  `json:"creditLimit"`
	AmortizationYears int              `json:"amortizationYears,omitempty"`
	RenewalDate       *time.Time       `json:"renewalDate,omitempty"`
	MaturityDate      *time.Time       `json:"maturityDate,omitempty"`
	Description       string           `json:"description,omitempty"`
	Details           LiabilityDetails `json:"details"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
}

// LiabilityDetails carries debt-manager metadata stored alongside a liability.
type LiabilityDetails struct {
	DebtKind             DebtKind        `json:"debtKind,omitempty"`
	CalculatedMinPayment decimal.Decimal `json:"calculatedMinPayment"`
	UserPayment          decimal.Decimal `json:"userPayment"`
	Term                 int             `json:"term,omitempty"` // months
}

// Utilization returns balance / limit as a percentage, or zero when no limit is set.
func (l Liability) Utilization() decimal.Decimal {
	if !l.CreditLimit.IsPositive() {
		return decimal.Zero
	}
	return l.Balance.Div(l.CreditLimit).Mul(decimal.NewFromInt(100))
}
