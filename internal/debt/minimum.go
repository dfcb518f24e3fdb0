// Package debt manages revolving and installment debts stored as liabilities.
package debt

import (
	"github.com/maple-budget/maple/internal/finance"
	"github.com/maple-budget/maple/internal/model"
	"github.com/shopspring/decimal"
)

var (
	creditCardRate = decimal.RequireFromString("0.03")
	openLoanRate   = decimal.RequireFromString("0.02")
	monthsPerYear  = decimal.NewFromInt(12)
	hundred        = decimal.NewFromInt(100)
)

var displayNames = map[model.DebtKind]string{
	model.DebtLOC:          "Line of Credit",
	model.DebtCreditCard:   "Credit Card",
	model.DebtPersonalLoan: "Personal Loan",
	model.DebtStudentLoan:  "Student Loan",
	model.DebtOtherLoan:    "Other Loan",
}

// DisplayName returns a human label for kind.
func DisplayName(kind model.DebtKind) string {
	if n, ok := displayNames[kind]; ok {
		return n
	}
	return string(kind)
}

// RequiresCreditLimit reports whether kind is revolving credit.
func RequiresCreditLimit(kind model.DebtKind) bool {
	return kind == model.DebtLOC || kind == model.DebtCreditCard
}

// RequiresLoanTerm reports whether kind is an installment loan.
func RequiresLoanTerm(kind model.DebtKind) bool {
	switch kind {
	case model.DebtPersonalLoan, model.DebtStudentLoan, model.DebtOtherLoan:
		return true
	}
	return false
}

// MinimumPayment returns the monthly minimum for d, rounded to cents.
//
// Lines of credit are interest only. Credit cards pay 3% of the balance.
// Loans amortize over their term, or pay 2% of the balance when no term is set.
func MinimumPayment(d model.Debt) decimal.Decimal {
	if !d.Balance.IsPositive() {
		return decimal.Zero
	}
	switch {
	case d.Kind == model.DebtLOC:
		return MonthlyInterest(d.Balance, d.InterestRate)
	case d.Kind == model.DebtCreditCard:
		return d.Balance.Mul(creditCardRate).Round(2)
	case RequiresLoanTerm(d.Kind):
		if d.Term > 0 {
			rate := finance.PeriodicRate(d.InterestRate, 12, finance.CompoundPeriodic)
			return finance.Payment(d.Balance, rate, d.Term)
		}
		return d.Balance.Mul(openLoanRate).Round(2)
	}
	return decimal.Zero
}

// MonthlyInterest returns one month of interest on balance at an annual percent rate.
func MonthlyInterest(balance, ratePercent decimal.Decimal) decimal.Decimal {
	return balance.Mul(ratePercent).Div(hundred).Div(monthsPerYear).Round(2)
}

// Totals returns the sum of minimum payments and of the payments actually made.
func Totals(debts []model.Debt) (minimum, actual decimal.Decimal) {
	for _, d := range debts {
		minimum = minimum.Add(d.MinPayment)
		actual = actual.Add(d.Payment())
	}
	return minimum, actual
}
