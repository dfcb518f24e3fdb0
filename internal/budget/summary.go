package budget

import (
	"fmt"
	"sort"

	"github.com/maple-budget/maple/internal/model"
	"github.com/maple-budget/maple/internal/tax"
	"github.com/shopspring/decimal"
)

// TaxabilityChecker reports whether income in a category is taxable.
type TaxabilityChecker interface {
	IsTaxable(category string) bool
}

// OwnerTax is the tax owed by one filer.
type OwnerTax struct {
	Owner string     `json:"owner,omitempty"`
	Tax   tax.Result `json:"tax"`
}

// Summary is the after-tax picture of a budget.
type Summary struct {
	GrossAnnualIncome  decimal.Decimal            `json:"grossAnnualIncome"`
	TaxableIncome      decimal.Decimal            `json:"taxableIncome"`
	NonTaxableIncome   decimal.Decimal            `json:"nonTaxableIncome"`
	TotalTax           decimal.Decimal            `json:"totalTax"`
	NetAnnualIncome    decimal.Decimal            `json:"netAnnualIncome"`
	MonthlyNetIncome   decimal.Decimal            `json:"monthlyNetIncome"`
	MonthlyExpenses    decimal.Decimal            `json:"monthlyExpenses"`
	MonthlySurplus     decimal.Decimal            `json:"monthlySurplus"`
	SavingsRate        decimal.Decimal            `json:"savingsRate"` // percent of net income
	ExpensesByCategory map[string]decimal.Decimal `json:"expensesByCategory"`
	TaxByOwner         []OwnerTax                 `json:"taxByOwner"`
}

var twelve = decimal.NewFromInt(12)

// Summarize computes income tax and the monthly surplus of b. Couple and family
// budgets are taxed per income owner; otherwise all income belongs to one filer.
func Summarize(b model.Budget, taxable TaxabilityChecker) (Summary, error) {
	s := Summary{ExpensesByCategory: map[string]decimal.Decimal{}}

	byOwner := map[string]decimal.Decimal{}
	for _, it := range b.Incomes() {
		yearly := it.Frequency.ToYearly(it.Amount)
		s.GrossAnnualIncome = s.GrossAnnualIncome.Add(yearly)
		if !taxable.IsTaxable(it.Category) {
			s.NonTaxableIncome = s.NonTaxableIncome.Add(yearly)
			continue
		}
		owner := ""
		if b.LifeSituation.Partnered() {
			owner = it.Owner
		}
		byOwner[owner] = byOwner[owner].Add(yearly)
		s.TaxableIncome = s.TaxableIncome.Add(yearly)
	}

	owners := make([]string, 0, len(byOwner))
	for o := range byOwner {
		owners = append(owners, o)
	}
	sort.Strings(owners)
	for _, o := range owners {
		r, err := tax.Calculate(byOwner[o], b.Province)
		if err != nil {
			return Summary{}, fmt.Errorf("summarizing budget: %w", err)
		}
		s.TaxByOwner = append(s.TaxByOwner, OwnerTax{Owner: o, Tax: r})
		s.TotalTax = s.TotalTax.Add(r.TotalTax)
	}

	for _, it := range b.Expenses() {
		monthly := it.Frequency.ToMonthly(it.Amount)
		s.MonthlyExpenses = s.MonthlyExpenses.Add(monthly)
		s.ExpensesByCategory[it.Category] = s.ExpensesByCategory[it.Category].Add(monthly)
	}

	s.NetAnnualIncome = s.GrossAnnualIncome.Sub(s.TotalTax)
	s.MonthlyNetIncome = s.NetAnnualIncome.Div(twelve).Round(2)
	s.MonthlySurplus = s.MonthlyNetIncome.Sub(s.MonthlyExpenses)
	if s.MonthlyNetIncome.IsPositive() {
		s.SavingsRate = s.MonthlySurplus.Div(s.MonthlyNetIncome).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return s, nil
}
