// Package networth tracks assets and liabilities and summarizes financial health.
package networth

import (
	"github.com/maple-budget/maple/internal/model"
	"github.com/shopspring/decimal"
)

// Health statuses, worst first.
const (
	StatusCritical   = "critical"
	StatusConcerning = "concerning"
	StatusImproving  = "improving"
	StatusHealthy    = "healthy"
)

var (
	// MaxDebtToIncome is the debt payment share of income above which debt is a concern.
	MaxDebtToIncome = decimal.RequireFromString("0.4")
	// MinLiquidityMonths is the emergency fund target in months of expenses.
	MinLiquidityMonths = decimal.NewFromInt(3)
)

// Summary is a point-in-time view of a user's balance sheet.
type Summary struct {
	TotalAssets         decimal.Decimal                         `json:"totalAssets"`
	TotalLiabilities    decimal.Decimal                         `json:"totalLiabilities"`
	NetWorth            decimal.Decimal                         `json:"netWorth"`
	LiquidAssets        decimal.Decimal                         `json:"liquidAssets"`
	AssetsByType        map[model.AssetType]decimal.Decimal     `json:"assetsByType"`
	LiabilitiesByType   map[model.LiabilityType]decimal.Decimal `json:"liabilitiesByType"`
	MonthlyDebtPayments decimal.Decimal                         `json:"monthlyDebtPayments"`
	DebtToIncomeRatio   decimal.Decimal                         `json:"debtToIncomeRatio"` // fraction of monthly income
	LiquidityRatio      decimal.Decimal                         `json:"liquidityRatio"`    // months of expenses
	Status              string                                  `json:"status"`
}

// Summarize totals assets and liabilities and rates the result. Ratios are
// zero when the income or expense they divide by is not positive.
func Summarize(assets []model.Asset, liabilities []model.Liability, monthlyIncome, monthlyExpenses decimal.Decimal) Summary {
	s := Summary{
		AssetsByType:      map[model.AssetType]decimal.Decimal{},
		LiabilitiesByType: map[model.LiabilityType]decimal.Decimal{},
	}
	for _, a := range assets {
		s.TotalAssets = s.TotalAssets.Add(a.Value)
		s.AssetsByType[a.Type] = s.AssetsByType[a.Type].Add(a.Value)
		if a.Type.Liquid() {
			s.LiquidAssets = s.LiquidAssets.Add(a.Value)
		}
	}
	for _, l := range liabilities {
		s.TotalLiabilities = s.TotalLiabilities.Add(l.Balance)
		s.LiabilitiesByType[l.Type] = s.LiabilitiesByType[l.Type].Add(l.Balance)
		s.MonthlyDebtPayments = s.MonthlyDebtPayments.Add(l.MinimumPayment)
	}
	s.NetWorth = s.TotalAssets.Sub(s.TotalLiabilities)

	if monthlyIncome.IsPositive() {
		s.DebtToIncomeRatio = s.MonthlyDebtPayments.Div(monthlyIncome).Round(4)
	}
	if monthlyExpenses.IsPositive() {
		s.LiquidityRatio = s.LiquidAssets.Div(monthlyExpenses).Round(2)
	}
	s.Status = status(s)
	return s
}

func status(s Summary) string {
	switch {
	case s.NetWorth.IsNegative():
		return StatusCritical
	case s.DebtToIncomeRatio.GreaterThan(MaxDebtToIncome):
		return StatusConcerning
	case s.LiquidityRatio.LessThan(MinLiquidityMonths):
		return StatusImproving
	}
	return StatusHealthy
}
