package coach

import (
	"github.com/shopspring/decimal"

	"github.com/maple-budget/maple/internal/model"
)

// Score bounds.
const (
	MinScore   = 0
	MaxScore   = 10
	startScore = 5
)

var (
	three      = decimal.NewFromInt(3)
	twelve     = decimal.NewFromInt(12)
	fifthShare = decimal.RequireFromString("0.2")
)

// Score rates a snapshot from 0 (disaster) to 10.
func Score(s Snapshot) int {
	t := s.Totals
	emergencyTarget := t.MonthlyExpenses.Mul(three)
	score := startScore

	if t.CreditCardDebt.IsPositive() {
		score -= 2
	}
	if t.HighInterestDebt.GreaterThan(t.MonthlyIncome.Mul(three)) {
		score -= 2
	}
	if t.MonthlySurplus.IsNegative() {
		score -= 3
	}
	if t.EmergencyFund.LessThan(emergencyTarget) {
		score--
	}
	if t.NetWorth.IsNegative() {
		score -= 2
	}

	if t.NetWorth.GreaterThan(t.MonthlyIncome.Mul(twelve)) {
		score++
	}
	if t.MonthlySurplus.GreaterThan(t.MonthlyIncome.Mul(fifthShare)) {
		score++
	}
	if t.CreditCardDebt.IsZero() {
		score++
	}
	if t.EmergencyFund.GreaterThanOrEqual(emergencyTarget) {
		score++
	}

	return max(MinScore, min(MaxScore, score))
}

// SeverityFor buckets a score.
func SeverityFor(score int) model.Severity {
	switch {
	case score >= 8:
		return model.SeverityExcellent
	case score >= 6:
		return model.SeverityGood
	case score >= 4:
		return model.SeverityConcerning
	case score >= 2:
		return model.SeverityCritical
	}
	return model.SeverityDisaster
}
