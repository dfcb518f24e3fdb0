package coach

import (
	"fmt"
	"strings"

	"github.com/maple-budget/maple/internal/model"
	"github.com/maple-budget/maple/internal/money"
)

// ContextText renders a snapshot as the plain-text financial context given to the coach.
func ContextText(s Snapshot) string {
	t := s.Totals
	var b strings.Builder

	b.WriteString("FINANCIAL CONTEXT FOR ANALYSIS:\n")
	b.WriteString("=================================\n\n")
	fmt.Fprintf(&b, "User: %s\n\n", s.User.DisplayName())

	province := "Unknown"
	if s.Budget != nil {
		province = s.Budget.Province.Name()
	}
	b.WriteString("BUDGET SUMMARY:\n")
	fmt.Fprintf(&b, "- Monthly Net Income: %s\n", money.Format(t.MonthlyIncome))
	fmt.Fprintf(&b, "- Monthly Expenses: %s\n", money.Format(t.MonthlyExpenses))
	fmt.Fprintf(&b, "- Monthly Surplus/Deficit: %s\n", money.Format(t.MonthlySurplus))
	fmt.Fprintf(&b, "- Province: %s\n\n", province)

	fmt.Fprintf(&b, "ASSETS (Total: %s):\n", money.Format(t.TotalAssets))
	if len(s.Assets) == 0 {
		b.WriteString("- No assets recorded\n")
	}
	for _, a := range s.Assets {
		fmt.Fprintf(&b, "- %s (%s): %s\n", a.Name, a.Type, money.Format(a.Value))
	}

	fmt.Fprintf(&b, "\nLIABILITIES (Total: %s):\n", money.Format(t.TotalLiabilities))
	if len(s.Liabilities) == 0 {
		b.WriteString("- No liabilities recorded\n")
	}
	for _, l := range s.Liabilities {
		fmt.Fprintf(&b, "- %s (%s): %s", l.Name, l.Type, money.Format(l.Balance))
		if l.InterestRate.IsPositive() {
			fmt.Fprintf(&b, " at %s%% APR", l.InterestRate.String())
		}
		if l.MinimumPayment.IsPositive() {
			fmt.Fprintf(&b, ", Min Payment: %s", money.Format(l.MinimumPayment))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nNET WORTH: %s\n", money.Format(t.NetWorth))

	b.WriteString("\nHIGH-INTEREST DEBTS (>15% APR):\n")
	var high, cards []model.Liability
	for _, l := range s.Liabilities {
		if l.InterestRate.GreaterThan(HighInterestRate) {
			high = append(high, l)
		}
		if l.Type == model.LiabilityCreditCard {
			cards = append(cards, l)
		}
	}
	if len(high) == 0 {
		b.WriteString("- None detected\n")
	}
	for _, l := range high {
		fmt.Fprintf(&b, "- %s: %s at %s%%\n", l.Name, money.Format(l.Balance), l.InterestRate.String())
	}

	b.WriteString("\nCREDIT CARD DEBT:\n")
	if len(cards) == 0 {
		b.WriteString("- No credit card debt\n")
	}
	for _, l := range cards {
		fmt.Fprintf(&b, "- %s: %s", l.Name, money.Format(l.Balance))
		if l.CreditLimit.IsPositive() {
			fmt.Fprintf(&b, " (%s utilization)", money.Percent(l.Utilization()))
		}
		b.WriteString("\n")
	}
	return b.String()
}
