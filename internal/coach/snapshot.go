// Package coach scores a user's finances and asks an LLM for blunt, specific advice.
package coach

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/maple-budget/maple/internal/model"
)

// HighInterestRate is the annual percentage above which a debt counts as high interest.
var HighInterestRate = decimal.NewFromInt(15)

// Totals are the headline numbers the score and prompts are built from.
// Income and expenses are monthly and come from the latest budget.
type Totals struct {
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	NetWorth         decimal.Decimal `json:"netWorth"`
	MonthlyIncome    decimal.Decimal `json:"monthlyIncome"`
	MonthlyExpenses  decimal.Decimal `json:"monthlyExpenses"`
	MonthlySurplus   decimal.Decimal `json:"monthlySurplus"`
	CreditCardDebt   decimal.Decimal `json:"creditCardDebt"`
	HighInterestDebt decimal.Decimal `json:"highInterestDebt"`
	EmergencyFund    decimal.Decimal `json:"emergencyFund"`
}

// Snapshot is everything the coach knows about a user at one point in time.
type Snapshot struct {
	User        model.User        `json:"user"`
	Totals      Totals            `json:"summary"`
	Assets      []model.Asset     `json:"assets"`
	Liabilities []model.Liability `json:"liabilities"`
	Budget      *model.Budget     `json:"budget"`
}

// NewSnapshot computes the totals for the given records. budget may be nil.
func NewSnapshot(user model.User, assets []model.Asset, liabilities []model.Liability, budget *model.Budget) Snapshot {
	s := Snapshot{User: user, Assets: assets, Liabilities: liabilities, Budget: budget}
	t := &s.Totals
	for _, a := range assets {
		t.TotalAssets = t.TotalAssets.Add(a.Value)
		if a.Type.Liquid() {
			t.EmergencyFund = t.EmergencyFund.Add(a.Value)
		}
	}
	for _, l := range liabilities {
		t.TotalLiabilities = t.TotalLiabilities.Add(l.Balance)
		if l.Type == model.LiabilityCreditCard {
			t.CreditCardDebt = t.CreditCardDebt.Add(l.Balance)
		}
		if l.InterestRate.GreaterThan(HighInterestRate) {
			t.HighInterestDebt = t.HighInterestDebt.Add(l.Balance)
		}
	}
	t.NetWorth = t.TotalAssets.Sub(t.TotalLiabilities)
	if budget != nil {
		t.MonthlyIncome = budget.NetIncome
		t.MonthlyExpenses = budget.TotalExpenses
	}
	t.MonthlySurplus = t.MonthlyIncome.Sub(t.MonthlyExpenses)
	return s
}

// Loader reads the records a snapshot is built from.
type Loader interface {
	ListAssets(ctx context.Context, userID string) ([]model.Asset, error)
	ListLiabilities(ctx context.Context, userID string) ([]model.Liability, error)
	ListBudgets(ctx context.Context, userID string) ([]model.Budget, error)
}

// LoadSnapshot fetches assets, liabilities and budgets concurrently and
// builds a snapshot around the most recent budget.
func LoadSnapshot(ctx context.Context, l Loader, user model.User) (Snapshot, error) {
	var (
		assets      []model.Asset
		liabilities []model.Liability
		budgets     []model.Budget
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		assets, err = l.ListAssets(gctx, user.ID)
		return err
	})
	g.Go(func() error {
		var err error
		liabilities, err = l.ListLiabilities(gctx, user.ID)
		return err
	})
	g.Go(func() error {
		var err error
		budgets, err = l.ListBudgets(gctx, user.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, fmt.Errorf("loading financial snapshot: %w", err)
	}

	var latest *model.Budget
	if len(budgets) > 0 {
		latest = &budgets[0]
	}
	return NewSnapshot(user, assets, liabilities, latest), nil
}
