package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemType separates money coming in from money going out.
type ItemType string

const (
	ItemIncome  ItemType = "INCOME"
	ItemExpense ItemType = "EXPENSE"
)

// LifeSituation drives whether income is taxed per partner.
type LifeSituation string

const (
	LifeSingle LifeSituation = "single"
	LifeCouple LifeSituation = "couple"
	LifeFamily LifeSituation = "family"
)

// Valid reports whether l is a known life situation.
func (l LifeSituation) Valid() bool {
	switch l {
	case LifeSingle, LifeCouple, LifeFamily:
		return true
	}
	return false
}

// Partnered reports whether income should be split per owner.
func (l LifeSituation) Partnered() bool {
	return l == LifeCouple || l == LifeFamily
}

// Budget is a named household budget.
type Budget struct {
	ID            string          `json:"id"`
	UserID        string          `json:"userId"`
	Name          string          `json:"name"`
	Province      Province        `json:"province"`
	LifeSituation LifeSituation   `json:"lifeSituation"`
	NetIncome     decimal.Decimal `json:"netIncome"`     // monthly, after tax
	TotalExpenses decimal.Decimal `json:"totalExpenses"` // monthly
	Items         []BudgetItem    `json:"budgetItems"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// BudgetItem is a single income or expense line.
type BudgetItem struct {
	ID            string          `json:"id"`
	BudgetID      string          `json:"budgetId"`
	Type          ItemType        `json:"type"`
	Category      string          `json:"category"`
	Subcategory   string          `json:"subcategory,omitempty"`
	Name          string          `json:"name"`
	Amount        decimal.Decimal `json:"amount"`
	Frequency     Frequency       `json:"frequency"`
	MonthlyAmount decimal.Decimal `json:"monthlyAmount"`
	Owner         string          `json:"owner,omitempty"` // partner name, couple budgets only
}

// Incomes returns the income items of b.
func (b Budget) Incomes() []BudgetItem { return b.itemsOf(ItemIncome) }

// Expenses returns the expense items of b.
func (b Budget) Expenses() []BudgetItem { return b.itemsOf(ItemExpense) }

func (b Budget) itemsOf(t ItemType) []BudgetItem {
	var out []BudgetItem
	for _, it := range b.Items {
		if it.Type == t {
			out = append(out, it)
		}
	}
	return out
}
