// Package budget builds household budgets and computes their after-tax summary.
package budget

import (
	"fmt"
	"strings"

	"github.com/maple-budget/maple/internal/model"
	"github.com/maple-budget/maple/internal/money"
)

// Validate checks a budget and its items.
func Validate(b model.Budget) model.ValidationErrors {
	var errs model.ValidationErrors
	add := func(field, msg string) {
		errs = append(errs, model.FieldError{Field: field, Message: msg})
	}

	if strings.TrimSpace(b.Name) == "" {
		add("name", "Budget name is required")
	}
	if !b.Province.Valid() {
		add("province", "Province is required")
	}
	if b.LifeSituation != "" && !b.LifeSituation.Valid() {
		add("lifeSituation", "Life situation must be single, couple or family")
	}

	for i, it := range b.Items {
		field := func(name string) string { return fmt.Sprintf("budgetItems[%d].%s", i, name) }
		if strings.TrimSpace(it.Name) == "" {
			add(field("name"), "Item name is required")
		}
		if it.Type != model.ItemIncome && it.Type != model.ItemExpense {
			add(field("type"), "Item type must be INCOME or EXPENSE")
		}
		switch {
		case !money.InRange(it.Amount):
			add(field("amount"), "Amount is out of range")
		case it.Amount.IsNegative():
			add(field("amount"), "Amount cannot be negative")
		}
		if !it.Frequency.Valid() {
			add(field("frequency"), "Frequency is not supported")
		}
		if b.LifeSituation.Partnered() && it.Type == model.ItemIncome && strings.TrimSpace(it.Owner) == "" {
			add(field("owner"), "Income owner is required for couple budgets")
		}
	}
	return errs
}
