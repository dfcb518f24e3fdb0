package importer

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/maple-budget/maple/internal/categories"
	"github.com/maple-budget/maple/internal/model"
)

// Matcher classifies a transaction description into a category.
type Matcher interface {
	Match(description string, t model.ItemType) (categories.Category, bool)
	Fallback(t model.ItemType) categories.Category
}

// Summarize groups transactions by matched category and returns one monthly
// budget item per category, averaged over the calendar months the
// transactions span. Income items come first, then expenses, each by category ID.
func Summarize(txns []model.BankTransaction, m Matcher) []model.BudgetItem {
	if len(txns) == 0 {
		return nil
	}

	type key struct {
		typ model.ItemType
		cat string
	}
	totals := map[key]decimal.Decimal{}
	names := map[string]string{}

	first, last := txns[0].Date, txns[0].Date
	for _, t := range txns {
		if t.Date.Before(first) {
			first = t.Date
		}
		if t.Date.After(last) {
			last = t.Date
		}
		if t.Amount.IsZero() {
			continue
		}

		typ := model.ItemIncome
		if t.Outflow() {
			typ = model.ItemExpense
		}
		c, ok := m.Match(t.Description, typ)
		if !ok {
			c = m.Fallback(typ)
		}
		k := key{typ: typ, cat: c.ID}
		totals[k] = totals[k].Add(t.Amount.Abs())
		names[c.ID] = c.Name
	}

	months := decimal.NewFromInt(int64(monthSpan(first.Year(), int(first.Month()), last.Year(), int(last.Month()))))

	keys := make([]key, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].typ != keys[j].typ {
			return keys[i].typ == model.ItemIncome
		}
		return keys[i].cat < keys[j].cat
	})

	items := make([]model.BudgetItem, 0, len(keys))
	for _, k := range keys {
		monthly := totals[k].Div(months).Round(2)
		items = append(items, model.BudgetItem{
			Type:          k.typ,
			Category:      k.cat,
			Name:          names[k.cat],
			Amount:        monthly,
			Frequency:     model.FrequencyMonthly,
			MonthlyAmount: monthly,
		})
	}
	return items
}

// monthSpan counts calendar months from y1/m1 to y2/m2 inclusive.
func monthSpan(y1, m1, y2, m2 int) int {
	return (y2-y1)*12 + (m2 - m1) + 1
}
