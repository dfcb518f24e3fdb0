package debt

import (
	"errors"
	"fmt"
	"sort"

	"github.com/maple-budget/maple/internal/model"
	"github.com/shopspring/decimal"
)

// ErrNeverPaidOff is returned when payments cannot retire the debts.
var ErrNeverPaidOff = errors.New("debts are never paid off with these payments")

// MaxMonths bounds a payoff simulation.
const MaxMonths = 600

// Strategy picks which debt receives extra money first.
type Strategy string

const (
	// Avalanche targets the highest interest rate first.
	Avalanche Strategy = "avalanche"
	// Snowball targets the smallest balance first.
	Snowball Strategy = "snowball"
)

// ParseStrategy accepts "avalanche" or "snowball"; empty means avalanche.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case "", Avalanche:
		return Avalanche, nil
	case Snowball:
		return Snowball, nil
	}
	return "", fmt.Errorf("unknown payoff strategy %q", s)
}

// Payoff is the outcome for a single debt.
type Payoff struct {
	ID           string          `json:"id,omitempty"`
	Name         string          `json:"name"`
	PayoffMonth  int             `json:"payoffMonth"`
	InterestPaid decimal.Decimal `json:"interestPaid"`
}

// Plan is a month-by-month payoff simulation.
type Plan struct {
	Strategy      Strategy        `json:"strategy"`
	ExtraPayment  decimal.Decimal `json:"extraPayment"`
	MonthlyBudget decimal.Decimal `json:"monthlyBudget"`
	Months        int             `json:"months"`
	TotalInterest decimal.Decimal `json:"totalInterest"`
	TotalPaid     decimal.Decimal `json:"totalPaid"`
	Debts         []Payoff        `json:"debts"` // in targeting order
}

type account struct {
	debt     model.Debt
	balance  decimal.Decimal
	payment  decimal.Decimal
	interest decimal.Decimal
	paidOff  int
}

// PlanPayoff simulates paying debts with their regular payments plus extra each
// month. Interest accrues monthly, every debt receives its payment, and whatever
// is left goes to the target debt chosen by strategy. The monthly budget stays
// fixed, so payments freed by a retired debt roll over to the next target.
func PlanPayoff(debts []model.Debt, strategy Strategy, extra decimal.Decimal) (Plan, error) {
	if extra.IsNegative() {
		return Plan{}, fmt.Errorf("planning payoff: extra payment cannot be negative")
	}

	var accts []*account
	budget := extra
	for _, d := range debts {
		if !d.Balance.IsPositive() {
			continue
		}
		a := &account{debt: d, balance: d.Balance, payment: d.Payment()}
		accts = append(accts, a)
		budget = budget.Add(a.payment)
	}

	plan := Plan{Strategy: strategy, ExtraPayment: extra, MonthlyBudget: budget}
	order := targetOrder(accts, strategy)

	prev := totalBalance(accts)
	for month := 1; prev.IsPositive(); month++ {
		if month > MaxMonths {
			return Plan{}, fmt.Errorf("planning payoff: %w within %d months", ErrNeverPaidOff, MaxMonths)
		}

		for _, a := range accts {
			if a.balance.IsPositive() {
				i := MonthlyInterest(a.balance, a.debt.InterestRate)
				a.balance = a.balance.Add(i)
				a.interest = a.interest.Add(i)
				plan.TotalInterest = plan.TotalInterest.Add(i)
			}
		}

		avail := budget
		pay := func(a *account, amount decimal.Decimal) {
			amount = decimal.Min(amount, a.balance, avail)
			a.balance = a.balance.Sub(amount)
			avail = avail.Sub(amount)
			plan.TotalPaid = plan.TotalPaid.Add(amount)
		}
		for _, a := range accts {
			if a.balance.IsPositive() {
				pay(a, a.payment)
			}
		}
		for _, a := range order {
			if !avail.IsPositive() {
				break
			}
			if a.balance.IsPositive() {
				pay(a, avail)
			}
		}

		for _, a := range accts {
			if !a.balance.IsPositive() && a.paidOff == 0 {
				a.paidOff = month
			}
		}

		total := totalBalance(accts)
		if total.GreaterThanOrEqual(prev) {
			return Plan{}, fmt.Errorf("planning payoff: %w: payments do not cover interest", ErrNeverPaidOff)
		}
		prev = total
		plan.Months = month
	}

	for _, a := range order {
		plan.Debts = append(plan.Debts, Payoff{
			ID:           a.debt.ID,
			Name:         a.debt.Name,
			PayoffMonth:  a.paidOff,
			InterestPaid: a.interest,
		})
	}
	return plan, nil
}

// MonthsToPayoff returns how long d takes to retire at its own payment.
func MonthsToPayoff(d model.Debt) (int, decimal.Decimal, error) {
	p, err := PlanPayoff([]model.Debt{d}, Avalanche, decimal.Zero)
	if err != nil {
		return 0, decimal.Zero, err
	}
	return p.Months, p.TotalInterest, nil
}

func targetOrder(accts []*account, strategy Strategy) []*account {
	order := make([]*account, len(accts))
	copy(order, accts)
	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i].debt, order[j].debt
		if strategy == Snowball {
			if !a.Balance.Equal(b.Balance) {
				return a.Balance.LessThan(b.Balance)
			}
			return a.InterestRate.GreaterThan(b.InterestRate)
		}
		if !a.InterestRate.Equal(b.InterestRate) {
			return a.InterestRate.GreaterThan(b.InterestRate)
		}
		return a.Balance.LessThan(b.Balance)
	})
	return order
}

func totalBalance(accts []*account) decimal.Decimal {
	t := decimal.Zero
	for _, a := range accts {
		t = t.Add(a.balance)
	}
	return t
}
