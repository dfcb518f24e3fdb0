package commands

import (
	"io"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/maple-budget/maple/internal/debt"
	"github.com/maple-budget/maple/internal/model"
	"github.com/maple-budget/maple/internal/money"
)

func newDebtsCommand(a *app) *cobra.Command {
	var email string

	debtsCmd := &cobra.Command{
		Use:   "debts",
		Short: "Inspect a user's debts",
	}
	debtsCmd.PersistentFlags().StringVarP(&email, "user", "u", "", "email of the user")

	debtsCmd.AddCommand(newDebtsListCommand(a, &email), newDebtsPayoffCommand(a, &email))
	return debtsCmd
}

func newDebtsListCommand(a *app, email *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List debts with their payments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			u, err := e.user(ctx, *email)
			if err != nil {
				return err
			}
			debts, err := e.debts.List(ctx, u.ID)
			if err != nil {
				return err
			}
			return writeDebts(cmd.OutOrStdout(), debts)
		},
	}
}

func writeDebts(w io.Writer, debts []model.Debt) error {
	rows := [][]string{{"NAME", "TYPE", "BALANCE", "RATE", "MINIMUM", "PAYMENT"}}
	for _, d := range debts {
		rows = append(rows, []string{
			d.Name,
			debt.DisplayName(d.Kind),
			money.Format(d.Balance),
			money.Percent(d.InterestRate),
			money.Format(d.MinPayment),
			money.Format(d.Payment()),
		})
	}
	minimum, actual := debt.Totals(debts)
	rows = append(rows, []string{"Total", "", "", "", money.Format(minimum), money.Format(actual)})
	return table(w, rows)
}

func newDebtsPayoffCommand(a *app, email *string) *cobra.Command {
	var strategy string
	var extra decimal.Decimal

	cmd := &cobra.Command{
		Use:   "payoff",
		Short: "Plan paying off every debt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := debt.ParseStrategy(strategy)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			e, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			u, err := e.user(ctx, *email)
			if err != nil {
				return err
			}
			debts, err := e.debts.List(ctx, u.ID)
			if err != nil {
				return err
			}
			plan, err := debt.PlanPayoff(debts, st, extra)
			if err != nil {
				return err
			}
			return writePlan(cmd.OutOrStdout(), plan)
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", string(debt.Avalanche), "avalanche (highest rate first) or snowball (smallest balance first)")
	decimalVar(cmd.Flags(), &extra, "extra", "0", "extra monthly payment on top of the regular payments")

	return cmd
}

func writePlan(w io.Writer, p debt.Plan) error {
	rows := [][]string{{"ORDER", "NAME", "PAID OFF", "INTEREST"}}
	for i, d := range p.Debts {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			d.Name,
			"month " + strconv.Itoa(d.PayoffMonth),
			money.Format(d.InterestPaid),
		})
	}
	rows = append(rows,
		[]string{"", "Debt free in", strconv.Itoa(p.Months) + " months", ""},
		[]string{"", "Monthly budget", money.Format(p.MonthlyBudget), ""},
		[]string{"", "Total interest", money.Format(p.TotalInterest), ""},
		[]string{"", "Total paid", money.Format(p.TotalPaid), ""})
	return table(w, rows)
}
