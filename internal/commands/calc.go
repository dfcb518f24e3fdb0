package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/maple-budget/maple/internal/calculator"
	"github.com/maple-budget/maple/internal/debt"
	"github.com/maple-budget/maple/internal/model"
	"github.com/maple-budget/maple/internal/money"
	"github.com/maple-budget/maple/internal/tax"
)

func newCalcCommand(a *app) *cobra.Command {
	var asJSON bool

	calcCmd := &cobra.Command{
		Use:   "calc",
		Short: "Run a financial calculator",
	}
	calcCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "print the full result as JSON")

	calcCmd.AddCommand(
		newCalcTaxCommand(a, &asJSON),
		newCalcMinPaymentCommand(&asJSON),
		newCalcLoanCommand(&asJSON),
		newCalcMortgageCommand(&asJSON),
		newCalcAffordCommand(a, &asJSON),
		newCalcRRSPCommand(a, &asJSON),
		newCalcBuyRentCommand(a, &asJSON),
	)
	return calcCmd
}

// show prints res as JSON or through human.
func show[T any](cmd *cobra.Command, asJSON bool, res T, human func(io.Writer, T) error) error {
	if asJSON {
		return printJSON(cmd.OutOrStdout(), res)
	}
	return human(cmd.OutOrStdout(), res)
}

func newCalcTaxCommand(a *app, asJSON *bool) *cobra.Command {
	var income decimal.Decimal
	var province model.Province

	cmd := &cobra.Command{
		Use:   "tax",
		Short: "Estimate federal and provincial income tax",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := tax.Calculate(income, a.province(province))
			if err != nil {
				return err
			}
			return show(cmd, *asJSON, res, func(w io.Writer, r tax.Result) error {
				return table(w, [][]string{
					{"Income", money.Format(r.Income)},
					{"Federal tax", money.Format(r.FederalTax)},
					{"Provincial tax", money.Format(r.ProvincialTax)},
					{"Total tax", money.Format(r.TotalTax)},
					{"Net income", money.Format(r.NetIncome)},
					{"Average rate", money.Percent(r.AverageRate)},
					{"Marginal rate", money.Percent(r.MarginalRate)},
				})
			})
		},
	}

	decimalVar(cmd.Flags(), &income, "income", "0", "annual income")
	provinceVar(cmd.Flags(), &province, "province", "province code (default from config)")
	_ = cmd.MarkFlagRequired("income")

	return cmd
}

func newCalcMinPaymentCommand(asJSON *bool) *cobra.Command {
	var d model.Debt
	var kind string

	cmd := &cobra.Command{
		Use:   "min-payment",
		Short: "Compute the minimum monthly payment of a debt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d.Kind = model.DebtKind(kind)
			if d.Name == "" {
				d.Name = debt.DisplayName(d.Kind)
			}
			if err := debt.Validate(d).Err(); err != nil {
				return err
			}
			d.MinPayment = debt.MinimumPayment(d)
			return show(cmd, *asJSON, d, func(w io.Writer, d model.Debt) error {
				rows := [][]string{
					{"Debt", debt.DisplayName(d.Kind)},
					{"Minimum payment", money.Format(d.MinPayment)},
				}
				if months, interest, err := debt.MonthsToPayoff(d); err == nil {
					rows = append(rows,
						[]string{"Months to pay off", strconv.Itoa(months)},
						[]string{"Total interest", money.Format(interest)})
				} else {
					rows = append(rows, []string{"Months to pay off", "never at the minimum"})
				}
				return table(w, rows)
			})
		},
	}

	kinds := make([]string, len(model.DebtKinds))
	for i, k := range model.DebtKinds {
		kinds[i] = string(k)
	}
	f := cmd.Flags()
	f.StringVar(&kind, "kind", "", "debt kind: "+strings.Join(kinds, ", "))
	f.StringVar(&d.Name, "name", "", "debt name")
	decimalVar(f, &d.Balance, "balance", "0", "current balance")
	decimalVar(f, &d.Limit, "limit", "0", "credit limit (LOC and credit cards)")
	decimalVar(f, &d.InterestRate, "rate", "0", "annual interest rate, percent")
	f.IntVar(&d.Term, "term", 0, "loan term in months")
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("balance")

	return cmd
}

func frequencyFlag(cmd *cobra.Command, p *calculator.PaymentFrequency) {
	cmd.Flags().StringVar((*string)(p), "frequency", string(calculator.Monthly),
		"payment frequency: monthly, bi-weekly, weekly, accelerated-bi-weekly, accelerated-weekly")
}

func newCalcLoanCommand(asJSON *bool) *cobra.Command {
	var in calculator.LoanInputs

	cmd := &cobra.Command{
		Use:   "loan",
		Short: "Compute a loan payment and its total cost",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := calculator.CalculateLoan(in)
			if err != nil {
				return err
			}
			return show(cmd, *asJSON, res, func(w io.Writer, r calculator.LoanResult) error {
				return table(w, [][]string{
					{"Payment (" + string(r.Frequency) + ")", money.Format(r.Payment)},
					{"Payments", strconv.Itoa(r.NumberOfPayments)},
					{"Total interest", money.Format(r.TotalInterest)},
					{"Total cost", money.Format(r.TotalCost)},
				})
			})
		},
	}

	f := cmd.Flags()
	decimalVar(f, &in.Principal, "principal", "0", "amount borrowed")
	decimalVar(f, &in.InterestRate, "rate", "0", "annual interest rate, percent")
	f.IntVar(&in.TermYears, "years", 5, "term in years")
	f.StringVar(&in.LoanType, "type", "personal", "loan type")
	frequencyFlag(cmd, &in.Frequency)
	_ = cmd.MarkFlagRequired("principal")

	return cmd
}

func newCalcMortgageCommand(asJSON *bool) *cobra.Command {
	var in calculator.MortgageInputs

	cmd := &cobra.Command{
		Use:   "mortgage",
		Short: "Compute a mortgage payment with CMHC insurance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := calculator.CalculateMortgage(in)
			if err != nil {
				return err
			}
			return show(cmd, *asJSON, res, func(w io.Writer, r calculator.MortgageResult) error {
				return table(w, [][]string{
					{"Minimum down payment", money.Format(r.MinimumDownPayment)},
					{"Down payment", money.Percent(r.DownPaymentPercent)},
					{"CMHC premium", money.Format(r.CMHCPremium)},
					{"Mortgage principal", money.Format(r.Principal)},
					{"Payment (" + string(r.Frequency) + ")", money.Format(r.Payment)},
					{"Total interest", money.Format(r.TotalInterest)},
					{"Total cost", money.Format(r.TotalCost)},
				})
			})
		},
	}

	f := cmd.Flags()
	decimalVar(f, &in.HomePrice, "price", "0", "home price")
	decimalVar(f, &in.DownPayment, "down", "0", "down payment")
	decimalVar(f, &in.InterestRate, "rate", "0", "annual interest rate, percent")
	f.IntVar(&in.AmortizationYears, "years", 25, "amortization in years")
	f.BoolVar(&in.FirstTimeBuyer, "first-time", false, "first-time buyer (30-year insured amortization)")
	frequencyFlag(cmd, &in.Frequency)
	_ = cmd.MarkFlagRequired("price")
	_ = cmd.MarkFlagRequired("down")

	return cmd
}

func newCalcAffordCommand(a *app, asJSON *bool) *cobra.Command {
	var in calculator.AffordabilityInputs

	cmd := &cobra.Command{
		Use:   "afford",
		Short: "Estimate the most home you can afford",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Province = a.province(in.Province)
			res, err := calculator.CalculateAffordability(in)
			if err != nil {
				return err
			}
			return show(cmd, *asJSON, res, func(w io.Writer, r calculator.AffordabilityResult) error {
				if err := table(w, [][]string{
					{"Maximum home price", money.Format(r.MaxHomePrice)},
					{"Maximum mortgage", money.Format(r.MaxMortgage)},
					{"Qualifying rate", money.Percent(r.QualifyingRate)},
					{"Monthly payment", money.Format(r.MonthlyPayment)},
					{"Monthly housing costs", money.Format(r.MonthlyHousingCosts)},
					{"GDS", money.Percent(r.GDSRatio)},
					{"TDS", money.Percent(r.TDSRatio)},
					{"Limited by", r.LimitedBy},
				}); err != nil {
					return err
				}
				for _, rec := range r.Recommendations {
					fmt.Fprintf(w, "- %s\n", rec)
				}
				return nil
			})
		},
	}

	f := cmd.Flags()
	decimalVar(f, &in.AnnualIncome, "income", "0", "gross annual household income")
	decimalVar(f, &in.MonthlyDebts, "debts", "0", "monthly debt payments")
	decimalVar(f, &in.DownPayment, "down", "0", "down payment")
	decimalVar(f, &in.InterestRate, "rate", "0", "annual interest rate, percent")
	f.IntVar(&in.AmortizationYears, "years", 25, "amortization in years")
	provinceVar(f, &in.Province, "province", "province code (default from config)")
	decimalVar(f, &in.MonthlyHeating, "heating", "0", "monthly heating")
	decimalVar(f, &in.AnnualPropertyTax, "property-tax", "0", "annual property tax (0 estimates it)")
	decimalVar(f, &in.MonthlyCondoFees, "condo-fees", "0", "monthly condo fees")
	_ = cmd.MarkFlagRequired("income")
	_ = cmd.MarkFlagRequired("rate")

	return cmd
}

func newCalcRRSPCommand(a *app, asJSON *bool) *cobra.Command {
	var in calculator.RRSPTFSAInputs

	cmd := &cobra.Command{
		Use:   "rrsp-tfsa",
		Short: "Compare RRSP and TFSA contributions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Province = a.province(in.Province)
			res, err := calculator.CalculateRRSPvsTFSA(in)
			if err != nil {
				return err
			}
			return show(cmd, *asJSON, res, func(w io.Writer, r calculator.RRSPTFSAResult) error {
				if err := table(w, [][]string{
					{"Recommendation", r.Recommendation},
					{"Years to retirement", strconv.Itoa(r.YearsToRetirement)},
					{"Marginal rate now", money.Percent(r.CurrentMarginalRate)},
					{"Marginal rate in retirement", money.Percent(r.RetirementMarginalRate)},
					{"Split to RRSP", money.Format(r.SplitRRSP)},
					{"Split to TFSA", money.Format(r.SplitTFSA)},
				}); err != nil {
					return err
				}
				for _, reason := range r.Reasoning {
					fmt.Fprintf(w, "- %s\n", reason)
				}
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.IntVar(&in.Age, "age", 0, "current age")
	decimalVar(f, &in.AnnualIncome, "income", "0", "annual income")
	decimalVar(f, &in.RetirementIncome, "retirement-income", "0", "expected annual retirement income")
	decimalVar(f, &in.AnnualContribution, "contribution", "0", "annual contribution")
	decimalVar(f, &in.ExpectedReturn, "return", "6", "expected annual return, percent")
	f.IntVar(&in.YearsToRetirement, "years", 0, "years to retirement (0 means until 65)")
	provinceVar(f, &in.Province, "province", "province code (default from config)")
	_ = cmd.MarkFlagRequired("age")
	_ = cmd.MarkFlagRequired("income")
	_ = cmd.MarkFlagRequired("contribution")

	return cmd
}

func newCalcBuyRentCommand(a *app, asJSON *bool) *cobra.Command {
	var in calculator.BuyRentInputs

	cmd := &cobra.Command{
		Use:   "buy-vs-rent",
		Short: "Compare buying a home with renting and investing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Province = a.province(in.Province)
			res, err := calculator.CalculateBuyVsRent(in)
			if err != nil {
				return err
			}
			return show(cmd, *asJSON, res, func(w io.Writer, r calculator.BuyRentResult) error {
				breakEven := "never"
				if r.BreakEvenYear > 0 {
					breakEven = "year " + strconv.Itoa(r.BreakEvenYear)
				}
				if err := table(w, [][]string{
					{"Upfront cost", money.Format(r.UpfrontCost)},
					{"Land transfer tax", money.Format(r.LandTransferTax)},
					{"Monthly mortgage", money.Format(r.MortgagePayment)},
					{"Buyer wealth", money.Format(r.FinalBuyerWealth)},
					{"Renter wealth", money.Format(r.FinalRenterWealth)},
					{"Break-even", breakEven},
					{"Recommendation", r.Recommendation},
				}); err != nil {
					return err
				}
				_, err := fmt.Fprintln(w, r.Reasoning)
				return err
			})
		},
	}

	f := cmd.Flags()
	decimalVar(f, &in.HomePrice, "price", "0", "home price")
	decimalVar(f, &in.DownPayment, "down", "0", "down payment")
	decimalVar(f, &in.MortgageRate, "rate", "0", "mortgage rate, percent")
	f.IntVar(&in.AmortizationYears, "amortization", 25, "amortization in years")
	f.BoolVar(&in.FirstTimeBuyer, "first-time", false, "first-time buyer")
	decimalVar(f, &in.MonthlyRent, "rent", "0", "monthly rent")
	decimalVar(f, &in.RentIncrease, "rent-increase", "3", "annual rent increase, percent")
	decimalVar(f, &in.PropertyTax, "property-tax", "0", "annual property tax (0 estimates it)")
	decimalVar(f, &in.HomeInsurance, "insurance", "1200", "annual home insurance")
	decimalVar(f, &in.Maintenance, "maintenance", "1", "annual maintenance, percent of home value")
	decimalVar(f, &in.Utilities, "utilities", "0", "monthly utilities paid by owners")
	decimalVar(f, &in.CondoFees, "condo-fees", "0", "monthly condo fees")
	decimalVar(f, &in.InvestmentReturn, "return", "6", "annual investment return, percent")
	decimalVar(f, &in.Appreciation, "appreciation", "3", "annual home appreciation, percent")
	decimalVar(f, &in.MarginalTaxRate, "marginal-rate", "0", "marginal tax rate on investment gains, percent")
	f.IntVar(&in.Years, "years", 10, "comparison horizon in years")
	provinceVar(f, &in.Province, "province", "province code (default from config)")
	_ = cmd.MarkFlagRequired("price")
	_ = cmd.MarkFlagRequired("down")
	_ = cmd.MarkFlagRequired("rate")
	_ = cmd.MarkFlagRequired("rent")

	return cmd
}
