package calculator

import (
	"strconv"

	"github.com/maple-budget/maple/internal/finance"
	"github.com/maple-budget/maple/internal/money"
	"github.com/shopspring/decimal"
)

const (
	maxInsuredAmortization   = 25
	maxFirstTimeAmortization = 30
	maxUninsuredAmortization = 30
)

// MortgageInputs describes a Canadian fixed-rate mortgage.
type MortgageInputs struct {
	HomePrice         decimal.Decimal  `json:"homePrice"`
	DownPayment       decimal.Decimal  `json:"downPayment"`
	InterestRate      decimal.Decimal  `json:"interestRate"` // annual percent
	AmortizationYears int              `json:"amortizationYears"`
	Frequency         PaymentFrequency `json:"frequency"`
	FirstTimeBuyer    bool             `json:"firstTimeBuyer"`
}

// MortgageResult is the payment and cost of a mortgage.
type MortgageResult struct {
	Frequency          PaymentFrequency `json:"frequency"`
	MinimumDownPayment decimal.Decimal  `json:"minimumDownPayment"`
	DownPaymentPercent decimal.Decimal  `json:"downPaymentPercent"`
	CMHCPremium        decimal.Decimal  `json:"cmhcPremium"`
	Principal          decimal.Decimal  `json:"principal"` // loan plus any insurance premium
	Payment            decimal.Decimal  `json:"payment"`
	NumberOfPayments   int              `json:"numberOfPayments"`
	TotalInterest      decimal.Decimal  `json:"totalInterest"`
	TotalCost          decimal.Decimal  `json:"totalCost"`
	Yearly             []YearSummary    `json:"yearlySummary"`
}

func (in MortgageInputs) insured() bool {
	return in.DownPayment.LessThan(in.HomePrice.Mul(conventionalRatio))
}

// MaxAmortization returns the longest amortization allowed for these inputs.
func (in MortgageInputs) MaxAmortization() int {
	switch {
	case !in.insured():
		return maxUninsuredAmortization
	case in.FirstTimeBuyer:
		return maxFirstTimeAmortization
	}
	return maxInsuredAmortization
}

// Validate checks the mortgage inputs.
func (in MortgageInputs) Validate() error {
	var c checker
	c.amount("homePrice", in.HomePrice)
	c.amount("downPayment", in.DownPayment)
	if len(c.errs) > 0 {
		return invalid(c.errs)
	}
	c.check(in.HomePrice.IsPositive(), "homePrice", "Home price must be greater than 0")
	c.check(!in.DownPayment.IsNegative(), "downPayment", "Down payment cannot be negative")
	if in.HomePrice.IsPositive() {
		c.check(in.DownPayment.LessThan(in.HomePrice), "downPayment", "Down payment must be less than the home price")
		if minDown := MinimumDownPayment(in.HomePrice); in.DownPayment.LessThan(minDown) {
			c.add("downPayment", "Down payment must be at least "+money.Format(minDown))
		}
	}
	c.check(between(in.InterestRate, "0", "25"), "interestRate", "Interest rate must be between 0% and 25%")
	if maxYears := in.MaxAmortization(); in.AmortizationYears < 1 || in.AmortizationYears > maxYears {
		c.add("amortizationYears", "Amortization must be between 1 and "+strconv.Itoa(maxYears)+" years")
	}
	c.check(in.Frequency.PeriodsPerYear() > 0, "frequency", "Payment frequency is not supported")
	if len(c.errs) > 0 {
		return invalid(c.errs)
	}
	return nil
}

// CalculateMortgage returns the payment on a mortgage compounded semi-annually,
// with the default insurance premium added to the principal when the down
// payment is under 20%.
func CalculateMortgage(in MortgageInputs) (MortgageResult, error) {
	if err := in.Validate(); err != nil {
		return MortgageResult{}, err
	}
	if in.Frequency == "" {
		in.Frequency = Monthly
	}

	premium := CMHCPremium(in.HomePrice, in.DownPayment)
	principal := in.HomePrice.Sub(in.DownPayment).Add(premium)
	payment, rows := amortize(principal, in.InterestRate, in.AmortizationYears, in.Frequency, finance.CompoundSemiAnnual)
	paid, interest := finance.Totals(rows)

	return MortgageResult{
		Frequency:          in.Frequency,
		MinimumDownPayment: MinimumDownPayment(in.HomePrice),
		DownPaymentPercent: in.DownPayment.Div(in.HomePrice).Mul(hundred).Round(2),
		CMHCPremium:        premium,
		Principal:          principal,
		Payment:            payment,
		NumberOfPayments:   len(rows),
		TotalInterest:      interest,
		TotalCost:          paid,
		Yearly:             summarizeYears(rows, in.Frequency.PeriodsPerYear()),
	}, nil
}
