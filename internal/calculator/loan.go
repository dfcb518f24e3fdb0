package calculator

import (
	"github.com/maple-budget/maple/internal/finance"
	"github.com/shopspring/decimal"
)

// LoanInputs describes a fixed-rate installment loan.
type LoanInputs struct {
	Principal    decimal.Decimal  `json:"principal"`
	InterestRate decimal.Decimal  `json:"interestRate"` // annual percent
	TermYears    int              `json:"termYears"`
	Frequency    PaymentFrequency `json:"frequency"`
	LoanType     string           `json:"loanType,omitempty"` // personal, auto, student, ...
}

// LoanResult is the cost of a loan and its amortization schedule.
type LoanResult struct {
	LoanType         string           `json:"loanType,omitempty"`
	Frequency        PaymentFrequency `json:"frequency"`
	Payment          decimal.Decimal  `json:"payment"`
	NumberOfPayments int              `json:"numberOfPayments"`
	TotalInterest    decimal.Decimal  `json:"totalInterest"`
	TotalCost        decimal.Decimal  `json:"totalCost"`
	Yearly           []YearSummary    `json:"yearlySummary"`
	Schedule         []finance.Row    `json:"schedule"`
}

// YearSummary aggregates one year of a schedule.
type YearSummary struct {
	Year          int             `json:"year"`
	PrincipalPaid decimal.Decimal `json:"principalPaid"`
	InterestPaid  decimal.Decimal `json:"interestPaid"`
	EndBalance    decimal.Decimal `json:"endBalance"`
}

// Validate checks the loan inputs.
func (in LoanInputs) Validate() error {
	var c checker
	c.amount("principal", in.Principal)
	c.check(in.Principal.IsPositive(), "principal", "Loan amount must be greater than 0")
	c.check(between(in.InterestRate, "0", "50"), "interestRate", "Interest rate must be between 0% and 50%")
	c.check(in.TermYears >= 1 && in.TermYears <= 50, "termYears", "Loan term must be between 1 and 50 years")
	c.check(in.Frequency.PeriodsPerYear() > 0, "frequency", "Payment frequency is not supported")
	if len(c.errs) > 0 {
		return invalid(c.errs)
	}
	return nil
}

// CalculateLoan returns the payment, interest and schedule of a loan.
// Interest compounds once per payment period.
func CalculateLoan(in LoanInputs) (LoanResult, error) {
	if err := in.Validate(); err != nil {
		return LoanResult{}, err
	}
	if in.Frequency == "" {
		in.Frequency = Monthly
	}

	payment, rows := amortize(in.Principal, in.InterestRate, in.TermYears, in.Frequency, finance.CompoundPeriodic)
	paid, interest := finance.Totals(rows)
	return LoanResult{
		LoanType:         in.LoanType,
		Frequency:        in.Frequency,
		Payment:          payment,
		NumberOfPayments: len(rows),
		TotalInterest:    interest,
		TotalCost:        paid,
		Yearly:           summarizeYears(rows, in.Frequency.PeriodsPerYear()),
		Schedule:         rows,
	}, nil
}

// amortize computes the regular payment and the full schedule. Accelerated
// frequencies pay a fraction of the monthly payment more often, which retires
// the loan early.
func amortize(principal, annualRate decimal.Decimal, years int, freq PaymentFrequency, comp finance.Compounding) (decimal.Decimal, []finance.Row) {
	perYear := freq.PeriodsPerYear()
	rate := finance.PeriodicRate(annualRate, perYear, comp)

	var payment decimal.Decimal
	if div := freq.accelerationDivisor(); div > 0 {
		monthly := finance.Payment(principal, finance.PeriodicRate(annualRate, 12, comp), years*12)
		payment = monthly.Div(decimal.NewFromInt(div)).Round(2)
	} else {
		payment = finance.Payment(principal, rate, years*perYear)
	}
	return payment, finance.Schedule(principal, rate, payment, years*perYear)
}

func summarizeYears(rows []finance.Row, perYear int) []YearSummary {
	var out []YearSummary
	for _, r := range rows {
		year := (r.Period-1)/perYear + 1
		if len(out) < year {
			out = append(out, YearSummary{Year: year})
		}
		y := &out[year-1]
		y.PrincipalPaid = y.PrincipalPaid.Add(r.Principal)
		y.InterestPaid = y.InterestPaid.Add(r.Interest)
		y.EndBalance = r.Balance
	}
	return out
}
