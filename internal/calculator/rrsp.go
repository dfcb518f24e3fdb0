package calculator

import (
	"fmt"

	"github.com/maple-budget/maple/internal/finance"
	"github.com/maple-budget/maple/internal/model"
	"github.com/maple-budget/maple/internal/money"
	"github.com/maple-budget/maple/internal/tax"
	"github.com/shopspring/decimal"
)

var (
	// RRSPDollarLimit is the 2024 RRSP contribution ceiling.
	RRSPDollarLimit = d("31560")
	// TFSAAnnualLimit is the 2024 TFSA contribution room.
	TFSAAnnualLimit = d("7000")

	rrspIncomeShare = d("0.18")
	rrspFavoured    = d("5") // rate advantage, in points, above which RRSP wins outright
)

// RetirementAge is assumed when years to retirement is not given.
const RetirementAge = 65

// Account recommendations.
const (
	RecommendRRSP  = "RRSP"
	RecommendTFSA  = "TFSA"
	RecommendSplit = "Split"
)

// RRSPTFSAInputs describes a saver choosing between an RRSP and a TFSA.
type RRSPTFSAInputs struct {
	Age                    int             `json:"age"`
	AnnualIncome           decimal.Decimal `json:"annualIncome"`
	RetirementIncome       decimal.Decimal `json:"expectedRetirementIncome"`
	AnnualContribution     decimal.Decimal `json:"annualContribution"`
	ExpectedReturn         decimal.Decimal `json:"expectedReturn"` // annual percent
	YearsToRetirement      int             `json:"yearsToRetirement"`      // zero = until 65
	CurrentMarginalRate    decimal.Decimal `json:"currentMarginalRate"`    // zero = from tax brackets
	RetirementMarginalRate decimal.Decimal `json:"retirementMarginalRate"` // zero = from tax brackets
	Province               model.Province  `json:"province"`
}

// AccountProjection is the value of one account at retirement.
type AccountProjection struct {
	TotalContributions decimal.Decimal `json:"totalContributions"`
	FutureValue        decimal.Decimal `json:"futureValue"`
	TaxOnWithdrawal    decimal.Decimal `json:"taxOnWithdrawal"`
	TaxRefunds         decimal.Decimal `json:"taxRefunds"` // reinvested refunds, RRSP only
	AfterTaxValue      decimal.Decimal `json:"afterTaxValue"`
}

// RRSPTFSAResult compares the two accounts.
type RRSPTFSAResult struct {
	YearsToRetirement      int               `json:"yearsToRetirement"`
	CurrentMarginalRate    decimal.Decimal   `json:"currentMarginalRate"`
	RetirementMarginalRate decimal.Decimal   `json:"retirementMarginalRate"`
	RRSP                   AccountProjection `json:"rrsp"`
	TFSA                   AccountProjection `json:"tfsa"`
	Recommendation         string            `json:"recommendation"`
	SplitRRSP              decimal.Decimal   `json:"splitRrsp"`
	SplitTFSA              decimal.Decimal   `json:"splitTfsa"`
	RRSPLimit              decimal.Decimal   `json:"rrspLimit"`
	TFSALimit              decimal.Decimal   `json:"tfsaLimit"`
	Reasoning              []string          `json:"reasoning"`
}

// Validate checks the inputs.
func (in RRSPTFSAInputs) Validate() error {
	var c checker
	c.amount("annualIncome", in.AnnualIncome)
	c.amount("expectedRetirementIncome", in.RetirementIncome)
	c.amount("annualContribution", in.AnnualContribution)
	c.check(in.Age >= 18 && in.Age <= 100, "age", "Age must be between 18 and 100")
	c.check(!in.AnnualIncome.IsNegative(), "annualIncome", "Annual income cannot be negative")
	c.check(!in.RetirementIncome.IsNegative(), "expectedRetirementIncome", "Retirement income cannot be negative")
	c.check(in.AnnualContribution.IsPositive(), "annualContribution", "Annual contribution must be greater than 0")
	c.check(between(in.ExpectedReturn, "-10", "20"), "expectedReturn", "Expected return must be between -10% and 20%")
	c.check(in.YearsToRetirement >= 0, "yearsToRetirement", "Years to retirement cannot be negative")
	if in.YearsToRetirement == 0 && in.Age >= RetirementAge {
		c.add("yearsToRetirement", "Years to retirement is required at or after age 65")
	}
	c.check(between(in.CurrentMarginalRate, "0", "60"), "currentMarginalRate", "Marginal tax rate must be between 0% and 60%")
	c.check(between(in.RetirementMarginalRate, "0", "60"), "retirementMarginalRate", "Marginal tax rate must be between 0% and 60%")
	c.check(in.Province.Valid(), "province", "Province is required")
	if len(c.errs) > 0 {
		return invalid(c.errs)
	}
	return nil
}

// RRSPRoom returns the RRSP contribution room earned by income.
func RRSPRoom(income decimal.Decimal) decimal.Decimal {
	return decimal.Min(income.Mul(rrspIncomeShare).Round(2), RRSPDollarLimit)
}

// CalculateRRSPvsTFSA projects the same yearly contribution into each account.
// RRSP contributions earn a refund at today's marginal rate, which is assumed
// reinvested, and withdrawals are taxed at the retirement marginal rate. TFSA
// growth is never taxed. The RRSP wins exactly when today's rate is higher.
func CalculateRRSPvsTFSA(in RRSPTFSAInputs) (RRSPTFSAResult, error) {
	if err := in.Validate(); err != nil {
		return RRSPTFSAResult{}, err
	}

	years := in.YearsToRetirement
	if years == 0 {
		years = RetirementAge - in.Age
	}
	current, err := marginalOrDefault(in.CurrentMarginalRate, in.AnnualIncome, in.Province)
	if err != nil {
		return RRSPTFSAResult{}, err
	}
	retirement, err := marginalOrDefault(in.RetirementMarginalRate, in.RetirementIncome, in.Province)
	if err != nil {
		return RRSPTFSAResult{}, err
	}

	r := pct(in.ExpectedReturn)
	contrib := in.AnnualContribution
	total := contrib.Mul(decimal.NewFromInt(int64(years)))
	fv := finance.FutureValueAnnuity(contrib, r, years).Round(2)

	withdrawalTax := fv.Mul(pct(retirement)).Round(2)
	refunds := finance.FutureValueAnnuity(contrib.Mul(pct(current)), r, years).Round(2)

	res := RRSPTFSAResult{
		YearsToRetirement:      years,
		CurrentMarginalRate:    current,
		RetirementMarginalRate: retirement,
		RRSP: AccountProjection{
			TotalContributions: total,
			FutureValue:        fv,
			TaxOnWithdrawal:    withdrawalTax,
			TaxRefunds:         refunds,
			AfterTaxValue:      fv.Sub(withdrawalTax).Add(refunds),
		},
		TFSA: AccountProjection{
			TotalContributions: total,
			FutureValue:        fv,
			AfterTaxValue:      fv,
		},
		RRSPLimit: RRSPRoom(in.AnnualIncome),
		TFSALimit: TFSAAnnualLimit,
	}

	diff := current.Sub(retirement)
	switch {
	case diff.GreaterThan(rrspFavoured):
		res.Recommendation = RecommendRRSP
		res.SplitRRSP = contrib
		res.Reasoning = append(res.Reasoning, fmt.Sprintf(
			"Your marginal rate today (%s%%) is well above your expected rate in retirement (%s%%), so the RRSP deduction is worth more than the tax paid on withdrawal.",
			current.StringFixed(1), retirement.StringFixed(1)))
	case diff.IsNegative():
		res.Recommendation = RecommendTFSA
		res.SplitTFSA = contrib
		res.Reasoning = append(res.Reasoning, fmt.Sprintf(
			"You expect a higher marginal rate in retirement (%s%%) than today (%s%%), so tax-free TFSA withdrawals come out ahead.",
			retirement.StringFixed(1), current.StringFixed(1)))
	default:
		res.Recommendation = RecommendSplit
		res.SplitRRSP = contrib.Div(two).Round(2)
		res.SplitTFSA = contrib.Sub(res.SplitRRSP)
		res.Reasoning = append(res.Reasoning,
			"Your marginal rates today and in retirement are close, so splitting contributions balances a deduction now against flexible tax-free withdrawals later.")
	}

	if res.SplitRRSP.GreaterThan(res.RRSPLimit) {
		res.Reasoning = append(res.Reasoning, fmt.Sprintf(
			"Your RRSP room is about %s a year. Direct the excess to your TFSA.", money.Format(res.RRSPLimit)))
	}
	if res.SplitTFSA.GreaterThan(res.TFSALimit) {
		res.Reasoning = append(res.Reasoning, fmt.Sprintf(
			"New TFSA room is %s a year. Unused room from earlier years carries forward.", money.Format(res.TFSALimit)))
	}
	return res, nil
}

func marginalOrDefault(given, income decimal.Decimal, province model.Province) (decimal.Decimal, error) {
	if given.IsPositive() {
		return given, nil
	}
	r, err := tax.MarginalRate(income, province)
	if err != nil {
		return decimal.Zero, fmt.Errorf("deriving marginal rate: %w", err)
	}
	return r, nil
}
