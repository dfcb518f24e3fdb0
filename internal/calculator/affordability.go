package calculator

import (
	"fmt"

	"github.com/maple-budget/maple/internal/finance"
	"github.com/maple-budget/maple/internal/model"
	"github.com/maple-budget/maple/internal/money"
	"github.com/shopspring/decimal"
)

var (
	// GDSLimit and TDSLimit are the lender debt-service ceilings, in percent of gross income.
	GDSLimit = d("39")
	TDSLimit = d("44")

	stressTestFloor  = d("5.25")
	stressTestBuffer = d("2")
	condoFeeShare    = d("0.5")
)

// Binding constraints on an affordability result.
const (
	LimitGDS         = "gds"
	LimitTDS         = "tds"
	LimitDownPayment = "down-payment"
	LimitIncome      = "income"
)

// AffordabilityInputs describes a prospective buyer.
type AffordabilityInputs struct {
	AnnualIncome      decimal.Decimal `json:"annualIncome"` // gross household income
	MonthlyDebts      decimal.Decimal `json:"monthlyDebts"`
	DownPayment       decimal.Decimal `json:"downPayment"`
	InterestRate      decimal.Decimal `json:"interestRate"`
	AmortizationYears int             `json:"amortizationYears"`
	Province          model.Province  `json:"province"`
	MonthlyHeating    decimal.Decimal `json:"heatingCosts"`
	AnnualPropertyTax decimal.Decimal `json:"propertyTax"` // zero = estimate from province
	MonthlyCondoFees  decimal.Decimal `json:"condoFees"`
}

// HousingBreakdown itemizes monthly housing costs.
type HousingBreakdown struct {
	MortgagePayment decimal.Decimal `json:"mortgagePayment"`
	PropertyTax     decimal.Decimal `json:"propertyTax"`
	Heating         decimal.Decimal `json:"heating"`
	CondoFees       decimal.Decimal `json:"condoFees"`
}

// AffordabilityResult is the largest purchase that passes the lender tests.
type AffordabilityResult struct {
	MaxHomePrice        decimal.Decimal  `json:"maxHomePrice"`
	MaxMortgage         decimal.Decimal  `json:"maxMortgage"`
	QualifyingRate      decimal.Decimal  `json:"qualifyingRate"`
	MonthlyPayment      decimal.Decimal  `json:"monthlyPayment"` // at the contract rate
	MonthlyHousingCosts decimal.Decimal  `json:"monthlyHousingCosts"`
	GDSRatio            decimal.Decimal  `json:"gdsRatio"` // at the qualifying rate
	TDSRatio            decimal.Decimal  `json:"tdsRatio"`
	LimitedBy           string           `json:"limitedBy"`
	Breakdown           HousingBreakdown `json:"breakdown"`
	Recommendations     []string         `json:"recommendations"`
}

// Validate checks the affordability inputs.
func (in AffordabilityInputs) Validate() error {
	var c checker
	c.amount("annualIncome", in.AnnualIncome)
	c.amount("monthlyDebts", in.MonthlyDebts)
	c.amount("downPayment", in.DownPayment)
	c.amount("heatingCosts", in.MonthlyHeating)
	c.amount("propertyTax", in.AnnualPropertyTax)
	c.amount("condoFees", in.MonthlyCondoFees)
	c.check(in.AnnualIncome.IsPositive(), "annualIncome", "Annual income must be greater than 0")
	c.check(!in.MonthlyDebts.IsNegative(), "monthlyDebts", "Monthly debts cannot be negative")
	c.check(!in.DownPayment.IsNegative(), "downPayment", "Down payment cannot be negative")
	c.check(between(in.InterestRate, "0", "25"), "interestRate", "Interest rate must be between 0% and 25%")
	c.check(in.AmortizationYears >= 1 && in.AmortizationYears <= maxFirstTimeAmortization, "amortizationYears", "Amortization must be between 1 and 30 years")
	c.check(in.Province.Valid(), "province", "Province is required")
	c.check(!in.MonthlyHeating.IsNegative(), "heatingCosts", "Heating costs cannot be negative")
	c.check(!in.AnnualPropertyTax.IsNegative(), "propertyTax", "Property tax cannot be negative")
	c.check(!in.MonthlyCondoFees.IsNegative(), "condoFees", "Condo fees cannot be negative")
	if len(c.errs) > 0 {
		return invalid(c.errs)
	}
	return nil
}

// QualifyingRate is the stress test rate: the greater of the contract rate plus
// two points and the 5.25% floor.
func QualifyingRate(contractRate decimal.Decimal) decimal.Decimal {
	return decimal.Max(contractRate.Add(stressTestBuffer), stressTestFloor)
}

// CalculateAffordability finds the highest price whose housing costs at the
// qualifying rate fit under both the GDS and TDS limits, capped by what the
// down payment allows. The default insurance premium is not included.
func CalculateAffordability(in AffordabilityInputs) (AffordabilityResult, error) {
	if err := in.Validate(); err != nil {
		return AffordabilityResult{}, err
	}

	monthlyIncome := in.AnnualIncome.Div(twelve)
	q := QualifyingRate(in.InterestRate)
	periods := in.AmortizationYears * 12
	f := finance.Annuity(finance.PeriodicRate(q, 12, finance.CompoundSemiAnnual), periods)

	// property tax is either fixed or a monthly fraction of the price
	fixedTax := in.AnnualPropertyTax.Div(twelve)
	taxPerDollar := decimal.Zero
	if in.AnnualPropertyTax.IsZero() {
		taxPerDollar = pct(PropertyTaxRate(in.Province)).Div(twelve)
	}

	base := in.MonthlyHeating.Add(in.MonthlyCondoFees.Mul(condoFeeShare)).Add(fixedTax)
	gdsRoom := pct(GDSLimit).Mul(monthlyIncome).Sub(base)
	tdsRoom := pct(TDSLimit).Mul(monthlyIncome).Sub(base).Sub(in.MonthlyDebts)

	res := AffordabilityResult{QualifyingRate: q}
	room, limit := gdsRoom, LimitGDS
	if tdsRoom.LessThan(gdsRoom) {
		room, limit = tdsRoom, LimitTDS
	}
	if !room.IsPositive() {
		res.LimitedBy = LimitIncome
		res.Recommendations = []string{
			"Your income does not cover the fixed housing costs and existing debt payments. Reduce debt or increase income before buying.",
		}
		return res, nil
	}

	price := room.Add(in.DownPayment.Mul(f)).Div(f.Add(taxPerDollar))
	if ceiling := maxPriceForDown(in.DownPayment); price.GreaterThan(ceiling) {
		price, limit = ceiling, LimitDownPayment
	}
	price = price.Floor()
	loan := decimal.Max(decimal.Zero, price.Sub(in.DownPayment))

	tax := fixedTax.Round(2)
	if in.AnnualPropertyTax.IsZero() {
		tax = price.Mul(taxPerDollar).Round(2)
	}
	qualifyingPayment := loan.Mul(f)
	gds := qualifyingPayment.Add(tax).Add(base.Sub(fixedTax))
	tds := gds.Add(in.MonthlyDebts)

	res.MaxHomePrice = price
	res.MaxMortgage = loan
	res.LimitedBy = limit
	res.MonthlyPayment = finance.Payment(loan, finance.PeriodicRate(in.InterestRate, 12, finance.CompoundSemiAnnual), periods)
	res.Breakdown = HousingBreakdown{
		MortgagePayment: res.MonthlyPayment,
		PropertyTax:     tax,
		Heating:         in.MonthlyHeating,
		CondoFees:       in.MonthlyCondoFees,
	}
	res.MonthlyHousingCosts = res.MonthlyPayment.Add(tax).Add(in.MonthlyHeating).Add(in.MonthlyCondoFees)
	res.GDSRatio = gds.Div(monthlyIncome).Mul(hundred).Round(2)
	res.TDSRatio = tds.Div(monthlyIncome).Mul(hundred).Round(2)
	res.Recommendations = affordabilityAdvice(in, res)
	return res, nil
}

func affordabilityAdvice(in AffordabilityInputs, res AffordabilityResult) []string {
	advice := []string{
		fmt.Sprintf("Lenders will qualify you at %s%%, not your contract rate of %s%%.", res.QualifyingRate.StringFixed(2), in.InterestRate.StringFixed(2)),
	}
	switch res.LimitedBy {
	case LimitTDS:
		advice = append(advice, "Existing debt payments are limiting your budget. Paying them down raises the price you can afford.")
	case LimitDownPayment:
		advice = append(advice, "Your down payment caps the purchase price. Saving a larger down payment raises the maximum.")
	}
	if premium := CMHCPremium(res.MaxHomePrice, in.DownPayment); premium.IsPositive() {
		advice = append(advice, fmt.Sprintf("With less than 20%% down you will pay a mortgage default insurance premium of about %s.", money.Format(premium)))
	}
	return advice
}
