package calculator

import (
	"fmt"

	"github.com/maple-budget/maple/internal/finance"
	"github.com/maple-budget/maple/internal/model"
	"github.com/maple-budget/maple/internal/money"
	"github.com/shopspring/decimal"
)

// capitalGainsInclusion is the share of investment gains that is taxable.
var capitalGainsInclusion = d("0.5")

// Buy or rent recommendations.
const (
	RecommendBuy  = "buy"
	RecommendRent = "rent"
)

// BuyRentInputs compares owning a home with renting and investing the difference.
type BuyRentInputs struct {
	HomePrice         decimal.Decimal `json:"homePrice"`
	DownPayment       decimal.Decimal `json:"downPayment"`
	MortgageRate      decimal.Decimal `json:"mortgageRate"`
	AmortizationYears int             `json:"amortizationYears"`
	FirstTimeBuyer    bool            `json:"firstTimeBuyer"`
	MonthlyRent       decimal.Decimal `json:"monthlyRent"`
	RentIncrease      decimal.Decimal `json:"rentIncrease"`  // annual percent
	PropertyTax       decimal.Decimal `json:"propertyTax"`   // annual; zero = estimate from province
	HomeInsurance     decimal.Decimal `json:"homeInsurance"` // annual
	Maintenance       decimal.Decimal `json:"maintenance"`   // annual percent of home value
	Utilities         decimal.Decimal `json:"utilities"`     // monthly, paid by owners only
	CondoFees         decimal.Decimal `json:"condoFees"`     // monthly
	InvestmentReturn  decimal.Decimal `json:"investmentReturn"`
	Appreciation      decimal.Decimal `json:"appreciation"` // annual percent; also inflates costs
	MarginalTaxRate   decimal.Decimal `json:"marginalTaxRate"`
	Years             int             `json:"years"`
	Province          model.Province  `json:"province"`
}

// YearComparison is the position of both households at the end of a year.
type YearComparison struct {
	Year            int             `json:"year"`
	BuyCost         decimal.Decimal `json:"buyCost"`
	RentCost        decimal.Decimal `json:"rentCost"`
	HomeValue       decimal.Decimal `json:"homeValue"`
	MortgageBalance decimal.Decimal `json:"mortgageBalance"`
	BuyerWealth     decimal.Decimal `json:"buyerWealth"`
	RenterWealth    decimal.Decimal `json:"renterWealth"`
	Difference      decimal.Decimal `json:"difference"` // buyer minus renter
}

// BuyRentResult summarizes the comparison.
type BuyRentResult struct {
	LandTransferTax   decimal.Decimal  `json:"landTransferTax"`
	ClosingCosts      decimal.Decimal  `json:"closingCosts"`
	CMHCPremium       decimal.Decimal  `json:"cmhcPremium"`
	UpfrontCost       decimal.Decimal  `json:"upfrontCost"`
	MortgagePayment   decimal.Decimal  `json:"monthlyMortgagePayment"`
	YearByYear        []YearComparison `json:"yearByYear"`
	BreakEvenYear     int              `json:"breakEvenYear"` // zero = never within the horizon
	FinalBuyerWealth  decimal.Decimal  `json:"finalBuyerWealth"`
	FinalRenterWealth decimal.Decimal  `json:"finalRenterWealth"`
	Recommendation    string           `json:"recommendation"`
	Reasoning         string           `json:"reasoning"`
}

// Validate checks the inputs.
func (in BuyRentInputs) Validate() error {
	var c checker
	c.amount("homePrice", in.HomePrice)
	c.amount("downPayment", in.DownPayment)
	c.amount("monthlyRent", in.MonthlyRent)
	c.amount("propertyTax", in.PropertyTax)
	c.amount("homeInsurance", in.HomeInsurance)
	c.amount("maintenance", in.Maintenance)
	c.amount("utilities", in.Utilities)
	c.amount("condoFees", in.CondoFees)
	if len(c.errs) > 0 {
		return invalid(c.errs)
	}
	c.check(in.HomePrice.IsPositive(), "homePrice", "Home price must be greater than 0")
	if in.HomePrice.IsPositive() {
		c.check(in.DownPayment.LessThan(in.HomePrice), "downPayment", "Down payment must be less than the home price")
		if minDown := MinimumDownPayment(in.HomePrice); in.DownPayment.LessThan(minDown) {
			c.add("downPayment", "Down payment must be at least "+money.Format(minDown))
		}
	}
	c.check(between(in.MortgageRate, "0", "25"), "mortgageRate", "Mortgage rate must be between 0% and 25%")
	c.check(in.AmortizationYears >= 1 && in.AmortizationYears <= maxUninsuredAmortization, "amortizationYears", "Amortization must be between 1 and 30 years")
	c.check(in.MonthlyRent.IsPositive(), "monthlyRent", "Monthly rent must be greater than 0")
	c.check(between(in.RentIncrease, "0", "20"), "rentIncrease", "Rent increase must be between 0% and 20%")
	for field, v := range map[string]decimal.Decimal{
		"propertyTax": in.PropertyTax, "homeInsurance": in.HomeInsurance, "maintenance": in.Maintenance,
		"utilities": in.Utilities, "condoFees": in.CondoFees,
	} {
		c.check(!v.IsNegative(), field, "Costs cannot be negative")
	}
	c.check(between(in.InvestmentReturn, "-10", "20"), "investmentReturn", "Investment return must be between -10% and 20%")
	c.check(between(in.Appreciation, "-10", "20"), "appreciation", "Appreciation must be between -10% and 20%")
	c.check(between(in.MarginalTaxRate, "0", "60"), "marginalTaxRate", "Marginal tax rate must be between 0% and 60%")
	c.check(in.Years >= 1 && in.Years <= 40, "years", "Comparison period must be between 1 and 40 years")
	c.check(in.Province.Valid(), "province", "Province is required")
	if len(c.errs) > 0 {
		return invalid(c.errs)
	}
	return nil
}

// CalculateBuyVsRent simulates a buyer and a renter with the same cash. The
// renter invests what the buyer spends up front, and each year whichever
// household spent less invests the difference. Investment gains are taxed as
// capital gains at the marginal rate.
func CalculateBuyVsRent(in BuyRentInputs) (BuyRentResult, error) {
	if err := in.Validate(); err != nil {
		return BuyRentResult{}, err
	}

	res := BuyRentResult{
		LandTransferTax: LandTransferTax(in.HomePrice, in.Province, in.FirstTimeBuyer),
		ClosingCosts:    ClosingCosts(in.HomePrice),
		CMHCPremium:     CMHCPremium(in.HomePrice, in.DownPayment),
	}
	res.UpfrontCost = in.DownPayment.Add(res.ClosingCosts).Add(res.LandTransferTax)

	principal := in.HomePrice.Sub(in.DownPayment).Add(res.CMHCPremium)
	payment, rows := amortize(principal, in.MortgageRate, in.AmortizationYears, Monthly, finance.CompoundSemiAnnual)
	res.MortgagePayment = payment

	propertyTax := in.PropertyTax
	if propertyTax.IsZero() {
		propertyTax = in.HomePrice.Mul(pct(PropertyTaxRate(in.Province))).Round(2)
	}

	growth := pct(in.Appreciation)
	rentGrowth := pct(in.RentIncrease)
	afterTaxReturn := pct(in.InvestmentReturn).Mul(decimal.NewFromInt(1).Sub(capitalGainsInclusion.Mul(pct(in.MarginalTaxRate))))

	buyerPortfolio := decimal.Zero
	renterPortfolio := res.UpfrontCost
	homeValue := in.HomePrice

	for year := 1; year <= in.Years; year++ {
		inflate := finance.Pow(decimal.NewFromInt(1).Add(growth), year-1)

		mortgage := decimal.Zero
		balance := decimal.Zero
		for _, r := range rows {
			if (r.Period-1)/12+1 == year {
				mortgage = mortgage.Add(r.Payment)
			}
			if r.Period <= year*12 {
				balance = r.Balance
			}
		}
		if len(rows) < year*12 {
			balance = decimal.Zero
		}

		ownership := propertyTax.Add(in.HomeInsurance).
			Add(in.Utilities.Mul(twelve)).
			Add(in.CondoFees.Mul(twelve)).
			Mul(inflate).
			Add(homeValue.Mul(pct(in.Maintenance)))
		buyCost := mortgage.Add(ownership).Round(2)
		rentCost := in.MonthlyRent.Mul(twelve).Mul(finance.Pow(decimal.NewFromInt(1).Add(rentGrowth), year-1)).Round(2)

		buyerPortfolio = buyerPortfolio.Mul(decimal.NewFromInt(1).Add(afterTaxReturn))
		renterPortfolio = renterPortfolio.Mul(decimal.NewFromInt(1).Add(afterTaxReturn))
		if buyCost.GreaterThan(rentCost) {
			renterPortfolio = renterPortfolio.Add(buyCost.Sub(rentCost))
		} else {
			buyerPortfolio = buyerPortfolio.Add(rentCost.Sub(buyCost))
		}

		homeValue = homeValue.Mul(decimal.NewFromInt(1).Add(growth))
		buyer := homeValue.Sub(balance).Add(buyerPortfolio).Round(2)
		renter := renterPortfolio.Round(2)
		diff := buyer.Sub(renter)

		res.YearByYear = append(res.YearByYear, YearComparison{
			Year:            year,
			BuyCost:         buyCost,
			RentCost:        rentCost,
			HomeValue:       homeValue.Round(2),
			MortgageBalance: balance,
			BuyerWealth:     buyer,
			RenterWealth:    renter,
			Difference:      diff,
		})
		if res.BreakEvenYear == 0 && !diff.IsNegative() {
			res.BreakEvenYear = year
		}
	}

	last := res.YearByYear[len(res.YearByYear)-1]
	res.FinalBuyerWealth = last.BuyerWealth
	res.FinalRenterWealth = last.RenterWealth
	if last.Difference.IsNegative() {
		res.Recommendation = RecommendRent
		res.Reasoning = fmt.Sprintf("After %d years renting and investing leaves you %s ahead.", in.Years, money.Format(last.Difference.Neg()))
	} else {
		res.Recommendation = RecommendBuy
		res.Reasoning = fmt.Sprintf("After %d years buying leaves you %s ahead.", in.Years, money.Format(last.Difference))
	}
	return res, nil
}
