package calculator

import (
	"github.com/maple-budget/maple/internal/model"
	"github.com/shopspring/decimal"
)

var (
	// InsuredPriceCeiling is the highest purchase price eligible for mortgage default insurance.
	InsuredPriceCeiling = d("1500000")

	tier1Ceiling      = d("500000")
	tier1MinDown      = d("25000") // 5% of the first 500k
	conventionalRatio = d("0.20")
	closingCostRate   = d("0.015")
)

// MinimumDownPayment returns the smallest down payment allowed on price:
// 5% of the first $500,000, 10% of the remainder, and 20% from $1.5M up.
func MinimumDownPayment(price decimal.Decimal) decimal.Decimal {
	switch {
	case !price.IsPositive():
		return decimal.Zero
	case price.GreaterThanOrEqual(InsuredPriceCeiling):
		return price.Mul(conventionalRatio).Round(2)
	case price.GreaterThan(tier1Ceiling):
		return tier1MinDown.Add(price.Sub(tier1Ceiling).Mul(d("0.10"))).Round(2)
	}
	return price.Mul(d("0.05")).Round(2)
}

// maxPriceForDown inverts MinimumDownPayment.
func maxPriceForDown(down decimal.Decimal) decimal.Decimal {
	tier2MinDown := MinimumDownPayment(InsuredPriceCeiling.Sub(decimal.NewFromInt(1)))
	switch {
	case down.LessThan(tier1MinDown):
		return down.Div(d("0.05"))
	case down.LessThan(tier2MinDown):
		return tier1Ceiling.Add(down.Sub(tier1MinDown).Div(d("0.10")))
	case down.LessThan(InsuredPriceCeiling.Mul(conventionalRatio)):
		return InsuredPriceCeiling.Sub(decimal.NewFromInt(1))
	}
	return down.Div(conventionalRatio)
}

type premiumTier struct {
	maxLTV decimal.Decimal // percent
	rate   decimal.Decimal // percent of the loan
}

var cmhcPremiums = []premiumTier{
	{d("65"), d("0.60")},
	{d("75"), d("1.70")},
	{d("80"), d("2.40")},
	{d("85"), d("2.80")},
	{d("90"), d("3.10")},
	{d("95"), d("4.00")},
}

// CMHCPremium returns the mortgage default insurance premium. Down payments of
// 20% or more are uninsured and pay nothing.
func CMHCPremium(price, down decimal.Decimal) decimal.Decimal {
	if !price.IsPositive() || down.GreaterThanOrEqual(price.Mul(conventionalRatio)) {
		return decimal.Zero
	}
	loan := price.Sub(down)
	ltv := loan.Div(price).Mul(hundred)
	for _, t := range cmhcPremiums {
		if ltv.LessThanOrEqual(t.maxLTV) {
			return loan.Mul(pct(t.rate)).Round(2)
		}
	}
	return loan.Mul(pct(cmhcPremiums[len(cmhcPremiums)-1].rate)).Round(2)
}

// ClosingCosts estimates legal, inspection and adjustment fees.
func ClosingCosts(price decimal.Decimal) decimal.Decimal {
	return price.Mul(closingCostRate).Round(2)
}

type tier struct {
	upTo decimal.Decimal // zero on the last tier
	rate decimal.Decimal // percent
}

func tiered(amount decimal.Decimal, tiers []tier) decimal.Decimal {
	total := decimal.Zero
	lower := decimal.Zero
	for _, t := range tiers {
		if !amount.GreaterThan(lower) {
			break
		}
		top := amount
		if !t.upTo.IsZero() && amount.GreaterThan(t.upTo) {
			top = t.upTo
		}
		total = total.Add(top.Sub(lower).Mul(pct(t.rate)))
		if t.upTo.IsZero() {
			break
		}
		lower = t.upTo
	}
	return total
}

var landTransferTiers = map[model.Province][]tier{
	model.ProvinceON: {{d("55000"), d("0.5")}, {d("250000"), d("1")}, {d("400000"), d("1.5")}, {d("2000000"), d("2")}, {rate: d("2.5")}},
	model.ProvinceBC: {{d("200000"), d("1")}, {d("2000000"), d("2")}, {d("3000000"), d("3")}, {rate: d("5")}},
	model.ProvinceQC: {{d("61500"), d("0.5")}, {d("307800"), d("1")}, {rate: d("1.5")}},
	model.ProvinceMB: {{d("30000"), d("0")}, {d("90000"), d("0.5")}, {d("150000"), d("1")}, {d("200000"), d("1.5")}, {rate: d("2")}},
	model.ProvinceNB: {{rate: d("1")}},
	model.ProvinceNS: {{rate: d("1.5")}},
	model.ProvincePE: {{rate: d("1")}},
}

var (
	ontarioFirstTimeRebate = d("4000")
	bcFirstTimeExemption   = d("500000")
)

// LandTransferTax returns the provincial tax on a property purchase, after
// first-time buyer relief in Ontario and British Columbia. Provinces without a
// transfer tax return zero.
func LandTransferTax(price decimal.Decimal, province model.Province, firstTime bool) decimal.Decimal {
	tiers, ok := landTransferTiers[province]
	if !ok || !price.IsPositive() {
		return decimal.Zero
	}
	t := tiered(price, tiers)
	if firstTime {
		switch province {
		case model.ProvinceON:
			t = decimal.Max(decimal.Zero, t.Sub(ontarioFirstTimeRebate))
		case model.ProvinceBC:
			if price.LessThanOrEqual(bcFirstTimeExemption) {
				t = decimal.Zero
			}
		}
	}
	return t.Round(2)
}

// propertyTaxRates are typical annual municipal rates as a percent of assessed value.
var propertyTaxRates = map[model.Province]decimal.Decimal{
	model.ProvinceON: d("1.0"),
	model.ProvinceBC: d("0.5"),
	model.ProvinceAB: d("0.9"),
	model.ProvinceQC: d("1.0"),
	model.ProvinceSK: d("1.2"),
	model.ProvinceMB: d("1.3"),
	model.ProvinceNB: d("1.4"),
	model.ProvinceNS: d("1.2"),
	model.ProvincePE: d("1.1"),
	model.ProvinceNL: d("1.0"),
	model.ProvinceYT: d("0.8"),
	model.ProvinceNT: d("1.0"),
	model.ProvinceNU: d("0.8"),
}

// PropertyTaxRate returns the typical annual property tax rate, in percent, for province.
func PropertyTaxRate(province model.Province) decimal.Decimal {
	if r, ok := propertyTaxRates[province]; ok {
		return r
	}
	return d("1.0")
}
