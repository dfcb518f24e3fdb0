// Package tax estimates Canadian federal and provincial income tax.
//
// The tables cover ordinary employment income with only the basic personal
// amount credit. CPP, EI, surtaxes and health premiums are not modelled.
package tax

import (
	"fmt"

	"github.com/maple-budget/maple/internal/model"
	"github.com/shopspring/decimal"
)

// Result is the tax owed on an annual income.
type Result struct {
	Income        decimal.Decimal `json:"income"`
	FederalTax    decimal.Decimal `json:"federalTax"`
	ProvincialTax decimal.Decimal `json:"provincialTax"`
	TotalTax      decimal.Decimal `json:"totalTax"`
	NetIncome     decimal.Decimal `json:"netIncome"`
	AverageRate   decimal.Decimal `json:"averageRate"`  // percent
	MarginalRate  decimal.Decimal `json:"marginalRate"` // percent
}

// Calculate returns the tax owed on an annual income for a resident of province.
// Non-positive income owes nothing.
func Calculate(income decimal.Decimal, province model.Province) (Result, error) {
	prov, ok := provincial[province]
	if !ok {
		return Result{}, fmt.Errorf("calculating tax: unknown province %q", province)
	}
	if !income.IsPositive() {
		return Result{Income: income, NetIncome: income}, nil
	}

	fed := federalTax(income, province).Round(2)
	pt := prov.tax(income).Round(2)
	total := fed.Add(pt)

	return Result{
		Income:        income,
		FederalTax:    fed,
		ProvincialTax: pt,
		TotalTax:      total,
		NetIncome:     income.Sub(total),
		AverageRate:   total.Div(income).Mul(hundred).Round(2),
		MarginalRate:  marginalRate(income, province, prov),
	}, nil
}

// MarginalRate returns the combined federal and provincial rate, in percent,
// applied to the next dollar of income.
func MarginalRate(income decimal.Decimal, province model.Province) (decimal.Decimal, error) {
	prov, ok := provincial[province]
	if !ok {
		return decimal.Zero, fmt.Errorf("calculating marginal rate: unknown province %q", province)
	}
	return marginalRate(income, province, prov), nil
}

// BasicPersonalAmounts returns the federal and provincial basic personal amounts.
func BasicPersonalAmounts(province model.Province) (fed, prov decimal.Decimal) {
	return federal.basicPersonalAmount, provincial[province].basicPersonalAmount
}

func federalTax(income decimal.Decimal, province model.Province) decimal.Decimal {
	t := federal.tax(income)
	if province == model.ProvinceQC {
		t = t.Mul(hundred.Sub(quebecAbatement)).Div(hundred)
	}
	return t
}

func marginalRate(income decimal.Decimal, province model.Province, prov schedule) decimal.Decimal {
	if !income.IsPositive() {
		return decimal.Zero
	}
	fed := federal.marginal(income)
	if province == model.ProvinceQC {
		fed = fed.Mul(hundred.Sub(quebecAbatement)).Div(hundred)
	}
	return fed.Add(prov.marginal(income)).Round(2)
}
