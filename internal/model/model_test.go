package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParseProvince(t *testing.T) {
	p, err := ParseProvince(" on ")
	require.NoError(t, err)
	assert.Equal(t, ProvinceON, p)
	assert.Equal(t, "Ontario", p.Name())

	_, err = ParseProvince("XX")
	assert.Error(t, err)
	assert.Len(t, Provinces, 13)
}

func TestFrequencyToMonthly(t *testing.T) {
	tests := []struct {
		freq   Frequency
		amount string
		want   string
	}{
		{FrequencyWeekly, "100", "433.33"},
		{FrequencyBiweekly, "2000", "4333.33"},
		{FrequencySemimonthly, "1500", "3000"},
		{FrequencyMonthly, "1234.56", "1234.56"},
		{FrequencyQuarterly, "300", "100"},
		{FrequencyYearly, "60000", "5000"},
	}
	for _, tt := range tests {
		t.Run(string(tt.freq), func(t *testing.T) {
			assert.True(t, dec(tt.want).Equal(tt.freq.ToMonthly(dec(tt.amount))), "got %s", tt.freq.ToMonthly(dec(tt.amount)))
		})
	}
	assert.False(t, Frequency("DAILY").Valid())
}

func TestBudgetItemsByType(t *testing.T) {
	b := Budget{Items: []BudgetItem{
		{Type: ItemIncome, Name: "Salary"},
		{Type: ItemExpense, Name: "Rent"},
		{Type: ItemExpense, Name: "Food"},
	}}
	assert.Len(t, b.Incomes(), 1)
	assert.Len(t, b.Expenses(), 2)
	assert.True(t, LifeCouple.Partnered())
	assert.False(t, LifeSingle.Partnered())
}

func TestDebtPayment(t *testing.T) {
	d := Debt{MinPayment: dec("30")}
	assert.True(t, dec("30").Equal(d.Payment()))
	d.UserPayment = dec("100")
	assert.True(t, dec("100").Equal(d.Payment()))
}

func TestLiabilityUtilization(t *testing.T) {
	l := Liability{Balance: dec("2500"), CreditLimit: dec("10000")}
	assert.True(t, dec("25").Equal(l.Utilization()))
	assert.True(t, Liability{Balance: dec("10")}.Utilization().IsZero())
}

func TestValidationErrors(t *testing.T) {
	var v ValidationErrors
	assert.NoError(t, v.Err())

	v = append(v, FieldError{Field: "name", Message: "Debt name is required"})
	err := v.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Debt name is required")
}
