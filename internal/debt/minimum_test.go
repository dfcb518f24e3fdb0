package debt

import (
	"testing"

	"github.com/maple-budget/maple/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestMinimumPayment(t *testing.T) {
	tests := []struct {
		name string
		debt model.Debt
		want string
	}{
		{"LOC interest only", model.Debt{Kind: model.DebtLOC, Balance: dec("5000"), InterestRate: dec("8")}, "33.33"},
		{"LOC high rate", model.Debt{Kind: model.DebtLOC, Balance: dec("1000"), InterestRate: dec("50")}, "41.67"},
		{"LOC round", model.Debt{Kind: model.DebtLOC, Balance: dec("10000"), InterestRate: dec("6")}, "50"},
		{"credit card 3%", model.Debt{Kind: model.DebtCreditCard, Balance: dec("1000"), InterestRate: dec("19.99")}, "30"},
		{"credit card zero balance", model.Debt{Kind: model.DebtCreditCard, Balance: dec("0")}, "0"},
		{"personal loan amortized", model.Debt{Kind: model.DebtPersonalLoan, Balance: dec("10000"), InterestRate: dec("8"), Term: 36}, "313.36"},
		{"student loan amortized", model.Debt{Kind: model.DebtStudentLoan, Balance: dec("25000"), InterestRate: dec("6"), Term: 120}, "277.55"},
		{"loan without term", model.Debt{Kind: model.DebtOtherLoan, Balance: dec("10000"), InterestRate: dec("5")}, "200"},
		{"loan without term 2", model.Debt{Kind: model.DebtPersonalLoan, Balance: dec("15000"), InterestRate: dec("5")}, "300"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MinimumPayment(tt.debt)
			assert.True(t, dec(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestMinimumPaymentShortTermLoans(t *testing.T) {
	five := MinimumPayment(model.Debt{Kind: model.DebtPersonalLoan, Balance: dec("15000"), InterestRate: dec("10"), Term: 60})
	assert.True(t, five.GreaterThan(dec("300")))

	one := MinimumPayment(model.Debt{Kind: model.DebtPersonalLoan, Balance: dec("12000"), InterestRate: dec("8"), Term: 12})
	assert.True(t, one.GreaterThan(dec("1000")))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Line of Credit", DisplayName(model.DebtLOC))
	assert.Equal(t, "Credit Card", DisplayName(model.DebtCreditCard))
	assert.Equal(t, "Personal Loan", DisplayName(model.DebtPersonalLoan))
	assert.Equal(t, "Student Loan", DisplayName(model.DebtStudentLoan))
	assert.Equal(t, "Other Loan", DisplayName(model.DebtOtherLoan))
}

func TestRequirements(t *testing.T) {
	assert.True(t, RequiresCreditLimit(model.DebtLOC))
	assert.True(t, RequiresCreditLimit(model.DebtCreditCard))
	assert.False(t, RequiresCreditLimit(model.DebtStudentLoan))
	assert.True(t, RequiresLoanTerm(model.DebtStudentLoan))
	assert.False(t, RequiresLoanTerm(model.DebtLOC))
}

func TestTotals(t *testing.T) {
	debts := []model.Debt{
		{MinPayment: dec("30")},
		{MinPayment: dec("50"), UserPayment: dec("120")},
	}
	minimum, actual := Totals(debts)
	assert.True(t, dec("80").Equal(minimum))
	assert.True(t, dec("150").Equal(actual))
}

func TestConversionRoundTrip(t *testing.T) {
	d := model.Debt{
		ID:           "d1",
		Kind:         model.DebtCreditCard,
		Name:         "Visa",
		Balance:      dec("2500"),
		Limit:        dec("5000"),
		InterestRate: dec("19.99"),
		MinPayment:   dec("75"),
		UserPayment:  dec("200"),
		Description:  "travel card",
	}
	l := ToLiability(d)
	assert.Equal(t, model.LiabilityCreditCard, l.Type)
	assert.True(t, dec("200").Equal(l.MinimumPayment))
	assert.Equal(t, model.DebtCreditCard, l.Details.DebtKind)
	assert.True(t, dec("75").Equal(l.Details.CalculatedMinPayment))

	back, ok := FromLiability(l)
	assert.True(t, ok)
	assert.Equal(t, d, back)

	assert.Equal(t, model.LiabilityStudentLoan, ToLiability(model.Debt{Kind: model.DebtStudentLoan}).Type)
	assert.Equal(t, model.LiabilityLineOfCredit, ToLiability(model.Debt{Kind: model.DebtLOC}).Type)
}

func TestFromLiabilitySkipsMortgage(t *testing.T) {
	_, ok := FromLiability(model.Liability{Type: model.LiabilityMortgage, Balance: dec("300000")})
	assert.False(t, ok)
}
