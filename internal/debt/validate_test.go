package debt

import (
	"testing"

	"github.com/maple-budget/maple/internal/model"
	"github.com/stretchr/testify/assert"
)

func messages(errs model.ValidationErrors) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Message
	}
	return out
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		debt model.Debt
		want []string
	}{
		{
			name: "valid credit card",
			debt: model.Debt{Kind: model.DebtCreditCard, Name: "Visa", Balance: dec("1000"), Limit: dec("5000"), InterestRate: dec("19.99")},
		},
		{
			name: "valid loan",
			debt: model.Debt{Kind: model.DebtStudentLoan, Name: "OSAP", Balance: dec("20000"), InterestRate: dec("5"), Term: 120},
		},
		{
			name: "empty",
			debt: model.Debt{},
			want: []string{"Debt type is required", "Debt name is required", "Balance must be greater than 0"},
		},
		{
			name: "negative rate",
			debt: model.Debt{Kind: model.DebtOtherLoan, Name: "x", Balance: dec("100"), InterestRate: dec("-1"), Term: 12},
			want: []string{"Interest rate cannot be negative"},
		},
		{
			name: "missing limit",
			debt: model.Debt{Kind: model.DebtLOC, Name: "LOC", Balance: dec("100"), InterestRate: dec("7")},
			want: []string{"Credit limit is required for this debt type"},
		},
		{
			name: "over limit",
			debt: model.Debt{Kind: model.DebtCreditCard, Name: "Visa", Balance: dec("6000"), Limit: dec("5000"), InterestRate: dec("20")},
			want: []string{"Balance cannot exceed credit limit"},
		},
		{
			name: "missing term",
			debt: model.Debt{Kind: model.DebtPersonalLoan, Name: "Car", Balance: dec("9000"), InterestRate: dec("6")},
			want: []string{"Loan term is required for this debt type"},
		},
		{
			name: "huge balance",
			debt: model.Debt{Kind: model.DebtCreditCard, Name: "Visa", Balance: dec("1e200000"), Limit: dec("5000"), InterestRate: dec("20")},
			want: []string{"Amount is out of range"},
		},
		{
			name: "unknown kind",
			debt: model.Debt{Kind: "Mortgage", Name: "House", Balance: dec("1")},
			want: []string{"Debt type is not supported"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(tt.debt)
			if tt.want == nil {
				assert.Empty(t, errs)
				return
			}
			assert.Equal(t, tt.want, messages(errs))
		})
	}
}
