package debt

import "github.com/maple-budget/maple/internal/model"

var liabilityTypes = map[model.DebtKind]model.LiabilityType{
	model.DebtLOC:          model.LiabilityLineOfCredit,
	model.DebtCreditCard:   model.LiabilityCreditCard,
	model.DebtPersonalLoan: model.LiabilityPersonalLoan,
	model.DebtStudentLoan:  model.LiabilityStudentLoan,
	model.DebtOtherLoan:    model.LiabilityOther,
}

// ToLiability converts a debt to its stored form. The liability's minimum
// payment is what the user actually pays.
func ToLiability(d model.Debt) model.Liability {
	return model.Liability{
		ID:             d.ID,
		Type:           liabilityTypes[d.Kind],
		Name:           d.Name,
		Balance:        d.Balance,
		InterestRate:   d.InterestRate,
		MinimumPayment: d.Payment(),
		CreditLimit:    d.Limit,
		Description:    d.Description,
		Details: model.LiabilityDetails{
			DebtKind:             d.Kind,
			CalculatedMinPayment: d.MinPayment,
			UserPayment:          d.UserPayment,
			Term:                 d.Term,
		},
	}
}

// FromLiability converts a stored liability back to a debt. It reports false for
// liabilities that were not created through the debt manager, such as mortgages.
func FromLiability(l model.Liability) (model.Debt, bool) {
	if l.Details.DebtKind == "" {
		return model.Debt{}, false
	}
	return model.Debt{
		ID:           l.ID,
		Kind:         l.Details.DebtKind,
		Name:         l.Name,
		Balance:      l.Balance,
		Limit:        l.CreditLimit,
		InterestRate: l.InterestRate,
		MinPayment:   l.Details.CalculatedMinPayment,
		UserPayment:  l.Details.UserPayment,
		Term:         l.Details.Term,
		Description:  l.Description,
	}, true
}
