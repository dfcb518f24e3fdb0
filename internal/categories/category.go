// Package categories holds the catalogue of budget categories used to classify
// budget items and imported bank transactions.
package categories

import "github.com/maple-budget/maple/internal/model"

// Category is a row in the category catalogue.
type Category struct {
	ID          string
	Name        string
	Type        model.ItemType
	Taxable     bool     // income only: counts toward taxable income
	Keywords    []string // upper-case substrings matched against bank descriptions
	Description string
}

// Defaults returns the built-in catalogue.
func Defaults() []Category {
	return []Category{
		{ID: "employment", Name: "Employment Income", Type: model.ItemIncome, Taxable: true, Keywords: []string{"PAYROLL", "SALARY", "PAY DEPOSIT", "DIRECT DEP"}, Description: "Salary and wages"},
		{ID: "self_employment", Name: "Self-Employment", Type: model.ItemIncome, Taxable: true, Keywords: []string{"INVOICE", "STRIPE", "SQUARE"}, Description: "Business and freelance income"},
		{ID: "investment", Name: "Investment Income", Type: model.ItemIncome, Taxable: true, Keywords: []string{"DIVIDEND", "INTEREST"}, Description: "Interest and dividends"},
		{ID: "pension", Name: "Pension", Type: model.ItemIncome, Taxable: true, Keywords: []string{"CPP", "OAS", "PENSION"}, Description: "CPP, OAS and workplace pensions"},
		{ID: "benefits", Name: "Government Benefits", Type: model.ItemIncome, Taxable: false, Keywords: []string{"CCB", "CANADA CHILD", "GST CREDIT", "GSTC", "CAIP"}, Description: "Canada Child Benefit, GST/HST credit and other tax-free benefits"},
		{ID: "other_income", Name: "Other Income", Type: model.ItemIncome, Taxable: false, Keywords: []string{"E-TRANSFER RECEIVED", "REFUND"}, Description: "Gifts, refunds and other non-taxable receipts"},

		{ID: "housing", Name: "Housing", Type: model.ItemExpense, Keywords: []string{"RENT", "MORTGAGE", "PROPERTY TAX", "CONDO"}, Description: "Rent, mortgage, property tax and condo fees"},
		{ID: "utilities", Name: "Utilities", Type: model.ItemExpense, Keywords: []string{"HYDRO", "ENBRIDGE", "FORTIS", "BELL", "ROGERS", "TELUS", "INTERNET"}, Description: "Power, heat, water, phone and internet"},
		{ID: "groceries", Name: "Groceries", Type: model.ItemExpense, Keywords: []string{"LOBLAWS", "SOBEYS", "METRO", "NO FRILLS", "FOOD BASICS", "SAFEWAY", "COSTCO", "IGA"}, Description: "Food and household supplies"},
		{ID: "transportation", Name: "Transportation", Type: model.ItemExpense, Keywords: []string{"PRESTO", "ESSO", "PETRO", "SHELL", "UBER", "TTC", "PARKING"}, Description: "Transit, fuel, parking and rides"},
		{ID: "insurance", Name: "Insurance", Type: model.ItemExpense, Keywords: []string{"INSURANCE", "INTACT", "DESJARDINS", "SUN LIFE"}, Description: "Home, auto and life insurance"},
		{ID: "debt_payments", Name: "Debt Payments", Type: model.ItemExpense, Keywords: []string{"LOAN PMT", "LOC PMT", "CREDIT CARD PMT", "OSAP"}, Description: "Loan and credit card payments"},
		{ID: "childcare", Name: "Childcare", Type: model.ItemExpense, Keywords: []string{"DAYCARE", "CHILDCARE"}, Description: "Daycare and child expenses"},
		{ID: "health", Name: "Health", Type: model.ItemExpense, Keywords: []string{"PHARMA", "SHOPPERS DRUG", "DENTAL", "CLINIC"}, Description: "Prescriptions, dental and medical"},
		{ID: "dining", Name: "Dining Out", Type: model.ItemExpense, Keywords: []string{"TIM HORTONS", "STARBUCKS", "MCDONALD", "RESTAURANT", "SKIP", "DOORDASH"}, Description: "Restaurants, coffee and delivery"},
		{ID: "entertainment", Name: "Entertainment", Type: model.ItemExpense, Keywords: []string{"NETFLIX", "SPOTIFY", "CINEPLEX", "CRAVE", "DISNEY"}, Description: "Streaming, movies and events"},
		{ID: "savings", Name: "Savings", Type: model.ItemExpense, Keywords: []string{"TFSA", "RRSP", "RESP"}, Description: "Transfers to registered savings"},
		{ID: "other_expense", Name: "Other", Type: model.ItemExpense, Description: "Everything else"},
	}
}
