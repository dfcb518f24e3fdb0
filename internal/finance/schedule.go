package finance

import "github.com/shopspring/decimal"

// Row is one period of an amortization schedule.
type Row struct {
	Period    int             `json:"period"`
	Payment   decimal.Decimal `json:"payment"`
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
	Balance   decimal.Decimal `json:"balance"`
}

// Schedule amortizes principal at rate with a fixed payment for up to periods
// rows. Interest is rounded to cents each period. The final payment is trimmed
// so the balance ends at exactly zero; if the payment cannot cover interest the
// schedule stops early with a positive balance.
func Schedule(principal, rate, payment decimal.Decimal, periods int) []Row {
	rows := make([]Row, 0, periods)
	bal := principal
	for p := 1; p <= periods && bal.IsPositive(); p++ {
		interest := bal.Mul(rate).Round(2)
		pay := payment
		if p == periods || pay.GreaterThanOrEqual(bal.Add(interest)) {
			pay = bal.Add(interest)
		}
		princ := pay.Sub(interest)
		if !princ.IsPositive() {
			break
		}
		bal = bal.Sub(princ)
		rows = append(rows, Row{Period: p, Payment: pay, Principal: princ, Interest: interest, Balance: bal})
	}
	return rows
}

// Totals sums the payments and interest of a schedule.
func Totals(rows []Row) (paid, interest decimal.Decimal) {
	for _, r := range rows {
		paid = paid.Add(r.Payment)
		interest = interest.Add(r.Interest)
	}
	return paid, interest
}
