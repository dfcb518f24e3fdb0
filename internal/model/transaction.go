package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankTransaction represents a parsed bank CSV row.
type BankTransaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal // negative = money out, positive = money in
	Reference   string
	Type        string // bank transaction code (DEBIT, E-TRANSFER, etc.)
}

// Outflow reports whether the transaction spends money.
func (t BankTransaction) Outflow() bool { return t.Amount.IsNegative() }
