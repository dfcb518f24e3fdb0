package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/maple-budget/maple/internal/model"
)

// GenericParser parses a plain CSV with a header naming date, description
// and amount columns in any order. Dates are YYYY-MM-DD.
type GenericParser struct{}

const genericDateFormat = "2006-01-02"

var genericColumns = []string{"date", "description", "amount"}

// Format returns the parser name.
func (p *GenericParser) Format() string { return "generic" }

// Parse reads the CSV and returns BankTransactions.
func (p *GenericParser) Parse(r io.Reader) ([]model.BankTransaction, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading generic CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	cols := map[string]int{}
	for i, h := range records[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range genericColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing %q column in header", name)
		}
	}

	var txns []model.BankTransaction
	for i, rec := range records[1:] {
		date, err := time.Parse(genericDateFormat, strings.TrimSpace(rec[cols["date"]]))
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing date %q: %w", i+2, rec[cols["date"]], err)
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(rec[cols["amount"]]))
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing amount %q: %w", i+2, rec[cols["amount"]], err)
		}
		desc := strings.TrimSpace(rec[cols["description"]])
		txns = append(txns, model.BankTransaction{
			Date:        date,
			Description: desc,
			Amount:      amount,
			Reference:   makeRef("generic", date, desc),
		})
	}
	return txns, nil
}
