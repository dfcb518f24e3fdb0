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

// RBCParser parses RBC Royal Bank chequing and credit card CSV exports.
type RBCParser struct{}

const (
	rbcDateFormat = "1/2/2006"
	rbcMinFields  = 7
	rbcColDate    = 2
	rbcColCheque  = 3
	rbcColDesc1   = 4
	rbcColDesc2   = 5
	rbcColCAD     = 6
)

// Format returns the parser name.
func (p *RBCParser) Format() string { return "rbc" }

// Parse reads an RBC CSV and returns BankTransactions. Rows without a CAD
// amount (US dollar transactions) are skipped.
func (p *RBCParser) Parse(r io.Reader) ([]model.BankTransaction, error) {
	cr := csv.NewReader(r)
	// RBC pads some rows with a trailing comma.
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading rbc CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var txns []model.BankTransaction
	for i, rec := range records[1:] {
		if len(rec) < rbcMinFields {
			return nil, fmt.Errorf("row %d: expected at least %d fields, got %d", i+2, rbcMinFields, len(rec))
		}
		if strings.TrimSpace(rec[rbcColCAD]) == "" {
			continue
		}
		txn, err := parseRBCRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

func parseRBCRow(rec []string) (model.BankTransaction, error) {
	date, err := time.Parse(rbcDateFormat, strings.TrimSpace(rec[rbcColDate]))
	if err != nil {
		return model.BankTransaction{}, fmt.Errorf("parsing date %q: %w", rec[rbcColDate], err)
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(rec[rbcColCAD]))
	if err != nil {
		return model.BankTransaction{}, fmt.Errorf("parsing amount %q: %w", rec[rbcColCAD], err)
	}

	desc := strings.TrimSpace(rec[rbcColDesc1])
	if d2 := strings.TrimSpace(rec[rbcColDesc2]); d2 != "" {
		desc += " " + d2
	}

	typ := "DEBIT"
	if amount.IsPositive() {
		typ = "CREDIT"
	}
	if strings.TrimSpace(rec[rbcColCheque]) != "" {
		typ = "CHEQUE"
	}

	return model.BankTransaction{
		Date:        date,
		Description: desc,
		Amount:      amount,
		Reference:   makeRef("rbc", date, desc),
		Type:        typ,
	}, nil
}

// makeRef creates a reference like rbc_20240103_NETFLIXCOM.
func makeRef(source string, date time.Time, desc string) string {
	prefix := strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, desc)
	if len(prefix) > 10 {
		prefix = prefix[:10]
	}
	return fmt.Sprintf("%s_%s_%s", source, date.Format("20060102"), prefix)
}
