package categories

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/maple-budget/maple/internal/model"
)

const (
	numFields   = 6
	colID       = 0
	colName     = 1
	colType     = 2
	colTaxable  = 3
	colKeywords = 4
	colDesc     = 5

	keywordSep = ";"
)

// ReadCategories reads a categories CSV.
func ReadCategories(r io.Reader) ([]Category, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading categories CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var cats []Category
	for i, rec := range records[1:] {
		c, err := UnmarshalCategory(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		cats = append(cats, c)
	}
	return cats, nil
}

// WriteCategories writes a categories CSV.
func WriteCategories(w io.Writer, cats []Category) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"category_id", "name", "type", "taxable", "keywords", "description"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, c := range cats {
		if err := cw.Write(MarshalCategory(c)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalCategory converts a Category to a CSV row.
func MarshalCategory(c Category) []string {
	row := make([]string, numFields)
	row[colID] = c.ID
	row[colName] = c.Name
	row[colType] = string(c.Type)
	row[colTaxable] = strconv.FormatBool(c.Taxable)
	row[colKeywords] = strings.Join(c.Keywords, keywordSep)
	row[colDesc] = c.Description
	return row
}

// UnmarshalCategory converts a CSV row to a Category.
func UnmarshalCategory(record []string) (Category, error) {
	if len(record) != numFields {
		return Category{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	if record[colID] == "" {
		return Category{}, fmt.Errorf("category_id is empty")
	}

	typ := model.ItemType(record[colType])
	if typ != model.ItemIncome && typ != model.ItemExpense {
		return Category{}, fmt.Errorf("parsing type %q: must be %s or %s", record[colType], model.ItemIncome, model.ItemExpense)
	}

	var taxable bool
	if record[colTaxable] != "" {
		var err error
		taxable, err = strconv.ParseBool(record[colTaxable])
		if err != nil {
			return Category{}, fmt.Errorf("parsing taxable %q: %w", record[colTaxable], err)
		}
	}

	var keywords []string
	for _, k := range strings.Split(record[colKeywords], keywordSep) {
		if k = strings.ToUpper(strings.TrimSpace(k)); k != "" {
			keywords = append(keywords, k)
		}
	}

	return Category{
		ID:          record[colID],
		Name:        record[colName],
		Type:        typ,
		Taxable:     taxable,
		Keywords:    keywords,
		Description: record[colDesc],
	}, nil
}
