package accounts

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Header is the CSV header for account-map.csv.
const Header = "item,expense_account,prepayment_account"

const (
	numFields     = 3
	colItem       = 0
	colExpense    = 1
	colPrepayment = 2
)

// Mapping assigns an account pair to an item name.
type Mapping struct {
	Item       string
	Expense    string
	Prepayment string
}

// ReadMappings reads account-map.csv.
func ReadMappings(r io.Reader) ([]Mapping, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading account map CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var mappings []Mapping
	for i, rec := range records[1:] {
		m, err := UnmarshalMapping(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		mappings = append(mappings, m)
	}
	return mappings, nil
}

// WriteMappings writes account-map.csv.
func WriteMappings(w io.Writer, mappings []Mapping) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, m := range mappings {
		if err := cw.Write(MarshalMapping(m)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalMapping converts a Mapping to a CSV row.
func MarshalMapping(m Mapping) []string {
	row := make([]string, numFields)
	row[colItem] = m.Item
	row[colExpense] = m.Expense
	row[colPrepayment] = m.Prepayment
	return row
}

// UnmarshalMapping converts a CSV row to a Mapping.
func UnmarshalMapping(record []string) (Mapping, error) {
	if len(record) != numFields {
		return Mapping{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	m := Mapping{
		Item:       strings.TrimSpace(record[colItem]),
		Expense:    strings.TrimSpace(record[colExpense]),
		Prepayment: strings.TrimSpace(record[colPrepayment]),
	}
	if m.Item == "" {
		return Mapping{}, fmt.Errorf("item is required")
	}
	if m.Expense == "" || m.Prepayment == "" {
		return Mapping{}, fmt.Errorf("item %q: expense and prepayment accounts are required", m.Item)
	}
	if strings.EqualFold(m.Expense, m.Prepayment) {
		return Mapping{}, fmt.Errorf("item %q: expense and prepayment accounts must differ", m.Item)
	}
	return m, nil
}
