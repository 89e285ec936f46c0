package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/cleared-dev/prepaid/internal/model"
	"github.com/cleared-dev/prepaid/internal/period"
)

// Header is the CSV header for exported journal entries.
const Header = "date,description,reference,account,amount"

const (
	numFields = 5
	colDate   = 0
	colDesc   = 1
	colRef    = 2
	colAcct   = 3
	colAmount = 4
)

// Columns returns the journal column titles in render order.
func Columns() []string {
	return []string{"Date", "Description", "Reference", "Account", "Amount"}
}

// WriteEntries writes entries as CSV (including header).
func WriteEntries(w io.Writer, entries []model.JournalEntry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalEntry converts a JournalEntry to a CSV row ([]string).
func MarshalEntry(e model.JournalEntry) []string {
	row := make([]string, numFields)
	row[colDate] = e.Date.Format(period.DateFormat)
	row[colDesc] = e.Description
	row[colRef] = e.Reference
	row[colAcct] = e.Account
	row[colAmount] = e.Amount.StringFixed(AmountPlaces)
	return row
}
