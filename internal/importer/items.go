package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/prepaid/internal/model"
	"github.com/cleared-dev/prepaid/internal/period"
	"github.com/cleared-dev/prepaid/internal/schedule"
)

// ErrMissingRequiredColumn is returned when a required column or value is absent.
var ErrMissingRequiredColumn = errors.New("missing required column")

// Required input columns, matched case-insensitively.
const (
	ColItem     = "Item"
	ColInvoice  = "Invoice Number"
	ColAmount   = "Invoice Amount"
	ColDuration = "Duration Months"
	ColStart    = "Start Month"
)

// Columns lists the required columns in their conventional order.
var Columns = []string{ColItem, ColInvoice, ColAmount, ColDuration, ColStart}

// RowError records which input row failed to parse.
type RowError struct {
	Row  int // 1-based line number, header included
	Item string
	Err  error
}

func (e *RowError) Error() string {
	if e.Item == "" {
		return fmt.Sprintf("row %d: %v", e.Row, e.Err)
	}
	return fmt.Sprintf("row %d (%s): %v", e.Row, e.Item, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// LoadItems reads prepaid items from a CSV file.
func LoadItems(path string) ([]model.PrepaidItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening items file: %w", err)
	}
	defer f.Close()

	items, err := ReadItems(f)
	if err != nil {
		return nil, fmt.Errorf("reading items %s: %w", path, err)
	}
	return items, nil
}

// ReadItems reads prepaid items from CSV. Columns are located by header name
// and extra columns are ignored. Every bad row is reported, joined into one
// error of *RowError values.
func ReadItems(r io.Reader) ([]model.PrepaidItem, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading items CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty file, want header %s", ErrMissingRequiredColumn, strings.Join(Columns, ","))
	}

	cols, err := resolveColumns(records[0])
	if err != nil {
		return nil, err
	}

	var items []model.PrepaidItem
	var errs []error
	for i, rec := range records[1:] {
		if blank(rec) {
			continue
		}
		item, err := parseRow(rec, cols)
		if err != nil {
			errs = append(errs, &RowError{Row: i + 2, Item: cell(rec, cols[ColItem]), Err: err})
			continue
		}
		items = append(items, item)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return items, nil
}

func resolveColumns(header []string) (map[string]int, error) {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		byName[normalizeHeader(h)] = i
	}

	cols := make(map[string]int, len(Columns))
	var missing []string
	for _, c := range Columns {
		idx, ok := byName[normalizeHeader(c)]
		if !ok {
			missing = append(missing, c)
			continue
		}
		cols[c] = idx
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequiredColumn, strings.Join(missing, ", "))
	}
	return cols, nil
}

func parseRow(rec []string, cols map[string]int) (model.PrepaidItem, error) {
	values := make(map[string]string, len(cols))
	for _, c := range Columns {
		v := cell(rec, cols[c])
		if v == "" {
			return model.PrepaidItem{}, fmt.Errorf("%w: %s is empty", ErrMissingRequiredColumn, c)
		}
		values[c] = v
	}

	amount, err := decimal.NewFromString(strings.ReplaceAll(values[ColAmount], ",", ""))
	if err != nil {
		return model.PrepaidItem{}, fmt.Errorf("parsing %s %q: %w", ColAmount, values[ColAmount], err)
	}
	if !amount.IsPositive() {
		return model.PrepaidItem{}, fmt.Errorf("%w: %s %s must be positive", schedule.ErrInvalidCost, ColAmount, amount)
	}

	duration, err := strconv.Atoi(values[ColDuration])
	if err != nil {
		return model.PrepaidItem{}, fmt.Errorf("%w: parsing %s %q: %v", schedule.ErrInvalidDuration, ColDuration, values[ColDuration], err)
	}
	if duration <= 0 {
		return model.PrepaidItem{}, fmt.Errorf("%w: %s %d must be positive", schedule.ErrInvalidDuration, ColDuration, duration)
	}

	start, err := period.Parse(values[ColStart])
	if err != nil {
		return model.PrepaidItem{}, fmt.Errorf("parsing %s: %w", ColStart, err)
	}

	return model.PrepaidItem{
		Name:           values[ColItem],
		InvoiceRef:     values[ColInvoice],
		Cost:           amount,
		DurationMonths: duration,
		StartMonth:     start,
	}, nil
}

func cell(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// normalizeHeader maps "Invoice Number", "invoice_number" and " INVOICE  NUMBER" alike.
func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ReplaceAll(strings.ToLower(h), "_", " ")
	return strings.Join(strings.Fields(h), " ")
}
