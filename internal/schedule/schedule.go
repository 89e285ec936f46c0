package schedule

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/prepaid/internal/model"
	"github.com/cleared-dev/prepaid/internal/period"
)

// Precision is the number of decimal places kept for schedule amounts and
// balances. Journal postings are rounded to two places separately.
const Precision = 7

var (
	// ErrInvalidDuration is returned for items with a non-positive duration.
	ErrInvalidDuration = errors.New("invalid duration")
	// ErrInvalidCost is returned for items with a non-positive cost.
	ErrInvalidCost = errors.New("invalid cost")
)

// Options controls which months a schedule covers and what has been recognized.
type Options struct {
	AsAt  period.Month
	Range period.Range
}

// MonthCell pairs an output column with its value.
type MonthCell struct {
	Month period.Month
	Cell  Cell
}

// Row is one item's month-by-month amortization plan plus remaining balance.
type Row struct {
	Item           model.PrepaidItem
	AsAt           period.Month
	Columns        []MonthCell
	MonthlyValue   decimal.Decimal // negative: a reduction of the prepayment
	FilledMonths   int             // active columns inside the output range
	DeductedMonths int             // active columns on or before AsAt
	Balance        decimal.Decimal
}

// At returns the cell for m, or an inactive cell when m is outside the row.
func (r Row) At(m period.Month) Cell {
	for _, mc := range r.Columns {
		if mc.Month == m {
			return mc.Cell
		}
	}
	return Inactive()
}

// Truncated reports whether the output range ended before the item was fully amortized.
func (r Row) Truncated() bool {
	return r.FilledMonths < r.Item.DurationMonths
}

// LastActive returns the last month with an active cell.
func (r Row) LastActive() (period.Month, bool) {
	for i := len(r.Columns) - 1; i >= 0; i-- {
		if r.Columns[i].Cell.IsActive() {
			return r.Columns[i].Month, true
		}
	}
	return period.Month{}, false
}

// MonthlyValue returns round(-cost / duration, Precision).
func MonthlyValue(item model.PrepaidItem) (decimal.Decimal, error) {
	if err := validateItem(item); err != nil {
		return decimal.Zero, err
	}
	d := decimal.NewFromInt(int64(item.DurationMonths))
	return item.Cost.Neg().Div(d).Round(Precision), nil
}

// Generate builds the schedule row for a single item.
//
// Walking the range, every month on or after the item's start month is filled
// with the monthly value until DurationMonths cells are filled or the range
// ends. Only filled cells count: an item that started before the range is
// filled from the range's first month. Filled months on or before opts.AsAt
// count as deducted, and Balance is what remains undeducted at that point,
// not the total of the schedule.
func Generate(item model.PrepaidItem, opts Options) (Row, error) {
	monthly, err := MonthlyValue(item)
	if err != nil {
		return Row{}, err
	}
	if opts.AsAt.IsZero() {
		return Row{}, fmt.Errorf("%w: as-at month is required", period.ErrInvalidMonthFormat)
	}
	rng, err := period.NewRange(opts.Range.Start, opts.Range.End)
	if err != nil {
		return Row{}, err
	}

	row := Row{
		Item:         item,
		AsAt:         opts.AsAt,
		MonthlyValue: monthly,
	}

	months := rng.Months()
	row.Columns = make([]MonthCell, 0, len(months))
	for _, m := range months {
		if m.Before(item.StartMonth) || row.FilledMonths >= item.DurationMonths {
			row.Columns = append(row.Columns, MonthCell{Month: m, Cell: Inactive()})
			continue
		}
		row.Columns = append(row.Columns, MonthCell{Month: m, Cell: Active(monthly)})
		row.FilledMonths++
		if !m.After(opts.AsAt) {
			row.DeductedMonths++
		}
	}

	deducted := monthly.Abs().Mul(decimal.NewFromInt(int64(row.DeductedMonths)))
	row.Balance = item.Cost.Sub(deducted).Round(Precision)
	return row, nil
}

func validateItem(item model.PrepaidItem) error {
	if item.DurationMonths <= 0 {
		return fmt.Errorf("%w: %d months for %q", ErrInvalidDuration, item.DurationMonths, item.Name)
	}
	if !item.Cost.IsPositive() {
		return fmt.Errorf("%w: %s for %q", ErrInvalidCost, item.Cost, item.Name)
	}
	if item.StartMonth.IsZero() {
		return fmt.Errorf("%w: missing start month for %q", period.ErrInvalidMonthFormat, item.Name)
	}
	return nil
}
