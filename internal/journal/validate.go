package journal

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/prepaid/internal/id"
	"github.com/cleared-dev/prepaid/internal/model"
	"github.com/cleared-dev/prepaid/internal/period"
)

// Check identifies which rule a ValidationError violates.
type Check int

const (
	CheckBalanced Check = iota + 1
	CheckPaired
	CheckPrecision
	CheckMonthEnd
	CheckEntryID
)

// ValidationError describes a single rule violation.
type ValidationError struct {
	Check       Check
	Group       string // "<item> <Mon-YY>"
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("check %d [%s]: %s", e.Check, e.Group, e.Description)
}

type groupKey struct {
	posting string
	item    string
	month   period.Month
}

func (k groupKey) String() string {
	if k.posting != "" {
		return k.posting
	}
	return k.item + " " + k.month.Label()
}

// Validate checks that entries form balanced debit/credit pairs, carry at most
// two decimal places and are dated on a month end. Entries are paired by
// posting ID, or by item and month when they have no ID.
func Validate(entries []model.JournalEntry) []ValidationError {
	var errs []ValidationError

	groups := make(map[groupKey][]model.JournalEntry)
	var order []groupKey
	for _, e := range entries {
		k := groupKey{item: e.Item, month: period.Of(e.Date)}
		if e.ID != "" {
			k = groupKey{posting: id.Group(e.ID)}
		}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], e)
	}

	for _, k := range order {
		name := k.String()
		total := decimal.Zero
		debits, credits := 0, 0
		for _, e := range groups[k] {
			total = total.Add(e.Amount)
			switch {
			case e.Side == model.SideDebit && e.Amount.IsPositive():
				debits++
			case e.Side == model.SideCredit && e.Amount.IsNegative():
				credits++
			}
		}
		if !total.IsZero() {
			errs = append(errs, ValidationError{
				Check:       CheckBalanced,
				Group:       name,
				Description: fmt.Sprintf("entries net to %s, want 0.00", total.StringFixed(AmountPlaces)),
			})
		}
		if debits != 1 || credits != 1 || len(groups[k]) != 2 {
			errs = append(errs, ValidationError{
				Check:       CheckPaired,
				Group:       name,
				Description: fmt.Sprintf("want one debit and one credit, got %d entries (%d debit, %d credit)", len(groups[k]), debits, credits),
			})
		}
	}

	for _, e := range entries {
		name := e.Item + " " + period.Of(e.Date).Label()
		if e.Amount.IsZero() || !e.Amount.Equal(e.Amount.Round(AmountPlaces)) {
			errs = append(errs, ValidationError{
				Check:       CheckPrecision,
				Group:       name,
				Description: fmt.Sprintf("amount %s must be non-zero with at most %d decimal places", e.Amount, AmountPlaces),
			})
		}
		if !e.Date.Equal(period.Of(e.Date).LastDay()) {
			errs = append(errs, ValidationError{
				Check:       CheckMonthEnd,
				Group:       name,
				Description: fmt.Sprintf("date %s is not a month end", e.Date.Format(period.DateFormat)),
			})
		}
		if e.ID == "" {
			continue
		}
		if m, _, err := id.Parse(e.ID); err != nil {
			errs = append(errs, ValidationError{Check: CheckEntryID, Group: name, Description: err.Error()})
		} else if m != period.Of(e.Date) {
			errs = append(errs, ValidationError{
				Check:       CheckEntryID,
				Group:       name,
				Description: fmt.Sprintf("ID %s is not in the posting month %s", e.ID, period.Of(e.Date).Label()),
			})
		}
	}

	return errs
}
