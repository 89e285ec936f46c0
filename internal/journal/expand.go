package journal

import (
	"github.com/cleared-dev/prepaid/internal/accounts"
	"github.com/cleared-dev/prepaid/internal/id"
	"github.com/cleared-dev/prepaid/internal/model"
	"github.com/cleared-dev/prepaid/internal/period"
	"github.com/cleared-dev/prepaid/internal/schedule"
)

// AmountPlaces is the number of decimal places posted to the journal.
const AmountPlaces = 2

// GenerateAllEntries expands rows using positional account codes.
func GenerateAllEntries(rows []schedule.Row) []model.JournalEntry {
	return Expand(rows, accounts.Positional{})
}

// Expand turns schedule rows into journal entries.
//
// Every active cell yields an expense debit followed by a prepayment credit
// of equal and opposite amount, dated the last day of the cell's month.
// Cells that round to 0.00 post nothing. Entries are ordered by row, then
// month, then debit first.
// Postings are numbered per month in row order; the debit is leg "a".
func Expand(rows []schedule.Row, mapper accounts.Mapper) []model.JournalEntry {
	var entries []model.JournalEntry
	seq := make(map[period.Month]int)
	for i, row := range rows {
		pair := mapper.Accounts(row.Item, i+1)
		desc := model.DescriptionFor(row.Item.Name)

		for _, mc := range row.Columns {
			value, ok := mc.Cell.Amount()
			if !ok {
				continue
			}
			amount := value.Abs().Round(AmountPlaces)
			if amount.IsZero() {
				continue
			}
			date := mc.Month.LastDay()
			seq[mc.Month]++
			posting := id.Posting(mc.Month, seq[mc.Month])

			entries = append(entries,
				model.JournalEntry{
					ID:          id.Leg(posting, 0),
					Item:        row.Item.Name,
					Date:        date,
					Description: desc,
					Reference:   row.Item.InvoiceRef,
					Account:     pair.Expense,
					AccountType: model.AccountTypeExpense,
					Side:        model.SideDebit,
					Amount:      amount,
				},
				model.JournalEntry{
					ID:          id.Leg(posting, 1),
					Item:        row.Item.Name,
					Date:        date,
					Description: desc,
					Reference:   row.Item.InvoiceRef,
					Account:     pair.Prepayment,
					AccountType: model.AccountTypePrepayment,
					Side:        model.SideCredit,
					Amount:      amount.Neg(),
				},
			)
		}
	}
	return entries
}
