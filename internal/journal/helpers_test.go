package journal

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/prepaid/internal/model"
	"github.com/cleared-dev/prepaid/internal/period"
	"github.com/cleared-dev/prepaid/internal/schedule"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func month(s string) period.Month {
	return period.MustParse(s)
}

func scheduleOpts() schedule.Options {
	return schedule.Options{
		AsAt:  month("Oct-24"),
		Range: period.Range{Start: month("Jan-24"), End: month("Dec-25")},
	}
}

func testItems() []model.PrepaidItem {
	return []model.PrepaidItem{
		{Name: "Webhosting", InvoiceRef: "46248", Cost: dec("10000"), DurationMonths: 12, StartMonth: month("Jan-24")},
		{Name: "Insurance", InvoiceRef: "089017", Cost: dec("1200"), DurationMonths: 9, StartMonth: month("Apr-24")},
	}
}

func testRows(t *testing.T) []schedule.Row {
	t.Helper()
	var rows []schedule.Row
	for _, it := range testItems() {
		row, err := schedule.Generate(it, scheduleOpts())
		require.NoError(t, err)
		rows = append(rows, row)
	}
	return rows
}

func testEntries(t *testing.T) []model.JournalEntry {
	t.Helper()
	return GenerateAllEntries(testRows(t))
}
