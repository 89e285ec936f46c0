package model

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/prepaid/internal/period"
)

// PrepaidItem is one invoice paid in advance and expensed over several months.
type PrepaidItem struct {
	Name           string
	InvoiceRef     string // opaque; "00412" and "INV-7" are both valid
	Cost           decimal.Decimal
	DurationMonths int
	StartMonth     period.Month
}

// EndMonth returns the last month the item is amortized in.
func (i PrepaidItem) EndMonth() period.Month {
	return i.StartMonth.AddMonths(i.DurationMonths - 1)
}
