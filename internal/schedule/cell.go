package schedule

import "github.com/shopspring/decimal"

// Cell is one month of a schedule row: either an active amortization amount
// or inactive (the item has not started or is already fully amortized).
type Cell struct {
	amount decimal.Decimal
	active bool
}

// Active returns a cell carrying amount.
func Active(amount decimal.Decimal) Cell {
	return Cell{amount: amount, active: true}
}

// Inactive returns a cell with no amortization for its month.
func Inactive() Cell {
	return Cell{}
}

// IsActive reports whether the cell carries an amount.
func (c Cell) IsActive() bool {
	return c.active
}

// Amount returns the cell's amount and whether the cell is active.
func (c Cell) Amount() (decimal.Decimal, bool) {
	return c.amount, c.active
}

func (c Cell) String() string {
	if !c.active {
		return ""
	}
	return c.amount.String()
}
