package accounts

import (
	"fmt"

	"github.com/cleared-dev/prepaid/internal/model"
)

// Mapper picks the expense and prepayment accounts for an item.
// ordinal is the item's 1-based position in the input.
type Mapper interface {
	Accounts(item model.PrepaidItem, ordinal int) model.AccountPair
}

// Positional derives account codes from the item's position in the input:
// the first item posts to EXP001/PRE001, the second to EXP002/PRE002, and so on.
// It is a stand-in for a chart-of-accounts lookup, not a real one.
type Positional struct{}

// Accounts implements Mapper.
func (Positional) Accounts(_ model.PrepaidItem, ordinal int) model.AccountPair {
	return PositionalPair(ordinal)
}

// PositionalPair returns the EXPnnn/PREnnn pair for a 1-based ordinal.
func PositionalPair(ordinal int) model.AccountPair {
	return model.AccountPair{
		Expense:    fmt.Sprintf("EXP%03d", ordinal),
		Prepayment: fmt.Sprintf("PRE%03d", ordinal),
	}
}
