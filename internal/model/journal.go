package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side marks a journal entry as the debit or credit half of a posting.
type Side string

const (
	SideDebit  Side = "debit"
	SideCredit Side = "credit"
)

// JournalEntry is one side of an amortization posting.
type JournalEntry struct {
	ID          string    // leg ID, e.g. "2024-05-002a"
	Item        string    // originating item name; used for filtering, not rendered
	Date        time.Time
	Description string
	Reference   string
	Account     string
	AccountType AccountType
	Side        Side
	Amount      decimal.Decimal // positive for debits, negative for credits
}

// DescriptionFor returns the journal description for an item.
func DescriptionFor(item string) string {
	return "Prepayment amortisation for " + item
}
