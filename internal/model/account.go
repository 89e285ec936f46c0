package model

// AccountType classifies the accounts an amortization posts to.
type AccountType string

const (
	AccountTypeExpense    AccountType = "expense"
	AccountTypePrepayment AccountType = "prepayment"
)

// AccountPair is the expense and prepayment (asset) account for one item.
type AccountPair struct {
	Expense    string
	Prepayment string
}
