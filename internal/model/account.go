package model

// AccountType is the top-level accounting classification of a category.
type AccountType string

// Account types used by the chart of accounts.
const (
	AccountTypeEquity       AccountType = "Equity"
	AccountTypeIncome       AccountType = "Income"
	AccountTypeCOGS         AccountType = "Cost of Goods Sold"
	AccountTypeExpenses     AccountType = "Expenses"
	AccountTypeOtherExpense AccountType = "Other Expense"
)

// Account is one entry in the chart of accounts: a category name mapped to
// its accounting type and detail type. Accounts are loaded once at startup
// and never mutated.
type Account struct {
	Name       string
	Type       AccountType
	DetailType string
}
