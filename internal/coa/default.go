package coa

import "github.com/jacobcrotty/bankcat/internal/model"

// Default returns the built-in QuickBooks-style chart of accounts used when
// no custom chart file is configured.
func Default() *Registry {
	return New(defaultAccounts)
}

var defaultAccounts = []model.Account{
	{Name: "Distribution - Deanna", Type: model.AccountTypeEquity, DetailType: "Partner Distributions"},
	{Name: "Distribution - Mark", Type: model.AccountTypeEquity, DetailType: "Partner Distributions"},
	{Name: "Opening Balance Equity", Type: model.AccountTypeEquity, DetailType: "Opening Balance Equity"},
	{Name: "Retained Earnings", Type: model.AccountTypeEquity, DetailType: "Retained Earnings"},
	{Name: "Billable Expense Income", Type: model.AccountTypeIncome, DetailType: "Service/Fee Income"},
	{Name: "Returns", Type: model.AccountTypeIncome, DetailType: "Discounts/Refunds Given"},
	{Name: "Services", Type: model.AccountTypeIncome, DetailType: "Service/Fee Income"},
	{Name: "Uncategorized Income", Type: model.AccountTypeIncome, DetailType: "Service/Fee Income"},
	{Name: "Cost of Goods Sold", Type: model.AccountTypeCOGS, DetailType: "Other Costs of Services - COS"},
	{Name: "Airplanes - Fuel & Gas", Type: model.AccountTypeCOGS, DetailType: "Other Costs of Services - COS"},
	{Name: "Airplanes - Supplies & Materials", Type: model.AccountTypeCOGS, DetailType: "Other Costs of Services - COS"},
	{Name: "Tools (COGS)", Type: model.AccountTypeCOGS, DetailType: "Supplies & Materials - COGS"},
	{Name: "Vehicles - Fuel & Gas", Type: model.AccountTypeCOGS, DetailType: "Other Costs of Services - COS"},
	{Name: "Vehicles - Repairs & Maintenance", Type: model.AccountTypeCOGS, DetailType: "Other Costs of Services - COS"},
	{Name: "Vehicles - Supplies & Materials", Type: model.AccountTypeCOGS, DetailType: "Supplies & Materials - COGS"},
	{Name: "Bank Fees", Type: model.AccountTypeExpenses, DetailType: "Other Business Expenses"},
	{Name: "Business Licenses", Type: model.AccountTypeExpenses, DetailType: "Legal & Professional Fees"},
	{Name: "Contract Labor & Outside Services", Type: model.AccountTypeExpenses, DetailType: "Cost of Labor"},
	{Name: "Legal & Accounting Fees", Type: model.AccountTypeExpenses, DetailType: "Legal & Professional Fees"},
	{Name: "Meals", Type: model.AccountTypeExpenses, DetailType: "Entertainment Meals"},
	{Name: "Rent", Type: model.AccountTypeExpenses, DetailType: "Other Business Expenses"},
	{Name: "Shipping & Freight", Type: model.AccountTypeExpenses, DetailType: "Shipping, Freight & Delivery"},
	{Name: "Software & Subscription Expenses", Type: model.AccountTypeExpenses, DetailType: "Other Business Expenses"},
	{Name: "Supplies", Type: model.AccountTypeExpenses, DetailType: "Supplies & Materials"},
	{Name: "Travel", Type: model.AccountTypeExpenses, DetailType: "Travel"},
	{Name: "Uncategorized Expense", Type: model.AccountTypeExpenses, DetailType: "Other Miscellaneous Service Cost"},
	{Name: "Utilities & Maintenance", Type: model.AccountTypeExpenses, DetailType: "Utilities"},
	{Name: "Reconciliation Discrepancies", Type: model.AccountTypeOtherExpense, DetailType: "Other Miscellaneous Expense"},
}
