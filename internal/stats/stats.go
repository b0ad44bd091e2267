// Package stats computes summary statistics over a set of classified
// transactions. All computations are pure functions of their input.
package stats

import (
	"github.com/jacobcrotty/bankcat/internal/model"
	"github.com/shopspring/decimal"
)

// Summary aggregates one transaction set. Amounts accumulate as decimals;
// rounding to cents happens only when a value is rendered.
type Summary struct {
	TotalExpenses       decimal.Decimal
	TotalIncome         decimal.Decimal
	TotalCount          int
	HighConfidenceCount int
}

// Compute builds a summary over records. Expenses are the absolute values of
// negative amounts; income is the sum of non-negative amounts.
func Compute(records []model.TransactionRecord) Summary {
	s := Summary{
		TotalExpenses: decimal.Zero,
		TotalIncome:   decimal.Zero,
		TotalCount:    len(records),
	}
	for _, r := range records {
		if r.Amount.IsNegative() {
			s.TotalExpenses = s.TotalExpenses.Add(r.Amount.Abs())
		} else {
			s.TotalIncome = s.TotalIncome.Add(r.Amount)
		}
		if r.Confidence == model.ConfidenceHigh {
			s.HighConfidenceCount++
		}
	}
	return s
}

// Net returns income minus expenses, which always equals the plain sum of
// all amounts in the input set.
func (s Summary) Net() decimal.Decimal {
	return s.TotalIncome.Sub(s.TotalExpenses)
}
