// Package model defines the core domain models used throughout the application.
package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Confidence is the classifier-reported certainty in a suggested category.
type Confidence string

// Confidence levels as reported by the classification service. The empty
// string means the classifier did not report a level.
const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
	ConfidenceUnset  Confidence = ""
)

// Valid reports whether c is one of the known confidence levels or unset.
func (c Confidence) Valid() bool {
	switch c {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow, ConfidenceUnset:
		return true
	}
	return false
}

// TransactionRecord is a single classified transaction as returned by the
// classification service. A negative amount is an expense, a non-negative
// amount is income. SuggestedCategory is not validated against the chart of
// accounts; unknown categories are carried as free text.
type TransactionRecord struct {
	Date              string          `json:"date"`
	Description       string          `json:"description"`
	Amount            decimal.Decimal `json:"amount"`
	SuggestedCategory string          `json:"suggestedCategory"`
	Confidence        Confidence      `json:"confidence"`
	Reasoning         string          `json:"reasoning,omitempty"`
}

// IsExpense reports whether the record represents an outflow.
func (t TransactionRecord) IsExpense() bool {
	return t.Amount.IsNegative()
}

// Validate checks the fields the classification contract requires.
func (t TransactionRecord) Validate() error {
	if t.Date == "" {
		return fmt.Errorf("date is required")
	}
	if t.Description == "" {
		return fmt.Errorf("description is required")
	}
	if t.SuggestedCategory == "" {
		return fmt.Errorf("suggested category is required")
	}
	if !t.Confidence.Valid() {
		return fmt.Errorf("invalid confidence level: %q", t.Confidence)
	}
	return nil
}
