package classify

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jacobcrotty/bankcat/internal/model"
	"github.com/shopspring/decimal"
)

// rawRecord mirrors the wire shape of one classified transaction. Amount is
// decoded through json.Number so currency values never pass through a float.
type rawRecord struct {
	Date              *string     `json:"date"`
	Description       *string     `json:"description"`
	Amount            json.Number `json:"amount"`
	SuggestedCategory *string     `json:"suggestedCategory"`
	Confidence        string      `json:"confidence"`
	Reasoning         string      `json:"reasoning"`
}

// ParseResult decodes the service payload into transaction records. The
// payload must be a JSON array matching the transaction schema exactly;
// anything else is a malformed-response error. Markdown code fences around
// the array are stripped first, since LLM output occasionally wraps JSON in
// them despite instructions.
func ParseResult(payload string) ([]model.TransactionRecord, error) {
	cleaned := stripMarkdownFences(payload)

	dec := json.NewDecoder(strings.NewReader(cleaned))
	dec.UseNumber()

	var raw []rawRecord
	if err := dec.Decode(&raw); err != nil {
		return nil, &Error{Kind: KindMalformedResponse, Err: fmt.Errorf("payload is not a transaction array: %w", err)}
	}
	if dec.More() {
		return nil, &Error{Kind: KindMalformedResponse, Message: "trailing data after transaction array"}
	}

	records := make([]model.TransactionRecord, 0, len(raw))
	for i, r := range raw {
		record, err := r.toRecord()
		if err != nil {
			return nil, &Error{Kind: KindMalformedResponse, Err: fmt.Errorf("transaction %d: %w", i, err)}
		}
		records = append(records, record)
	}
	return records, nil
}

func (r rawRecord) toRecord() (model.TransactionRecord, error) {
	if r.Date == nil {
		return model.TransactionRecord{}, fmt.Errorf("missing date")
	}
	if r.Description == nil {
		return model.TransactionRecord{}, fmt.Errorf("missing description")
	}
	if r.SuggestedCategory == nil {
		return model.TransactionRecord{}, fmt.Errorf("missing suggestedCategory")
	}
	if r.Amount == "" {
		return model.TransactionRecord{}, fmt.Errorf("missing amount")
	}

	amount, err := decimal.NewFromString(r.Amount.String())
	if err != nil {
		return model.TransactionRecord{}, fmt.Errorf("invalid amount %q: %w", r.Amount, err)
	}

	confidence := model.Confidence(strings.ToLower(strings.TrimSpace(r.Confidence)))
	if !confidence.Valid() {
		return model.TransactionRecord{}, fmt.Errorf("invalid confidence %q", r.Confidence)
	}

	return model.TransactionRecord{
		Date:              *r.Date,
		Description:       *r.Description,
		Amount:            amount,
		SuggestedCategory: *r.SuggestedCategory,
		Confidence:        confidence,
		Reasoning:         r.Reasoning,
	}, nil
}

// stripMarkdownFences removes ```json / ``` wrappers around a payload.
func stripMarkdownFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
