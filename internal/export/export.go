// Package export serializes a transaction set for files and the clipboard.
// Exports always operate on the caller's filtered view, so what is written
// matches what is visible.
//
// The delimited format quotes every field but does not escape quote
// characters embedded in field values. That is a known limitation of the
// format this tool is contracted to produce; consumers that need strict CSV
// should post-process or avoid quotes in descriptions.
package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/jacobcrotty/bankcat/internal/model"
)

// Header is the first row of every delimited export.
const Header = "Date,Description,Amount,Category,Confidence,Reasoning"

// DelimitedText renders records as delimited text: the header row followed
// by one row per record, every field individually double-quoted, raw values
// verbatim. Amounts are emitted as their literal signed decimal value.
func DelimitedText(records []model.TransactionRecord) string {
	lines := make([]string, 0, len(records)+1)
	lines = append(lines, Header)
	for _, r := range records {
		fields := []string{
			r.Date,
			r.Description,
			r.Amount.String(),
			r.SuggestedCategory,
			string(r.Confidence),
			r.Reasoning,
		}
		quoted := make([]string, len(fields))
		for i, f := range fields {
			quoted[i] = `"` + f + `"`
		}
		lines = append(lines, strings.Join(quoted, ","))
	}
	return strings.Join(lines, "\n")
}

// PlainSummary renders records as pipe-delimited lines suitable for the
// clipboard: date | description | amount | category | confidence. Lines are
// newline-joined with no header and no trailing newline.
func PlainSummary(records []model.TransactionRecord) string {
	lines := make([]string, 0, len(records))
	for _, r := range records {
		lines = append(lines, fmt.Sprintf("%s | %s | %s | %s | %s",
			r.Date, r.Description, r.Amount.String(), r.SuggestedCategory, r.Confidence))
	}
	return strings.Join(lines, "\n")
}

// WriteCSV writes the delimited export to path.
func WriteCSV(path string, records []model.TransactionRecord) error {
	if err := os.WriteFile(path, []byte(DelimitedText(records)+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}

// CopyPlainSummary places the plain summary of records on the system
// clipboard.
func CopyPlainSummary(records []model.TransactionRecord) error {
	if err := clipboard.WriteAll(PlainSummary(records)); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}
