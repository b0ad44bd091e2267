package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/jacobcrotty/bankcat/internal/model"
	"github.com/jacobcrotty/bankcat/internal/stats"
)

// confidenceBadge maps confidence levels to their display markers.
func confidenceBadge(c model.Confidence) string {
	switch c {
	case model.ConfidenceHigh:
		return SuccessStyle.Render("● high")
	case model.ConfidenceMedium:
		return WarningStyle.Render("● medium")
	case model.ConfidenceLow:
		return ErrorStyle.Render("● low")
	default:
		return SubtleStyle.Render("○ n/a")
	}
}

// formatAmount renders a signed amount rounded to cents with color.
func formatAmount(r model.TransactionRecord) string {
	text := "$" + r.Amount.Abs().StringFixed(2)
	if r.IsExpense() {
		return ExpenseStyle.Render("-" + text)
	}
	return IncomeStyle.Render(text)
}

// RenderTransactions writes a transaction table to w.
func RenderTransactions(w io.Writer, records []model.TransactionRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, SubtleStyle.Render("No transactions match the current filters."))
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer func() { _ = tw.Flush() }()

	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
		HeaderStyle.Render("Date"),
		HeaderStyle.Render("Description"),
		HeaderStyle.Render("Amount"),
		HeaderStyle.Render("Category"),
		HeaderStyle.Render("Confidence"))
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
		strings.Repeat("-", 10),
		strings.Repeat("-", 30),
		strings.Repeat("-", 10),
		strings.Repeat("-", 24),
		strings.Repeat("-", 10))

	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.Date,
			r.Description,
			formatAmount(r),
			r.SuggestedCategory,
			confidenceBadge(r.Confidence))
	}
}

// RenderSummary writes the stats block to w.
func RenderSummary(w io.Writer, summary stats.Summary) {
	fmt.Fprintf(w, "%s  %d\n", SubtleStyle.Render("Transactions:"), summary.TotalCount)
	fmt.Fprintf(w, "%s %s\n", SubtleStyle.Render("Total expenses:"), ExpenseStyle.Render("$"+summary.TotalExpenses.StringFixed(2)))
	fmt.Fprintf(w, "%s   %s\n", SubtleStyle.Render("Total income:"), IncomeStyle.Render("$"+summary.TotalIncome.StringFixed(2)))
	fmt.Fprintf(w, "%s %d\n", SubtleStyle.Render("High confidence:"), summary.HighConfidenceCount)
}
