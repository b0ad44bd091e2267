package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jacobcrotty/bankcat/internal/model"
	"github.com/jacobcrotty/bankcat/internal/session"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C9EF5"))
	filterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFE66D"))
	expenseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	incomeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4"))

	confidenceStyles = map[model.Confidence]lipgloss.Style{
		model.ConfidenceHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4")),
		model.ConfidenceMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D")),
		model.ConfidenceLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
	}
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	summary := m.sess.Stats()
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(filterStyle.Render(fmt.Sprintf(
		"%d transactions · expenses $%s · income $%s · %d high confidence",
		summary.TotalCount,
		summary.TotalExpenses.StringFixed(2),
		summary.TotalIncome.StringFixed(2),
		summary.HighConfidenceCount)))
	b.WriteString("\n\n")

	b.WriteString(m.renderFilterLine())
	b.WriteString("\n\n")

	view := m.sess.FilteredView()
	if len(view) == 0 {
		b.WriteString(filterStyle.Render("  no transactions match the current filters"))
		b.WriteString("\n")
	} else {
		start, end := m.visibleRange(len(view))
		for i := start; i < end; i++ {
			b.WriteString(m.renderRow(view[i], i == m.cursor))
			b.WriteString("\n")
		}
		b.WriteString(filterStyle.Render(fmt.Sprintf("  showing %d of %d", end-start, len(view))))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ move · / search · c category · f confidence · r reset · e export csv · y copy · q quit"))
	return b.String()
}

func (m Model) renderFilterLine() string {
	f := m.sess.Filter()

	category := f.Category
	if category == "" || category == session.FilterAll {
		category = "all"
	}
	confidence := f.Confidence
	if confidence == "" || confidence == session.FilterAll {
		confidence = "all"
	}

	line := fmt.Sprintf("category: %s · confidence: %s", category, confidence)
	if m.searching {
		return "search: " + m.search.View() + filterStyle.Render("  ·  "+line)
	}
	if f.Search != "" {
		line = fmt.Sprintf("search: %q · %s", f.Search, line)
	}
	return filterStyle.Render(line)
}

func (m Model) renderRow(r model.TransactionRecord, selected bool) string {
	marker := "  "
	if selected {
		marker = cursorStyle.Render("> ")
	}

	amountStyle := incomeStyle
	amount := "$" + r.Amount.Abs().StringFixed(2)
	if r.IsExpense() {
		amountStyle = expenseStyle
		amount = "-" + amount
	}

	confidence := string(r.Confidence)
	if confidence == "" {
		confidence = "n/a"
	}
	confStyle, ok := confidenceStyles[r.Confidence]
	if !ok {
		confStyle = filterStyle
	}

	row := fmt.Sprintf("%s%-10s  %-34s %10s  %-30s %s",
		marker,
		r.Date,
		truncate(r.Description, 34),
		amountStyle.Render(amount),
		truncate(r.SuggestedCategory, 30),
		confStyle.Render(confidence))

	if selected && r.Reasoning != "" {
		row += "\n" + filterStyle.Render("    "+truncate(r.Reasoning, 90))
	}
	return row
}

// visibleRange windows the list around the cursor to fit the terminal.
func (m Model) visibleRange(total int) (int, int) {
	visible := m.height - 10
	if visible < 5 {
		visible = 5
	}
	if total <= visible {
		return 0, total
	}

	start := m.cursor - visible/2
	if start < 0 {
		start = 0
	}
	end := start + visible
	if end > total {
		end = total
		start = end - visible
	}
	return start, end
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}
