package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacobcrotty/bankcat/internal/model"
	"github.com/jacobcrotty/bankcat/internal/session"
)

func testSession() *session.Session {
	s := session.New(nil)
	s.SetResults([]model.TransactionRecord{
		{
			Date:              "2024-01-02",
			Description:       "Office Depot",
			Amount:            decimal.RequireFromString("-45.99"),
			SuggestedCategory: "Supplies",
			Confidence:        model.ConfidenceHigh,
			Reasoning:         "Office supplies purchase",
		},
		{
			Date:              "2024-01-05",
			Description:       "Client payment",
			Amount:            decimal.RequireFromString("1200"),
			SuggestedCategory: "Services",
			Confidence:        model.ConfidenceMedium,
		},
		{
			Date:              "2024-01-08",
			Description:       "Shell",
			Amount:            decimal.RequireFromString("-30"),
			SuggestedCategory: "Vehicles - Fuel & Gas",
			Confidence:        model.ConfidenceLow,
		},
	})
	return s
}

func keyPress(m Model, keys ...string) Model {
	current := m
	for _, k := range keys {
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		}
		updated, _ := current.Update(msg)
		current = updated.(Model)
	}
	return current
}

func TestModel_ViewShowsAllTransactions(t *testing.T) {
	m := NewModel(Config{Session: testSession(), Title: "review"})
	m.height = 40

	view := m.View()
	assert.Contains(t, view, "Office Depot")
	assert.Contains(t, view, "Client payment")
	assert.Contains(t, view, "Shell")
	assert.Contains(t, view, "3 transactions")
}

func TestModel_SearchFiltersView(t *testing.T) {
	m := NewModel(Config{Session: testSession()})
	m.height = 40

	m = keyPress(m, "/", "d", "e", "p", "o", "t", "enter")

	view := m.View()
	assert.Contains(t, view, "Office Depot")
	assert.NotContains(t, view, "Client payment")
	assert.Equal(t, "depot", m.sess.Filter().Search)
}

func TestModel_CycleCategoryFilter(t *testing.T) {
	m := NewModel(Config{Session: testSession()})
	m.height = 40

	// Categories are sorted, so the first cycle lands on "Services".
	m = keyPress(m, "c")
	require.Equal(t, "Services", m.sess.Filter().Category)

	view := m.View()
	assert.Contains(t, view, "Client payment")
	assert.NotContains(t, view, "Office Depot")

	// Cycling past the last category wraps back to all.
	m = keyPress(m, "c", "c", "c")
	assert.Equal(t, session.FilterAll, m.sess.Filter().Category)
}

func TestModel_CycleConfidenceFilter(t *testing.T) {
	m := NewModel(Config{Session: testSession()})
	m.height = 40

	m = keyPress(m, "f")
	assert.Equal(t, "high", m.sess.Filter().Confidence)

	view := m.View()
	assert.Contains(t, view, "Office Depot")
	assert.NotContains(t, view, "Shell")
}

func TestModel_ResetFilters(t *testing.T) {
	m := NewModel(Config{Session: testSession()})
	m.height = 40

	m = keyPress(m, "c", "f", "r")
	assert.Equal(t, session.Filter{}, m.sess.Filter())
	assert.Contains(t, m.View(), "Shell")
}

func TestModel_CursorMovesWithinFilteredView(t *testing.T) {
	m := NewModel(Config{Session: testSession()})
	m.height = 40

	m = keyPress(m, "j", "j", "j", "j")
	assert.Equal(t, 2, m.cursor, "cursor stops at the last row")

	m = keyPress(m, "k")
	assert.Equal(t, 1, m.cursor)

	// Narrowing the view pulls the cursor back in range.
	m = keyPress(m, "j", "/", "d", "e", "p", "o", "t", "enter")
	selected, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "Office Depot", selected.Description)
}

func TestModel_QuitKey(t *testing.T) {
	m := NewModel(Config{Session: testSession()})

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.True(t, updated.(Model).quitting)
}

func TestModel_SelectedReasoningShownForCursorRow(t *testing.T) {
	m := NewModel(Config{Session: testSession()})
	m.height = 40

	view := m.View()
	assert.True(t, strings.Contains(view, "Office supplies purchase"),
		"reasoning of the selected row is visible")
}
