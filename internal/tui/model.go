// Package tui implements the interactive review screen: the filtered view of
// a classification run with search, category, and confidence filters, and
// export shortcuts.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jacobcrotty/bankcat/internal/export"
	"github.com/jacobcrotty/bankcat/internal/model"
	"github.com/jacobcrotty/bankcat/internal/session"
)

// confidenceCycle is the order the confidence filter steps through.
var confidenceCycle = []string{session.FilterAll, "high", "medium", "low"}

// Config configures the review screen.
type Config struct {
	Session *session.Session
	Title   string
	CSVPath string
}

// Model holds the review screen state. All filtering is delegated to the
// session; the model only tracks presentation state.
type Model struct {
	sess          *session.Session
	title         string
	csvPath       string
	status        string
	categories    []string
	search        textinput.Model
	keymap        KeyMap
	cursor        int
	categoryIdx   int
	confidenceIdx int
	width         int
	height        int
	searching     bool
	quitting      bool
}

// statusExpiredMsg clears a transient status notification.
type statusExpiredMsg struct{}

// NewModel creates the review model for a session with results loaded.
func NewModel(cfg Config) Model {
	search := textinput.New()
	search.Placeholder = "search description or category"
	search.CharLimit = 80
	search.Width = 40

	categories := append([]string{session.FilterAll}, cfg.Session.DistinctCategories()...)

	csvPath := cfg.CSVPath
	if csvPath == "" {
		csvPath = fmt.Sprintf("bankcat-transactions-%s.csv", time.Now().Format("2006-01-02"))
	}

	return Model{
		sess:       cfg.Session,
		title:      cfg.Title,
		csvPath:    csvPath,
		search:     search,
		categories: categories,
		keymap:     DefaultKeyMap(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.EnterAltScreen
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case statusExpiredMsg:
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	text := m.search.Value()
	m.sess.SetFilter(session.FilterPatch{Search: &text})
	m.clampCursor()
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keymap.Down):
		if m.cursor < len(m.sess.FilteredView())-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keymap.Search):
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keymap.CycleCategory):
		m.categoryIdx = (m.categoryIdx + 1) % len(m.categories)
		category := m.categories[m.categoryIdx]
		m.sess.SetFilter(session.FilterPatch{Category: &category})
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keymap.CycleConfidence):
		m.confidenceIdx = (m.confidenceIdx + 1) % len(confidenceCycle)
		confidence := confidenceCycle[m.confidenceIdx]
		m.sess.SetFilter(session.FilterPatch{Confidence: &confidence})
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keymap.ResetFilters):
		m.sess.ResetFilter()
		m.search.SetValue("")
		m.categoryIdx = 0
		m.confidenceIdx = 0
		m.cursor = 0
		return m, nil

	case key.Matches(msg, m.keymap.ExportCSV):
		return m.exportCSV()

	case key.Matches(msg, m.keymap.CopySummary):
		return m.copySummary()
	}
	return m, nil
}

func (m Model) exportCSV() (tea.Model, tea.Cmd) {
	view := m.sess.FilteredView()
	if err := export.WriteCSV(m.csvPath, view); err != nil {
		return m.notify(fmt.Sprintf("export failed: %v", err))
	}
	return m.notify(fmt.Sprintf("exported %d transactions to %s", len(view), m.csvPath))
}

func (m Model) copySummary() (tea.Model, tea.Cmd) {
	view := m.sess.FilteredView()
	if err := export.CopyPlainSummary(view); err != nil {
		return m.notify(fmt.Sprintf("copy failed: %v", err))
	}
	return m.notify(fmt.Sprintf("copied %d transactions", len(view)))
}

// notify shows a transient status line that clears itself.
func (m Model) notify(text string) (tea.Model, tea.Cmd) {
	m.status = text
	return m, tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return statusExpiredMsg{}
	})
}

func (m *Model) clampCursor() {
	if n := len(m.sess.FilteredView()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Selected returns the record under the cursor, if any.
func (m Model) Selected() (model.TransactionRecord, bool) {
	view := m.sess.FilteredView()
	if m.cursor < 0 || m.cursor >= len(view) {
		return model.TransactionRecord{}, false
	}
	return view[m.cursor], true
}
