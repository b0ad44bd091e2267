package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts of the review screen.
type KeyMap struct {
	Up              key.Binding
	Down            key.Binding
	Search          key.Binding
	CycleCategory   key.Binding
	CycleConfidence key.Binding
	ResetFilters    key.Binding
	ExportCSV       key.Binding
	CopySummary     key.Binding
	Quit            key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		CycleCategory: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "category filter"),
		),
		CycleConfidence: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "confidence filter"),
		),
		ResetFilters: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset filters"),
		),
		ExportCSV: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export csv"),
		),
		CopySummary: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
