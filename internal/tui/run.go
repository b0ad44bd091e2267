package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the review screen and blocks until the user quits.
func Run(cfg Config) error {
	if cfg.Session == nil {
		return fmt.Errorf("session is required")
	}
	if cfg.Title == "" {
		cfg.Title = "bankcat · transaction review"
	}

	program := tea.NewProgram(NewModel(cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("review screen failed: %w", err)
	}
	return nil
}
