package tui

import (
	"fmt"

	"github.com/arkive/arkive/internal/types"
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive violation browser over a finished report.
func Run(violations []types.Violation) error {
	m := NewModel(violations)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
