package tui

import (
	"fmt"
	"time"

	"github.com/arkive/arkive/internal/types"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	tableBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("7"))

	emptyTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Align(lipgloss.Center)

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Model is the interactive violation browser.
type Model struct {
	table         table.Model
	violations    []types.Violation
	quitting      bool
	ready         bool
	width         int
	height        int
	statusMessage string
	statusTimeout *time.Time
}

// NewModel initializes the browser over a finished violation report.
func NewModel(violations []types.Violation) Model {
	columns := []table.Column{
		{Title: "Rule", Width: 20},
		{Title: "Path", Width: 48},
		{Title: "Message", Width: 44},
	}
	rows := make([]table.Row, len(violations))
	for i, v := range violations {
		rows[i] = table.Row{v.Rule, v.Path, v.Message}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true).Foreground(lipgloss.Color("6"))
	s.Selected = s.Selected.Background(lipgloss.Color("237")).Foreground(lipgloss.Color("15"))
	t.SetStyles(s)

	return Model{table: t, violations: violations}
}

func (m Model) Init() tea.Cmd { return nil }

// Update handles keyboard and resize events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(3, msg.Height-6))
		m.ready = true
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "c":
			m = m.copySelectedPath()
			return m, nil
		}
	}
	if m.statusTimeout != nil && time.Now().After(*m.statusTimeout) {
		m.statusMessage = ""
		m.statusTimeout = nil
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the table with a title, status bar and key help.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "loading..."
	}
	if len(m.violations) == 0 {
		return emptyTextStyle.Width(m.width).Render("\nNo violations found\n\npress q to quit")
	}

	title := titleStyle.Render(fmt.Sprintf("arkive check — %d violation%s", len(m.violations), plural(len(m.violations))))
	status := m.statusMessage
	if status == "" {
		status = fmt.Sprintf("%d/%d", m.table.Cursor()+1, len(m.violations))
	}
	help := helpStyle.Render("↑/↓ navigate · c copy path · q quit")

	return title + "\n" +
		tableBorderStyle.Render(m.table.View()) + "\n" +
		statusStyle.Width(m.width).Render(" "+status) + "\n" +
		help
}

func (m Model) setStatus(msg string) Model {
	t := time.Now().Add(3 * time.Second)
	m.statusMessage = msg
	m.statusTimeout = &t
	return m
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
