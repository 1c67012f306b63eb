package tui

import (
	"strings"
	"testing"

	"github.com/arkive/arkive/internal/types"
	tea "github.com/charmbracelet/bubbletea"
)

var sample = []types.Violation{
	{Path: "sub/bad:name.txt", Kind: types.KindFile, Rule: "invalid_characters", Message: `name contains invalid characters: ":"`},
	{Path: "hollow", Kind: types.KindDir, Rule: "empty_dir", Message: "directory is empty"},
}

func sized(m Model) Model {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model)
}

func TestModel_ViewShowsViolations(t *testing.T) {
	m := sized(NewModel(sample))
	view := m.View()
	if !strings.Contains(view, "bad:name.txt") {
		t.Fatalf("view missing violation path:\n%s", view)
	}
	if !strings.Contains(view, "2 violations") {
		t.Fatalf("view missing count:\n%s", view)
	}
}

func TestModel_LoadingBeforeFirstResize(t *testing.T) {
	m := NewModel(sample)
	if !strings.Contains(m.View(), "loading") {
		t.Fatalf("expected loading placeholder, got:\n%s", m.View())
	}
}

func TestModel_EmptyReport(t *testing.T) {
	m := sized(NewModel(nil))
	if !strings.Contains(m.View(), "No violations found") {
		t.Fatalf("expected empty-state view, got:\n%s", m.View())
	}
}

func TestModel_QuitKeys(t *testing.T) {
	for _, key := range []string{"q", "esc", "ctrl+c"} {
		m := sized(NewModel(sample))
		updated, cmd := m.Update(keyMsg(key))
		if cmd == nil {
			t.Fatalf("key %q should quit", key)
		}
		if updated.(Model).View() != "" {
			t.Fatalf("quitting view should be empty for %q", key)
		}
	}
}

func TestModel_CursorMoves(t *testing.T) {
	m := sized(NewModel(sample))
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(Model)
	if !strings.Contains(m.View(), "2/2") {
		t.Fatalf("expected cursor on second row:\n%s", m.View())
	}
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}
