package tui

import "github.com/atotto/clipboard"

// copySelectedPath puts the selected violation's path on the system
// clipboard and surfaces the outcome in the status bar.
func (m Model) copySelectedPath() Model {
	row := m.table.SelectedRow()
	if row == nil {
		return m
	}
	if err := clipboard.WriteAll(row[1]); err != nil {
		return m.setStatus("clipboard unavailable: " + err.Error())
	}
	return m.setStatus("copied " + row[1])
}
