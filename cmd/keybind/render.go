package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dshills/keybind/internal/input/keymap"
	"github.com/dshills/keybind/internal/shortcut"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	conflictStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Padding(0, 1)

	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// newTable creates a table with the shared look. Rows listed in flagged
// are highlighted.
func newTable(headers []string, rows [][]string, flagged map[int]bool) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if flagged[row] {
				return conflictStyle
			}
			return cellStyle
		})
	return t.String()
}

// bindingsTable renders a Manager's rows. Keystrokes with several handlers
// are highlighted.
func bindingsTable(rows []shortcut.Row, conflicts []keymap.Conflict[shortcut.Handler]) string {
	shared := make(map[string]bool, len(conflicts))
	for _, c := range conflicts {
		shared[c.Keystroke.String()] = true
	}

	data := make([][]string, 0, len(rows))
	flagged := make(map[int]bool)
	for i, r := range rows {
		k := r.Keystroke.String()
		data = append(data, []string{k, r.Name})
		if shared[k] {
			flagged[i] = true
		}
	}
	return newTable([]string{"KEYSTROKE", "ACTION"}, data, flagged)
}

// conflictsTable renders each shared keystroke with its handler names.
func conflictsTable(conflicts []keymap.Conflict[shortcut.Handler]) string {
	data := make([][]string, 0, len(conflicts))
	for _, c := range conflicts {
		names := make([]string, 0, len(c.Handlers))
		for _, h := range c.Handlers {
			names = append(names, h.Name())
		}
		data = append(data, []string{c.Keystroke.String(), strings.Join(names, ", ")})
	}
	return newTable([]string{"KEYSTROKE", "ACTIONS"}, data, nil)
}
