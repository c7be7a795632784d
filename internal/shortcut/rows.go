package shortcut

import "github.com/dshills/keybind/internal/input/key"

// Row is one binding in the tabular view of a Manager.
type Row struct {
	Handler   Handler
	Name      string
	Keystroke key.Keystroke
}

// Rows returns one row per binding, ordered by keystroke first-binding
// order and then by handler registration order. The view is built on
// every call.
func (m *Manager) Rows() []Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	var rows []Row
	for _, k := range m.table.Keystrokes() {
		for _, h := range m.table.HandlersFor(k) {
			rows = append(rows, Row{Handler: h, Name: h.Name(), Keystroke: k})
		}
	}
	return rows
}

// Len returns the number of bound keystrokes.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.table.Len()
}
