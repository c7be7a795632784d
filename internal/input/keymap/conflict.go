package keymap

import (
	"github.com/sirupsen/logrus"

	"github.com/dshills/keybind/internal/input/key"
	"github.com/dshills/keybind/internal/logging"
)

// Conflict is a keystroke bound to more than one handler.
type Conflict[H comparable] struct {
	Keystroke key.Keystroke
	Handlers  []H
}

// MultiHandlerKeystrokes returns every keystroke with more than one handler,
// in first-binding order.
func (t *Table[H]) MultiHandlerKeystrokes() []key.Keystroke {
	var result []key.Keystroke
	for _, k := range t.order {
		if len(t.bindings[k]) > 1 {
			result = append(result, k)
		}
	}
	return result
}

// Conflicts returns each multi-handler keystroke with its handlers.
func (t *Table[H]) Conflicts() []Conflict[H] {
	var result []Conflict[H]
	for _, k := range t.MultiHandlerKeystrokes() {
		result = append(result, Conflict[H]{
			Keystroke: k,
			Handlers:  t.HandlersFor(k),
		})
	}
	return result
}

// Monitor emits a diagnostic when a mutation leaves a keystroke with
// several handlers. It only observes; it never blocks a binding.
//
// Monitor is not safe for concurrent use.
type Monitor struct {
	log  logrus.FieldLogger
	warn bool
}

// NewMonitor creates a monitor writing diagnostics to log.
// Warnings start disabled. A nil log gets a private default logger.
func NewMonitor(log logrus.FieldLogger) *Monitor {
	if log == nil {
		log = logging.New(logging.DefaultConfig())
	}
	return &Monitor{log: log}
}

// SetWarnOnMultipleHandlers enables or disables diagnostics.
func (m *Monitor) SetWarnOnMultipleHandlers(enabled bool) {
	m.warn = enabled
}

// WarnOnMultipleHandlers reports whether diagnostics are enabled.
func (m *Monitor) WarnOnMultipleHandlers() bool {
	return m.warn
}

// Observe is called after a register or reassign left count handlers on k.
// It reports whether a diagnostic was emitted.
func (m *Monitor) Observe(k key.Keystroke, count int) bool {
	if !m.warn || count < 2 {
		return false
	}
	m.log.WithFields(logrus.Fields{
		"keystroke": k.String(),
		"handlers":  count,
	}).Warn("multiple handlers bound to keystroke")
	return true
}
