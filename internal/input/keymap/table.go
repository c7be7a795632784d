package keymap

import (
	"slices"

	"github.com/dshills/keybind/internal/input/key"
)

// Table maps keystrokes to ordered lists of handlers.
//
// Several handlers may share a keystroke; they are kept in registration
// order. A reverse index from handler to keystrokes makes removal and
// reassignment independent of table size.
//
// Table is not safe for concurrent use. Its owner serializes access.
type Table[H comparable] struct {
	// bindings holds the handlers of each bound keystroke.
	bindings map[key.Keystroke][]H

	// order lists bound keystrokes by first binding, for deterministic iteration.
	order []key.Keystroke

	// index maps each handler to the keystrokes it is bound to.
	index map[H][]key.Keystroke
}

// NewTable creates an empty binding table.
func NewTable[H comparable]() *Table[H] {
	return &Table[H]{
		bindings: make(map[key.Keystroke][]H),
		index:    make(map[H][]key.Keystroke),
	}
}

// Register appends h to the handlers of k and returns the resulting
// handler count for k. A handler already bound to another keystroke gains
// an additional binding. Registering the same pair twice is a no-op.
func (t *Table[H]) Register(k key.Keystroke, h H) int {
	handlers, bound := t.bindings[k]
	if slices.Contains(handlers, h) {
		return len(handlers)
	}
	if !bound {
		t.order = append(t.order, k)
	}
	t.bindings[k] = append(handlers, h)
	t.index[h] = append(t.index[h], k)
	return len(t.bindings[k])
}

// Unregister removes h from every keystroke it is bound to.
// It reports whether h had any binding.
func (t *Table[H]) Unregister(h H) bool {
	keystrokes, ok := t.index[h]
	if !ok {
		return false
	}
	for _, k := range keystrokes {
		t.removeHandler(k, h)
	}
	delete(t.index, h)
	return true
}

// Reassign moves h to k: every existing binding of h is removed and h is
// appended to the handlers of k. It behaves like Register when h has no
// binding. The resulting handler count for k is returned.
func (t *Table[H]) Reassign(h H, k key.Keystroke) int {
	t.Unregister(h)
	return t.Register(k, h)
}

// removeHandler removes h from the list of k, dropping k when it empties.
func (t *Table[H]) removeHandler(k key.Keystroke, h H) {
	handlers := slices.DeleteFunc(t.bindings[k], func(x H) bool { return x == h })
	if len(handlers) > 0 {
		t.bindings[k] = handlers
		return
	}
	delete(t.bindings, k)
	if i := slices.Index(t.order, k); i >= 0 {
		t.order = slices.Delete(t.order, i, i+1)
	}
}

// HandlersFor returns the handlers bound to k in registration order.
// The returned slice is a copy; it is empty when nothing is bound.
func (t *Table[H]) HandlersFor(k key.Keystroke) []H {
	return slices.Clone(t.bindings[k])
}

// Count returns the number of handlers bound to k.
func (t *Table[H]) Count(k key.Keystroke) int {
	return len(t.bindings[k])
}

// IsAvailable returns true if no handler is bound to k.
func (t *Table[H]) IsAvailable(k key.Keystroke) bool {
	return len(t.bindings[k]) == 0
}

// KeystrokesFor returns the keystrokes h is bound to, oldest first.
func (t *Table[H]) KeystrokesFor(h H) []key.Keystroke {
	return slices.Clone(t.index[h])
}

// Keystrokes returns every bound keystroke in first-binding order.
func (t *Table[H]) Keystrokes() []key.Keystroke {
	return slices.Clone(t.order)
}

// Len returns the number of bound keystrokes.
func (t *Table[H]) Len() int {
	return len(t.order)
}

// Clear removes every binding.
func (t *Table[H]) Clear() {
	clear(t.bindings)
	clear(t.index)
	t.order = nil
}
