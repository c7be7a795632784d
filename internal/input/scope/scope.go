// Package scope tracks the top-level windows a set of key bindings applies to.
//
// A Scope is a two-state machine, Disabled and Enabled, with a terminal
// Disposed state. Attaching the first window enables it; detaching the last
// one disables it. Dispose runs a teardown callback, detaches every window
// and makes further attach/detach calls no-ops.
package scope

import (
	"errors"
	"slices"
)

// ErrNilWindow is returned when a zero-valued window handle is passed.
var ErrNilWindow = errors.New("window must not be nil")

// State is the lifecycle state of a Scope.
type State int

const (
	// StateDisabled means no window is attached.
	StateDisabled State = iota

	// StateEnabled means at least one window is attached.
	StateEnabled

	// StateDisposed is terminal.
	StateDisposed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateDisabled:
		return "disabled"
	case StateEnabled:
		return "enabled"
	case StateDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// Scope tracks attached windows of handle type W. The zero W is treated
// as a nil handle.
//
// Scope is not safe for concurrent use. Its owner serializes access.
type Scope[W comparable] struct {
	windows []W
	state   State
}

// New creates a disabled scope.
func New[W comparable]() *Scope[W] {
	return &Scope[W]{state: StateDisabled}
}

// AddWindow attaches w and enables the scope. Attaching an already
// attached window is a no-op. A nil window is rejected without changing
// state. After Dispose it does nothing.
func (s *Scope[W]) AddWindow(w W) error {
	if s.state == StateDisposed {
		return nil
	}
	var zero W
	if w == zero {
		return ErrNilWindow
	}
	if !slices.Contains(s.windows, w) {
		s.windows = append(s.windows, w)
	}
	s.state = StateEnabled
	return nil
}

// RemoveWindow detaches w. The scope becomes disabled only when the last
// attached window is removed. Unknown windows are ignored.
func (s *Scope[W]) RemoveWindow(w W) error {
	if s.state == StateDisposed {
		return nil
	}
	var zero W
	if w == zero {
		return ErrNilWindow
	}
	i := slices.Index(s.windows, w)
	if i < 0 {
		return nil
	}
	s.windows = slices.Delete(s.windows, i, i+1)
	if len(s.windows) == 0 {
		s.state = StateDisabled
	}
	return nil
}

// Windows returns the attached windows in attach order.
func (s *Scope[W]) Windows() []W {
	return slices.Clone(s.windows)
}

// State returns the current state.
func (s *Scope[W]) State() State {
	return s.state
}

// IsEnabled reports whether at least one window is attached.
func (s *Scope[W]) IsEnabled() bool {
	return s.state == StateEnabled
}

// IsDisposed reports whether Dispose has been called.
func (s *Scope[W]) IsDisposed() bool {
	return s.state == StateDisposed
}

// Dispose runs teardown, detaches every window and moves the scope to
// StateDisposed permanently. It reports false if the scope was already
// disposed, in which case teardown is not run.
func (s *Scope[W]) Dispose(teardown func()) bool {
	if s.state == StateDisposed {
		return false
	}
	if teardown != nil {
		teardown()
	}
	s.windows = nil
	s.state = StateDisposed
	return true
}
