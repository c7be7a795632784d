package shortcut

import "github.com/dshills/keybind/internal/input/key"

// ChangeKind identifies the mutation a Change describes.
type ChangeKind int

const (
	// ChangeRegister means a handler gained a binding.
	ChangeRegister ChangeKind = iota

	// ChangeUnregister means a handler lost all its bindings.
	ChangeUnregister

	// ChangeReassign means a handler was moved to a single keystroke.
	ChangeReassign

	// ChangeClear means every binding was removed.
	ChangeClear

	// ChangeDispose means the manager was disposed.
	ChangeDispose
)

// String returns the change kind name.
func (c ChangeKind) String() string {
	switch c {
	case ChangeRegister:
		return "register"
	case ChangeUnregister:
		return "unregister"
	case ChangeReassign:
		return "reassign"
	case ChangeClear:
		return "clear"
	case ChangeDispose:
		return "dispose"
	default:
		return "unknown"
	}
}

// Change describes a mutation of the binding table.
type Change struct {
	Kind ChangeKind

	// Handler is nil for clear and dispose.
	Handler Handler

	// Keystroke is the new binding for register and reassign.
	Keystroke key.Keystroke
}

// Listener receives change notifications.
type Listener func(Change)

type subscription struct {
	id uint64
	fn Listener
}
