package shortcut

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
)

// Handler is the identity a keystroke is bound to. Implementations must be
// comparable and non-nil; pointer receivers are the usual choice. Name is
// a display name and need not be unique.
type Handler interface {
	Name() string
}

// Action is a Handler that can be performed when its keystroke is pressed.
// The registry never performs actions itself; UI adapters do.
type Action interface {
	Handler
	Perform()
}

// Callback adapts a plain function to an Action. Each Callback is a
// distinct identity even when two share a name.
type Callback struct {
	id   uuid.UUID
	name string
	fn   func()
}

// NewCallback creates a callback action. A nil fn makes Perform a no-op;
// Manager.RegisterFunc rejects it.
func NewCallback(name string, fn func()) *Callback {
	return &Callback{id: uuid.New(), name: name, fn: fn}
}

// ID returns the unique identifier of the callback.
func (c *Callback) ID() uuid.UUID { return c.id }

// Name returns the display name.
func (c *Callback) Name() string { return c.name }

// Perform runs the callback function.
func (c *Callback) Perform() {
	if c.fn != nil {
		c.fn()
	}
}

// String returns the name followed by a short form of the id.
func (c *Callback) String() string {
	return fmt.Sprintf("%s#%s", c.name, c.id.String()[:8])
}

// validateHandler rejects nil, typed-nil and non-comparable handlers.
// Comparing a non-comparable interface value panics, so this must run
// before the handler reaches the table.
func validateHandler(h Handler) error {
	if h == nil {
		return fmt.Errorf("%w: handler must not be nil", ErrInvalidArgument)
	}
	return validateIdentity("handler", h)
}

func validateIdentity(what string, v any) error {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		if rv.IsNil() {
			return fmt.Errorf("%w: %s must not be nil", ErrInvalidArgument, what)
		}
	}
	if !rv.Comparable() {
		return fmt.Errorf("%w: %s of type %T is not comparable", ErrInvalidArgument, what, v)
	}
	return nil
}
