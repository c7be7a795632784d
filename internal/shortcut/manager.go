// Package shortcut is the public entry point of the keyboard-shortcut
// registry.
//
// A Manager binds handler identities to keystrokes, answers which handlers
// a keystroke resolves to, reports keystrokes shared by several handlers,
// and tracks the windows its bindings apply to. Keystrokes may be given as
// text ("ctrl+shift+F3") or as key.Keystroke values; both forms resolve to
// the same binding.
//
// Every method is safe for concurrent use. Change listeners run after the
// internal lock is released and may call back into the Manager.
package shortcut

import (
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/dshills/keybind/internal/config"
	"github.com/dshills/keybind/internal/input/key"
	"github.com/dshills/keybind/internal/input/keymap"
	"github.com/dshills/keybind/internal/input/scope"
	"github.com/dshills/keybind/internal/logging"
)

// Manager is a keyboard-shortcut registry.
type Manager struct {
	mu sync.Mutex

	table   *keymap.Table[Handler]
	scope   *scope.Scope[any]
	monitor *keymap.Monitor

	logger *logrus.Logger
	log    *logrus.Entry

	// set by options before construction completes
	warn  bool
	level string

	listeners []subscription
	nextID    uint64
}

// New creates an empty, disabled Manager.
func New(opts ...Option) *Manager {
	m := &Manager{
		table:  keymap.NewTable[Handler](),
		scope:  scope.New[any](),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = logging.New(logging.DefaultConfig())
	}
	if m.level != "" {
		m.logger.SetLevel(logging.ParseLevel(m.level))
	}

	m.log = logging.WithComponent(m.logger, "shortcut")
	m.monitor = keymap.NewMonitor(m.log)
	m.monitor.SetWarnOnMultipleHandlers(m.warn)
	return m
}

// parseKeystroke converts text to a keystroke or returns ErrInvalidArgument.
func parseKeystroke(text string) (key.Keystroke, error) {
	if strings.TrimSpace(text) == "" {
		return key.Keystroke{}, fmt.Errorf("%w: keystroke must not be blank", ErrInvalidArgument)
	}
	k, ok := key.Parse(text)
	if !ok {
		return key.Keystroke{}, fmt.Errorf("%w: unparsable keystroke %q", ErrInvalidArgument, text)
	}
	return k, nil
}

func validateKeystroke(k key.Keystroke) error {
	if !k.IsValid() {
		return fmt.Errorf("%w: invalid keystroke %#v", ErrInvalidArgument, k)
	}
	return nil
}

// mutate runs fn under the lock unless the manager is disposed, then
// delivers the resulting changes to listeners once the lock is released.
func (m *Manager) mutate(fn func() ([]Change, error)) error {
	m.mu.Lock()
	if m.scope.IsDisposed() {
		m.mu.Unlock()
		return nil
	}
	changes, err := fn()
	listeners := m.listenersLocked(len(changes))
	m.mu.Unlock()

	notify(listeners, changes)
	return err
}

// Register binds h to the keystroke described by text. A handler already
// bound elsewhere gains an additional binding; registering the same pair
// twice has no effect. After Dispose it does nothing.
func (m *Manager) Register(text string, h Handler) error {
	return m.mutate(func() ([]Change, error) {
		if err := validateHandler(h); err != nil {
			return nil, err
		}
		k, err := parseKeystroke(text)
		if err != nil {
			return nil, err
		}
		return m.registerLocked(k, h), nil
	})
}

// RegisterKeystroke binds h to k.
func (m *Manager) RegisterKeystroke(k key.Keystroke, h Handler) error {
	return m.mutate(func() ([]Change, error) {
		if err := validateHandler(h); err != nil {
			return nil, err
		}
		if err := validateKeystroke(k); err != nil {
			return nil, err
		}
		return m.registerLocked(k, h), nil
	})
}

// RegisterFunc wraps fn in a Callback named name and binds it to text.
// The callback is returned so it can later be unregistered or reassigned.
// After Dispose it returns a nil callback and no error.
func (m *Manager) RegisterFunc(text, name string, fn func()) (*Callback, error) {
	var cb *Callback
	err := m.mutate(func() ([]Change, error) {
		if fn == nil {
			return nil, fmt.Errorf("%w: callback must not be nil", ErrInvalidArgument)
		}
		k, err := parseKeystroke(text)
		if err != nil {
			return nil, err
		}
		cb = NewCallback(name, fn)
		return m.registerLocked(k, cb), nil
	})
	return cb, err
}

func (m *Manager) registerLocked(k key.Keystroke, h Handler) []Change {
	before := m.table.Count(k)
	count := m.table.Register(k, h)
	if count == before {
		return nil
	}
	m.log.WithFields(logrus.Fields{
		"keystroke": k.String(),
		"handler":   h.Name(),
	}).Debug("handler registered")
	m.monitor.Observe(k, count)
	return []Change{{Kind: ChangeRegister, Handler: h, Keystroke: k}}
}

// Unregister removes every binding of h. Unbound handlers are ignored.
func (m *Manager) Unregister(h Handler) error {
	return m.mutate(func() ([]Change, error) {
		if err := validateHandler(h); err != nil {
			return nil, err
		}
		if !m.table.Unregister(h) {
			return nil, nil
		}
		m.log.WithField("handler", h.Name()).Debug("handler unregistered")
		return []Change{{Kind: ChangeUnregister, Handler: h}}, nil
	})
}

// Reassign moves h to the keystroke described by text, removing every
// other binding it had. It behaves like Register for an unbound handler.
func (m *Manager) Reassign(h Handler, text string) error {
	return m.mutate(func() ([]Change, error) {
		if err := validateHandler(h); err != nil {
			return nil, err
		}
		k, err := parseKeystroke(text)
		if err != nil {
			return nil, err
		}
		return m.reassignLocked(h, k), nil
	})
}

// ReassignKeystroke moves h to k.
func (m *Manager) ReassignKeystroke(h Handler, k key.Keystroke) error {
	return m.mutate(func() ([]Change, error) {
		if err := validateHandler(h); err != nil {
			return nil, err
		}
		if err := validateKeystroke(k); err != nil {
			return nil, err
		}
		return m.reassignLocked(h, k), nil
	})
}

func (m *Manager) reassignLocked(h Handler, k key.Keystroke) []Change {
	count := m.table.Reassign(h, k)
	m.log.WithFields(logrus.Fields{
		"keystroke": k.String(),
		"handler":   h.Name(),
	}).Debug("handler reassigned")
	m.monitor.Observe(k, count)
	return []Change{{Kind: ChangeReassign, Handler: h, Keystroke: k}}
}

// HandlersFor returns the handlers bound to the keystroke described by
// text, in registration order.
func (m *Manager) HandlersFor(text string) ([]Handler, error) {
	k, err := parseKeystroke(text)
	if err != nil {
		return nil, err
	}
	return m.HandlersForKeystroke(k), nil
}

// HandlersForKeystroke returns the handlers bound to k.
func (m *Manager) HandlersForKeystroke(k key.Keystroke) []Handler {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.table.HandlersFor(k)
}

// IsAvailable reports whether no handler is bound to text.
func (m *Manager) IsAvailable(text string) (bool, error) {
	k, err := parseKeystroke(text)
	if err != nil {
		return false, err
	}
	return m.IsAvailableKeystroke(k), nil
}

// IsAvailableKeystroke reports whether no handler is bound to k.
func (m *Manager) IsAvailableKeystroke(k key.Keystroke) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.table.IsAvailable(k)
}

// KeystrokesFor returns the keystrokes h is bound to. It returns nil for
// nil or non-comparable handlers.
func (m *Manager) KeystrokesFor(h Handler) []key.Keystroke {
	if validateHandler(h) != nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.table.KeystrokesFor(h)
}

// MultiHandlerKeystrokes returns every keystroke bound to more than one
// handler, in first-binding order.
func (m *Manager) MultiHandlerKeystrokes() []key.Keystroke {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.table.MultiHandlerKeystrokes()
}

// Conflicts returns each multi-handler keystroke with its handlers.
func (m *Manager) Conflicts() []keymap.Conflict[Handler] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.table.Conflicts()
}

// SetWarnOnMultipleHandlers toggles the diagnostic emitted when a register
// or reassign leaves a keystroke with several handlers. After Dispose it
// does nothing.
func (m *Manager) SetWarnOnMultipleHandlers(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.scope.IsDisposed() {
		return
	}
	m.monitor.SetWarnOnMultipleHandlers(enabled)
}

// WarnOnMultipleHandlers reports whether the diagnostic is enabled.
func (m *Manager) WarnOnMultipleHandlers() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.monitor.WarnOnMultipleHandlers()
}

// ApplyConfig applies a (re)loaded configuration: the conflict diagnostic
// toggle and the log level. After Dispose it does nothing.
func (m *Manager) ApplyConfig(cfg config.Config) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.scope.IsDisposed() {
		return
	}
	m.logger.SetLevel(logging.ParseLevel(cfg.Log.Level))
	m.monitor.SetWarnOnMultipleHandlers(cfg.Conflicts.WarnOnMultipleHandlers)
}

// AddWindow attaches a window and enables the bindings. The window must be
// a non-nil comparable value. Attaching a window twice has no effect.
func (m *Manager) AddWindow(w any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.scope.IsDisposed() {
		return nil
	}
	if err := validateWindow(w); err != nil {
		return err
	}
	return m.scope.AddWindow(w)
}

// RemoveWindow detaches a window. Bindings are disabled once the last
// window is removed.
func (m *Manager) RemoveWindow(w any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.scope.IsDisposed() {
		return nil
	}
	if err := validateWindow(w); err != nil {
		return err
	}
	return m.scope.RemoveWindow(w)
}

func validateWindow(w any) error {
	if w == nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, scope.ErrNilWindow)
	}
	return validateIdentity("window", w)
}

// Windows returns the attached windows in attach order.
func (m *Manager) Windows() []any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scope.Windows()
}

// IsEnabled reports whether at least one window is attached.
func (m *Manager) IsEnabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scope.IsEnabled()
}

// Clear removes every binding. Windows stay attached.
func (m *Manager) Clear() {
	_ = m.mutate(func() ([]Change, error) {
		m.table.Clear()
		m.log.Debug("bindings cleared")
		return []Change{{Kind: ChangeClear}}, nil
	})
}

// Dispose clears every binding, detaches every window and makes all
// further mutating calls no-ops. Listeners receive a final dispose change
// and are then dropped. Calling Dispose again has no effect.
func (m *Manager) Dispose() {
	m.mu.Lock()
	if !m.scope.Dispose(m.table.Clear) {
		m.mu.Unlock()
		return
	}
	listeners := m.listenersLocked(1)
	m.listeners = nil
	m.mu.Unlock()

	m.log.Debug("manager disposed")
	notify(listeners, []Change{{Kind: ChangeDispose}})
}

// IsDisposed reports whether Dispose has been called.
func (m *Manager) IsDisposed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scope.IsDisposed()
}

// Subscribe registers fn for change notifications and returns a function
// that removes it. Subscribing to a disposed manager returns a no-op.
func (m *Manager) Subscribe(fn Listener) (unsubscribe func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if fn == nil || m.scope.IsDisposed() {
		return func() {}
	}

	id := m.nextID
	m.nextID++
	m.listeners = append(m.listeners, subscription{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			for i, s := range m.listeners {
				if s.id == id {
					m.listeners = append(m.listeners[:i:i], m.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

// listenersLocked snapshots the listeners when there is something to send.
func (m *Manager) listenersLocked(n int) []Listener {
	if n == 0 || len(m.listeners) == 0 {
		return nil
	}
	out := make([]Listener, len(m.listeners))
	for i, s := range m.listeners {
		out[i] = s.fn
	}
	return out
}

func notify(listeners []Listener, changes []Change) {
	for _, c := range changes {
		for _, fn := range listeners {
			fn(c)
		}
	}
}
