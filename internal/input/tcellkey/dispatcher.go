package tcellkey

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/dshills/keybind/internal/logging"
	"github.com/dshills/keybind/internal/shortcut"
)

// Dispatcher performs the actions bound to tcell key events.
// The Manager only answers which handlers a keystroke resolves to; the
// Dispatcher is the UI side that invokes them.
type Dispatcher struct {
	m   *shortcut.Manager
	log *logrus.Entry
}

// NewDispatcher creates a dispatcher for m.
func NewDispatcher(m *shortcut.Manager, log logrus.FieldLogger) *Dispatcher {
	if log == nil {
		log = logging.New(logging.DefaultConfig())
	}
	return &Dispatcher{m: m, log: logging.WithComponent(log, "tcellkey")}
}

// Attach registers the screen as a window of the manager, enabling its
// bindings.
func (d *Dispatcher) Attach(s tcell.Screen) error {
	return d.m.AddWindow(s)
}

// Detach removes the screen from the manager's windows.
func (d *Dispatcher) Detach(s tcell.Screen) error {
	return d.m.RemoveWindow(s)
}

// HandleEvent performs every Action bound to the keystroke of ev, in
// registration order. Handlers that are not Actions are skipped. It
// reports whether at least one action ran. Nothing runs while the manager
// has no attached window.
func (d *Dispatcher) HandleEvent(ev tcell.Event) bool {
	kev, ok := ev.(*tcell.EventKey)
	if !ok || !d.m.IsEnabled() {
		return false
	}
	ks, ok := FromEvent(kev)
	if !ok {
		return false
	}

	performed := false
	for _, h := range d.m.HandlersForKeystroke(ks) {
		action, ok := h.(shortcut.Action)
		if !ok {
			continue
		}
		d.log.WithFields(logrus.Fields{
			"keystroke": ks.String(),
			"handler":   h.Name(),
		}).Debug("performing action")
		action.Perform()
		performed = true
	}
	return performed
}

// Run polls s for events and dispatches key events until ctx is done or
// the screen is finalized. Other events are ignored.
func (d *Dispatcher) Run(ctx context.Context, s tcell.Screen) error {
	stop := context.AfterFunc(ctx, func() {
		_ = s.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	for {
		ev := s.PollEvent()
		if ev == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		d.HandleEvent(ev)
	}
}
