// Package teakey connects bubbletea key messages and bubbles key bindings
// to a shortcut.Manager.
//
// bubbletea describes keys as strings such as "ctrl+s", "alt+x" or
// "pgdown". Those strings are translated to keystrokes and back, so a
// bubbles key.Binding can be registered with a Manager and a Manager's
// bindings can be shown in a bubbles help view.
package teakey

import (
	"fmt"
	"strings"
	"unicode"

	bkey "github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dshills/keybind/internal/input/key"
	"github.com/dshills/keybind/internal/shortcut"
)

// teaNames maps bubbletea key names that differ from keystroke names.
var teaNames = map[string]string{
	"pgdown": "PageDown",
	"pgup":   "PageUp",
	"esc":    "Escape",
	" ":      "Space",
}

// keyNames is the reverse of teaNames for named keys.
var keyNames = map[key.Key]string{
	key.KeyPageDown: "pgdown",
	key.KeyPageUp:   "pgup",
	key.KeyEscape:   "esc",
	key.KeySpace:    " ",
}

// FromKeyMsg converts a bubbletea key message to a keystroke. Pasted text
// and multi-rune input return false.
func FromKeyMsg(msg tea.KeyMsg) (key.Keystroke, bool) {
	if msg.Paste {
		return key.Keystroke{}, false
	}
	var mods key.Modifier
	if msg.Alt {
		mods |= key.ModAlt
	}

	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return key.Keystroke{}, false
		}
		ks := key.NewRune(msg.Runes[0], mods)
		return ks, ks.IsValid()
	case tea.KeySpace:
		return key.New(key.KeySpace, mods), true
	}
	return FromString(msg.String())
}

// FromString parses a bubbletea key string such as "ctrl+pgdown".
func FromString(s string) (key.Keystroke, bool) {
	switch s {
	case " ":
		return key.New(key.KeySpace, 0), true
	case "ctrl+@":
		return key.New(key.KeySpace, key.ModCtrl), true
	}
	// a lone "+" would be split as two empty tokens
	if s == "+" || strings.HasSuffix(s, "++") {
		s = strings.TrimSuffix(s, "+") + "plus"
	}

	tokens := strings.Split(s, "+")
	for i, tok := range tokens {
		if name, ok := teaNames[tok]; ok {
			tokens[i] = name
		}
	}
	return key.Parse(strings.Join(tokens, "+"))
}

// ToString renders ks the way bubbletea reports it. It returns false for
// keystrokes bubbletea cannot describe, which are those using Meta.
func ToString(ks key.Keystroke) (string, bool) {
	if !ks.IsValid() || ks.Modifiers.HasMeta() {
		return "", false
	}

	var b strings.Builder
	if ks.Modifiers.HasAlt() {
		b.WriteString("alt+")
	}
	if ks.Modifiers.HasCtrl() {
		b.WriteString("ctrl+")
	}
	if ks.Modifiers.HasShift() {
		b.WriteString("shift+")
	}

	switch {
	case ks.IsRune():
		b.WriteRune(unicode.ToLower(ks.Rune))
	case keyNames[ks.Key] != "":
		b.WriteString(keyNames[ks.Key])
	default:
		b.WriteString(strings.ToLower(ks.Key.String()))
	}
	return b.String(), true
}

// RegisterBinding binds h to every key of b. All keys are parsed before
// anything is registered, so an unparsable key leaves m unchanged.
func RegisterBinding(m *shortcut.Manager, b bkey.Binding, h shortcut.Handler) error {
	keys := b.Keys()
	if len(keys) == 0 {
		return fmt.Errorf("%w: binding has no keys", shortcut.ErrInvalidArgument)
	}

	strokes := make([]key.Keystroke, 0, len(keys))
	for _, k := range keys {
		ks, ok := FromString(k)
		if !ok {
			return fmt.Errorf("%w: unparsable key %q", shortcut.ErrInvalidArgument, k)
		}
		strokes = append(strokes, ks)
	}

	for _, ks := range strokes {
		if err := m.RegisterKeystroke(ks, h); err != nil {
			return err
		}
	}
	return nil
}

// Binding builds a bubbles key.Binding for the keystrokes h is bound to.
// The help key lists the canonical keystrokes and the help text is the
// handler name. Keystrokes bubbletea cannot report are left out of the
// match keys but still shown in help.
func Binding(m *shortcut.Manager, h shortcut.Handler) bkey.Binding {
	strokes := m.KeystrokesFor(h)

	var keys, help []string
	for _, ks := range strokes {
		if s, ok := ToString(ks); ok {
			keys = append(keys, s)
		}
		help = append(help, ks.String())
	}
	return bkey.NewBinding(
		bkey.WithKeys(keys...),
		bkey.WithHelp(strings.Join(help, "/"), h.Name()),
	)
}

// Dispatch performs every Action bound to the keystroke of msg. It
// reports whether at least one action ran. Non-key messages and disabled
// managers are ignored.
func Dispatch(m *shortcut.Manager, msg tea.Msg) bool {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.IsEnabled() {
		return false
	}
	ks, ok := FromKeyMsg(kmsg)
	if !ok {
		return false
	}

	performed := false
	for _, h := range m.HandlersForKeystroke(ks) {
		if action, ok := h.(shortcut.Action); ok {
			action.Perform()
			performed = true
		}
	}
	return performed
}
