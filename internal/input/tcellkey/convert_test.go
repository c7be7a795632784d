package tcellkey

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keybind/internal/input/key"
)

func TestFromEvent(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want string
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), "A"},
		{"rune with alt", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), "Alt+X"},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), "Space"},
		{"plus", tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModCtrl), "Ctrl+Plus"},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), "Enter"},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), "Escape"},
		{"backspace2", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), "Backspace"},
		{"page down", tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModShift), "Shift+PageDown"},
		{"f3", tcell.NewEventKey(tcell.KeyF3, 0, tcell.ModCtrl|tcell.ModShift), "Ctrl+Shift+F3"},
		{"f24", tcell.NewEventKey(tcell.KeyF24, 0, tcell.ModNone), "F24"},
		{"ctrl letter", tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl), "Ctrl+S"},
		{"ctrl space", tcell.NewEventKey(tcell.KeyCtrlSpace, 0, tcell.ModCtrl), "Ctrl+Space"},
		{"print", tcell.NewEventKey(tcell.KeyPrint, 0, tcell.ModNone), "PrintScreen"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ks, ok := FromEvent(tt.ev)
			require.True(t, ok)
			assert.Equal(t, tt.want, ks.String())
		})
	}
}

func TestFromEventUnsupported(t *testing.T) {
	_, ok := FromEvent(nil)
	assert.False(t, ok)

	_, ok = FromEvent(tcell.NewEventKey(tcell.KeyF40, 0, tcell.ModNone))
	assert.False(t, ok)

	_, ok = FromEvent(tcell.NewEventKey(tcell.KeyHelp, 0, tcell.ModNone))
	assert.False(t, ok)
}

func TestToEventRoundTrip(t *testing.T) {
	specs := []string{
		"A", "ctrl+s", "alt+shift+z", "Space", "ctrl+space", "Enter", "Tab",
		"Escape", "Backspace", "Delete", "Insert", "Home", "End", "PageUp",
		"PageDown", "Up", "Down", "Left", "Right", "F1", "ctrl+F12", "F24",
		"Pause", "PrintScreen", "meta+1", "ctrl+plus",
	}

	for _, spec := range specs {
		t.Run(spec, func(t *testing.T) {
			ks := key.MustParse(spec)
			ev := ToEvent(ks)
			require.NotNil(t, ev)

			got, ok := FromEvent(ev)
			require.True(t, ok)
			assert.Equal(t, ks, got)
		})
	}
}

func TestToEventUnsupported(t *testing.T) {
	assert.Nil(t, ToEvent(key.MustParse("CapsLock")))
	assert.Nil(t, ToEvent(key.MustParse("NumLock")))
	assert.Nil(t, ToEvent(key.Keystroke{}))
}

func TestModifierConversion(t *testing.T) {
	all := key.ModCtrl | key.ModShift | key.ModAlt | key.ModMeta
	assert.Equal(t, all, convertMod(convertToTcellMod(all)))
	assert.Equal(t, key.Modifier(0), convertMod(tcell.ModNone))
}
