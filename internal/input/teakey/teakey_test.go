package teakey

import (
	"testing"

	bkey "github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keybind/internal/input/key"
	"github.com/dshills/keybind/internal/shortcut"
)

type label string

func (l label) Name() string { return string(l) }

func newManager(t *testing.T) *shortcut.Manager {
	t.Helper()
	logger, _ := test.NewNullLogger()
	m := shortcut.New(shortcut.WithLogger(logger))
	t.Cleanup(m.Dispose)
	return m
}

func TestFromKeyMsg(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want string
	}{
		{"rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, "Q"},
		{"alt rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}, Alt: true}, "Alt+X"},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, "Space"},
		{"ctrl letter", tea.KeyMsg{Type: tea.KeyCtrlS}, "Ctrl+S"},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, "Enter"},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, "Escape"},
		{"shift tab", tea.KeyMsg{Type: tea.KeyShiftTab}, "Shift+Tab"},
		{"page down", tea.KeyMsg{Type: tea.KeyPgDown}, "PageDown"},
		{"ctrl page up", tea.KeyMsg{Type: tea.KeyCtrlPgUp}, "Ctrl+PageUp"},
		{"ctrl shift up", tea.KeyMsg{Type: tea.KeyCtrlShiftUp}, "Ctrl+Shift+Up"},
		{"f5", tea.KeyMsg{Type: tea.KeyF5}, "F5"},
		{"alt f5", tea.KeyMsg{Type: tea.KeyF5, Alt: true}, "Alt+F5"},
		{"ctrl at", tea.KeyMsg{Type: tea.KeyCtrlAt}, "Ctrl+Space"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ks, ok := FromKeyMsg(tt.msg)
			require.True(t, ok)
			assert.Equal(t, tt.want, ks.String())
		})
	}
}

func TestFromKeyMsgRejects(t *testing.T) {
	_, ok := FromKeyMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab")})
	assert.False(t, ok)

	_, ok = FromKeyMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}, Paste: true})
	assert.False(t, ok)
}

func TestFromString(t *testing.T) {
	tests := map[string]string{
		"ctrl+s":      "Ctrl+S",
		"alt+ctrl+a":  "Ctrl+Alt+A",
		"pgup":        "PageUp",
		"ctrl+pgdown": "Ctrl+PageDown",
		"esc":         "Escape",
		" ":           "Space",
		"+":           "Plus",
		"ctrl++":      "Ctrl+Plus",
		"?":           "?",
		"@":           "@",
		"f12":         "F12",
	}

	for in, want := range tests {
		ks, ok := FromString(in)
		require.True(t, ok, in)
		assert.Equal(t, want, ks.String(), in)
	}

	_, ok := FromString("hyper+x")
	assert.False(t, ok)
}

func TestToStringRoundTrip(t *testing.T) {
	specs := []string{
		"A", "ctrl+s", "alt+ctrl+x", "shift+tab", "Space", "ctrl+space",
		"PageDown", "ctrl+PageUp", "Escape", "F20", "ctrl+plus", "minus",
	}

	for _, spec := range specs {
		ks := key.MustParse(spec)
		s, ok := ToString(ks)
		require.True(t, ok, spec)

		got, ok := FromString(s)
		require.True(t, ok, s)
		assert.Equal(t, ks, got, spec)
	}
}

func TestToStringMatchesBubbletea(t *testing.T) {
	s, ok := ToString(key.MustParse("ctrl+s"))
	require.True(t, ok)
	assert.Equal(t, tea.KeyMsg{Type: tea.KeyCtrlS}.String(), s)

	s, ok = ToString(key.MustParse("alt+x"))
	require.True(t, ok)
	assert.Equal(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}, Alt: true}.String(), s)

	_, ok = ToString(key.MustParse("meta+x"))
	assert.False(t, ok)
}

func TestRegisterBinding(t *testing.T) {
	m := newManager(t)
	up := bkey.NewBinding(bkey.WithKeys("k", "up"), bkey.WithHelp("↑/k", "move up"))

	require.NoError(t, RegisterBinding(m, up, label("up")))

	assert.Equal(t, []key.Keystroke{key.MustParse("K"), key.MustParse("Up")}, m.KeystrokesFor(label("up")))
}

func TestRegisterBindingInvalid(t *testing.T) {
	m := newManager(t)

	err := RegisterBinding(m, bkey.NewBinding(bkey.WithKeys("k", "hyper+k")), label("x"))
	assert.ErrorIs(t, err, shortcut.ErrInvalidArgument)
	assert.Equal(t, 0, m.Len())

	err = RegisterBinding(m, bkey.NewBinding(), label("x"))
	assert.ErrorIs(t, err, shortcut.ErrInvalidArgument)
}

func TestBindingMatchesKeyMsg(t *testing.T) {
	m := newManager(t)
	h := label("save")
	require.NoError(t, m.Register("ctrl+s", h))
	require.NoError(t, m.Register("meta+s", h))

	b := Binding(m, h)
	assert.Equal(t, []string{"ctrl+s"}, b.Keys())
	assert.Equal(t, "Ctrl+S/Meta+S", b.Help().Key)
	assert.Equal(t, "save", b.Help().Desc)
	assert.True(t, bkey.Matches(tea.KeyMsg{Type: tea.KeyCtrlS}, b))
}

func TestDispatch(t *testing.T) {
	m := newManager(t)
	ran := 0
	_, err := m.RegisterFunc("alt+q", "quit", func() { ran++ })
	require.NoError(t, err)
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}, Alt: true}

	assert.False(t, Dispatch(m, msg))

	require.NoError(t, m.AddWindow(label("program")))
	assert.True(t, Dispatch(m, msg))
	assert.False(t, Dispatch(m, tea.WindowSizeMsg{Width: 80, Height: 24}))
	assert.Equal(t, 1, ran)
}
