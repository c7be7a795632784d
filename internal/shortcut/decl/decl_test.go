package decl

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keybind/internal/config"
	"github.com/dshills/keybind/internal/shortcut"
)

const sample = `
[[binding]]
action = "file.save"
keys = ["ctrl+s"]
description = "Save"

[[binding]]
action = "build"
keys = ["F5", "ctrl+b"]

[[binding]]
action = "test"
keys = ["f5"]

[[binding]]
action = "file.save"
keys = ["F2"]
`

func newManager(t *testing.T) *shortcut.Manager {
	t.Helper()
	logger, _ := test.NewNullLogger()
	m := shortcut.New(shortcut.WithLogger(logger))
	t.Cleanup(m.Dispose)
	return m
}

func TestParse(t *testing.T) {
	f, err := Parse("keys.toml", []byte(sample))
	require.NoError(t, err)
	require.Len(t, f.Bindings, 4)

	assert.Equal(t, "file.save", f.Bindings[0].Action)
	assert.Equal(t, []string{"ctrl+s"}, f.Bindings[0].Keys)
	assert.Equal(t, "Save", f.Bindings[0].Description)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		target error
	}{
		{"empty action", "[[binding]]\naction = \"\"\nkeys = [\"a\"]\n", ErrInvalidBinding},
		{"no keys", "[[binding]]\naction = \"x\"\n", ErrInvalidBinding},
		{"bad key", "[[binding]]\naction = \"x\"\nkeys = [\"ctrl++a\"]\n", ErrInvalidBinding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("keys.toml", []byte(tt.data))
			assert.ErrorIs(t, err, tt.target)

			var be *BindingError
			require.True(t, errors.As(err, &be))
			assert.Equal(t, 0, be.Index)
		})
	}
}

func TestParseUnknownField(t *testing.T) {
	_, err := Parse("keys.toml", []byte("[[binding]]\naction = \"x\"\nkeys = [\"a\"]\nwhen = \"insert\"\n"))

	var pe *config.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "keys.toml", pe.Path)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.toml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, f.Bindings, 4)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApply(t *testing.T) {
	f, err := Parse("keys.toml", []byte(sample))
	require.NoError(t, err)

	m := newManager(t)
	actions, err := f.Apply(m)
	require.NoError(t, err)
	require.Len(t, actions, 3)

	assert.Equal(t, "file.save", actions[0].Name())
	assert.Equal(t, "Save", actions[0].Description())
	assert.Len(t, m.KeystrokesFor(actions[0]), 2)

	handlers, err := m.HandlersFor("F5")
	require.NoError(t, err)
	assert.Equal(t, []shortcut.Handler{actions[1], actions[2]}, handlers)

	conflicts := m.Conflicts()
	require.Len(t, conflicts, 1)
	assert.Equal(t, "F5", conflicts[0].Keystroke.String())
}

func TestApplyInvalidLeavesManagerEmpty(t *testing.T) {
	f := &File{Bindings: []Binding{
		{Action: "ok", Keys: []string{"ctrl+a"}},
		{Action: "bad", Keys: []string{"hyper+a"}},
	}}

	m := newManager(t)
	_, err := f.Apply(m)
	assert.ErrorIs(t, err, ErrInvalidBinding)
	assert.Equal(t, 0, m.Len())
}

func TestFromRowsRoundTrip(t *testing.T) {
	f, err := Parse("keys.toml", []byte(sample))
	require.NoError(t, err)

	m := newManager(t)
	_, err = f.Apply(m)
	require.NoError(t, err)

	out := FromRows(m.Rows())
	require.Len(t, out.Bindings, 3)
	assert.Equal(t, Binding{Action: "file.save", Keys: []string{"Ctrl+S", "F2"}}, out.Bindings[0])

	data, err := out.Marshal()
	require.NoError(t, err)

	again, err := Parse("marshal", data)
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestBindingErrorMessage(t *testing.T) {
	assert.Equal(t, "binding 2 (x): no keys", (&BindingError{Index: 2, Action: "x", Reason: "no keys"}).Error())
	assert.Equal(t, "binding 0: action is empty", (&BindingError{Reason: "action is empty"}).Error())
}
