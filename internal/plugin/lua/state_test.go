package lua

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	glua "github.com/yuin/gopher-lua"
)

func TestStateDoString(t *testing.T) {
	state := NewState()
	defer state.Close()

	require.NoError(t, state.DoString(`x = 1 + 1`))
	assert.Equal(t, glua.LNumber(2), state.GetGlobal("x"))
}

func TestStateDoStringError(t *testing.T) {
	state := NewState()
	defer state.Close()

	assert.Error(t, state.DoString(`this is not lua`))
	assert.Error(t, state.DoString(`error("boom")`))
}

func TestStateDoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.lua")
	require.NoError(t, os.WriteFile(path, []byte(`answer = 6 * 7`), 0644))

	state := NewState()
	defer state.Close()

	require.NoError(t, state.DoFile(path))
	assert.Equal(t, glua.LNumber(42), state.GetGlobal("answer"))
}

func TestStateRestrictions(t *testing.T) {
	state := NewState()
	defer state.Close()

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "io", "os", "debug"} {
		assert.Equal(t, glua.LNil, state.GetGlobal(name), name)
	}

	assert.Error(t, state.DoString(`require("os")`))
	assert.Error(t, state.DoString(`require("somewhere.on.disk")`))
	assert.NoError(t, state.DoString(`local s = require("string"); assert(s.upper("a") == "A")`))
}

func TestStatePreload(t *testing.T) {
	state := NewState()
	defer state.Close()

	state.Preload("answer", func(L *glua.LState) int {
		L.Push(glua.LNumber(42))
		return 1
	})

	require.NoError(t, state.DoString(`v = require("answer")`))
	assert.Equal(t, glua.LNumber(42), state.GetGlobal("v"))
}

func TestStateTimeout(t *testing.T) {
	state := NewState(WithExecutionTimeout(50 * time.Millisecond))
	defer state.Close()

	err := state.DoString(`while true do end`)
	assert.ErrorIs(t, err, ErrExecutionTimeout)

	// the state stays usable afterwards
	assert.NoError(t, state.DoString(`y = 1`))
}

func TestStateCallFunction(t *testing.T) {
	state := NewState()
	defer state.Close()

	require.NoError(t, state.DoString(`count = 0; function bump(n) count = count + n end`))
	fn, ok := state.GetGlobal("bump").(*glua.LFunction)
	require.True(t, ok)

	require.NoError(t, state.CallFunction(fn, glua.LNumber(3)))
	assert.Equal(t, glua.LNumber(3), state.GetGlobal("count"))
}

func TestStateClose(t *testing.T) {
	state := NewState()

	require.NoError(t, state.Close())
	require.NoError(t, state.Close())
	assert.True(t, state.IsClosed())
	assert.ErrorIs(t, state.DoString(`x = 1`), ErrStateClosed)
	assert.Equal(t, glua.LNil, state.GetGlobal("x"))
}
