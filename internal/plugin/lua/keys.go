package lua

import (
	"sync"

	"github.com/sirupsen/logrus"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keybind/internal/input/key"
	"github.com/dshills/keybind/internal/logging"
	"github.com/dshills/keybind/internal/shortcut"
)

// ModuleName is the name scripts pass to require.
const ModuleName = "keys"

// ScriptAction is an action declared by a script. Its identity is the
// pointer; the name is what scripts use to refer to it.
type ScriptAction struct {
	name  string
	fn    *lua.LFunction
	state *State
	log   logrus.FieldLogger
}

// Name returns the action name.
func (a *ScriptAction) Name() string { return a.name }

// Perform calls the action's Lua function. Errors are logged.
func (a *ScriptAction) Perform() {
	if a.fn == nil {
		return
	}
	if err := a.state.CallFunction(a.fn); err != nil {
		a.log.WithError(err).WithField("action", a.name).Warn("script action failed")
	}
}

// KeysModule implements the keys Lua module on top of a Manager.
type KeysModule struct {
	m     *shortcut.Manager
	state *State
	log   *logrus.Entry

	mu      sync.Mutex
	actions map[string]*ScriptAction
}

// NewKeysModule creates the module for m.
func NewKeysModule(m *shortcut.Manager, log logrus.FieldLogger) *KeysModule {
	if log == nil {
		log = logging.New(logging.DefaultConfig())
	}
	return &KeysModule{
		m:       m,
		log:     logging.WithComponent(log, "lua"),
		actions: make(map[string]*ScriptAction),
	}
}

// Register preloads the module into s and sets the global keys table.
func (k *KeysModule) Register(s *State) error {
	k.state = s
	s.Preload(ModuleName, k.loader)
	return s.DoString(`keys = require("keys")`)
}

// Action returns the script action with the given name.
func (k *KeysModule) Action(name string) (*ScriptAction, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	a, ok := k.actions[name]
	return a, ok
}

// Actions returns the number of declared script actions.
func (k *KeysModule) Actions() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.actions)
}

func (k *KeysModule) loader(L *lua.LState) int {
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"set":       k.set,
		"del":       k.del,
		"move":      k.move,
		"handlers":  k.handlers,
		"available": k.available,
		"conflicts": k.conflicts,
		"normalize": k.normalize,
	})
	L.Push(mod)
	return 1
}

// checkKeystroke parses argument n or raises an argument error.
func checkKeystroke(L *lua.LState, n int) key.Keystroke {
	spec := L.CheckString(n)
	ks, ok := key.Parse(spec)
	if !ok {
		L.ArgError(n, "invalid keystroke "+spec)
	}
	return ks
}

// set(spec, name [, fn])
// Binds the named action to spec, declaring it on first use. A later set
// with a function replaces the action's function.
func (k *KeysModule) set(L *lua.LState) int {
	ks := checkKeystroke(L, 1)
	name := L.CheckString(2)
	if name == "" {
		L.ArgError(2, "name cannot be empty")
		return 0
	}
	fn := L.OptFunction(3, nil)

	k.mu.Lock()
	a, ok := k.actions[name]
	if !ok {
		a = &ScriptAction{name: name, state: k.state, log: k.log}
		k.actions[name] = a
	}
	if fn != nil {
		a.fn = fn
	}
	k.mu.Unlock()

	if err := k.m.RegisterKeystroke(ks, a); err != nil {
		L.RaiseError("set: %v", err)
	}
	return 0
}

// del(name) -> bool
// Removes every binding of the named action.
func (k *KeysModule) del(L *lua.LState) int {
	name := L.CheckString(1)

	k.mu.Lock()
	a, ok := k.actions[name]
	delete(k.actions, name)
	k.mu.Unlock()

	if ok {
		if err := k.m.Unregister(a); err != nil {
			L.RaiseError("del: %v", err)
		}
	}
	L.Push(lua.LBool(ok))
	return 1
}

// move(name, spec)
// Reassigns the named action to spec, dropping its other bindings.
func (k *KeysModule) move(L *lua.LState) int {
	name := L.CheckString(1)
	ks := checkKeystroke(L, 2)

	a, ok := k.Action(name)
	if !ok {
		L.RaiseError("move: %v %q", ErrUnknownAction, name)
		return 0
	}
	if err := k.m.ReassignKeystroke(a, ks); err != nil {
		L.RaiseError("move: %v", err)
	}
	return 0
}

// handlers(spec) -> {names...}
func (k *KeysModule) handlers(L *lua.LState) int {
	ks := checkKeystroke(L, 1)

	tbl := L.NewTable()
	for _, h := range k.m.HandlersForKeystroke(ks) {
		tbl.Append(lua.LString(h.Name()))
	}
	L.Push(tbl)
	return 1
}

// available(spec) -> bool
func (k *KeysModule) available(L *lua.LState) int {
	ks := checkKeystroke(L, 1)
	L.Push(lua.LBool(k.m.IsAvailableKeystroke(ks)))
	return 1
}

// conflicts() -> {{keystroke = "F5", handlers = {names...}}...}
func (k *KeysModule) conflicts(L *lua.LState) int {
	tbl := L.NewTable()
	for _, c := range k.m.Conflicts() {
		entry := L.NewTable()
		L.SetField(entry, "keystroke", lua.LString(c.Keystroke.String()))

		names := L.NewTable()
		for _, h := range c.Handlers {
			names.Append(lua.LString(h.Name()))
		}
		L.SetField(entry, "handlers", names)
		tbl.Append(entry)
	}
	L.Push(tbl)
	return 1
}

// normalize(spec) -> string or nil
func (k *KeysModule) normalize(L *lua.LState) int {
	s, ok := key.Normalize(L.CheckString(1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(s))
	return 1
}
