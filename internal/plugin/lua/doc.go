// Package lua lets Lua scripts manage keyboard shortcuts.
//
// A State is a restricted gopher-lua runtime: only the base, table, string
// and math libraries are opened, the file loading functions are removed,
// and require only resolves preloaded modules. Each script run is bounded
// by an execution timeout.
//
// The keys module exposes a shortcut.Manager to scripts:
//
//	local keys = require("keys")
//
//	keys.set("ctrl+s", "file.save", function() save() end)
//	keys.set("ctrl+shift+s", "file.save")   -- second binding, same action
//	keys.move("file.save", "F2")            -- now only on F2
//	keys.del("file.save")
//
//	keys.handlers("F5")     -- { "build", "test" }
//	keys.available("F6")    -- true
//	keys.conflicts()        -- { { keystroke = "F5", handlers = {...} } }
//	keys.normalize("shift+ctrl+f3") -- "Ctrl+Shift+F3"
//
// Script actions are shortcut.Action values; performing one calls its Lua
// function inside the owning State.
package lua
