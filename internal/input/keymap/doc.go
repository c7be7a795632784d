// Package keymap stores keystroke bindings and detects conflicts.
//
// # Key Concepts
//
// Table: Maps a key.Keystroke to the ordered handlers bound to it, with a
// reverse index from handler to keystrokes. Table is generic over the
// handler identity, which only needs to be comparable.
//
// Conflict: A keystroke with more than one handler. Multiple handlers per
// keystroke are allowed; conflicts are reported, never rejected.
//
// Monitor: Optionally logs a warning each time a mutation leaves a keystroke
// with two or more handlers.
//
// # Usage
//
//	table := keymap.NewTable[string]()
//	table.Register(key.MustParse("ctrl+s"), "file.save")
//	table.Register(key.MustParse("Ctrl+S"), "editor.save")
//
//	table.HandlersFor(key.MustParse("ctrl+s")) // ["file.save", "editor.save"]
//	table.MultiHandlerKeystrokes()            // [Ctrl+S]
//
//	table.Reassign("editor.save", key.MustParse("ctrl+alt+s"))
package keymap
