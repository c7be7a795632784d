// Package key parses and formats keystroke specifications.
//
// This package defines the toolkit-independent keystroke value used by the
// binding registry:
//
//   - Key: Identifies the primary key (named keys, function keys, or runes)
//   - Modifier: The set of held modifiers (Ctrl, Shift, Alt, Meta)
//   - Keystroke: A comparable (key, modifier-set) pair
//
// # Specifications
//
// Specifications are "+" separated and case-insensitive:
//
//   - Simple keys: "a", "1", "/", "Enter", "Escape", "F5"
//   - With modifiers: "ctrl+s", "Alt+F4", "shift+ctrl+p"
//
// # Canonical Form
//
// Format renders modifiers in the fixed order Ctrl, Shift, Alt, Meta,
// followed by the key name: "Ctrl+Shift+P", "Alt+F4", "Ctrl+Plus".
package key
