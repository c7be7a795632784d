package key

import (
	"strings"
	"unicode"
)

// Keystroke is one shortcut combination: a primary key plus a modifier set.
// Keystroke values are comparable and can be used as map keys.
// Values built with Parse, New or NewRune are normalized, so two keystrokes
// naming the same combination are equal regardless of input case.
type Keystroke struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the upper-cased character for KeyRune keystrokes.
	Rune rune

	// Modifiers contains the modifier keys held.
	Modifiers Modifier
}

// New creates a keystroke for a named key.
func New(k Key, mods Modifier) Keystroke {
	return Keystroke{Key: k, Modifiers: mods}
}

// NewRune creates a keystroke for a character key.
// Letters are upper-cased; a space becomes KeySpace.
func NewRune(r rune, mods Modifier) Keystroke {
	if r == ' ' {
		return New(KeySpace, mods)
	}
	return Keystroke{Key: KeyRune, Rune: unicode.ToUpper(r), Modifiers: mods}
}

// IsValid reports whether the keystroke names a real key.
func (k Keystroke) IsValid() bool {
	switch {
	case k.Key == KeyRune:
		return isVisible(k.Rune) && k.Rune == unicode.ToUpper(k.Rune)
	case k.Key.IsSpecial():
		return k.Rune == 0
	default:
		return false
	}
}

// IsRune returns true if this is a character keystroke.
func (k Keystroke) IsRune() bool {
	return k.Key == KeyRune
}

// IsModified returns true if any modifier is held.
func (k Keystroke) IsModified() bool {
	return !k.Modifiers.IsEmpty()
}

// KeyName returns the display name of the primary key.
func (k Keystroke) KeyName() string {
	if k.Key != KeyRune {
		return k.Key.String()
	}
	for name, r := range runeNameMap {
		if r == k.Rune {
			return strings.ToUpper(name[:1]) + name[1:]
		}
	}
	return string(k.Rune)
}

// String returns the canonical form, e.g. "Ctrl+Shift+F3".
// Modifiers are rendered in the fixed order Ctrl, Shift, Alt, Meta.
func (k Keystroke) String() string {
	if k.Modifiers.IsEmpty() {
		return k.KeyName()
	}
	return k.Modifiers.String() + "+" + k.KeyName()
}

func isVisible(r rune) bool {
	return r != 0 && unicode.IsGraphic(r) && !unicode.IsSpace(r)
}
