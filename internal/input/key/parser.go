package key

import (
	"strings"
	"unicode/utf8"
)

// Parse parses a keystroke specification such as "ctrl+shift+F3".
//
// Tokens are separated by "+" and matched case-insensitively. Every token
// but one must be a modifier name (ctrl, shift, alt, meta or an alias);
// the remaining token is either a single visible character or a named key
// (Enter, Escape, Space, Tab, Delete, F1-F24, ...). Modifier order does not
// matter, so "Shift+Ctrl+f3" and "ctrl+shift+F3" parse to the same value.
//
// Parse never panics. It returns false for blank input, empty tokens
// ("ctrl++A"), unknown key names, and chains with zero or several
// non-modifier tokens.
func Parse(spec string) (Keystroke, bool) {
	if strings.TrimSpace(spec) == "" {
		return Keystroke{}, false
	}

	var (
		mods   Modifier
		result Keystroke
		found  bool
	)
	for _, tok := range strings.Split(spec, "+") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return Keystroke{}, false
		}
		if mod := ModifierFromName(tok); mod != ModNone {
			mods = mods.With(mod)
			continue
		}
		if found {
			return Keystroke{}, false
		}
		ks, ok := parseKeyToken(tok)
		if !ok {
			return Keystroke{}, false
		}
		result, found = ks, true
	}
	if !found {
		return Keystroke{}, false
	}

	result.Modifiers = mods
	return result, true
}

// parseKeyToken parses the single non-modifier token.
func parseKeyToken(tok string) (Keystroke, bool) {
	if k := KeyFromName(tok); k != KeyNone {
		return New(k, ModNone), true
	}
	if r, ok := runeNameMap[strings.ToLower(tok)]; ok {
		return NewRune(r, ModNone), true
	}

	if utf8.RuneCountInString(tok) != 1 {
		return Keystroke{}, false
	}
	r, _ := utf8.DecodeRuneInString(tok)
	if !isVisible(r) {
		return Keystroke{}, false
	}
	return NewRune(r, ModNone), true
}

// MustParse parses a keystroke specification and panics on failure.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Keystroke {
	ks, ok := Parse(spec)
	if !ok {
		panic("invalid keystroke specification: " + spec)
	}
	return ks
}

// Format returns the canonical string of a keystroke.
// Parse(Format(k)) == k for every valid k.
func Format(k Keystroke) string {
	return k.String()
}

// Normalize parses a specification and re-formats it canonically.
func Normalize(spec string) (string, bool) {
	ks, ok := Parse(spec)
	if !ok {
		return "", false
	}
	return Format(ks), true
}
