// Package tcellkey connects tcell terminal key events to a shortcut.Manager.
//
// Terminals report Ctrl+letter combinations as control codes; those are
// mapped back to the letter with the Ctrl modifier. Ctrl+H, Ctrl+I, Ctrl+M
// and Ctrl+[ are indistinguishable from Backspace, Tab, Enter and Escape
// and are reported as the named keys.
package tcellkey

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keybind/internal/input/key"
)

var fromTcell = map[tcell.Key]key.Key{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyInsert:     key.KeyInsert,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyPause:      key.KeyPause,
	tcell.KeyPrint:      key.KeyPrintScreen,
}

var toTcell = map[key.Key]tcell.Key{
	key.KeyEscape:      tcell.KeyEscape,
	key.KeyEnter:       tcell.KeyEnter,
	key.KeyTab:         tcell.KeyTab,
	key.KeyBackspace:   tcell.KeyBackspace2,
	key.KeyDelete:      tcell.KeyDelete,
	key.KeyInsert:      tcell.KeyInsert,
	key.KeyHome:        tcell.KeyHome,
	key.KeyEnd:         tcell.KeyEnd,
	key.KeyPageUp:      tcell.KeyPgUp,
	key.KeyPageDown:    tcell.KeyPgDn,
	key.KeyUp:          tcell.KeyUp,
	key.KeyDown:        tcell.KeyDown,
	key.KeyLeft:        tcell.KeyLeft,
	key.KeyRight:       tcell.KeyRight,
	key.KeyPause:       tcell.KeyPause,
	key.KeyPrintScreen: tcell.KeyPrint,
}

func init() {
	for i := 0; i < 24; i++ {
		fromTcell[tcell.KeyF1+tcell.Key(i)] = key.KeyF1 + key.Key(i)
		toTcell[key.KeyF1+key.Key(i)] = tcell.KeyF1 + tcell.Key(i)
	}
}

// FromEvent converts a tcell key event to a keystroke. It returns false
// for keys that have no keystroke equivalent.
func FromEvent(ev *tcell.EventKey) (key.Keystroke, bool) {
	if ev == nil {
		return key.Keystroke{}, false
	}
	mods := convertMod(ev.Modifiers())
	k := ev.Key()

	if k == tcell.KeyRune {
		ks := key.NewRune(ev.Rune(), mods)
		return ks, ks.IsValid()
	}
	if named, ok := fromTcell[k]; ok {
		return key.New(named, mods), true
	}
	switch {
	case k == tcell.KeyCtrlSpace:
		return key.New(key.KeySpace, mods|key.ModCtrl), true
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return key.NewRune('A'+rune(k-tcell.KeyCtrlA), mods|key.ModCtrl), true
	}
	return key.Keystroke{}, false
}

// ToEvent builds the tcell event a terminal would deliver for ks. It
// returns nil for keys tcell cannot represent (lock keys).
func ToEvent(ks key.Keystroke) *tcell.EventKey {
	if !ks.IsValid() {
		return nil
	}
	mods := convertToTcellMod(ks.Modifiers)

	switch ks.Key {
	case key.KeyRune:
		return tcell.NewEventKey(tcell.KeyRune, ks.Rune, mods)
	case key.KeySpace:
		return tcell.NewEventKey(tcell.KeyRune, ' ', mods)
	}
	if k, ok := toTcell[ks.Key]; ok {
		return tcell.NewEventKey(k, 0, mods)
	}
	return nil
}

// convertMod converts a tcell modifier mask to key modifiers.
func convertMod(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= key.ModMeta
	}
	return result
}

// convertToTcellMod converts key modifiers to a tcell modifier mask.
func convertToTcellMod(m key.Modifier) tcell.ModMask {
	var result tcell.ModMask
	if m.HasShift() {
		result |= tcell.ModShift
	}
	if m.HasCtrl() {
		result |= tcell.ModCtrl
	}
	if m.HasAlt() {
		result |= tcell.ModAlt
	}
	if m.HasMeta() {
		result |= tcell.ModMeta
	}
	return result
}
