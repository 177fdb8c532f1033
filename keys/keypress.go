// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: keys/keypress.go
// Summary: Key-combination value type: exact matching, parsing, display names.

package keys

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// KeyPress is a single keyboard combination: a special key or a
// printable rune, plus the modifiers that must be held. For printable
// input Key is tcell.KeyRune and Rune carries the character; for
// everything else Rune is zero.
type KeyPress struct {
	Key  tcell.Key
	Rune rune
	Mods tcell.ModMask
}

// FromEvent normalizes a tcell key event into a KeyPress. The rune is
// kept only for KeyRune events; tcell mirrors control bytes into the
// rune field and that noise must not break equality.
func FromEvent(ev *tcell.EventKey) KeyPress {
	kp := KeyPress{Key: ev.Key(), Mods: ev.Modifiers()}
	if kp.Key == tcell.KeyRune {
		kp.Rune = ev.Rune()
	}
	return kp
}

// IsZero reports whether the combination is unset.
func (kp KeyPress) IsZero() bool {
	return kp.Key == 0 && kp.Rune == 0 && kp.Mods == 0
}

// Equals is exact-match equality on key, rune, and modifier mask.
func (kp KeyPress) Equals(o KeyPress) bool {
	return kp.Key == o.Key && kp.Rune == o.Rune && kp.Mods == o.Mods
}

// Match reports whether the event is exactly this combination.
func (kp KeyPress) Match(ev *tcell.EventKey) bool {
	return kp.Equals(FromEvent(ev))
}

// namedKeys maps the parse names of special keys. Lookup is lowercase.
var namedKeys = map[string]tcell.Key{
	"enter":     tcell.KeyEnter,
	"tab":       tcell.KeyTab,
	"backtab":   tcell.KeyBacktab,
	"esc":       tcell.KeyEscape,
	"escape":    tcell.KeyEscape,
	"backspace": tcell.KeyBackspace2,
	"delete":    tcell.KeyDelete,
	"del":       tcell.KeyDelete,
	"insert":    tcell.KeyInsert,
	"up":        tcell.KeyUp,
	"down":      tcell.KeyDown,
	"left":      tcell.KeyLeft,
	"right":     tcell.KeyRight,
	"home":      tcell.KeyHome,
	"end":       tcell.KeyEnd,
	"pgup":      tcell.KeyPgUp,
	"pgdn":      tcell.KeyPgDn,
	"f1":        tcell.KeyF1,
	"f2":        tcell.KeyF2,
	"f3":        tcell.KeyF3,
	"f4":        tcell.KeyF4,
	"f5":        tcell.KeyF5,
	"f6":        tcell.KeyF6,
	"f7":        tcell.KeyF7,
	"f8":        tcell.KeyF8,
	"f9":        tcell.KeyF9,
	"f10":       tcell.KeyF10,
	"f11":       tcell.KeyF11,
	"f12":       tcell.KeyF12,
}

// keyDisplay is the reverse of namedKeys with preferred capitalization.
var keyDisplay = map[tcell.Key]string{
	tcell.KeyEnter:      "Enter",
	tcell.KeyTab:        "Tab",
	tcell.KeyBacktab:    "Backtab",
	tcell.KeyEscape:     "Esc",
	tcell.KeyBackspace2: "Backspace",
	tcell.KeyDelete:     "Del",
	tcell.KeyInsert:     "Ins",
	tcell.KeyUp:         "Up",
	tcell.KeyDown:       "Down",
	tcell.KeyLeft:       "Left",
	tcell.KeyRight:      "Right",
	tcell.KeyHome:       "Home",
	tcell.KeyEnd:        "End",
	tcell.KeyPgUp:       "PgUp",
	tcell.KeyPgDn:       "PgDn",
	tcell.KeyF1:         "F1",
	tcell.KeyF2:         "F2",
	tcell.KeyF3:         "F3",
	tcell.KeyF4:         "F4",
	tcell.KeyF5:         "F5",
	tcell.KeyF6:         "F6",
	tcell.KeyF7:         "F7",
	tcell.KeyF8:         "F8",
	tcell.KeyF9:         "F9",
	tcell.KeyF10:        "F10",
	tcell.KeyF11:        "F11",
	tcell.KeyF12:        "F12",
}

// Parse reads a combination like "a", "F5", "ctrl+s", "alt+shift+x",
// or "ctrl+enter". Modifier names are ctrl, alt, shift, and meta.
// Ctrl plus a letter folds into the corresponding tcell control key,
// which is how terminals actually deliver it.
func Parse(s string) (KeyPress, error) {
	var kp KeyPress
	parts := strings.Split(strings.TrimSpace(s), "+")
	if len(parts) == 0 || parts[len(parts)-1] == "" {
		return kp, fmt.Errorf("keys: empty combination %q", s)
	}

	for _, mod := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(mod)) {
		case "ctrl", "control":
			kp.Mods |= tcell.ModCtrl
		case "alt":
			kp.Mods |= tcell.ModAlt
		case "shift":
			kp.Mods |= tcell.ModShift
		case "meta":
			kp.Mods |= tcell.ModMeta
		default:
			return KeyPress{}, fmt.Errorf("keys: unknown modifier %q in %q", mod, s)
		}
	}

	name := strings.TrimSpace(parts[len(parts)-1])
	lower := strings.ToLower(name)

	if lower == "space" {
		kp.Key = tcell.KeyRune
		kp.Rune = ' '
		return kp, nil
	}
	if k, ok := namedKeys[lower]; ok {
		kp.Key = k
		return kp, nil
	}

	runes := []rune(name)
	if len(runes) != 1 {
		return KeyPress{}, fmt.Errorf("keys: unknown key %q in %q", name, s)
	}
	ch := runes[0]

	if kp.Mods&tcell.ModCtrl != 0 && ch >= 'a' && ch <= 'z' {
		kp.Key = tcell.KeyCtrlA + tcell.Key(ch-'a')
		return kp, nil
	}
	if kp.Mods&tcell.ModCtrl != 0 && ch >= 'A' && ch <= 'Z' {
		kp.Key = tcell.KeyCtrlA + tcell.Key(ch-'A')
		return kp, nil
	}

	kp.Key = tcell.KeyRune
	kp.Rune = ch
	return kp, nil
}

// MustParse is Parse for static combinations; it panics on bad input.
func MustParse(s string) KeyPress {
	kp, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return kp
}

// String renders the combination for display, e.g. "Ctrl+S", "Alt+X",
// "F5". Used by auto-generated tooltips.
func (kp KeyPress) String() string {
	// Resolve the base name first. Named keys win: Enter and Tab share
	// code points with Ctrl+M and Ctrl+I and must not render as those.
	var name string
	mods := kp.Mods
	switch {
	case kp.Key == tcell.KeyRune && kp.Rune == ' ':
		name = "Space"
	case kp.Key == tcell.KeyRune:
		name = strings.ToUpper(string(kp.Rune))
	default:
		if n, ok := keyDisplay[kp.Key]; ok {
			name = n
		} else if kp.Key >= tcell.KeyCtrlA && kp.Key <= tcell.KeyCtrlZ {
			name = string('A' + rune(kp.Key-tcell.KeyCtrlA))
			// Control letters imply ctrl even when the terminal did
			// not set the modifier bit.
			mods |= tcell.ModCtrl
		} else {
			name = fmt.Sprintf("Key(%d)", int(kp.Key))
		}
	}

	var b strings.Builder
	if mods&tcell.ModCtrl != 0 {
		b.WriteString("Ctrl+")
	}
	if mods&tcell.ModAlt != 0 {
		b.WriteString("Alt+")
	}
	if mods&tcell.ModShift != 0 {
		b.WriteString("Shift+")
	}
	if mods&tcell.ModMeta != 0 {
		b.WriteString("Meta+")
	}
	b.WriteString(name)
	return b.String()
}
