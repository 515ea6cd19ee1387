package input

import "github.com/gdamore/tcell/v2"

// tcellNamed maps tcell keys to key names
// Enter/Tab/Backspace share codes with Ctrl+M/I/H and are resolved here first
var tcellNamed = map[tcell.Key]KeyName{
	tcell.KeyEscape:     KeyEscape,
	tcell.KeyEnter:      KeyEnter,
	tcell.KeyTab:        KeyTab,
	tcell.KeyBacktab:    KeyBacktab,
	tcell.KeyBackspace:  KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace,
	tcell.KeyDelete:     KeyDelete,
	tcell.KeyUp:         KeyUp,
	tcell.KeyDown:       KeyDown,
	tcell.KeyLeft:       KeyLeft,
	tcell.KeyRight:      KeyRight,
	tcell.KeyHome:       KeyHome,
	tcell.KeyEnd:        KeyEnd,
	tcell.KeyPgUp:       KeyPageUp,
	tcell.KeyPgDn:       KeyPageDown,
	tcell.KeyInsert:     KeyInsert,
}

// FromTcell converts a tcell key event into a key token
// Returns KeyNone for keys the engines do not consume (function keys, etc.)
func FromTcell(ev *tcell.EventKey) Key {
	mods := ev.Modifiers()
	ctrl := mods&tcell.ModCtrl != 0
	alt := mods&tcell.ModAlt != 0
	shift := mods&tcell.ModShift != 0

	key := ev.Key()
	if key == tcell.KeyRune {
		if ctrl {
			k := CtrlKey(ev.Rune())
			k.Alt = alt
			return k
		}
		return Key{Name: KeyRune, Rune: ev.Rune(), Alt: alt}
	}

	if name, ok := tcellNamed[key]; ok {
		return Key{Name: name, Ctrl: ctrl && name >= KeyUp, Alt: alt, Shift: shift}
	}

	switch {
	case key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ:
		k := CtrlKey(rune('a' + int(key-tcell.KeyCtrlA)))
		k.Alt = alt
		return k
	case key == tcell.KeyCtrlSpace:
		return Key{Name: KeyRune, Rune: ' ', Ctrl: true}
	case key == tcell.KeyCtrlBackslash:
		return CtrlKey('\\')
	case key == tcell.KeyCtrlRightSq:
		return CtrlKey(']')
	case key == tcell.KeyCtrlCarat:
		return CtrlKey('^')
	case key == tcell.KeyCtrlUnderscore:
		return CtrlKey('_')
	}
	return Key{}
}

// tcellKeys is the reverse of tcellNamed
var tcellKeys = map[KeyName]tcell.Key{
	KeyEscape:    tcell.KeyEscape,
	KeyEnter:     tcell.KeyEnter,
	KeyTab:       tcell.KeyTab,
	KeyBacktab:   tcell.KeyBacktab,
	KeyBackspace: tcell.KeyBackspace2,
	KeyDelete:    tcell.KeyDelete,
	KeyUp:        tcell.KeyUp,
	KeyDown:      tcell.KeyDown,
	KeyLeft:      tcell.KeyLeft,
	KeyRight:     tcell.KeyRight,
	KeyHome:      tcell.KeyHome,
	KeyEnd:       tcell.KeyEnd,
	KeyPageUp:    tcell.KeyPgUp,
	KeyPageDown:  tcell.KeyPgDn,
	KeyInsert:    tcell.KeyInsert,
}

// tcellCtrlPunct maps the punctuation control keys tcell reports as dedicated codes
var tcellCtrlPunct = map[rune]tcell.Key{
	'\\': tcell.KeyCtrlBackslash,
	']':  tcell.KeyCtrlRightSq,
	'^':  tcell.KeyCtrlCarat,
	'_':  tcell.KeyCtrlUnderscore,
}

// ToTcell returns the arguments of tcell.NewEventKey that FromTcell maps back to k
func ToTcell(k Key) (tcell.Key, rune, tcell.ModMask) {
	var mod tcell.ModMask
	if k.Alt {
		mod |= tcell.ModAlt
	}

	if k.Name == KeyRune {
		if !k.Ctrl {
			return tcell.KeyRune, k.Rune, mod
		}
		mod |= tcell.ModCtrl
		switch {
		case k.Rune >= 'a' && k.Rune <= 'z':
			return tcell.KeyCtrlA + tcell.Key(k.Rune-'a'), k.Rune, mod
		case k.Rune == ' ':
			return tcell.KeyCtrlSpace, 0, mod
		}
		if tk, ok := tcellCtrlPunct[k.Rune]; ok {
			return tk, k.Rune, mod
		}
		return tcell.KeyRune, k.Rune, mod
	}

	tk, ok := tcellKeys[k.Name]
	if !ok {
		return tcell.KeyNUL, 0, mod
	}
	if k.Ctrl {
		mod |= tcell.ModCtrl
	}
	if k.Shift {
		mod |= tcell.ModShift
	}
	return tk, 0, mod
}
