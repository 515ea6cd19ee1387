package input

import (
	"strings"
	"unicode/utf8"
)

// keyTags is the canonical tag for each named key
var keyTags = map[KeyName]string{
	KeyEscape:    "Esc",
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBacktab:   "S-Tab",
	KeyBackspace: "BS",
	KeyDelete:    "Del",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyInsert:    "Insert",
}

// keyAliases maps lowercase tag spellings to key names
var keyAliases = map[string]KeyName{
	"esc":       KeyEscape,
	"escape":    KeyEscape,
	"enter":     KeyEnter,
	"cr":        KeyEnter,
	"return":    KeyEnter,
	"tab":       KeyTab,
	"s-tab":     KeyBacktab,
	"backtab":   KeyBacktab,
	"bs":        KeyBackspace,
	"backspace": KeyBackspace,
	"del":       KeyDelete,
	"delete":    KeyDelete,
	"up":        KeyUp,
	"down":      KeyDown,
	"left":      KeyLeft,
	"right":     KeyRight,
	"home":      KeyHome,
	"end":       KeyEnd,
	"pageup":    KeyPageUp,
	"pgup":      KeyPageUp,
	"pagedown":  KeyPageDown,
	"pgdn":      KeyPageDown,
	"insert":    KeyInsert,
}

// KeyByName resolves a key name such as "esc" or "pagedown"
func KeyByName(name string) (KeyName, bool) {
	n, ok := keyAliases[strings.ToLower(name)]
	return n, ok
}

// EncodeKey renders a key in bracket-tag notation
func EncodeKey(k Key) string {
	if k.Name == KeyRune {
		switch {
		case k.Ctrl:
			return "<C-" + string(k.Rune) + ">"
		case k.Alt:
			return "<A-" + string(k.Rune) + ">"
		case k.Rune == ' ':
			return "<Space>"
		case k.Rune == '<':
			return "<lt>"
		case k.Rune == '\\':
			return "<Bslash>"
		}
		return string(k.Rune)
	}

	tag, ok := keyTags[k.Name]
	if !ok {
		return ""
	}
	switch {
	case k.Ctrl:
		return "<C-" + tag + ">"
	case k.Alt:
		return "<A-" + tag + ">"
	}
	return "<" + tag + ">"
}

// EncodeKeys concatenates the encoding of each key
func EncodeKeys(keys []Key) string {
	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(EncodeKey(k))
	}
	return sb.String()
}

// ParseKeys decodes bracket-tag notation into key tokens
// Backslash escapes \n \t \e \< \\ are accepted; unknown tags decode as literal runes
func ParseKeys(s string) []Key {
	keys := make([]Key, 0, len(s))
	for i := 0; i < len(s); {
		switch s[i] {
		case '<':
			if end := strings.IndexByte(s[i:], '>'); end > 1 {
				if k, ok := parseTag(s[i+1 : i+end]); ok {
					keys = append(keys, k)
					i += end + 1
					continue
				}
			}
		case '\\':
			if i+1 < len(s) {
				switch s[i+1] {
				case 'n':
					keys = append(keys, NamedKey(KeyEnter))
				case 't':
					keys = append(keys, NamedKey(KeyTab))
				case 'e':
					keys = append(keys, NamedKey(KeyEscape))
				default:
					r, size := utf8.DecodeRuneInString(s[i+1:])
					keys = append(keys, RuneKey(r))
					i += 1 + size
					continue
				}
				i += 2
				continue
			}
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		keys = append(keys, RuneKey(r))
		i += size
	}
	return keys
}

func parseTag(tag string) (Key, bool) {
	lower := strings.ToLower(tag)
	switch lower {
	case "space":
		return RuneKey(' '), true
	case "lt":
		return RuneKey('<'), true
	case "bslash":
		return RuneKey('\\'), true
	case "bar":
		return RuneKey('|'), true
	case "s-tab":
		return NamedKey(KeyBacktab), true
	}

	var ctrl, alt bool
	for len(lower) > 2 && lower[1] == '-' {
		switch lower[0] {
		case 'c':
			ctrl = true
		case 'a', 'm':
			alt = true
		case 's':
		default:
			return Key{}, false
		}
		lower = lower[2:]
		tag = tag[2:]
	}

	if n, ok := keyAliases[lower]; ok {
		return Key{Name: n, Ctrl: ctrl, Alt: alt}, true
	}
	if utf8.RuneCountInString(tag) == 1 && (ctrl || alt) {
		r, _ := utf8.DecodeRuneInString(tag)
		if ctrl {
			k := CtrlKey(r)
			k.Alt = alt
			return k, true
		}
		return AltKey(r), true
	}
	if lower == "space" && (ctrl || alt) {
		return Key{Name: KeyRune, Rune: ' ', Ctrl: ctrl, Alt: alt}, true
	}
	return Key{}, false
}
