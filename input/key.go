package input

import "unicode"

// KeyName identifies a key; KeyRune means the Rune field carries the character
type KeyName uint8

const (
	KeyNone KeyName = iota
	KeyRune

	// Control keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab
	KeyBackspace
	KeyDelete

	// Navigation
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
)

// Key is one discrete input token consumed by the engines
// Ctrl/Alt combine with KeyRune (Ctrl+R) or with named keys (Ctrl+Left)
type Key struct {
	Name  KeyName `json:"name"`
	Rune  rune    `json:"rune,omitempty"`
	Ctrl  bool    `json:"ctrl,omitempty"`
	Alt   bool    `json:"alt,omitempty"`
	Shift bool    `json:"shift,omitempty"`
}

// RuneKey returns a printable key
func RuneKey(r rune) Key {
	return Key{Name: KeyRune, Rune: r}
}

// NamedKey returns a non-printable key
func NamedKey(n KeyName) Key {
	return Key{Name: n}
}

// CtrlKey returns Ctrl+r, folding Ctrl+[ into Escape
func CtrlKey(r rune) Key {
	if r == '[' {
		return Key{Name: KeyEscape}
	}
	return Key{Name: KeyRune, Rune: unicode.ToLower(r), Ctrl: true}
}

// AltKey returns Alt+r
func AltKey(r rune) Key {
	return Key{Name: KeyRune, Rune: r, Alt: true}
}

// Printable reports whether the key inserts its rune as text
func (k Key) Printable() bool {
	return k.Name == KeyRune && !k.Ctrl && !k.Alt
}

// Is reports whether the key is the unmodified rune r
func (k Key) Is(r rune) bool {
	return k.Printable() && k.Rune == r
}

// IsCtrl reports whether the key is Ctrl+r
func (k Key) IsCtrl(r rune) bool {
	return k.Name == KeyRune && k.Ctrl && !k.Alt && k.Rune == unicode.ToLower(r)
}

// IsNamed reports whether the key is the unmodified named key n
func (k Key) IsNamed(n KeyName) bool {
	return k.Name == n && !k.Ctrl && !k.Alt
}

// String returns the bracket-tag notation used by macros and the CLI
func (k Key) String() string {
	return EncodeKey(k)
}
