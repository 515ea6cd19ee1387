// @lixen: #focus{state[register]}
package vim

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// smallDeleteLimit is the rune length below which a single-line delete goes to "-
const smallDeleteLimit = 10

// registerPreviewWidth is the display width of :registers content
const registerPreviewWidth = 40

// registerWrite describes one delete or yank payload
type registerWrite struct {
	name   rune // explicit register, 0 when absent
	text   string
	kind   RegisterKind
	delete bool
}

// isRegisterName reports whether r may follow a " prefix
func isRegisterName(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return strings.ContainsRune(`"-_+*.:/%#=`, r)
}

// isWritableRegister reports whether yanks and deletes may target r
func isWritableRegister(r rune) bool {
	switch {
	case r == 0, r == '"', r == '_', r == '+', r == '*':
		return true
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	}
	return false
}

// store writes a delete or yank into the register bank
// Returns a clipboard request when the write reaches + or *
func (s *State) store(w registerWrite, now time.Time) *ClipboardWrite {
	if w.name == '_' {
		return nil
	}
	reg := Register{Content: w.text, Kind: w.kind, Time: now}
	var clip *ClipboardWrite

	switch {
	case w.name >= 'a' && w.name <= 'z':
		s.Registers.Named[w.name] = reg

	case w.name >= 'A' && w.name <= 'Z':
		// Unnamed receives the combined text, as in vim
		lower := unicode.ToLower(w.name)
		if prev, ok := s.Registers.Named[lower]; ok && !prev.Empty() {
			reg = Register{Content: prev.Content + w.text, Kind: prev.Kind, Time: now}
		}
		s.Registers.Named[lower] = reg

	case w.name == '+':
		s.Registers.Clipboard = reg
		clip = &ClipboardWrite{Register: '+', Content: reg.Content}

	case w.name == '*':
		s.Registers.Selection = reg
		clip = &ClipboardWrite{Register: '*', Content: reg.Content}

	case w.delete && w.kind == RegisterChar && !strings.Contains(w.text, "\n") &&
		utf8.RuneCountInString(w.text) < smallDeleteLimit:
		s.Registers.SmallDelete = reg

	case w.delete:
		copy(s.Registers.Numbered[1:], s.Registers.Numbered[:9])
		s.Registers.Numbered[0] = reg

	default:
		s.Registers.Numbered[0] = reg
	}

	s.Registers.Unnamed = reg

	if clip == nil {
		switch s.Settings.Clipboard {
		case "unnamed":
			s.Registers.Selection = reg
			clip = &ClipboardWrite{Register: '*', Content: reg.Content}
		case "unnamedplus":
			s.Registers.Clipboard = reg
			clip = &ClipboardWrite{Register: '+', Content: reg.Content}
		}
	}
	return clip
}

// Register resolves a register by name; absent registers read as empty
func (s *State) Register(name rune) Register {
	switch {
	case name == 0 || name == '"':
		return s.Registers.Unnamed
	case name >= 'a' && name <= 'z', name >= 'A' && name <= 'Z':
		return s.Registers.Named[unicode.ToLower(name)]
	case name >= '0' && name <= '9':
		return s.Registers.Numbered[name-'0']
	}

	switch name {
	case '-':
		return s.Registers.SmallDelete
	case '+':
		return s.Registers.Clipboard
	case '*':
		return s.Registers.Selection
	case '.':
		return Register{Content: s.Registers.LastInsert}
	case ':':
		return Register{Content: s.Registers.LastCommand}
	case '/':
		return Register{Content: s.Registers.LastSearch}
	case '=':
		return Register{Content: s.Registers.Expression}
	case '%':
		return Register{Content: s.buf().Filename}
	case '#':
		if b := s.buffer(s.Alternate); b != nil {
			return Register{Content: b.Filename}
		}
	}
	return Register{}
}

// registerListing renders :registers, optionally restricted to the names in filter
func (s *State) registerListing(filter string) string {
	names := []rune{'"'}
	for r := '0'; r <= '9'; r++ {
		names = append(names, r)
	}
	for r := 'a'; r <= 'z'; r++ {
		names = append(names, r)
	}
	names = append(names, '-', '*', '+', '.', ':', '%', '#', '/', '=')

	var sb strings.Builder
	sb.WriteString("Type Name Content")
	for _, name := range names {
		if filter != "" && !strings.ContainsRune(filter, name) {
			continue
		}
		reg := s.Register(name)
		if reg.Empty() {
			continue
		}
		preview := strings.ReplaceAll(reg.Content, "\n", "^J")
		preview = strings.ReplaceAll(preview, "\t", "^I")
		preview = runewidth.Truncate(preview, registerPreviewWidth, "")
		fmt.Fprintf(&sb, "\n  %s  \"%c   %s", reg.Kind, name, preview)
	}
	return sb.String()
}
