// @lixen: #focus{copymode[motion,selection,search,yank]}
// @lixen: #interact{state[copymode,pane,paste]}
package mux

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lixenwraith/vi-dojo/input"
)

// EnterCopyMode starts browsing the active pane's scrollback
func EnterCopyMode(s *State) (*State, Result) {
	return apply(s, zeroTime, (*call).enterCopyMode)
}

// ExitCopyMode leaves copy mode without yanking
func ExitCopyMode(s *State) (*State, Result) {
	return apply(s, zeroTime, (*call).exitCopyMode)
}

// CopySearch searches the active pane's scrollback; copy mode is entered if needed
func CopySearch(s *State, pattern string, forward bool) (*State, Result) {
	return apply(s, zeroTime, func(c *call) {
		if !c.s.CopyMode.Enabled {
			c.enterCopyMode()
		}
		c.copySearch(pattern, forward)
	})
}

func (c *call) enterCopyMode() {
	p := c.s.pane()
	lines := p.Lines()
	cur := Position{Line: len(p.Scrollback) + p.Cursor.Line, Col: p.Cursor.Col}
	c.s.CopyMode = CopyMode{Enabled: true, Pane: p.ID, Forward: true, Cursor: clampPos(cur, lines)}
	c.follow(p, lines)
	c.info("COPY")
}

func (c *call) exitCopyMode() {
	if c.s.CopyMode.Enabled {
		c.s.pane().ScrollPos = 0
	}
	c.s.CopyMode = CopyMode{Forward: true}
}

// copyKey handles one key while copy mode is active
func (c *call) copyKey(key input.Key) {
	cm := &c.s.CopyMode
	p := c.s.pane()
	lines := p.Lines()

	if key.Printable() && unicode.IsDigit(key.Rune) && (key.Rune != '0' || cm.Count > 0) {
		cm.Count = min(cm.Count*10+int(key.Rune-'0'), 9999)
		return
	}
	count := max(cm.Count, 1)
	cm.Count = 0

	switch {
	case key.IsNamed(input.KeyEscape):
		if cm.Selecting {
			cm.Selecting = false
			return
		}
		c.exitCopyMode()
		return
	case key.Is('q'):
		c.exitCopyMode()
		return
	case key.Is('y'), key.IsNamed(input.KeyEnter):
		c.yankSelection(lines)
		return
	case key.Is(' '), key.Is('v'):
		c.startSelection(SelectChar)
		return
	case key.Is('V'):
		c.startSelection(SelectLine)
		return
	case key.IsCtrl('v'), key.Is('r'):
		if !cm.Selecting {
			c.startSelection(SelectRect)
		} else if cm.Kind == SelectRect {
			cm.Kind = SelectChar
		} else {
			cm.Kind = SelectRect
		}
		return
	case key.Is('/'):
		c.openPrompt(PromptSearchDown, "")
		return
	case key.Is('?'):
		c.openPrompt(PromptSearchUp, "")
		return
	case key.Is('n'):
		c.searchAgain(cm.Forward)
		return
	case key.Is('N'):
		c.searchAgain(!cm.Forward)
		return
	}

	cur := cm.Cursor
	page := max(p.Height, 1)
	for range count {
		switch {
		case key.Is('h'), key.IsNamed(input.KeyLeft):
			cur.Col = max(0, cur.Col-1)
		case key.Is('l'), key.IsNamed(input.KeyRight):
			cur.Col++
		case key.Is('j'), key.IsNamed(input.KeyDown):
			cur.Line++
		case key.Is('k'), key.IsNamed(input.KeyUp):
			cur.Line = max(0, cur.Line-1)
		case key.Is('w'):
			cur = wordForward(lines, cur)
		case key.Is('b'):
			cur = wordBack(lines, cur)
		case key.Is('e'):
			cur = wordEnd(lines, cur)
		case key.Is('0'), key.IsNamed(input.KeyHome):
			cur.Col = 0
		case key.Is('$'), key.IsNamed(input.KeyEnd):
			cur.Col = lineLen(lines, cur.Line)
		case key.Is('^'):
			cur.Col = firstNonBlank(lineAt(lines, cur.Line))
		case key.Is('g'):
			cur = Position{}
		case key.Is('G'):
			cur = Position{Line: len(lines) - 1}
		case key.Is('{'):
			cur = paragraphBack(lines, cur)
		case key.Is('}'):
			cur = paragraphForward(lines, cur)
		case key.Is('H'):
			cur.Line = p.ScrollPos
		case key.Is('M'):
			cur.Line = p.ScrollPos + (min(page, len(lines)-p.ScrollPos)-1)/2
		case key.Is('L'):
			cur.Line = p.ScrollPos + min(page, len(lines)-p.ScrollPos) - 1
		case key.IsCtrl('u'):
			cur.Line = max(0, cur.Line-page/2)
			p.ScrollPos = max(0, p.ScrollPos-page/2)
		case key.IsCtrl('d'):
			cur.Line += page / 2
			p.ScrollPos += page / 2
		case key.IsNamed(input.KeyPageUp):
			cur.Line = max(0, cur.Line-page)
			p.ScrollPos = max(0, p.ScrollPos-page)
		case key.IsNamed(input.KeyPageDown):
			cur.Line += page
			p.ScrollPos += page
		default:
			return
		}
	}
	cm.Cursor = clampPos(cur, lines)
	c.follow(p, lines)
}

// follow scrolls the viewport so the copy cursor stays visible
func (c *call) follow(p *Pane, lines []string) {
	h := max(p.Height, 1)
	line := c.s.CopyMode.Cursor.Line
	top := p.ScrollPos
	if line < top {
		top = line
	}
	if line >= top+h {
		top = line - h + 1
	}
	p.ScrollPos = max(0, min(top, len(lines)-h))
	c.res.Scroll = p.ScrollPos
}

func (c *call) startSelection(kind SelectKind) {
	cm := &c.s.CopyMode
	cm.Selecting = true
	cm.Anchor = cm.Cursor
	cm.Kind = kind
}

// selectionText extracts the selected text; columns are inclusive
func selectionText(lines []string, cm CopyMode) string {
	a, b := cm.Anchor, cm.Cursor
	if b.Line < a.Line || (b.Line == a.Line && b.Col < a.Col) {
		a, b = b, a
	}
	var out []string
	switch cm.Kind {
	case SelectLine:
		out = append(out, lines[a.Line:b.Line+1]...)
	case SelectRect:
		c0, c1 := min(cm.Anchor.Col, cm.Cursor.Col), max(cm.Anchor.Col, cm.Cursor.Col)
		for l := a.Line; l <= b.Line; l++ {
			out = append(out, runeSlice(lines[l], c0, c1+1))
		}
	default:
		for l := a.Line; l <= b.Line; l++ {
			from, to := 0, utf8.RuneCountInString(lines[l])
			if l == a.Line {
				from = a.Col
			}
			if l == b.Line {
				to = b.Col + 1
			}
			out = append(out, runeSlice(lines[l], from, to))
		}
	}
	return strings.Join(out, "\n")
}

func (c *call) yankSelection(lines []string) {
	cm := c.s.CopyMode
	if !cm.Selecting {
		c.exitCopyMode()
		return
	}
	text := selectionText(lines, cm)
	c.pushBuffer(text)
	c.exitCopyMode()
	c.info("Copied %d characters", utf8.RuneCountInString(text))
}

// === Search ===

// findMatches lists every case-insensitive match; an invalid expression is matched literally
func findMatches(lines []string, pattern string) []Position {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		re = regexp.MustCompile("(?i)" + regexp.QuoteMeta(pattern))
	}
	var out []Position
	for i, line := range lines {
		for _, loc := range re.FindAllStringIndex(line, -1) {
			if loc[0] == loc[1] {
				continue
			}
			out = append(out, Position{Line: i, Col: utf8.RuneCountInString(line[:loc[0]])})
		}
	}
	return out
}

// nextMatch picks the first match past cur in the search direction, wrapping
func nextMatch(matches []Position, cur Position, forward bool) int {
	if forward {
		for i, m := range matches {
			if m.Line > cur.Line || (m.Line == cur.Line && m.Col > cur.Col) {
				return i
			}
		}
		return 0
	}
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		if m.Line < cur.Line || (m.Line == cur.Line && m.Col < cur.Col) {
			return i
		}
	}
	return len(matches) - 1
}

func (c *call) copySearch(pattern string, forward bool) {
	cm := &c.s.CopyMode
	if pattern == "" {
		pattern = cm.Pattern
	}
	if pattern == "" {
		return
	}
	cm.Pattern, cm.Forward = pattern, forward
	c.jumpToMatch(forward)
}

func (c *call) searchAgain(forward bool) {
	if c.s.CopyMode.Pattern == "" {
		c.warn("No previous search")
		return
	}
	c.jumpToMatch(forward)
}

func (c *call) jumpToMatch(forward bool) {
	cm := &c.s.CopyMode
	p := c.s.pane()
	lines := p.Lines()
	cm.Matches = findMatches(lines, cm.Pattern)
	if len(cm.Matches) == 0 {
		cm.Current = 0
		c.fail("Pattern not found: %s", cm.Pattern)
		return
	}
	cm.Current = nextMatch(cm.Matches, cm.Cursor, forward)
	cm.Cursor = cm.Matches[cm.Current]
	c.follow(p, lines)
	c.info("[%d/%d]", cm.Current+1, len(cm.Matches))
}

// === Text helpers ===

func lineAt(lines []string, l int) string {
	if l < 0 || l >= len(lines) {
		return ""
	}
	return lines[l]
}

// lineLen returns the last valid column of line l
func lineLen(lines []string, l int) int {
	return max(0, utf8.RuneCountInString(lineAt(lines, l))-1)
}

func clampPos(p Position, lines []string) Position {
	p.Line = max(0, min(p.Line, len(lines)-1))
	p.Col = max(0, min(p.Col, lineLen(lines, p.Line)))
	return p
}

func runeSlice(s string, from, to int) string {
	r := []rune(s)
	from = max(0, min(from, len(r)))
	to = max(from, min(to, len(r)))
	return string(r[from:to])
}

func firstNonBlank(s string) int {
	for i, r := range []rune(s) {
		if r != ' ' && r != '\t' {
			return i
		}
	}
	return 0
}

// class groups runes for word motions: 0 blank, 1 word, 2 punctuation
func class(r rune) int {
	switch {
	case unicode.IsSpace(r):
		return 0
	case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
		return 1
	}
	return 2
}

// runeAt returns the rune at p, or a blank past the line end
func runeAt(lines []string, p Position) rune {
	r := []rune(lineAt(lines, p.Line))
	if p.Col < 0 || p.Col >= len(r) {
		return ' '
	}
	return r[p.Col]
}

// step moves one cell, treating the line end as a blank; ok is false at either end of the text
func step(lines []string, p Position, forward bool) (Position, bool) {
	if forward {
		if p.Col < utf8.RuneCountInString(lineAt(lines, p.Line)) {
			return Position{Line: p.Line, Col: p.Col + 1}, true
		}
		if p.Line+1 < len(lines) {
			return Position{Line: p.Line + 1}, true
		}
		return p, false
	}
	if p.Col > 0 {
		return Position{Line: p.Line, Col: p.Col - 1}, true
	}
	if p.Line > 0 {
		return Position{Line: p.Line - 1, Col: utf8.RuneCountInString(lines[p.Line-1])}, true
	}
	return p, false
}

func wordForward(lines []string, p Position) Position {
	cls := class(runeAt(lines, p))
	ok := true
	for ok && cls != 0 && class(runeAt(lines, p)) == cls {
		p, ok = step(lines, p, true)
	}
	for ok && class(runeAt(lines, p)) == 0 {
		var np Position
		if np, ok = step(lines, p, true); ok {
			p = np
		}
	}
	return p
}

func wordBack(lines []string, p Position) Position {
	p, ok := step(lines, p, false)
	for ok && class(runeAt(lines, p)) == 0 {
		p, ok = step(lines, p, false)
	}
	cls := class(runeAt(lines, p))
	for {
		prev, ok := step(lines, p, false)
		if !ok || prev.Line != p.Line || class(runeAt(lines, prev)) != cls {
			return p
		}
		p = prev
	}
}

func wordEnd(lines []string, p Position) Position {
	p, ok := step(lines, p, true)
	for ok && class(runeAt(lines, p)) == 0 {
		p, ok = step(lines, p, true)
	}
	cls := class(runeAt(lines, p))
	for {
		next, ok := step(lines, p, true)
		if !ok || next.Line != p.Line || class(runeAt(lines, next)) != cls {
			return p
		}
		p = next
	}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func paragraphBack(lines []string, p Position) Position {
	l := p.Line
	for l > 0 && blank(lines[l]) {
		l--
	}
	for l > 0 && !blank(lines[l]) {
		l--
	}
	return Position{Line: l}
}

func paragraphForward(lines []string, p Position) Position {
	l := p.Line
	for l < len(lines)-1 && blank(lines[l]) {
		l++
	}
	for l < len(lines)-1 && !blank(lines[l]) {
		l++
	}
	return Position{Line: l}
}
