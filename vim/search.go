// @lixen: #focus{control[search,match,incremental]}
package vim

import (
	"regexp"
	"unicode"
	"unicode/utf8"

	"github.com/lixenwraith/vi-dojo/input"
)

// historyCap bounds search and command-line history
const historyCap = 100

const (
	msgHitBottom = "search hit BOTTOM, continuing at TOP"
	msgHitTop    = "search hit TOP, continuing at BOTTOM"
)

// compilePattern builds a matcher honouring ignorecase and smartcase
// Patterns that fail to compile are matched literally
func compilePattern(pattern string, ignoreCase, smartCase bool) *regexp.Regexp {
	fold := ignoreCase
	if smartCase && hasUpperLiteral(pattern) {
		fold = false
	}
	prefix := ""
	if fold {
		prefix = "(?i)"
	}
	re, err := regexp.Compile(prefix + pattern)
	if err != nil {
		re = regexp.MustCompile(prefix + regexp.QuoteMeta(pattern))
	}
	return re
}

// hasUpperLiteral reports an uppercase letter outside escapes such as \W or \S
func hasUpperLiteral(pattern string) bool {
	escaped := false
	for _, r := range pattern {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case unicode.IsUpper(r):
			return true
		}
	}
	return false
}

func (s *State) compile(pattern string) *regexp.Regexp {
	return compilePattern(pattern, s.Settings.IgnoreCase, s.Settings.SmartCase)
}

// findMatches lists match starts in document order; columns are rune offsets
func findMatches(b *Buffer, re *regexp.Regexp) []Position {
	var out []Position
	for l, text := range b.Lines {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			out = append(out, Position{l, utf8.RuneCountInString(text[:loc[0]])})
		}
	}
	return out
}

// nextMatch finds the first match strictly after (forward) or before pos, wrapping once
func nextMatch(matches []Position, pos Position, forward bool) (int, bool) {
	if len(matches) == 0 {
		return -1, false
	}
	if forward {
		for i, m := range matches {
			if pos.Before(m) {
				return i, false
			}
		}
		return 0, true
	}
	for i := len(matches) - 1; i >= 0; i-- {
		if matches[i].Before(pos) {
			return i, false
		}
	}
	return len(matches) - 1, true
}

func wrapMessage(forward bool) string {
	if forward {
		return msgHitBottom
	}
	return msgHitTop
}

// pushHistory appends entry unless it repeats the newest one
func pushHistory(h []string, entry string) []string {
	if entry == "" || (len(h) > 0 && h[len(h)-1] == entry) {
		return h
	}
	h = append(h, entry)
	if len(h) > historyCap {
		h = h[len(h)-historyCap:]
	}
	return h
}

// === Search mode ===

func (c *call) beginSearch(forward bool) {
	b := c.buf()
	c.s.Search.Forward = forward
	c.s.Search.Draft = ""
	c.s.Search.Origin = b.Cursor
	c.s.Search.HistPos = len(c.s.Search.History)
	b.Mode = ModeSearch
	c.action("search_start")
}

// searchKey edits the search draft; incsearch previews the match as the draft changes
func (c *call) searchKey(key input.Key) {
	b := c.buf()
	ss := &c.s.Search

	switch {
	case key.IsNamed(input.KeyEscape), key.IsCtrl('c'):
		b.Cursor = ss.Origin
		ss.Draft = ""
		ss.Matches = nil
		b.Mode = ModeNormal
		c.action("search_cancel")
		return

	case key.IsNamed(input.KeyEnter):
		c.confirmSearch()
		return

	case key.IsNamed(input.KeyBackspace):
		if ss.Draft == "" {
			b.Cursor = ss.Origin
			b.Mode = ModeNormal
			return
		}
		_, size := utf8.DecodeLastRuneInString(ss.Draft)
		ss.Draft = ss.Draft[:len(ss.Draft)-size]

	case key.IsCtrl('u'):
		ss.Draft = ""

	case key.IsNamed(input.KeyUp):
		if ss.HistPos > 0 {
			ss.HistPos--
			ss.Draft = ss.History[ss.HistPos]
		}

	case key.IsNamed(input.KeyDown):
		if ss.HistPos < len(ss.History) {
			ss.HistPos++
		}
		ss.Draft = ""
		if ss.HistPos < len(ss.History) {
			ss.Draft = ss.History[ss.HistPos]
		}

	case key.Printable():
		ss.Draft += string(key.Rune)

	default:
		return
	}
	c.incremental()
}

// incremental moves the cursor to the draft's next match from the search origin
func (c *call) incremental() {
	b := c.buf()
	ss := &c.s.Search
	b.Cursor = ss.Origin
	ss.Matches = nil
	ss.Current = -1
	if !c.s.Settings.IncSearch || ss.Draft == "" {
		return
	}
	ss.Matches = findMatches(b, c.s.compile(ss.Draft))
	if i, _ := nextMatch(ss.Matches, ss.Origin, ss.Forward); i >= 0 {
		ss.Current = i
		b.Cursor = ss.Matches[i]
	}
}

// confirmSearch commits the draft; an empty draft reuses the last pattern
func (c *call) confirmSearch() {
	b := c.buf()
	ss := &c.s.Search
	b.Mode = ModeNormal
	b.Cursor = ss.Origin

	pattern := ss.Draft
	ss.Draft = ""
	if pattern == "" {
		pattern = ss.Pattern
	}
	if pattern == "" {
		c.fail("No previous search pattern")
		return
	}
	ss.History = pushHistory(ss.History, pattern)
	ss.HistPos = len(ss.History)
	ss.Pattern = pattern
	ss.Highlight = c.s.Settings.HlSearch
	c.s.Registers.LastSearch = pattern

	c.jumpToMatch(ss.Origin, 1, ss.Forward)
	c.action("search")
}

// jumpToMatch moves count matches from pos and reports not-found or wrap
func (c *call) jumpToMatch(pos Position, count int, forward bool) {
	target, ok := c.locateMatch(pos, count, forward)
	if !ok {
		return
	}
	c.pushJump()
	c.buf().setCursor(target.Line, target.Col)
}

// locateMatch recomputes matches for the active pattern and steps count times from pos
func (c *call) locateMatch(pos Position, count int, forward bool) (Position, bool) {
	ss := &c.s.Search
	ss.Matches = findMatches(c.buf(), c.s.compile(ss.Pattern))
	ss.Current = -1
	if len(ss.Matches) == 0 {
		c.fail("Pattern not found: %s", ss.Pattern)
		return Position{}, false
	}

	wrapped := false
	idx := -1
	for i := 0; i < max(count, 1); i++ {
		n, w := nextMatch(ss.Matches, pos, forward)
		wrapped = wrapped || w
		idx = n
		pos = ss.Matches[n]
	}
	ss.Current = idx
	if wrapped {
		c.warn("%s", wrapMessage(forward))
	}
	return pos, true
}

// searchMotion implements n and N; reverse flips the stored direction
func (c *call) searchMotion(count int, reverse bool) MotionResult {
	ss := &c.s.Search
	if ss.Pattern == "" {
		c.fail("No previous search pattern")
		return MotionResult{}
	}
	ss.Highlight = c.s.Settings.HlSearch
	forward := ss.Forward != reverse
	p, ok := c.locateMatch(c.buf().Cursor, count, forward)
	if !ok {
		return MotionResult{}
	}
	return target(p, StyleExclusive)
}

// searchWord implements * and # with whole-word matching
func (c *call) searchWord(forward bool, count int) {
	b := c.buf()
	rr := b.runes(b.Cursor.Line)
	col := b.Cursor.Col
	if col >= len(rr) || !isWordChar(rr[col]) {
		c.fail("No word under cursor")
		return
	}
	start, end := col, col
	for start > 0 && isWordChar(rr[start-1]) {
		start--
	}
	for end < len(rr) && isWordChar(rr[end]) {
		end++
	}
	pattern := `\b` + regexp.QuoteMeta(string(rr[start:end])) + `\b`

	ss := &c.s.Search
	ss.Pattern = pattern
	ss.Forward = forward
	ss.Highlight = c.s.Settings.HlSearch
	ss.History = pushHistory(ss.History, pattern)
	ss.HistPos = len(ss.History)
	c.s.Registers.LastSearch = pattern

	from := Position{b.Cursor.Line, end - 1}
	if !forward {
		from = Position{b.Cursor.Line, start}
	}
	c.jumpToMatch(from, count, forward)
	c.action("search_word")
}

// clearHighlight implements :noh
func (c *call) clearHighlight() {
	c.s.Search.Highlight = false
	c.action("nohlsearch")
}
