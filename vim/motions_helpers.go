package vim

import "unicode"

// CharType represents the class of a character for word motions
type CharType int

const (
	CharTypeSpace       CharType = 0
	CharTypeWord        CharType = 1
	CharTypePunctuation CharType = 2
)

// isWordChar returns true if the rune is a word character
func isWordChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}

// charType classifies r for word motions; bigWord folds punctuation into words
func charType(r rune, bigWord bool) CharType {
	switch {
	case r == 0 || isSpace(r):
		return CharTypeSpace
	case bigWord || isWordChar(r):
		return CharTypeWord
	}
	return CharTypePunctuation
}

// textWalker steps through buffer positions across line boundaries
// An empty line is visited once at column 0
type textWalker struct {
	lines [][]rune
}

func newTextWalker(b *Buffer) *textWalker {
	w := &textWalker{lines: make([][]rune, len(b.Lines))}
	for i, l := range b.Lines {
		w.lines[i] = []rune(l)
	}
	return w
}

func (w *textWalker) at(p Position) rune {
	if p.Line < 0 || p.Line >= len(w.lines) {
		return 0
	}
	r := w.lines[p.Line]
	if p.Col < 0 || p.Col >= len(r) {
		return 0
	}
	return r[p.Col]
}

func (w *textWalker) empty(line int) bool {
	return len(w.lines[line]) == 0
}

func (w *textWalker) next(p Position) (Position, bool) {
	if p.Col+1 < len(w.lines[p.Line]) {
		return Position{p.Line, p.Col + 1}, true
	}
	if p.Line+1 < len(w.lines) {
		return Position{p.Line + 1, 0}, true
	}
	return p, false
}

func (w *textWalker) prev(p Position) (Position, bool) {
	if p.Col > 0 {
		return Position{p.Line, min(p.Col-1, max(0, len(w.lines[p.Line])-1))}, true
	}
	if p.Line > 0 {
		l := p.Line - 1
		return Position{l, max(0, len(w.lines[l])-1)}, true
	}
	return p, false
}

// end returns the position just past the last character of the buffer
func (w *textWalker) end() Position {
	last := len(w.lines) - 1
	return Position{last, len(w.lines[last])}
}

// isWordStart reports whether p begins a word run or is an empty line
func (w *textWalker) isWordStart(p Position, bigWord bool) bool {
	if w.empty(p.Line) {
		return true
	}
	t := charType(w.at(p), bigWord)
	if t == CharTypeSpace {
		return false
	}
	return p.Col == 0 || charType(w.at(Position{p.Line, p.Col - 1}), bigWord) != t
}

// isWordEnd reports whether p is the last character of a word run
func (w *textWalker) isWordEnd(p Position, bigWord bool) bool {
	t := charType(w.at(p), bigWord)
	if t == CharTypeSpace {
		return false
	}
	r := w.lines[p.Line]
	return p.Col == len(r)-1 || charType(r[p.Col+1], bigWord) != t
}

// nextWordStart finds the first word start after p; at buffer end returns the end position
func (w *textWalker) nextWordStart(p Position, bigWord bool) Position {
	for {
		n, ok := w.next(p)
		if !ok {
			return w.end()
		}
		p = n
		if w.isWordStart(p, bigWord) {
			return p
		}
	}
}

func (w *textWalker) prevWordStart(p Position, bigWord bool) Position {
	for {
		n, ok := w.prev(p)
		if !ok {
			return p
		}
		p = n
		if w.isWordStart(p, bigWord) {
			return p
		}
	}
}

func (w *textWalker) nextWordEnd(p Position, bigWord bool) Position {
	for {
		n, ok := w.next(p)
		if !ok {
			return p
		}
		p = n
		if !w.empty(p.Line) && w.isWordEnd(p, bigWord) {
			return p
		}
	}
}

func (w *textWalker) prevWordEnd(p Position, bigWord bool) Position {
	for {
		n, ok := w.prev(p)
		if !ok {
			return p
		}
		p = n
		if w.empty(p.Line) || w.isWordEnd(p, bigWord) {
			return p
		}
	}
}

// findCharInLine finds the count-th occurrence of target in direction
// Returns the column and whether enough occurrences exist
func findCharInLine(r []rune, col int, target rune, count int, forward bool) (int, bool) {
	found := 0
	if forward {
		for x := col + 1; x < len(r); x++ {
			if r[x] == target {
				found++
				if found == count {
					return x, true
				}
			}
		}
		return col, false
	}
	for x := col - 1; x >= 0; x-- {
		if r[x] == target {
			found++
			if found == count {
				return x, true
			}
		}
	}
	return col, false
}

var bracketPairs = map[rune]rune{
	'(': ')', '[': ']', '{': '}',
	')': '(', ']': '[', '}': '{',
}

func isOpenBracket(r rune) bool {
	return r == '(' || r == '[' || r == '{'
}

// matchBracket scans from an opening bracket forward or a closing bracket backward
// with depth counting across lines
func (w *textWalker) matchBracket(p Position) (Position, bool) {
	open := w.at(p)
	closer, ok := bracketPairs[open]
	if !ok {
		return p, false
	}
	forward := isOpenBracket(open)
	depth := 0
	for {
		var more bool
		if forward {
			p, more = w.next(p)
		} else {
			p, more = w.prev(p)
		}
		if !more {
			return p, false
		}
		switch w.at(p) {
		case open:
			depth++
		case closer:
			if depth == 0 {
				return p, true
			}
			depth--
		}
	}
}
