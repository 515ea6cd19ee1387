// @lixen: #focus{control[motion]}
package vim

// target builds a valid charwise result
func target(p Position, style MotionStyle) MotionResult {
	return MotionResult{Line: p.Line, Col: p.Col, Type: RangeChar, Style: style, Valid: true}
}

// lineTarget builds a valid linewise result
func lineTarget(line, col int) MotionResult {
	return MotionResult{Line: line, Col: col, Type: RangeLine, Style: StyleInclusive, Valid: true}
}

// MotionLeft implements 'h' motion
func MotionLeft(b *Buffer, count int) MotionResult {
	c := b.Cursor
	return target(Position{c.Line, max(0, c.Col-count)}, StyleExclusive)
}

// MotionRight implements 'l' and space motion
func MotionRight(b *Buffer, count int) MotionResult {
	c := b.Cursor
	return target(Position{c.Line, min(c.Col+count, b.maxCol(c.Line))}, StyleExclusive)
}

// MotionDown implements 'j' motion
func MotionDown(b *Buffer, count int) MotionResult {
	c := b.Cursor
	line := min(c.Line+count, b.lastLine())
	r := lineTarget(line, min(c.Col, b.maxCol(line)))
	r.Valid = line != c.Line
	return r
}

// MotionUp implements 'k' motion
func MotionUp(b *Buffer, count int) MotionResult {
	c := b.Cursor
	line := max(c.Line-count, 0)
	r := lineTarget(line, min(c.Col, b.maxCol(line)))
	r.Valid = line != c.Line
	return r
}

// MotionWordForward implements 'w' motion
func MotionWordForward(b *Buffer, count int) MotionResult {
	return wordForward(b, count, false)
}

// MotionWORDForward implements 'W' motion
func MotionWORDForward(b *Buffer, count int) MotionResult {
	return wordForward(b, count, true)
}

func wordForward(b *Buffer, count int, bigWord bool) MotionResult {
	w := newTextWalker(b)
	p := b.Cursor
	for i := 0; i < count; i++ {
		n := w.nextWordStart(p, bigWord)
		if n == p {
			break
		}
		p = n
	}
	return target(p, StyleExclusive)
}

// MotionWordBack implements 'b' motion
func MotionWordBack(b *Buffer, count int) MotionResult {
	return wordBack(b, count, false)
}

// MotionWORDBack implements 'B' motion
func MotionWORDBack(b *Buffer, count int) MotionResult {
	return wordBack(b, count, true)
}

func wordBack(b *Buffer, count int, bigWord bool) MotionResult {
	w := newTextWalker(b)
	p := b.Cursor
	for i := 0; i < count; i++ {
		p = w.prevWordStart(p, bigWord)
	}
	return target(p, StyleExclusive)
}

// MotionWordEnd implements 'e' motion
func MotionWordEnd(b *Buffer, count int) MotionResult {
	return wordEnd(b, count, false)
}

// MotionWORDEnd implements 'E' motion
func MotionWORDEnd(b *Buffer, count int) MotionResult {
	return wordEnd(b, count, true)
}

func wordEnd(b *Buffer, count int, bigWord bool) MotionResult {
	w := newTextWalker(b)
	p := b.Cursor
	for i := 0; i < count; i++ {
		p = w.nextWordEnd(p, bigWord)
	}
	return target(p, StyleInclusive)
}

// MotionWordEndBack implements 'ge' motion
func MotionWordEndBack(b *Buffer, count int) MotionResult {
	return wordEndBack(b, count, false)
}

// MotionWORDEndBack implements 'gE' motion
func MotionWORDEndBack(b *Buffer, count int) MotionResult {
	return wordEndBack(b, count, true)
}

func wordEndBack(b *Buffer, count int, bigWord bool) MotionResult {
	w := newTextWalker(b)
	p := b.Cursor
	for i := 0; i < count; i++ {
		p = w.prevWordEnd(p, bigWord)
	}
	return target(p, StyleInclusive)
}

// MotionLineStart implements '0' motion
func MotionLineStart(b *Buffer, _ int) MotionResult {
	return target(Position{b.Cursor.Line, 0}, StyleExclusive)
}

// MotionFirstNonWS implements '^' motion
func MotionFirstNonWS(b *Buffer, _ int) MotionResult {
	line := b.Cursor.Line
	return target(Position{line, b.firstNonBlank(line)}, StyleExclusive)
}

// MotionLineEnd implements '$' motion; a count moves to the end of a following line
func MotionLineEnd(b *Buffer, count int) MotionResult {
	line := min(b.Cursor.Line+count-1, b.lastLine())
	return target(Position{line, b.maxCol(line)}, StyleInclusive)
}

// MotionLineFirstNonWS implements '_' motion
func MotionLineFirstNonWS(b *Buffer, count int) MotionResult {
	line := min(b.Cursor.Line+count-1, b.lastLine())
	return lineTarget(line, b.firstNonBlank(line))
}

// MotionNextLineStart implements '+' and Enter
func MotionNextLineStart(b *Buffer, count int) MotionResult {
	line := b.Cursor.Line + count
	if line > b.lastLine() {
		return MotionResult{}
	}
	return lineTarget(line, b.firstNonBlank(line))
}

// MotionPrevLineStart implements '-' motion
func MotionPrevLineStart(b *Buffer, count int) MotionResult {
	line := b.Cursor.Line - count
	if line < 0 {
		return MotionResult{}
	}
	return lineTarget(line, b.firstNonBlank(line))
}

// MotionColumn implements '|' motion
func MotionColumn(b *Buffer, count int) MotionResult {
	line := b.Cursor.Line
	return target(Position{line, min(count-1, b.maxCol(line))}, StyleExclusive)
}

// MotionFileStart implements 'gg'; count is the raw count, 0 when absent
func MotionFileStart(b *Buffer, count int) MotionResult {
	line := 0
	if count > 0 {
		line = min(count-1, b.lastLine())
	}
	return lineTarget(line, b.firstNonBlank(line))
}

// MotionFileEnd implements 'G'; count is the raw count, 0 when absent
func MotionFileEnd(b *Buffer, count int) MotionResult {
	line := b.lastLine()
	if count > 0 {
		line = min(count-1, b.lastLine())
	}
	return lineTarget(line, b.firstNonBlank(line))
}

// MotionParaForward implements '}' motion
func MotionParaForward(b *Buffer, count int) MotionResult {
	line := b.Cursor.Line
	for i := 0; i < count; i++ {
		for line < b.lastLine() && b.isBlank(line) {
			line++
		}
		for line < b.lastLine() && !b.isBlank(line) {
			line++
		}
	}
	if line == b.lastLine() && !b.isBlank(line) {
		return target(Position{line, b.lineLen(line)}, StyleExclusive)
	}
	return target(Position{line, 0}, StyleExclusive)
}

// MotionParaBack implements '{' motion
func MotionParaBack(b *Buffer, count int) MotionResult {
	line := b.Cursor.Line
	for i := 0; i < count; i++ {
		for line > 0 && b.isBlank(line) {
			line--
		}
		for line > 0 && !b.isBlank(line) {
			line--
		}
	}
	return target(Position{line, 0}, StyleExclusive)
}

// MotionMatchBracket implements '%' motion
// Searches forward on the line for a bracket when the cursor is not on one
func MotionMatchBracket(b *Buffer, _ int) MotionResult {
	w := newTextWalker(b)
	p := b.Cursor
	r := w.lines[p.Line]
	for p.Col < len(r) {
		if _, ok := bracketPairs[r[p.Col]]; ok {
			break
		}
		p.Col++
	}
	if p.Col >= len(r) {
		return MotionResult{}
	}
	m, ok := w.matchBracket(p)
	if !ok {
		return MotionResult{}
	}
	return target(m, StyleInclusive)
}

// MotionFindForward implements 'f' motion
func MotionFindForward(b *Buffer, count int, ch rune) MotionResult {
	c := b.Cursor
	col, ok := findCharInLine(b.runes(c.Line), c.Col, ch, count, true)
	if !ok {
		return MotionResult{}
	}
	return target(Position{c.Line, col}, StyleInclusive)
}

// MotionFindBack implements 'F' motion
func MotionFindBack(b *Buffer, count int, ch rune) MotionResult {
	c := b.Cursor
	col, ok := findCharInLine(b.runes(c.Line), c.Col, ch, count, false)
	if !ok {
		return MotionResult{}
	}
	return target(Position{c.Line, col}, StyleExclusive)
}

// MotionTillForward implements 't' motion
func MotionTillForward(b *Buffer, count int, ch rune) MotionResult {
	c := b.Cursor
	col, ok := findCharInLine(b.runes(c.Line), c.Col, ch, count, true)
	if !ok {
		return MotionResult{}
	}
	return target(Position{c.Line, col - 1}, StyleInclusive)
}

// MotionTillBack implements 'T' motion
func MotionTillBack(b *Buffer, count int, ch rune) MotionResult {
	c := b.Cursor
	col, ok := findCharInLine(b.runes(c.Line), c.Col, ch, count, false)
	if !ok {
		return MotionResult{}
	}
	return target(Position{c.Line, col + 1}, StyleExclusive)
}

// screenLine resolves H/M/L against the viewport; offset counts from the edge
func screenLine(b *Buffer, height int, motion screenEdge, offset int) MotionResult {
	top := clamp(b.TopLine, 0, b.lastLine())
	bottom := min(top+max(1, height)-1, b.lastLine())
	var line int
	switch motion {
	case screenTop:
		line = min(top+offset-1, bottom)
	case screenMid:
		line = top + (bottom-top)/2
	case screenBottom:
		line = max(bottom-offset+1, top)
	}
	return lineTarget(line, b.firstNonBlank(line))
}

type screenEdge uint8

const (
	screenTop screenEdge = iota
	screenMid
	screenBottom
)
