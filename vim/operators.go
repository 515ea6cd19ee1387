// @lixen: #focus{control[operator,range,paste]}
package vim

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/lixenwraith/vi-dojo/input"
)

// rangeFromMotion normalizes a motion result against the cursor into an ordered range
func rangeFromMotion(b *Buffer, res MotionResult) TextRange {
	start := b.Cursor
	end := Position{res.Line, res.Col}
	if end.Before(start) {
		start, end = end, start
	}
	if res.Type == RangeLine {
		return TextRange{Start: Position{start.Line, 0}, End: Position{end.Line, 0}, Linewise: true}
	}
	if res.Style == StyleInclusive {
		end.Col = min(end.Col+1, b.lineLen(end.Line))
	}
	return TextRange{Start: start, End: end}
}

// exclusiveAdjust applies the exclusive-motion line rules to a charwise range ending in column 0
// of a later line: the range becomes linewise when it starts at or before the first non-blank,
// otherwise the end moves to the end of the previous line
func exclusiveAdjust(b *Buffer, r TextRange) TextRange {
	if r.Linewise || r.Block || r.End.Line <= r.Start.Line || r.End.Col != 0 {
		return r
	}
	prev := r.End.Line - 1
	if r.Start.Col <= b.firstNonBlank(r.Start.Line) {
		return TextRange{Start: Position{r.Start.Line, 0}, End: Position{prev, 0}, Linewise: true}
	}
	return TextRange{Start: r.Start, End: Position{prev, b.lineLen(prev)}}
}

// lineRange covers count lines starting at the cursor line
func lineRange(b *Buffer, count int) TextRange {
	line := b.Cursor.Line
	end := min(line+max(count, 1)-1, b.lastLine())
	return TextRange{Start: Position{line, 0}, End: Position{end, 0}, Linewise: true}
}

// emptyRange reports whether a charwise range selects nothing
func (r TextRange) emptyRange() bool {
	return !r.Linewise && !r.Block && r.Start == r.End
}

func (r TextRange) lineCount() int {
	return r.End.Line - r.Start.Line + 1
}

// extract returns the text of a range and its register kind
func (b *Buffer) extract(r TextRange) (string, RegisterKind) {
	if r.Linewise {
		return strings.Join(b.Lines[r.Start.Line:r.End.Line+1], "\n") + "\n", RegisterLine
	}
	if r.Block {
		parts := make([]string, 0, r.lineCount())
		for l := r.Start.Line; l <= r.End.Line; l++ {
			parts = append(parts, runeSlice(b.runes(l), r.Start.Col, r.End.Col))
		}
		return strings.Join(parts, "\n"), RegisterBlock
	}
	if r.Start.Line == r.End.Line {
		return runeSlice(b.runes(r.Start.Line), r.Start.Col, r.End.Col), RegisterChar
	}
	first := b.runes(r.Start.Line)
	parts := []string{runeSlice(first, r.Start.Col, len(first))}
	for l := r.Start.Line + 1; l < r.End.Line; l++ {
		parts = append(parts, b.Lines[l])
	}
	parts = append(parts, runeSlice(b.runes(r.End.Line), 0, r.End.Col))
	return strings.Join(parts, "\n"), RegisterChar
}

// deleteRange removes a range; the cursor lands on the first non-blank (linewise)
// or the range start, left unclamped so change can keep an end-of-line column
func (b *Buffer) deleteRange(r TextRange) {
	switch {
	case r.Linewise:
		b.removeLines(r.Start.Line, r.End.Line)
		line := min(r.Start.Line, b.lastLine())
		b.Cursor = Position{line, b.firstNonBlank(line)}

	case r.Block:
		for l := r.Start.Line; l <= r.End.Line; l++ {
			rr := b.runes(l)
			b.setLine(l, runeSlice(rr, 0, r.Start.Col)+runeSlice(rr, r.End.Col, len(rr)))
		}
		b.Cursor = r.Start

	default:
		first := b.runes(r.Start.Line)
		last := b.runes(r.End.Line)
		merged := runeSlice(first, 0, r.Start.Col) + runeSlice(last, r.End.Col, len(last))
		if r.End.Line > r.Start.Line {
			b.removeLines(r.Start.Line+1, r.End.Line)
		}
		b.setLine(r.Start.Line, merged)
		b.Cursor = r.Start
	}
}

// === Operator application ===

// applyOperator runs op over a normalized range
func (c *call) applyOperator(op input.OperatorOp, r TextRange, intent *input.Intent) {
	b := c.buf()
	if r.emptyRange() && op != input.OperatorChange {
		return
	}
	if b.Readonly && op != input.OperatorYank {
		c.fail("E45: 'readonly' option is set")
		return
	}

	switch op {
	case input.OperatorDelete:
		c.deleteOp(r, intent.Register)
	case input.OperatorYank:
		c.yankOp(r, intent.Register)
	case input.OperatorChange:
		c.changeOp(r, intent)
	case input.OperatorIndent, input.OperatorDedent:
		times := 1
		if intent.Type == input.IntentOperatorVisual {
			times = intent.Count
		}
		c.shiftLines(r.Start.Line, r.End.Line, op == input.OperatorIndent, times)
	case input.OperatorToggleCase, input.OperatorLower, input.OperatorUpper, input.OperatorRot13:
		c.caseOp(r, op)
	case input.OperatorFormat, input.OperatorFormatKeep:
		c.formatLines(r.Start.Line, r.End.Line, op == input.OperatorFormatKeep)
	case input.OperatorFold:
		c.createFold(r.Start.Line, r.End.Line)
	}
}

func (c *call) deleteOp(r TextRange, reg rune) {
	b := c.buf()
	text, kind := b.extract(r)
	b.checkpoint(c.now)
	c.store(registerWrite{name: reg, text: text, kind: kind, delete: true})
	b.deleteRange(r)
	b.clampCursor()
	c.recordChange(r.Start.Line, b.Cursor.Col)
	if r.Linewise && r.lineCount() > 1 {
		c.info("%d lines deleted", r.lineCount())
	}
	c.action("delete")
}

func (c *call) yankOp(r TextRange, reg rune) {
	b := c.buf()
	text, kind := b.extract(r)
	c.store(registerWrite{name: reg, text: text, kind: kind})
	b.Marks['['] = Mark{Line: r.Start.Line, Col: r.Start.Col}
	b.Marks[']'] = Mark{Line: r.End.Line, Col: max(0, r.End.Col-1)}

	switch {
	case r.Linewise:
		b.Cursor.Line = r.Start.Line
	default:
		b.Cursor = r.Start
	}
	b.clampCursor()

	n := r.lineCount()
	switch {
	case r.Linewise && n == 1:
		c.info("1 line yanked")
	case n > 1:
		c.info("%d lines yanked", n)
	}
	c.action("yank")
}

// changeOp deletes the range and opens an insert session at its start
func (c *call) changeOp(r TextRange, intent *input.Intent) {
	b := c.buf()
	was := b.Modified
	b.checkpoint(c.now)
	if !r.emptyRange() {
		text, kind := b.extract(r)
		c.store(registerWrite{name: intent.Register, text: text, kind: kind, delete: true})
	}

	if r.Linewise {
		indent := ""
		if c.s.Settings.AutoIndent {
			indent = b.indentOf(r.Start.Line)
		}
		whole := r.lineCount() == len(b.Lines)
		b.removeLines(r.Start.Line, r.End.Line)
		at := r.Start.Line
		if whole {
			at = 0
			b.Lines[0] = indent
		} else {
			b.insertLines(at, indent)
		}
		b.Cursor = Position{at, len([]rune(indent))}
	} else {
		b.deleteRange(r)
	}

	c.recordChange(b.Cursor.Line, b.Cursor.Col)
	c.beginInsert(input.ModeTargetInsert, 1)
	c.s.Insert.WasModified = was
	c.s.Insert.Repeat = Repeat{Kind: RepeatChange, Intent: *intent}
	c.action("change")
}

// shiftLines indents or dedents lines by shiftwidth; blank lines are left alone
func (c *call) shiftLines(from, to int, indent bool, times int) {
	b := c.buf()
	sw := max(c.s.Settings.ShiftWidth, 1)
	unit := strings.Repeat(" ", sw)
	if !c.s.Settings.ExpandTab {
		unit = "\t"
	}

	b.checkpoint(c.now)
	for l := from; l <= to; l++ {
		line := b.Lines[l]
		if strings.TrimSpace(line) == "" {
			continue
		}
		for i := 0; i < times; i++ {
			if indent {
				line = unit + line
				continue
			}
			switch {
			case strings.HasPrefix(line, "\t"):
				line = line[1:]
			default:
				n := 0
				for n < sw && n < len(line) && line[n] == ' ' {
					n++
				}
				line = line[n:]
			}
		}
		b.Lines[l] = line
	}
	b.Cursor = Position{from, b.firstNonBlank(from)}
	c.recordChange(from, b.Cursor.Col)

	if n := to - from + 1; n > 2 {
		dir := ">"
		if !indent {
			dir = "<"
		}
		c.info("%d lines %sed %d time", n, dir, times)
	}
	if indent {
		c.action("indent")
	} else {
		c.action("dedent")
	}
}

// caseOp maps runes in the range through the operator's case function
func (c *call) caseOp(r TextRange, op input.OperatorOp) {
	b := c.buf()
	var f func(rune) rune
	switch op {
	case input.OperatorToggleCase:
		f = toggleCase
	case input.OperatorLower:
		f = unicode.ToLower
	case input.OperatorUpper:
		f = unicode.ToUpper
	case input.OperatorRot13:
		f = rot13
	}

	b.checkpoint(c.now)
	for l := r.Start.Line; l <= r.End.Line; l++ {
		rr := b.runes(l)
		from, to := 0, len(rr)
		switch {
		case r.Linewise:
		case r.Block:
			from, to = r.Start.Col, r.End.Col
		default:
			if l == r.Start.Line {
				from = r.Start.Col
			}
			if l == r.End.Line {
				to = r.End.Col
			}
		}
		for i := clamp(from, 0, len(rr)); i < min(to, len(rr)); i++ {
			rr[i] = f(rr[i])
		}
		b.setLine(l, string(rr))
	}
	if r.Linewise {
		b.Cursor.Line = r.Start.Line
	} else {
		b.Cursor = r.Start
	}
	b.clampCursor()
	c.recordChange(b.Cursor.Line, b.Cursor.Col)
	c.action("case")
}

func toggleCase(r rune) rune {
	if unicode.IsUpper(r) {
		return unicode.ToLower(r)
	}
	return unicode.ToUpper(r)
}

func rot13(r rune) rune {
	switch {
	case r >= 'a' && r <= 'z':
		return 'a' + (r-'a'+13)%26
	case r >= 'A' && r <= 'Z':
		return 'A' + (r-'A'+13)%26
	}
	return r
}

// formatLines rewraps each paragraph in [from, to] at textwidth
func (c *call) formatLines(from, to int, keepCursor bool) {
	b := c.buf()
	width := c.s.Settings.TextWidth
	if width <= 0 {
		width = 79
	}
	saved := b.Cursor
	b.checkpoint(c.now)

	var out []string
	l := from
	for l <= to {
		if b.isBlank(l) {
			out = append(out, "")
			l++
			continue
		}
		indent := b.indentOf(l)
		var words []string
		for l <= to && !b.isBlank(l) {
			words = append(words, strings.Fields(b.Lines[l])...)
			l++
		}
		out = append(out, wrapWords(words, indent, width)...)
	}

	b.Lines = slices.Concat(b.Lines[:from], out, b.Lines[to+1:])
	last := from + len(out) - 1
	if keepCursor {
		b.Cursor = saved
	} else {
		b.Cursor = Position{last, b.firstNonBlank(last)}
	}
	b.clampCursor()
	c.recordChange(from, 0)
	c.action("format")
}

// wrapWords fills lines greedily up to width display columns
func wrapWords(words []string, indent string, width int) []string {
	var lines []string
	cur := indent
	for _, w := range words {
		if cur != indent && len([]rune(cur))+1+len([]rune(w)) > width {
			lines = append(lines, cur)
			cur = indent
		}
		if cur == indent {
			cur += w
		} else {
			cur += " " + w
		}
	}
	return append(lines, cur)
}

// === Special commands ===

// deleteChars implements x (forward) and X (backward)
func (c *call) deleteChars(count int, backward bool, reg rune) {
	b := c.buf()
	line := b.Cursor.Line
	n := b.lineLen(line)
	col := b.Cursor.Col
	var r TextRange
	if backward {
		if col == 0 {
			return
		}
		r = charRange(line, max(0, col-count), col)
	} else {
		if n == 0 {
			return
		}
		r = charRange(line, col, min(col+count, n))
	}
	c.deleteOp(r, reg)
}

// replaceChars implements r{char}; fails when the line is too short
func (c *call) replaceChars(ch rune, count int) bool {
	b := c.buf()
	rr := b.runes(b.Cursor.Line)
	col := b.Cursor.Col
	if len(rr) == 0 || col+count > len(rr) {
		return false
	}
	b.checkpoint(c.now)
	for i := col; i < col+count; i++ {
		rr[i] = ch
	}
	b.setLine(b.Cursor.Line, string(rr))
	b.Cursor.Col = col + count - 1
	c.recordChange(b.Cursor.Line, b.Cursor.Col)
	c.action("replace_char")
	return true
}

// toggleCaseChars implements ~ and advances the cursor
func (c *call) toggleCaseChars(count int) {
	b := c.buf()
	rr := b.runes(b.Cursor.Line)
	if len(rr) == 0 {
		return
	}
	col := b.Cursor.Col
	end := min(col+count, len(rr))
	b.checkpoint(c.now)
	for i := col; i < end; i++ {
		rr[i] = toggleCase(rr[i])
	}
	b.setLine(b.Cursor.Line, string(rr))
	b.Cursor.Col = end
	b.clampCursor()
	c.recordChange(b.Cursor.Line, col)
	c.action("toggle_case")
}

// join merges count lines (minimum two) starting at the cursor line
func (c *call) join(count int, spaces bool) bool {
	b := c.buf()
	line := b.Cursor.Line
	n := max(count, 2) - 1
	if line+n > b.lastLine() {
		if line == b.lastLine() {
			return false
		}
		n = b.lastLine() - line
	}

	b.checkpoint(c.now)
	cur := b.Lines[line]
	col := 0
	for i := 1; i <= n; i++ {
		next := b.Lines[line+i]
		if spaces {
			next = strings.TrimLeft(next, " \t")
			col = len([]rune(cur))
			switch {
			case next == "", strings.HasSuffix(cur, " "), strings.HasPrefix(next, ")"):
			case cur == "":
			default:
				cur += " "
			}
		} else {
			col = len([]rune(cur))
		}
		cur += next
	}
	b.Lines[line] = cur
	b.removeLines(line+1, line+n)
	b.Cursor = Position{line, col}
	b.clampCursor()
	c.recordChange(line, b.Cursor.Col)
	c.action("join")
	return true
}

// paste inserts a register after or before the cursor count times
// moveCursor leaves the cursor just after the pasted text (gp, gP)
func (c *call) paste(name rune, after, moveCursor bool, count int) {
	c.pasteRegister(c.s.Register(name), after, moveCursor, count)
}

// pasteRegister is paste with an already resolved payload
func (c *call) pasteRegister(reg Register, after, moveCursor bool, count int) {
	if reg.Empty() {
		return
	}
	b := c.buf()
	if b.Readonly {
		c.fail("E45: 'readonly' option is set")
		return
	}
	count = max(count, 1)
	b.checkpoint(c.now)
	cur := b.Cursor

	switch reg.Kind {
	case RegisterLine:
		one := strings.Split(strings.TrimSuffix(reg.Content, "\n"), "\n")
		var lines []string
		for i := 0; i < count; i++ {
			lines = append(lines, one...)
		}
		at := cur.Line
		if after {
			at++
		}
		b.insertLines(at, lines...)
		if moveCursor {
			b.Cursor = Position{min(at+len(lines), b.lastLine()), 0}
		} else {
			b.Cursor = Position{at, b.firstNonBlank(at)}
		}
		c.markChanged(Position{at, 0}, Position{at + len(lines) - 1, 0})

	case RegisterBlock:
		parts := strings.Split(reg.Content, "\n")
		col := cur.Col
		if after && b.lineLen(cur.Line) > 0 {
			col++
		}
		width := 0
		for _, p := range parts {
			width = max(width, len([]rune(p)))
		}
		for i, p := range parts {
			l := cur.Line + i
			if l > b.lastLine() {
				b.Lines = append(b.Lines, "")
			}
			rr := b.runes(l)
			for len(rr) < col {
				rr = append(rr, ' ')
			}
			piece := p
			if col < len(rr) {
				piece += strings.Repeat(" ", width-len([]rune(p)))
			}
			b.setLine(l, string(rr[:col])+strings.Repeat(piece, count)+string(rr[col:]))
		}
		b.Cursor = Position{cur.Line, col}
		c.markChanged(b.Cursor, Position{cur.Line + len(parts) - 1, col + width*count})

	default:
		text := strings.Repeat(reg.Content, count)
		rr := b.runes(cur.Line)
		col := cur.Col
		if after && len(rr) > 0 {
			col = min(col+1, len(rr))
		}
		head, tail := string(rr[:col]), string(rr[col:])
		parts := strings.Split(text, "\n")
		if len(parts) == 1 {
			b.setLine(cur.Line, head+text+tail)
			end := col + len([]rune(text))
			if moveCursor {
				b.Cursor = Position{cur.Line, end}
			} else {
				b.Cursor = Position{cur.Line, end - 1}
			}
			c.markChanged(Position{cur.Line, col}, Position{cur.Line, end - 1})
			break
		}
		lastPart := parts[len(parts)-1]
		parts[0] = head + parts[0]
		parts[len(parts)-1] = lastPart + tail
		b.Lines = slices.Concat(b.Lines[:cur.Line], parts, b.Lines[cur.Line+1:])
		b.shiftMarks(cur.Line+1, len(parts)-1)
		endLine := cur.Line + len(parts) - 1
		if moveCursor {
			b.Cursor = Position{endLine, len([]rune(lastPart))}
		} else {
			b.Cursor = Position{cur.Line, col}
		}
		c.markChanged(Position{cur.Line, col}, Position{endLine, max(0, len([]rune(lastPart))-1)})
	}

	b.clampCursor()
	c.recordChange(b.Cursor.Line, b.Cursor.Col)
	if n := strings.Count(reg.Content, "\n"); reg.Kind == RegisterLine && n*count > 2 {
		c.info("%d more lines", n*count)
	}
	c.action("paste")
}

// markChanged sets the [ and ] marks around changed text
func (c *call) markChanged(from, to Position) {
	b := c.buf()
	b.Marks['['] = Mark{Line: from.Line, Col: from.Col}
	b.Marks[']'] = Mark{Line: to.Line, Col: to.Col}
}

// describeRange is used by ex commands that report a line count
func describeRange(n int, verb string) string {
	if n == 1 {
		return fmt.Sprintf("1 line %s", verb)
	}
	return fmt.Sprintf("%d lines %s", n, verb)
}
