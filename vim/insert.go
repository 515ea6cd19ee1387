// @lixen: #focus{control[insert,replace,typing]}
package vim

import (
	"slices"
	"strings"

	"github.com/lixenwraith/vi-dojo/input"
)

// openLineIndent is the indent for a line opened after (or before) line
func (c *call) openLineIndent(line int, below bool) string {
	b := c.buf()
	if !c.s.Settings.AutoIndent {
		return ""
	}
	indent := b.indentOf(line)
	if below && c.s.Settings.SmartIndent && opensBlock(b.Lines[line]) {
		indent += c.indentUnit()
	}
	return indent
}

// opensBlock reports whether a line ends with a block opener
func opensBlock(line string) bool {
	t := strings.TrimRight(line, " \t")
	return t != "" && strings.ContainsRune("{([:", rune(t[len(t)-1]))
}

func (c *call) indentUnit() string {
	if !c.s.Settings.ExpandTab {
		return "\t"
	}
	return strings.Repeat(" ", max(c.s.Settings.ShiftWidth, 1))
}

// beginInsert positions the cursor for target and opens an insert session
// The caller has already taken the undo checkpoint
func (c *call) beginInsert(target input.ModeTarget, count int) {
	b := c.buf()
	mode := ModeInsert
	if target == input.ModeTargetReplace {
		mode = ModeReplace
	}
	b.Mode = mode
	line := b.Cursor.Line

	switch target {
	case input.ModeTargetAppend:
		if b.lineLen(line) > 0 {
			b.Cursor.Col++
		}
	case input.ModeTargetInsertLineStart:
		b.Cursor.Col = b.firstNonBlank(line)
	case input.ModeTargetAppendLineEnd:
		b.Cursor.Col = b.lineLen(line)
	case input.ModeTargetOpenBelow:
		indent := c.openLineIndent(line, true)
		b.insertLines(line+1, indent)
		b.Cursor = Position{line + 1, len([]rune(indent))}
	case input.ModeTargetOpenAbove:
		indent := c.openLineIndent(line, false)
		b.insertLines(line, indent)
		b.Cursor = Position{line, len([]rune(indent))}
	case input.ModeTargetInsertLastPos:
		if b.LastInsert != nil {
			b.Cursor = *b.LastInsert
		}
	case input.ModeTargetInsertColumnZero:
		b.Cursor.Col = 0
	}
	b.clampCursor()

	c.s.Insert = &InsertSession{
		Target: target,
		Start:  b.Cursor,
		Count:  max(count, 1),
		Repeat: Repeat{Kind: RepeatInsert, Insert: target},
	}
	if mode == ModeReplace {
		c.action("replace_mode")
	} else {
		c.action("insert_mode")
	}
}

// startInsert is the normal-mode entry into insert: checkpoint, then open the session
func (c *call) startInsert(intent *input.Intent) {
	b := c.buf()
	if b.Readonly {
		c.fail("E45: 'readonly' option is set")
		return
	}
	was := b.Modified
	b.checkpoint(c.now)
	c.beginInsert(intent.ModeTarget, intent.Count)
	c.s.Insert.WasModified = was
	c.s.Insert.Repeat.Intent = *intent
}

// insertKey handles one key in insert or replace mode
func (c *call) insertKey(key input.Key) {
	ins := c.s.Insert
	if ins == nil {
		c.buf().Mode = ModeNormal
		return
	}

	if ins.AwaitRegister {
		ins.AwaitRegister = false
		if key.Printable() {
			c.typeText(c.s.Register(key.Rune).Content)
		}
		return
	}

	switch {
	case key.IsNamed(input.KeyEscape), key.IsCtrl('c'):
		c.exitInsert()
	case key.IsNamed(input.KeyEnter), key.IsCtrl('j'), key.IsCtrl('m'):
		c.newline()
	case key.IsNamed(input.KeyBackspace), key.IsCtrl('h'):
		c.backspace()
	case key.IsNamed(input.KeyDelete):
		c.deleteUnder()
	case key.IsNamed(input.KeyTab), key.IsCtrl('i'):
		c.insertTab()
	case key.IsCtrl('w'):
		c.deleteWordBack()
	case key.IsCtrl('u'):
		c.deleteLineBack()
	case key.IsCtrl('t'):
		c.shiftInsertLine(true)
	case key.IsCtrl('d'):
		c.shiftInsertLine(false)
	case key.IsCtrl('r'):
		ins.AwaitRegister = true
	case key.IsCtrl('n'):
		c.info("Completion next (simulated)")
	case key.IsCtrl('p'):
		c.info("Completion previous (simulated)")
	case key.IsNamed(input.KeyLeft), key.IsNamed(input.KeyRight), key.IsNamed(input.KeyUp),
		key.IsNamed(input.KeyDown), key.IsNamed(input.KeyHome), key.IsNamed(input.KeyEnd):
		c.insertCursor(key.Name)
	case key.Printable():
		c.insertRune(key.Rune)
	}
}

// typeText feeds text through the insert path; '\n' opens a line
func (c *call) typeText(text string) {
	for _, r := range text {
		if r == '\n' {
			c.newline()
			continue
		}
		c.insertRune(r)
	}
}

func (c *call) insertRune(r rune) {
	b := c.buf()
	ins := c.s.Insert
	line, col := b.Cursor.Line, b.Cursor.Col
	rr := b.runes(line)
	col = min(col, len(rr))

	if b.Mode == ModeReplace {
		if col < len(rr) {
			ins.Replaced = append(ins.Replaced, rr[col])
			rr[col] = r
		} else {
			ins.Replaced = append(ins.Replaced, 0)
			rr = append(rr, r)
		}
	} else {
		rr = slices.Insert(rr, col, r)
	}
	b.setLine(line, string(rr))
	b.Cursor.Col = col + 1
	ins.Text += string(r)
}

// newline splits the line at the cursor; the new line takes the computed indent
func (c *call) newline() {
	b := c.buf()
	ins := c.s.Insert
	line := b.Cursor.Line
	rr := b.runes(line)
	col := min(b.Cursor.Col, len(rr))
	head, tail := string(rr[:col]), string(rr[col:])

	indent := ""
	if c.s.Settings.AutoIndent {
		indent = b.indentOf(line)
		if len(indent) > len(head) {
			indent = head
		}
		if c.s.Settings.SmartIndent && opensBlock(head) {
			indent += c.indentUnit()
		}
		tail = strings.TrimLeft(tail, " \t")
	}

	b.setLine(line, head)
	b.insertLines(line+1, indent+tail)
	b.Cursor = Position{line + 1, len([]rune(indent))}
	if ins != nil {
		ins.Text += "\n"
		ins.Replaced = nil
	}
}

// trimText drops up to n trailing runes from the session text
func (ins *InsertSession) trimText(n int) {
	rr := []rune(ins.Text)
	ins.Text = string(rr[:max(0, len(rr)-n)])
}

func (c *call) backspace() {
	b := c.buf()
	ins := c.s.Insert
	line, col := b.Cursor.Line, b.Cursor.Col

	if b.Mode == ModeReplace {
		if col == 0 {
			return
		}
		b.Cursor.Col--
		if n := len(ins.Replaced); n > 0 {
			orig := ins.Replaced[n-1]
			ins.Replaced = ins.Replaced[:n-1]
			rr := b.runes(line)
			if orig == 0 {
				rr = slices.Delete(rr, col-1, col)
			} else {
				rr[col-1] = orig
			}
			b.setLine(line, string(rr))
			ins.trimText(1)
		}
		return
	}

	if col == 0 {
		if line == 0 {
			return
		}
		prev := b.Lines[line-1]
		b.setLine(line-1, prev+b.Lines[line])
		b.removeLines(line, line)
		b.Cursor = Position{line - 1, len([]rune(prev))}
		if strings.HasSuffix(ins.Text, "\n") {
			ins.trimText(1)
		}
		return
	}
	rr := b.runes(line)
	b.setLine(line, string(slices.Delete(rr, col-1, col)))
	b.Cursor.Col--
	ins.trimText(1)
}

func (c *call) deleteUnder() {
	b := c.buf()
	line, col := b.Cursor.Line, b.Cursor.Col
	rr := b.runes(line)
	if col < len(rr) {
		b.setLine(line, string(slices.Delete(rr, col, col+1)))
		return
	}
	if line < b.lastLine() {
		b.setLine(line, b.Lines[line]+b.Lines[line+1])
		b.removeLines(line+1, line+1)
	}
}

func (c *call) insertTab() {
	if !c.s.Settings.ExpandTab {
		c.insertRune('\t')
		return
	}
	ts := max(c.s.Settings.TabStop, 1)
	n := ts - c.buf().Cursor.Col%ts
	for i := 0; i < n; i++ {
		c.insertRune(' ')
	}
}

// deleteWordBack implements Ctrl-w
func (c *call) deleteWordBack() {
	b := c.buf()
	line, col := b.Cursor.Line, b.Cursor.Col
	if col == 0 {
		c.backspace()
		return
	}
	rr := b.runes(line)
	col = min(col, len(rr))
	start := col
	for start > 0 && isSpace(rr[start-1]) {
		start--
	}
	if start > 0 {
		t := charType(rr[start-1], false)
		for start > 0 && charType(rr[start-1], false) == t {
			start--
		}
	}
	b.setLine(line, string(rr[:start])+string(rr[col:]))
	b.Cursor.Col = start
	c.s.Insert.trimText(col - start)
}

// deleteLineBack implements Ctrl-u: back to the indent, or to column 0 from inside it
func (c *call) deleteLineBack() {
	b := c.buf()
	line, col := b.Cursor.Line, b.Cursor.Col
	rr := b.runes(line)
	col = min(col, len(rr))
	start := b.firstNonBlank(line)
	if col <= start {
		start = 0
	}
	b.setLine(line, string(rr[:start])+string(rr[col:]))
	b.Cursor.Col = start
	c.s.Insert.trimText(col - start)
}

// shiftInsertLine implements Ctrl-t and Ctrl-d, keeping the cursor on the same text
func (c *call) shiftInsertLine(indent bool) {
	b := c.buf()
	line := b.Cursor.Line
	before := b.lineLen(line)
	text := b.Lines[line]
	unit := c.indentUnit()
	if indent {
		text = unit + text
	} else {
		switch {
		case strings.HasPrefix(text, unit):
			text = text[len(unit):]
		case strings.HasPrefix(text, "\t"):
			text = text[1:]
		default:
			text = strings.TrimLeft(text, " ")
		}
	}
	b.setLine(line, text)
	b.Cursor.Col = max(0, b.Cursor.Col+b.lineLen(line)-before)
}

func (c *call) insertCursor(name input.KeyName) {
	b := c.buf()
	switch name {
	case input.KeyLeft:
		b.Cursor.Col--
	case input.KeyRight:
		b.Cursor.Col++
	case input.KeyUp:
		b.Cursor.Line--
	case input.KeyDown:
		b.Cursor.Line++
	case input.KeyHome:
		b.Cursor.Col = 0
	case input.KeyEnd:
		b.Cursor.Col = b.lineLen(b.Cursor.Line)
	}
	b.clampCursor()
	c.s.Insert.Replaced = nil
}

// exitInsert leaves insert or replace mode: count and block replication, '.' register, ^ mark, dot-repeat
func (c *call) exitInsert() {
	b := c.buf()
	ins := c.s.Insert
	c.s.Insert = nil
	if ins == nil {
		b.Mode = ModeNormal
		b.clampCursor()
		return
	}

	if ins.Text != "" {
		for i := 1; i < ins.Count; i++ {
			c.s.Insert = ins
			switch ins.Target {
			case input.ModeTargetOpenBelow, input.ModeTargetOpenAbove:
				line := b.Cursor.Line
				indent := c.openLineIndent(line, true)
				b.insertLines(line+1, indent)
				b.Cursor = Position{line + 1, len([]rune(indent))}
			}
			text := ins.Text
			c.typeText(text)
			ins.Text = text
			c.s.Insert = nil
		}
	}
	if blk := ins.Block; blk != nil && ins.Text != "" && !strings.Contains(ins.Text, "\n") {
		c.replicateBlock(blk, ins.Text)
	}

	pos := b.Cursor
	b.LastInsert = &pos
	b.Marks['^'] = Mark{Line: pos.Line, Col: pos.Col}
	c.s.Registers.LastInsert = ins.Text
	b.Mode = ModeNormal
	if b.Cursor.Col > 0 {
		b.Cursor.Col--
	}
	b.clampCursor()

	if n := len(b.Undo); n > 0 && ins.Text == "" && slices.Equal(b.Undo[n-1].Lines, b.Lines) {
		b.Undo = b.Undo[:n-1]
		b.Modified = ins.WasModified
	} else {
		c.recordChange(b.Cursor.Line, b.Cursor.Col)
	}

	if ins.Repeat.Kind != RepeatNone {
		r := ins.Repeat
		r.Text = ins.Text
		c.recordRepeat(r)
	}
	c.action("insert_exit")
}

// replicateBlock copies text typed on the first block line to the others
func (c *call) replicateBlock(blk *BlockInsert, text string) {
	b := c.buf()
	for l := blk.FirstLine + 1; l <= blk.LastLine && l <= b.lastLine(); l++ {
		rr := b.runes(l)
		if len(rr) < blk.Col {
			if !blk.Append {
				continue
			}
			rr = append(rr, []rune(strings.Repeat(" ", blk.Col-len(rr)))...)
		}
		b.setLine(l, string(rr[:blk.Col])+text+string(rr[blk.Col:]))
	}
	b.Cursor = Position{blk.FirstLine, blk.Col + len([]rune(text))}
}
