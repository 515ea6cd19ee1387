// @lixen: #focus{state[mark,jumplist,changelist]}
package vim

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// listCap bounds the jumplist and changelist; the oldest entry is evicted
const listCap = 100

// markPreviewWidth is the line text shown by :marks
const markPreviewWidth = 50

// specialMarks are the marks maintained by the editor itself, in :marks order
const specialMarks = `'".^[]<>`

func isUserMark(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// setMark implements m{a-zA-Z} plus the settable special marks
func (c *call) setMark(name rune) {
	b := c.buf()
	pos := b.Cursor
	switch {
	case name >= 'a' && name <= 'z':
		b.Marks[name] = Mark{Line: pos.Line, Col: pos.Col}
	case name >= 'A' && name <= 'Z':
		c.s.GlobalMarks[name] = Mark{Line: pos.Line, Col: pos.Col, BufferID: b.ID}
	case name == '\'' || name == '`':
		c.pushJump()
	case name == '[' || name == ']' || name == '<' || name == '>':
		b.Marks[name] = Mark{Line: pos.Line, Col: pos.Col}
	default:
		c.fail("E191: Argument must be a letter or forward/backward quote")
		return
	}
	c.info("Mark '%c' set", name)
	c.action("mark_set")
}

// lookupMark resolves a mark to a position and owning buffer id
func (c *call) lookupMark(name rune) (Position, int, bool) {
	b := c.buf()
	if name >= 'A' && name <= 'Z' {
		m, ok := c.s.GlobalMarks[name]
		return Position{m.Line, m.Col}, m.BufferID, ok
	}
	if name == '`' {
		name = '\''
	}
	m, ok := b.Marks[name]
	return Position{m.Line, m.Col}, b.ID, ok
}

// markMotion resolves ' and ` for motions and operators
// A mark in another buffer switches buffers when no operator is pending
func (c *call) markMotion(name rune, exact, operator bool) MotionResult {
	pos, bufID, ok := c.lookupMark(name)
	if !ok {
		c.fail("Mark '%c' not set", name)
		return MotionResult{}
	}
	b := c.buf()
	if bufID != b.ID {
		if operator {
			c.fail("E20: Mark not set")
			return MotionResult{}
		}
		if c.s.buffer(bufID) == nil {
			c.fail("Buffer for mark '%c' not found", name)
			return MotionResult{}
		}
		c.pushJump()
		c.switchBuffer(bufID)
		b = c.buf()
	}

	line := clamp(pos.Line, 0, b.lastLine())
	if !exact {
		return lineTarget(line, b.firstNonBlank(line))
	}
	return target(Position{line, clamp(pos.Col, 0, b.maxCol(line))}, StyleExclusive)
}

// deleteMarks implements :delmarks; bang clears every lowercase mark
func (c *call) deleteMarks(arg string, bang bool) {
	b := c.buf()
	if bang {
		for k := range b.Marks {
			if k >= 'a' && k <= 'z' {
				delete(b.Marks, k)
			}
		}
		c.info("All marks deleted")
		return
	}
	arg = strings.ReplaceAll(arg, " ", "")
	if arg == "" {
		c.fail("E471: Argument required")
		return
	}

	var names []rune
	rs := []rune(arg)
	for i := 0; i < len(rs); i++ {
		if i+2 < len(rs) && rs[i+1] == '-' {
			for r := rs[i]; r <= rs[i+2]; r++ {
				names = append(names, r)
			}
			i += 2
			continue
		}
		names = append(names, rs[i])
	}
	for _, n := range names {
		if n >= 'A' && n <= 'Z' {
			delete(c.s.GlobalMarks, n)
		} else {
			delete(b.Marks, n)
		}
	}
	if len(names) == 1 {
		c.info("Mark '%c' deleted", names[0])
		return
	}
	c.info("Marks deleted: %s", arg)
}

// marksListing renders :marks
func (c *call) marksListing() string {
	b := c.buf()
	type row struct {
		name   rune
		pos    Position
		text   string
		global bool
	}
	var rows []row
	preview := func(buf *Buffer, line int) string {
		t := buf.line(line)
		if utf8.RuneCountInString(t) > markPreviewWidth {
			t = string([]rune(t)[:markPreviewWidth])
		}
		return t
	}

	for name, m := range b.Marks {
		if name >= 'a' && name <= 'z' {
			rows = append(rows, row{name, Position{m.Line, m.Col}, preview(b, m.Line), false})
		}
	}
	for name, m := range c.s.GlobalMarks {
		text := "unknown"
		if tb := c.s.buffer(m.BufferID); tb != nil {
			text = preview(tb, m.Line)
			if tb.ID != b.ID {
				text = tb.Filename
			}
		}
		rows = append(rows, row{name, Position{m.Line, m.Col}, text, true})
	}
	for _, name := range specialMarks {
		if pos, _, ok := c.lookupMark(name); ok {
			rows = append(rows, row{name, pos, preview(b, pos.Line), false})
		}
	}
	if len(rows) == 0 {
		return "No marks set"
	}

	slices.SortFunc(rows, func(x, y row) int {
		if x.global != y.global {
			if x.global {
				return 1
			}
			return -1
		}
		return int(x.name) - int(y.name)
	})

	var sb strings.Builder
	sb.WriteString("mark line  col file/text")
	for _, r := range rows {
		fmt.Fprintf(&sb, "\n %c  %5d%4d %s", r.name, r.pos.Line+1, r.pos.Col, r.text)
	}
	return sb.String()
}

// === Jumplist ===

// pushJump records the cursor before a jump and resets traversal to the end
func (c *call) pushJump() {
	b := c.buf()
	entry := JumpEntry{BufferID: b.ID, Pos: b.Cursor}
	b.Marks['\''] = Mark{Line: b.Cursor.Line, Col: b.Cursor.Col}

	list := c.s.Jumplist[:0]
	for _, j := range c.s.Jumplist {
		if j.BufferID != entry.BufferID || j.Pos.Line != entry.Pos.Line {
			list = append(list, j)
		}
	}
	list = append(list, entry)
	if len(list) > listCap {
		list = list[len(list)-listCap:]
	}
	c.s.Jumplist = list
	c.s.JumpPos = len(list)
}

func (c *call) jumpOlder(count int) {
	s := c.s
	if s.JumpPos-count < 0 || len(s.Jumplist) == 0 {
		c.fail("Already at oldest position")
		return
	}
	if s.JumpPos == len(s.Jumplist) {
		// Remember where we left so Ctrl-i can come back
		b := c.buf()
		s.Jumplist = append(s.Jumplist, JumpEntry{BufferID: b.ID, Pos: b.Cursor})
		if len(s.Jumplist) > listCap {
			s.Jumplist = s.Jumplist[1:]
		}
		s.JumpPos = len(s.Jumplist) - 1
	}
	s.JumpPos = max(0, s.JumpPos-count)
	c.gotoEntry(s.Jumplist[s.JumpPos])
	c.action("jump_older")
}

func (c *call) jumpNewer(count int) {
	s := c.s
	if s.JumpPos+count >= len(s.Jumplist) {
		c.fail("Already at newest position")
		return
	}
	s.JumpPos += count
	c.gotoEntry(s.Jumplist[s.JumpPos])
	c.action("jump_newer")
}

// gotoEntry moves to a jumplist entry, switching buffers when needed
func (c *call) gotoEntry(e JumpEntry) {
	if e.BufferID != c.s.Active {
		if c.s.buffer(e.BufferID) == nil {
			c.fail("E92: Buffer %d not found", e.BufferID)
			return
		}
		c.switchBuffer(e.BufferID)
	}
	c.buf().setCursor(e.Pos.Line, e.Pos.Col)
}

// === Changelist ===

// recordChange appends a changelist entry and sets the '.' mark
func (c *call) recordChange(line, col int) {
	b := c.buf()
	pos := Position{line, col}
	b.Marks['.'] = Mark{Line: line, Col: col}

	n := len(c.s.Changelist)
	if n > 0 && c.s.Changelist[n-1].BufferID == b.ID && c.s.Changelist[n-1].Pos.Line == line {
		c.s.Changelist[n-1].Pos = pos
	} else {
		c.s.Changelist = append(c.s.Changelist, JumpEntry{BufferID: b.ID, Pos: pos})
		if len(c.s.Changelist) > listCap {
			c.s.Changelist = c.s.Changelist[1:]
		}
	}
	b.ChangelistPos = len(c.changes())
}

// changes returns the changelist entries of the active buffer
func (c *call) changes() []JumpEntry {
	id := c.s.Active
	var out []JumpEntry
	for _, e := range c.s.Changelist {
		if e.BufferID == id {
			out = append(out, e)
		}
	}
	return out
}

// changeNav implements g; (delta < 0) and g, (delta > 0)
func (c *call) changeNav(delta int) {
	b := c.buf()
	list := c.changes()
	if len(list) == 0 {
		c.info("No changes to navigate")
		return
	}
	pos := clamp(b.ChangelistPos+delta, 0, len(list)-1)
	if pos == b.ChangelistPos {
		if delta < 0 {
			c.fail("E662: At start of changelist")
		} else {
			c.fail("E663: At end of changelist")
		}
		return
	}
	b.ChangelistPos = pos
	e := list[pos]
	b.setCursor(e.Pos.Line, e.Pos.Col)
	c.action("changelist")
}
