// @lixen: #focus{control[visual,selection]}
package vim

import (
	"math"
	"strings"

	"github.com/lixenwraith/vi-dojo/input"
)

var visualModes = [...]Mode{
	SelectChar:  ModeVisual,
	SelectLine:  ModeVisualLine,
	SelectBlock: ModeVisualBlock,
}

func selectionKind(t input.ModeTarget) SelectionKind {
	switch t {
	case input.ModeTargetVisualLine:
		return SelectLine
	case input.ModeTargetVisualBlock:
		return SelectBlock
	}
	return SelectChar
}

// ordered returns the selection ends in document order
func (v *VisualSelection) ordered() (Position, Position) {
	if v.Head.Before(v.Anchor) {
		return v.Head, v.Anchor
	}
	return v.Anchor, v.Head
}

// enterVisual starts a selection, switches kind, or exits when kind is already active
func (c *call) enterVisual(kind SelectionKind) {
	b := c.buf()
	if v := c.s.Visual; v != nil {
		if v.Kind == kind {
			c.exitVisual()
			return
		}
		v.Kind = kind
		b.Mode = visualModes[kind]
		return
	}
	c.s.Visual = &VisualSelection{Anchor: b.Cursor, Head: b.Cursor, Kind: kind}
	b.Mode = visualModes[kind]
	c.action("visual_" + strings.ToLower(b.Mode.String()))
}

// exitVisual remembers the selection for gv and the '< '> marks
func (c *call) exitVisual() {
	b := c.buf()
	if v := c.s.Visual; v != nil {
		last := *v
		c.s.LastVisual = &last
		start, end := v.ordered()
		if v.Kind == SelectBlock {
			start.Col, end.Col = min(v.Anchor.Col, v.Head.Col), max(v.Anchor.Col, v.Head.Col)
		}
		b.Marks['<'] = Mark{Line: start.Line, Col: start.Col}
		b.Marks['>'] = Mark{Line: end.Line, Col: end.Col}
	}
	c.s.Visual = nil
	b.Mode = ModeNormal
	b.clampCursor()
}

// visualRange converts the selection into an operator range
// Block columns span anchor and head regardless of line length
func (c *call) visualRange() TextRange {
	b := c.buf()
	v := c.s.Visual
	start, end := v.ordered()
	switch v.Kind {
	case SelectLine:
		return TextRange{Start: Position{start.Line, 0}, End: Position{end.Line, 0}, Linewise: true}
	case SelectBlock:
		lo, hi := min(v.Anchor.Col, v.Head.Col), max(v.Anchor.Col, v.Head.Col)
		return TextRange{Start: Position{start.Line, lo}, End: Position{end.Line, hi + 1}, Block: true}
	}
	if b.lineLen(end.Line) == 0 && end.Line < b.lastLine() {
		return TextRange{Start: start, End: Position{end.Line + 1, 0}}
	}
	return TextRange{Start: start, End: Position{end.Line, min(end.Col+1, b.lineLen(end.Line))}}
}

// followHead tracks the cursor after a motion
func (c *call) followHead() {
	if v := c.s.Visual; v != nil {
		v.Head = c.buf().Cursor
	}
}

// visualObject extends the selection to a text object
func (c *call) visualObject(intent *input.Intent) {
	b := c.buf()
	v := c.s.Visual
	fn, ok := c.e.objects[intent.Object]
	if !ok {
		return
	}
	r, ok := fn(b, intent.Count, intent.Inner)
	if !ok {
		return
	}
	if r.Linewise {
		v.Kind = SelectLine
		b.Mode = ModeVisualLine
		if v.Anchor == v.Head {
			v.Anchor = Position{r.Start.Line, 0}
		}
		v.Head = Position{r.End.Line, 0}
	} else {
		if v.Anchor == v.Head {
			v.Anchor = r.Start
		}
		v.Head = lastInRange(b, r)
	}
	b.setCursor(v.Head.Line, v.Head.Col)
	c.action("visual_object")
}

// lastInRange is the final character of a half-open charwise range
func lastInRange(b *Buffer, r TextRange) Position {
	if r.End.Col > 0 {
		return Position{r.End.Line, r.End.Col - 1}
	}
	if r.End.Line > r.Start.Line {
		l := r.End.Line - 1
		return Position{l, max(0, b.lineLen(l)-1)}
	}
	return r.Start
}

// visualOperator applies an operator to the selection and leaves visual mode
// Uppercase D X Y C S R act on whole lines
func (c *call) visualOperator(intent *input.Intent) {
	b := c.buf()
	r := c.visualRange()
	kind := c.s.Visual.Kind

	last := lastRune(intent.Command)
	switch {
	case kind == SelectBlock && (last == 'D' || last == 'X'):
		r.End.Col = math.MaxInt32
	case kind != SelectBlock && strings.ContainsRune("DXYCSR", last):
		r = TextRange{Start: Position{r.Start.Line, 0}, End: Position{r.End.Line, 0}, Linewise: true}
	}

	c.exitVisual()
	b.Cursor = r.Start
	c.applyOperator(intent.Operator, r, intent)

	if ins := c.s.Insert; ins != nil {
		ins.Repeat = Repeat{}
		if r.Block {
			ins.Block = &BlockInsert{FirstLine: r.Start.Line, LastLine: r.End.Line, Col: r.Start.Col}
		}
	}
}

func lastRune(s string) rune {
	rr := []rune(s)
	if len(rr) == 0 {
		return 0
	}
	return rr[len(rr)-1]
}

// visualInsert implements I and A on a selection; block mode replicates on exit
func (c *call) visualInsert(appendText bool) {
	b := c.buf()
	if b.Readonly {
		c.fail("E45: 'readonly' option is set")
		return
	}
	r := c.visualRange()
	c.exitVisual()

	var blk *BlockInsert
	switch {
	case r.Block:
		col := r.Start.Col
		if appendText {
			col = r.End.Col
		}
		blk = &BlockInsert{FirstLine: r.Start.Line, LastLine: r.End.Line, Col: col, Append: appendText}
		b.Cursor = Position{r.Start.Line, col}
	case appendText && r.Linewise:
		b.Cursor = Position{r.End.Line, b.lineLen(r.End.Line)}
	case appendText:
		b.Cursor = r.End
	case r.Linewise:
		b.Cursor = Position{r.Start.Line, b.firstNonBlank(r.Start.Line)}
	default:
		b.Cursor = r.Start
	}

	was := b.Modified
	b.checkpoint(c.now)
	if blk != nil && appendText {
		if pad := blk.Col - b.lineLen(blk.FirstLine); pad > 0 {
			b.setLine(blk.FirstLine, b.Lines[blk.FirstLine]+strings.Repeat(" ", pad))
		}
	}
	c.beginInsert(input.ModeTargetInsert, 1)
	c.s.Insert.WasModified = was
	c.s.Insert.Block = blk
	c.s.Insert.Repeat = Repeat{}
	b.Cursor = Position{b.Cursor.Line, min(b.Cursor.Col, b.lineLen(b.Cursor.Line))}
}

// visualReplace implements r{char} over the selection
func (c *call) visualReplace(ch rune) {
	b := c.buf()
	if b.Readonly {
		c.fail("E45: 'readonly' option is set")
		return
	}
	r := c.visualRange()
	c.exitVisual()
	b.checkpoint(c.now)
	for l := r.Start.Line; l <= r.End.Line && l <= b.lastLine(); l++ {
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
		for i := max(from, 0); i < min(to, len(rr)); i++ {
			rr[i] = ch
		}
		b.setLine(l, string(rr))
	}
	b.Cursor = r.Start
	b.clampCursor()
	c.recordChange(r.Start.Line, r.Start.Col)
	c.action("visual_replace")
}

// visualJoin implements J and gJ over the selected lines
func (c *call) visualJoin(spaces bool) {
	b := c.buf()
	r := c.visualRange()
	c.exitVisual()
	b.Cursor = Position{r.Start.Line, 0}
	c.join(r.lineCount(), spaces)
}

// visualPaste replaces the selection with a register; the selection goes to the unnamed register
func (c *call) visualPaste(intent *input.Intent) {
	b := c.buf()
	saved := c.s.Register(intent.Register)
	if saved.Empty() {
		c.exitVisual()
		return
	}
	if b.Readonly {
		c.exitVisual()
		c.fail("E45: 'readonly' option is set")
		return
	}
	r := c.visualRange()
	c.exitVisual()
	lastBefore := b.lastLine()
	b.Cursor = r.Start
	c.deleteOp(r, 0)

	after := false
	if r.Linewise {
		if saved.Kind != RegisterLine {
			saved.Kind = RegisterLine
			if !strings.HasSuffix(saved.Content, "\n") {
				saved.Content += "\n"
			}
		}
		after = r.End.Line >= lastBefore && r.Start.Line > 0
		if after {
			b.Cursor.Line = b.lastLine()
		}
	} else {
		n := b.lineLen(b.Cursor.Line)
		after = n > 0 && r.Start.Col >= n
	}

	// Both edits form one undo step
	c.pasteRegister(saved, after, false, intent.Count)
	b.Undo = b.Undo[:len(b.Undo)-1]
}

// reselect implements gv
func (c *call) reselect() {
	b := c.buf()
	if c.s.LastVisual == nil {
		c.fail("E28: No previous visual selection")
		return
	}
	v := *c.s.LastVisual
	clampPos := func(p Position) Position {
		p.Line = clamp(p.Line, 0, b.lastLine())
		if v.Kind != SelectBlock {
			p.Col = clamp(p.Col, 0, b.maxCol(p.Line))
		}
		return p
	}
	v.Anchor, v.Head = clampPos(v.Anchor), clampPos(v.Head)
	if cur := c.s.Visual; cur != nil {
		prev := *cur
		c.s.LastVisual = &prev
	}
	c.s.Visual = &v
	b.Mode = visualModes[v.Kind]
	b.setCursor(v.Head.Line, v.Head.Col)
	c.action("reselect")
}

// swapEnds implements o; corner swaps only the columns in block mode (O)
func (c *call) swapEnds(corner bool) {
	v := c.s.Visual
	if v == nil {
		return
	}
	if corner && v.Kind == SelectBlock {
		v.Anchor.Col, v.Head.Col = v.Head.Col, v.Anchor.Col
	} else {
		v.Anchor, v.Head = v.Head, v.Anchor
	}
	b := c.buf()
	b.Cursor = v.Head
	b.clampCursor()
}
