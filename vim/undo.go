// @lixen: #focus{state[undo,snapshot]}
package vim

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// snapshot copies content and cursor; t is the time of the edit that follows it
func (b *Buffer) snapshot(t time.Time) Snapshot {
	return Snapshot{
		Lines:  append([]string(nil), b.Lines...),
		Cursor: b.Cursor,
		Time:   t,
	}
}

// checkpoint records the pre-edit state; every mutating operation calls it once
func (b *Buffer) checkpoint(now time.Time) {
	b.Undo = append(b.Undo, b.snapshot(now))
	b.Redo = nil
	b.Modified = true
}

// restore replaces content and cursor with a snapshot copy
func (b *Buffer) restore(sn Snapshot) {
	b.Lines = append([]string(nil), sn.Lines...)
	b.Cursor = sn.Cursor
	b.clampCursor()
}

// undoSteps pops up to count snapshots onto the redo stack and returns the number applied
func (b *Buffer) undoSteps(count int) int {
	n := 0
	for ; n < count && len(b.Undo) > 0; n++ {
		top := b.Undo[len(b.Undo)-1]
		b.Undo = b.Undo[:len(b.Undo)-1]
		b.Redo = append(b.Redo, b.snapshot(top.Time))
		b.restore(top)
	}
	b.Modified = len(b.Undo) > 0
	return n
}

// redoSteps is the mirror of undoSteps
func (b *Buffer) redoSteps(count int) int {
	n := 0
	for ; n < count && len(b.Redo) > 0; n++ {
		top := b.Redo[len(b.Redo)-1]
		b.Redo = b.Redo[:len(b.Redo)-1]
		b.Undo = append(b.Undo, b.snapshot(top.Time))
		b.restore(top)
	}
	b.Modified = len(b.Undo) > 0
	return n
}

func (c *call) undo(count int) {
	b := c.buf()
	if len(b.Undo) == 0 {
		c.fail("Already at oldest change")
		return
	}
	n := b.undoSteps(count)
	c.info("%d change(s) undone", n)
	c.action("undo")
}

func (c *call) redo(count int) {
	b := c.buf()
	if len(b.Redo) == 0 {
		c.fail("Already at newest change")
		return
	}
	n := b.redoSteps(count)
	c.info("%d change(s) redone", n)
	c.action("redo")
}

// undoLine implements U: back to the latest snapshot taken on this line,
// otherwise restore the line from the oldest snapshot as a new change
func (c *call) undoLine() {
	b := c.buf()
	if len(b.Undo) == 0 {
		c.info("No changes to undo")
		return
	}
	line := b.Cursor.Line
	for i := len(b.Undo) - 1; i >= 0; i-- {
		if b.Undo[i].Cursor.Line == line {
			c.undo(len(b.Undo) - i)
			return
		}
	}

	first := b.Undo[0]
	if line >= len(first.Lines) {
		c.info("No line changes to undo")
		return
	}
	b.checkpoint(c.now)
	b.setLine(line, first.Lines[line])
	b.clampCursor()
	c.info("Line restored")
	c.action("undo_line")
}

var timeArgPattern = regexp.MustCompile(`^(\d+)(s|m|h|d)?$`)

// parseTimeArg parses :earlier/:later arguments; a bare number is a step count
func parseTimeArg(arg string) (steps int, d time.Duration, ok bool) {
	m := timeArgPattern.FindStringSubmatch(strings.TrimSpace(arg))
	if m == nil {
		return 0, 0, false
	}
	v, _ := strconv.Atoi(m[1])
	switch m[2] {
	case "":
		return v, 0, true
	case "m":
		d = time.Duration(v) * time.Minute
	case "h":
		d = time.Duration(v) * time.Hour
	case "d":
		d = time.Duration(v) * 24 * time.Hour
	default:
		d = time.Duration(v) * time.Second
	}
	return 0, d, true
}

// earlier undoes every change made within d of now, or a step count
func (c *call) earlier(arg string) {
	if arg == "" {
		arg = "1"
	}
	steps, d, ok := parseTimeArg(arg)
	if !ok {
		c.fail("Invalid time: %s", arg)
		return
	}
	if steps > 0 {
		c.undo(steps)
		return
	}

	b := c.buf()
	cutoff := c.now.Add(-d)
	n := 0
	for len(b.Undo) > 0 && !b.Undo[len(b.Undo)-1].Time.Before(cutoff) {
		n += b.undoSteps(1)
	}
	if n == 0 {
		c.info("Already at oldest change")
		return
	}
	c.info("%d change(s) undone", n)
	c.action("undo")
}

// later redoes changes made within d after the current state
func (c *call) later(arg string) {
	if arg == "" {
		arg = "1"
	}
	steps, d, ok := parseTimeArg(arg)
	if !ok {
		c.fail("Invalid time: %s", arg)
		return
	}
	if steps > 0 {
		c.redo(steps)
		return
	}

	b := c.buf()
	if len(b.Redo) == 0 {
		c.info("Already at newest change")
		return
	}
	ref := b.Redo[len(b.Redo)-1].Time
	if len(b.Undo) > 0 {
		ref = b.Undo[len(b.Undo)-1].Time
	}
	limit := ref.Add(d)
	n := 0
	for len(b.Redo) > 0 && !b.Redo[len(b.Redo)-1].Time.After(limit) {
		n += b.redoSteps(1)
	}
	if n == 0 {
		c.info("Already at newest change")
		return
	}
	c.info("%d change(s) redone", n)
	c.action("redo")
}

// undoList renders :undolist
func (b *Buffer) undoList() string {
	var sb strings.Builder
	sb.WriteString("number  changes  when               saved")
	if len(b.Undo) == 0 {
		sb.WriteString("\n(no undo history)")
		return sb.String()
	}
	for i, sn := range b.Undo {
		fmt.Fprintf(&sb, "\n%6d  %7d  %s", i+1, 1, sn.Time.Format("15:04:05"))
	}
	return sb.String()
}
