// @lixen: #focus{state[buffer,list]}
package vim

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"
)

// noName is shown for buffers without a file name
const noName = "[No Name]"

// DisplayName returns the file name or the no-name placeholder
func (b *Buffer) DisplayName() string {
	if b.Filename == "" {
		return noName
	}
	return b.Filename
}

// switchBuffer activates buffer id and remembers the previous one as alternate
func (c *call) switchBuffer(id int) {
	if id == c.s.Active {
		return
	}
	if c.s.Visual != nil {
		c.exitVisual()
	}
	c.s.Alternate = c.s.Active
	c.s.Active = id
	b := c.buf()
	b.Mode = ModeNormal
	b.clampCursor()
}

// cycleBuffer implements :bn and :bp
func (c *call) cycleBuffer(delta int) {
	n := len(c.s.Buffers)
	i := c.s.bufferIndex(c.s.Active)
	next := c.s.Buffers[((i+delta)%n+n)%n]
	c.switchBuffer(next.ID)
	c.info("\"%s\"", next.DisplayName())
	if delta > 0 {
		c.action("buffer_next")
	} else {
		c.action("buffer_prev")
	}
}

// deleteBuffer implements :bd on the active buffer
func (c *call) deleteBuffer(force bool) {
	c.removeBuffer(c.s.Active, force)
}

// removeBuffer closes buffer id; closing the only buffer leaves an empty unnamed one
func (c *call) removeBuffer(id int, force bool) {
	b := c.s.buffer(id)
	if b == nil {
		c.fail("E516: No buffers were deleted")
		return
	}
	if b.Modified && !force {
		c.fail("E89: No write since last change for buffer %d (add ! to override)", id)
		return
	}
	if c.s.Visual != nil {
		c.exitVisual()
	}

	i := c.s.bufferIndex(id)
	c.s.Buffers = slices.Delete(c.s.Buffers, i, i+1)
	if len(c.s.Buffers) == 0 {
		c.s.AddBuffer("", "")
	}
	if c.s.Active == id {
		if c.s.buffer(c.s.Alternate) != nil {
			c.s.Active = c.s.Alternate
		} else {
			c.s.Active = c.s.Buffers[min(i, len(c.s.Buffers)-1)].ID
		}
	}
	if c.s.Alternate == id || c.s.Alternate == c.s.Active {
		c.s.Alternate = 0
	}

	for k, m := range c.s.GlobalMarks {
		if m.BufferID == id {
			delete(c.s.GlobalMarks, k)
		}
	}
	gone := func(e JumpEntry) bool { return e.BufferID == id }
	c.s.Jumplist = slices.DeleteFunc(c.s.Jumplist, gone)
	c.s.JumpPos = min(c.s.JumpPos, len(c.s.Jumplist))
	c.s.Changelist = slices.DeleteFunc(c.s.Changelist, gone)

	nb := c.buf()
	nb.Mode = ModeNormal
	nb.clampCursor()
	c.info("Buffer deleted")
	c.action("buffer_delete")
}

// bufferListing renders :ls; % marks the active buffer, # the alternate, + a modified one
func (c *call) bufferListing() string {
	rows := make([]string, 0, len(c.s.Buffers))
	for _, b := range c.s.Buffers {
		flag := ' '
		switch b.ID {
		case c.s.Active:
			flag = '%'
		case c.s.Alternate:
			flag = '#'
		}
		mod := ' '
		if b.Modified {
			mod = '+'
		}
		rows = append(rows, fmt.Sprintf("%d%c%c \"%s\"", b.ID, flag, mod, b.DisplayName()))
	}
	return strings.Join(rows, "\n")
}

// findBuffer resolves :b arguments: a buffer number, a name substring, then a fuzzy match
func (s *State) findBuffer(arg string) *Buffer {
	if n, err := strconv.Atoi(arg); err == nil {
		return s.buffer(n)
	}
	lower := strings.ToLower(arg)
	names := make([]string, len(s.Buffers))
	for i, b := range s.Buffers {
		if strings.Contains(strings.ToLower(b.Filename), lower) {
			return b
		}
		names[i] = b.Filename
	}
	if matches := fuzzy.Find(arg, names); len(matches) > 0 {
		return s.Buffers[matches[0].Index]
	}
	return nil
}
