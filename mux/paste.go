// @lixen: #focus{copymode[paste]}
// @lixen: #interact{state[paste,pane]}
package mux

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// PreviewWidth is the cell width of a paste buffer preview
const PreviewWidth = 50

// Paste types the most recent buffer into the active pane; the text is returned in Result.Output
func Paste(s *State) (*State, Result) {
	return apply(s, zeroTime, (*call).paste)
}

// ListBuffers renders one preview line per buffer into Result.Output
func ListBuffers(s *State) (*State, Result) {
	return apply(s, zeroTime, (*call).listBuffers)
}

// DeleteBuffer drops the most recent buffer
func DeleteBuffer(s *State) (*State, Result) {
	return apply(s, zeroTime, (*call).deleteBuffer)
}

// AddBuffer pushes text as the most recent buffer
func AddBuffer(s *State, text string) (*State, Result) {
	return apply(s, zeroTime, func(c *call) {
		c.pushBuffer(text)
		c.info("Added %d bytes to buffer", len(text))
	})
}

// ChooseBuffer pastes buffer i
func ChooseBuffer(s *State, i int) (*State, Result) {
	return apply(s, zeroTime, func(c *call) { c.chooseBuffer(i) })
}

// BufferPreview flattens text to one line of at most PreviewWidth cells
func BufferPreview(text string) string {
	flat := strings.NewReplacer("\n", `\n`, "\r", `\r`, "\t", `\t`).Replace(text)
	return runewidth.Truncate(flat, PreviewWidth, "...")
}

func (c *call) pushBuffer(text string) {
	bufs := append([]string{text}, c.s.PasteBuffers...)
	if len(bufs) > MaxPasteBuffers {
		bufs = bufs[:MaxPasteBuffers]
	}
	c.s.PasteBuffers = bufs
}

func (c *call) paste() {
	if len(c.s.PasteBuffers) == 0 {
		c.warn("No buffers")
		return
	}
	text := c.s.PasteBuffers[0]
	c.typeText(text)
	c.output(text)
	c.info("Pasted %d bytes", len(text))
}

func (c *call) listBuffers() {
	if len(c.s.PasteBuffers) == 0 {
		c.info("No buffers")
		return
	}
	lines := make([]string, len(c.s.PasteBuffers))
	for i, b := range c.s.PasteBuffers {
		lines[i] = fmt.Sprintf("buffer%d: %d bytes: \"%s\"", i, len(b), BufferPreview(b))
	}
	c.output(strings.Join(lines, "\n"))
	c.info("%d buffers", len(lines))
}

func (c *call) deleteBuffer() {
	if len(c.s.PasteBuffers) == 0 {
		c.warn("No buffers")
		return
	}
	c.s.PasteBuffers = c.s.PasteBuffers[1:]
	c.info("Deleted buffer 0")
}

func (c *call) chooseBuffer(i int) {
	if len(c.s.PasteBuffers) == 0 {
		c.warn("No buffers")
		return
	}
	if i < 0 || i >= len(c.s.PasteBuffers) {
		c.fail("Buffer %d not found", i)
		return
	}
	text := c.s.PasteBuffers[i]
	c.typeText(text)
	c.output(text)
	c.info("Pasted buffer %d (%d bytes)", i, len(text))
}
