// @lixen: #focus{control[scroll,viewport,info]}
package vim

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// viewHeight is the simulated window height in lines
func (s *State) viewHeight() int {
	return max(s.Settings.Lines, 1)
}

// followCursor keeps the cursor inside the viewport honouring scrolloff
func (c *call) followCursor() {
	b := c.buf()
	h := c.s.viewHeight()
	so := min(c.s.Settings.ScrollOff, (h-1)/2)
	line := b.Cursor.Line
	if line < b.TopLine+so {
		b.TopLine = line - so
	}
	if line > b.TopLine+h-1-so {
		b.TopLine = line - h + 1 + so
	}
	b.TopLine = clamp(b.TopLine, 0, b.lastLine())
}

// reposition implements zt/zz/zb; firstNonBlank also moves the cursor (z<CR> z. z-)
func (c *call) reposition(edge screenEdge, firstNonBlank bool) {
	b := c.buf()
	h := c.s.viewHeight()
	line := b.Cursor.Line
	switch edge {
	case screenTop:
		b.TopLine = line
	case screenMid:
		b.TopLine = max(0, line-h/2)
	case screenBottom:
		b.TopLine = max(0, line-h+1)
	}
	if firstNonBlank {
		b.Cursor.Col = b.firstNonBlank(line)
	}
	c.action("scroll")
}

// scrollBy moves the viewport and cursor together (Ctrl-d/u/f/b)
func (c *call) scrollBy(lines int) {
	b := c.buf()
	if (lines > 0 && b.Cursor.Line == b.lastLine()) || (lines < 0 && b.Cursor.Line == 0) {
		return
	}
	b.TopLine = clamp(b.TopLine+lines, 0, b.lastLine())
	line := clamp(b.Cursor.Line+lines, 0, b.lastLine())
	b.setCursor(line, b.firstNonBlank(line))
	c.action("scroll")
}

// scrollView moves only the viewport (Ctrl-e/y), dragging the cursor when it leaves the view
func (c *call) scrollView(lines int) {
	b := c.buf()
	h := c.s.viewHeight()
	b.TopLine = clamp(b.TopLine+lines, 0, b.lastLine())
	switch {
	case b.Cursor.Line < b.TopLine:
		b.setCursor(b.TopLine, b.Cursor.Col)
	case b.Cursor.Line > b.TopLine+h-1:
		b.setCursor(b.TopLine+h-1, b.Cursor.Col)
	}
	c.action("scroll")
}

// fileInfo implements Ctrl-g
func (c *call) fileInfo() {
	b := c.buf()
	mod := ""
	if b.Modified {
		mod = " [Modified]"
	}
	n := b.LineCount()
	lines := "lines"
	if n == 1 {
		lines = "line"
	}
	pct := (b.Cursor.Line + 1) * 100 / n
	c.info("\"%s\"%s %d %s --%d%%--", b.DisplayName(), mod, n, lines, pct)
	c.action("file_info")
}

// showASCII implements ga
func (c *call) showASCII() {
	b := c.buf()
	r := b.charAt(b.Cursor.Line, b.Cursor.Col)
	if r == 0 {
		c.info("NUL")
		return
	}
	display := string(r)
	switch {
	case r < 32:
		display = "^" + string(r+64)
	case r == ' ':
		display = "<Space>"
	}
	c.info("<%s>  %d,  Hex %02x,  Oct %03o", display, r, r, r)
	c.action("show_ascii")
}

// showUTF8 implements g8
func (c *call) showUTF8() {
	b := c.buf()
	r := b.charAt(b.Cursor.Line, b.Cursor.Col)
	if r == 0 {
		c.info("NUL")
		return
	}
	buf := make([]byte, utf8.RuneLen(r))
	utf8.EncodeRune(buf, r)
	hex := make([]string, len(buf))
	for i, x := range buf {
		hex[i] = fmt.Sprintf("%02x", x)
	}
	c.info("%c  %s", r, strings.Join(hex, " "))
	c.action("show_utf8")
}
