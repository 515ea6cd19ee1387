// @lixen: #focus{host[mux,paint,mouse]}
// @lixen: #interact{state[pane,window,copymode,prompt]}
package host

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/vi-dojo/input"
	"github.com/lixenwraith/vi-dojo/mux"
)

// WheelStep is the number of lines one wheel notch scrolls
const WheelStep = 3

// Multiplexer runs the mux engine; the bottom screen row is the status line
type Multiplexer struct {
	engine *mux.Engine
	state  *mux.State

	// Command output shown over the window until the next key
	output []string

	width  int
	height int

	// Status line cells of each window label, for mouse clicks
	tabs []tabSpan
}

type tabSpan struct {
	x0, x1 int
	index  int
}

// NewMultiplexer wraps engine and its initial state
func NewMultiplexer(engine *mux.Engine, state *mux.State) *Multiplexer {
	return &Multiplexer{engine: engine, state: state, width: state.Width, height: state.Height + 1}
}

// State returns the current multiplexer state
func (m *Multiplexer) State() *mux.State {
	return m.state
}

func (m *Multiplexer) Name() string {
	return "tmux"
}

func (m *Multiplexer) HandleKey(key input.Key, now time.Time) Outcome {
	prev := m.state
	s, res := m.engine.HandleKey(prev, key, now)
	return m.commit(prev, s, res)
}

// HandleMouse maps clicks and wheel motion onto the mouse operations
func (m *Multiplexer) HandleMouse(ev *tcell.EventMouse, now time.Time) Outcome {
	x, y := ev.Position()
	prev := m.state
	var (
		s   *mux.State
		res mux.Result
	)
	btn := ev.Buttons()
	switch {
	case btn&tcell.WheelUp != 0:
		s, res = mux.ScrollWheel(prev, -WheelStep)
	case btn&tcell.WheelDown != 0:
		s, res = mux.ScrollWheel(prev, WheelStep)
	case btn&tcell.Button1 != 0 && y == m.height-1:
		idx, ok := m.tabAt(x)
		if !ok {
			return Outcome{}
		}
		s, res = mux.ClickWindow(prev, idx)
	case btn&tcell.Button1 != 0:
		s, res = mux.ClickPane(prev, x, y)
	default:
		return Outcome{}
	}
	return m.commit(prev, s, res)
}

func (m *Multiplexer) commit(prev, s *mux.State, res mux.Result) Outcome {
	m.state = s
	m.output = nil
	if res.Output != "" {
		m.output = strings.Split(res.Output, "\n")
	}

	out := Outcome{
		Message: res.Message,
		Level:   muxLevel(res.Type),
		Mode:    m.modeLabel(),
		Quit:    res.Detached,
	}
	if res.Detached {
		out.Action = "detach"
	}
	if text, ok := newestBuffer(prev.PasteBuffers, s.PasteBuffers); ok {
		out.Clipboard, out.HasClipboard = text, true
	}
	return out
}

// newestBuffer reports the text of a buffer pushed between before and after
func newestBuffer(before, after []string) (string, bool) {
	if len(after) == 0 {
		return "", false
	}
	if len(after) > len(before) || (len(after) == mux.MaxPasteBuffers && after[0] != before[0] && after[1] == before[0]) {
		return after[0], true
	}
	return "", false
}

func muxLevel(t mux.MessageType) Level {
	switch t {
	case mux.MessageWarning:
		return LevelWarning
	case mux.MessageError:
		return LevelError
	}
	return LevelInfo
}

func (m *Multiplexer) modeLabel() string {
	switch {
	case m.state.Prompt.Active:
		return "PROMPT"
	case m.state.InCopyMode():
		return "COPY"
	}
	return "SHELL"
}

// Resize gives all rows but the status line to the window area
func (m *Multiplexer) Resize(width, height int) {
	m.width, m.height = width, height
	m.state = mux.Recalculate(m.state, width, max(height-1, 1))
}

func (m *Multiplexer) Draw(scr tcell.Screen, now time.Time) {
	w := m.state.Window()
	scr.HideCursor()

	if z := w.Zoomed(); z != nil {
		m.drawPane(scr, z, mux.Rect{Width: m.state.Width, Height: m.state.Height}, true)
	} else {
		for _, p := range w.Panes {
			m.drawPane(scr, p, p.Rect(), p.ID == w.ActivePane)
		}
		for _, b := range mux.BorderPositions(w) {
			drawBorder(scr, b)
		}
	}

	if len(m.output) > 0 {
		m.drawOutput(scr)
	}
	m.drawStatus(scr, now)
}

// drawPane paints the visible slice of a pane and places the cursor when it is active
func (m *Multiplexer) drawPane(scr tcell.Screen, p *mux.Pane, r mux.Rect, active bool) {
	lines := p.Lines()
	copying := active && m.state.InCopyMode()

	first := len(p.Scrollback)
	if len(p.Content) > r.Height {
		first = len(lines) - r.Height
	}
	if copying {
		first = p.ScrollPos
	}

	for row := range r.Height {
		i := first + row
		if i < 0 || i >= len(lines) {
			continue
		}
		if copying {
			m.drawCopyLine(scr, lines[i], i, r.X, r.Y+row, r.Width)
			continue
		}
		drawText(scr, r.X, r.Y+row, r.Width, expandTabs(lines[i], 8), styleText)
	}

	if !active || m.state.Prompt.Active {
		return
	}
	cur := mux.Position{Line: len(p.Scrollback) + p.Cursor.Line, Col: p.Cursor.Col}
	if copying {
		cur = m.state.CopyMode.Cursor
	}
	row := cur.Line - first
	if row < 0 || row >= r.Height {
		return
	}
	x := displayCol(lineAt(lines, cur.Line), cur.Col, 8)
	if x < r.Width {
		scr.ShowCursor(r.X+x, r.Y+row)
	}
}

// drawCopyLine paints a scrollback line with the copy mode selection
func (m *Multiplexer) drawCopyLine(scr tcell.Screen, line string, ln, x, y, width int) {
	cm := m.state.CopyMode
	used := 0
	for col, r := range []rune(line) {
		rw := runewidth.RuneWidth(r)
		if used+rw > width {
			return
		}
		style := styleText
		if cm.Selecting && copySelected(cm, mux.Position{Line: ln, Col: col}) {
			style = styleSelection
		}
		scr.SetContent(x+used, y, r, nil, style)
		used += rw
	}
}

func copySelected(cm mux.CopyMode, p mux.Position) bool {
	start, end := cm.Anchor, cm.Cursor
	if end.Line < start.Line || (end.Line == start.Line && end.Col < start.Col) {
		start, end = end, start
	}
	if p.Line < start.Line || p.Line > end.Line {
		return false
	}
	switch cm.Kind {
	case mux.SelectLine:
		return true
	case mux.SelectRect:
		lo, hi := min(cm.Anchor.Col, cm.Cursor.Col), max(cm.Anchor.Col, cm.Cursor.Col)
		return p.Col >= lo && p.Col <= hi
	}
	if p.Line == start.Line && p.Col < start.Col {
		return false
	}
	return p.Line != end.Line || p.Col <= end.Col
}

func drawBorder(scr tcell.Screen, b mux.Border) {
	style := styleBorder
	if b.Active {
		style = styleBorderAct
	}
	if b.Vertical {
		for y := b.Y1; y <= b.Y2; y++ {
			scr.SetContent(b.X1, y, '│', nil, style)
		}
		return
	}
	for x := b.X1; x <= b.X2; x++ {
		scr.SetContent(x, b.Y1, '─', nil, style)
	}
}

// drawOutput shows command output in the top-left of the window area
func (m *Multiplexer) drawOutput(scr tcell.Screen) {
	rows := min(len(m.output), m.state.Height)
	width := 0
	for _, l := range m.output[:rows] {
		width = max(width, runewidth.StringWidth(l))
	}
	width = min(width+2, m.state.Width)
	for i, l := range m.output[:rows] {
		drawText(scr, 0, i, width, padRight(" "+l, width), styleStatusDim)
	}
}

func (m *Multiplexer) drawStatus(scr tcell.Screen, now time.Time) {
	row := m.height - 1
	if row < 0 {
		return
	}
	s := m.state
	fillRow(scr, 0, row, m.width, styleStatus)

	if s.Prompt.Active {
		text := s.Prompt.Kind.Label() + s.Prompt.Text
		used := drawText(scr, 0, row, m.width, text, styleStatus)
		scr.ShowCursor(min(used, m.width-1), row)
		return
	}

	x := drawText(scr, 0, row, m.width, fmt.Sprintf("[%s] ", s.Session().Name), styleStatus)
	sess := s.Session()
	m.tabs = m.tabs[:0]
	for _, w := range sess.Windows {
		label := fmt.Sprintf("%d:%s%s ", w.Index, w.Name, windowFlag(sess, w))
		n := drawText(scr, x, row, m.width-x, label, styleStatus)
		m.tabs = append(m.tabs, tabSpan{x0: x, x1: x + n, index: w.Index})
		x += n
	}

	var right string
	switch {
	case s.PrefixPending(now):
		right = "PREFIX"
	case s.InCopyMode():
		right = "COPY"
		if n := len(s.CopyMode.Matches); n > 0 {
			right = fmt.Sprintf("COPY [%d/%d]", s.CopyMode.Current+1, n)
		}
	}
	msg, t := s.LastMessage()
	if msg != "" {
		if right != "" {
			right += "  "
		}
		right += msg
	}
	if right == "" {
		return
	}
	right += " "
	rw := runewidth.StringWidth(right)
	start := max(x+1, m.width-rw)
	style := styleStatus
	if t != mux.MessageInfo {
		style = levelStyle(muxLevel(t))
	}
	drawText(scr, start, row, m.width-start, right, style)
}

// windowFlag is tmux's * for the current window and - for the last one
func windowFlag(sess *mux.Session, w *mux.Window) string {
	switch w.ID {
	case sess.ActiveWindow:
		return "*"
	case sess.LastActiveWindow:
		return "-"
	}
	return ""
}

func (m *Multiplexer) tabAt(x int) (int, bool) {
	for _, t := range m.tabs {
		if x >= t.x0 && x < t.x1 {
			return t.index, true
		}
	}
	return 0, false
}

func lineAt(lines []string, i int) string {
	if i < 0 || i >= len(lines) {
		return ""
	}
	return lines[i]
}
