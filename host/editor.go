// @lixen: #focus{host[editor,paint,persist]}
// @lixen: #interact{state[buffer,visual,search]}
package host

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/vi-dojo/input"
	"github.com/lixenwraith/vi-dojo/vim"
)

// SaveFunc persists one buffer; nil keeps :w simulated
type SaveFunc func(path, text string) error

// WriteFile saves text with a trailing newline
func WriteFile(path, text string) error {
	return os.WriteFile(path, []byte(text+"\n"), 0o644)
}

// Editor runs the vim engine
type Editor struct {
	engine *vim.Engine
	state  *vim.State
	save   SaveFunc

	width  int
	height int
}

// NewEditor wraps engine and its initial state
func NewEditor(engine *vim.Engine, state *vim.State, save SaveFunc) *Editor {
	return &Editor{engine: engine, state: state, save: save}
}

// State returns the current editor state
func (e *Editor) State() *vim.State {
	return e.state
}

func (e *Editor) Name() string {
	return "vim"
}

func (e *Editor) HandleKey(key input.Key, now time.Time) Outcome {
	prev := e.state
	s, res := e.engine.HandleKey(prev, key, now)
	e.state = s

	out := Outcome{
		Message:   res.Message,
		Level:     vimLevel(res.Type),
		Action:    res.Action,
		Mode:      s.Mode().String(),
		Recording: s.Recording != 0,
		Quit:      res.Quit,
	}
	if res.Clipboard != nil {
		out.Clipboard, out.HasClipboard = res.Clipboard.Content, true
	}

	if err := e.persist(prev, res.Action); err != nil {
		msg := fmt.Sprintf("E212: Can't open file for writing: %v", err)
		e.state.Message, e.state.MessageType = msg, vim.MessageError
		out.Message, out.Level, out.Quit = msg, LevelError, false
	}
	return out
}

// persist writes the buffers a write command marked clean
func (e *Editor) persist(prev *vim.State, action string) error {
	if e.save == nil {
		return nil
	}
	switch action {
	case "write", "write_quit":
		b := e.state.ActiveBuffer()
		return e.save(b.Filename, b.Text())
	case "write_all":
		for i, b := range e.state.Buffers {
			if i < len(prev.Buffers) && prev.Buffers[i].Modified && !b.Modified && b.Filename != "" {
				if err := e.save(b.Filename, b.Text()); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func vimLevel(t vim.MessageType) Level {
	switch t {
	case vim.MessageWarning:
		return LevelWarning
	case vim.MessageError:
		return LevelError
	}
	return LevelInfo
}

// Resize sets the screen size; the last two rows hold the status and command lines
func (e *Editor) Resize(width, height int) {
	e.width, e.height = width, height
	e.state.Settings.Lines = max(height-2, 1)
}

func (e *Editor) Draw(scr tcell.Screen, now time.Time) {
	s := e.state
	b := s.ActiveBuffer()
	cur := b.Cursor
	textH := max(e.height-2, 1)

	top := b.TopLine
	if cur.Line < top {
		top = cur.Line
	}
	if cur.Line >= top+textH {
		top = cur.Line - textH + 1
	}

	gutter := 0
	if s.Settings.Number || s.Settings.RelativeNumber {
		gutter = max(len(strconv.Itoa(len(b.Lines))), 3) + 1
	}
	matchLen := searchHighlightLen(s)

	for row := range textH {
		ln := top + row
		if ln >= len(b.Lines) {
			drawText(scr, 0, row, 1, "~", styleGutter)
			continue
		}
		if gutter > 0 {
			num, style := ln+1, styleGutter
			if ln == cur.Line {
				style = styleGutterCur
			} else if s.Settings.RelativeNumber {
				num = abs(ln - cur.Line)
			}
			label := strconv.Itoa(num)
			drawText(scr, gutter-1-len(label), row, len(label), label, style)
		}
		e.drawLine(scr, s, ln, row, gutter, matchLen)
	}

	e.drawStatus(scr, s, top)
	e.drawCommandLine(scr, s)

	switch b.Mode {
	case vim.ModeCommand, vim.ModeSearch:
		// placed by drawCommandLine
	default:
		x := gutter + displayCol(b.Lines[cur.Line], cur.Col, s.Settings.TabStop)
		if x < e.width {
			scr.ShowCursor(x, cur.Line-top)
		} else {
			scr.HideCursor()
		}
	}
}

// drawLine paints one buffer line with selection and search highlights
func (e *Editor) drawLine(scr tcell.Screen, s *vim.State, ln, row, gutter, matchLen int) {
	line := s.ActiveBuffer().Lines[ln]
	tabstop := max(s.Settings.TabStop, 1)
	x := gutter
	col := 0
	for i, r := range []rune(line) {
		style := styleText
		p := vim.Position{Line: ln, Col: i}
		switch {
		case s.Visual != nil && selected(*s.Visual, p):
			style = styleSelection
		case matchLen > 0 && inMatch(s.Search.Matches, p, matchLen):
			style = styleMatch
		}

		if r == '\t' {
			n := tabstop - col%tabstop
			for range n {
				if x < e.width {
					scr.SetContent(x, row, ' ', nil, style)
				}
				x++
			}
			col += n
			continue
		}
		w := runewidth.RuneWidth(r)
		if x+w > e.width {
			return
		}
		scr.SetContent(x, row, r, nil, style)
		x += w
		col += w
	}
}

func (e *Editor) drawStatus(scr tcell.Screen, s *vim.State, top int) {
	row := e.height - 2
	if row < 0 {
		return
	}
	b := s.ActiveBuffer()
	name := b.Filename
	if name == "" {
		name = "[No Name]"
	}
	left := fmt.Sprintf(" %s  %s", s.Mode(), name)
	if b.Modified {
		left += " [+]"
	}
	if b.Readonly {
		left += " [RO]"
	}

	var right []string
	if s.Recording != 0 {
		right = append(right, "recording @"+string(s.Recording))
	}
	if p := s.Pending(); p != "" {
		right = append(right, p)
	}
	right = append(right, fmt.Sprintf("%d:%d", b.Cursor.Line+1, b.Cursor.Col+1), scrollLabel(top, e.height-2, len(b.Lines)))
	rightText := strings.Join(right, "  ") + " "

	fillRow(scr, 0, row, e.width, styleStatus)
	drawText(scr, 0, row, e.width, left, styleStatus)
	if rw := runewidth.StringWidth(rightText); rw < e.width {
		drawText(scr, e.width-rw, row, rw, rightText, styleStatus)
	}
}

func (e *Editor) drawCommandLine(scr tcell.Screen, s *vim.State) {
	row := e.height - 1
	if row < 0 {
		return
	}
	var text string
	switch s.ActiveBuffer().Mode {
	case vim.ModeCommand:
		text = ":" + s.CommandLine
	case vim.ModeSearch:
		text = "/"
		if !s.Search.Forward {
			text = "?"
		}
		text += s.Search.Draft
	default:
		msg, t := s.LastMessage()
		drawText(scr, 0, row, e.width, msg, levelStyle(vimLevel(t)))
		return
	}
	used := drawText(scr, 0, row, e.width, text, styleText)
	scr.ShowCursor(min(used, e.width-1), row)
}

// scrollLabel mimics the Top/Bot/All/NN% ruler field
func scrollLabel(top, height, total int) string {
	switch {
	case total <= height:
		return "All"
	case top == 0:
		return "Top"
	case top+height >= total:
		return "Bot"
	}
	return fmt.Sprintf("%d%%", top*100/(total-height))
}

func selected(v vim.VisualSelection, p vim.Position) bool {
	start, end := v.Anchor, v.Head
	if end.Before(start) {
		start, end = end, start
	}
	if p.Line < start.Line || p.Line > end.Line {
		return false
	}
	switch v.Kind {
	case vim.SelectLine:
		return true
	case vim.SelectBlock:
		lo, hi := min(v.Anchor.Col, v.Head.Col), max(v.Anchor.Col, v.Head.Col)
		return p.Col >= lo && p.Col <= hi
	}
	if p.Line == start.Line && p.Col < start.Col {
		return false
	}
	if p.Line == end.Line && p.Col > end.Col {
		return false
	}
	return true
}

// searchHighlightLen returns the highlighted width of a match, or 0 when hlsearch is off
// Patterns using regex syntax highlight only the match start
func searchHighlightLen(s *vim.State) int {
	if !s.Settings.HlSearch || !s.Search.Highlight || s.Search.Pattern == "" {
		return 0
	}
	if strings.ContainsAny(s.Search.Pattern, `\.*[]^$+?(){}|`) {
		return 1
	}
	return utf8.RuneCountInString(s.Search.Pattern)
}

func inMatch(matches []vim.Position, p vim.Position, n int) bool {
	for _, m := range matches {
		if m.Line == p.Line && p.Col >= m.Col && p.Col < m.Col+n {
			return true
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
