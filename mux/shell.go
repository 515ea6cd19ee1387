// @lixen: #focus{pane[shell,scrollback]}
// @lixen: #interact{state[pane]}
package mux

import (
	"unicode/utf8"

	"github.com/lixenwraith/vi-dojo/input"
)

// Pane content is simulated: typed keys echo onto a prompt line and Enter opens a new one

// typeKey echoes one unprefixed key into the active pane
func (c *call) typeKey(key input.Key) {
	p := c.s.pane()
	switch {
	case key.Printable():
		c.typeRune(p, key.Rune)
	case key.IsNamed(input.KeyEnter):
		c.newLine(p)
	case key.IsNamed(input.KeyTab):
		c.typeRune(p, '\t')
	case key.IsNamed(input.KeyBackspace):
		line := p.Content[p.Cursor.Line]
		if utf8.RuneCountInString(line) > utf8.RuneCountInString(shellPrompt) {
			_, size := utf8.DecodeLastRuneInString(line)
			p.Content[p.Cursor.Line] = line[:len(line)-size]
			p.Cursor.Col--
		}
	case key.IsCtrl('c'):
		p.Content[p.Cursor.Line] += "^C"
		c.newLine(p)
	case key.IsCtrl('l'):
		p.Scrollback = append(p.Scrollback, p.Content...)
		p.Content = []string{shellPrompt}
		p.Cursor = Position{Col: utf8.RuneCountInString(shellPrompt)}
		trimScrollback(p)
	}
}

// typeText echoes pasted text; newlines submit the line
func (c *call) typeText(text string) {
	p := c.s.pane()
	for _, r := range text {
		switch r {
		case '\n':
			c.newLine(p)
		case '\r':
		default:
			c.typeRune(p, r)
		}
	}
}

func (c *call) typeRune(p *Pane, r rune) {
	p.Content[p.Cursor.Line] += string(r)
	p.Cursor.Col++
}

// newLine starts a fresh prompt, pushing lines that no longer fit into scrollback
func (c *call) newLine(p *Pane) {
	p.Content = append(p.Content, shellPrompt)
	if over := len(p.Content) - max(p.Height, 1); over > 0 {
		p.Scrollback = append(p.Scrollback, p.Content[:over]...)
		p.Content = append([]string(nil), p.Content[over:]...)
		trimScrollback(p)
	}
	p.Cursor = Position{Line: len(p.Content) - 1, Col: utf8.RuneCountInString(shellPrompt)}
}

func trimScrollback(p *Pane) {
	if over := len(p.Scrollback) - MaxScrollback; over > 0 {
		p.Scrollback = append([]string(nil), p.Scrollback[over:]...)
	}
}

// SetContent replaces the visible text of pane id in the active window, for lessons that seed panes
func SetContent(s *State, id int, lines []string) (*State, Result) {
	return apply(s, zeroTime, func(c *call) {
		p := c.s.win().Pane(id)
		if p == nil {
			c.fail("Pane %d not found", id)
			return
		}
		p.Content = append([]string(nil), lines...)
		if len(p.Content) == 0 {
			p.Content = []string{shellPrompt}
		}
		if over := len(p.Content) - max(p.Height, 1); over > 0 {
			p.Scrollback = append(p.Scrollback, p.Content[:over]...)
			p.Content = p.Content[over:]
			trimScrollback(p)
		}
		last := len(p.Content) - 1
		p.Cursor = Position{Line: last, Col: utf8.RuneCountInString(p.Content[last])}
	})
}
