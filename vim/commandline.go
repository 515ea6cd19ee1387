// @lixen: #focus{control[cmdline,history,completion]}
package vim

import (
	"strings"
	"unicode/utf8"

	"github.com/lixenwraith/vi-dojo/input"
)

// beginCommand opens the command line, optionally prefilled (visual ':' uses '<,'>)
func (c *call) beginCommand(initial string) {
	c.s.CommandLine = initial
	c.s.CommandHistPos = len(c.s.CommandHistory)
	c.buf().Mode = ModeCommand
	c.action("command_mode")
}

func (c *call) leaveCommand() {
	c.s.CommandLine = ""
	c.s.CommandHistPos = len(c.s.CommandHistory)
	b := c.buf()
	if b.Mode == ModeCommand {
		b.Mode = ModeNormal
	}
	b.clampCursor()
}

// commandKey edits the command line
func (c *call) commandKey(key input.Key) {
	line := c.s.CommandLine

	switch {
	case key.IsNamed(input.KeyEscape), key.IsCtrl('c'):
		c.leaveCommand()
		c.action("command_cancel")

	case key.IsNamed(input.KeyEnter):
		c.leaveCommand()
		if strings.TrimSpace(line) == "" {
			return
		}
		c.s.CommandHistory = pushHistory(c.s.CommandHistory, line)
		c.s.CommandHistPos = len(c.s.CommandHistory)
		c.exCommand(line)

	case key.IsNamed(input.KeyBackspace), key.IsCtrl('h'):
		if line == "" {
			c.leaveCommand()
			return
		}
		_, size := utf8.DecodeLastRuneInString(line)
		c.s.CommandLine = line[:len(line)-size]

	case key.IsCtrl('u'):
		c.s.CommandLine = ""

	case key.IsCtrl('w'):
		t := strings.TrimRight(line, " ")
		i := strings.LastIndexAny(t, " ,/")
		c.s.CommandLine = t[:i+1]

	case key.IsNamed(input.KeyUp):
		if c.s.CommandHistPos > 0 {
			c.s.CommandHistPos--
			c.s.CommandLine = c.s.CommandHistory[c.s.CommandHistPos]
		}

	case key.IsNamed(input.KeyDown):
		h := c.s.CommandHistory
		if c.s.CommandHistPos < len(h) {
			c.s.CommandHistPos++
		}
		c.s.CommandLine = ""
		if c.s.CommandHistPos < len(h) {
			c.s.CommandLine = h[c.s.CommandHistPos]
		}

	case key.IsNamed(input.KeyTab):
		c.completeCommand()

	case key.Printable():
		c.s.CommandLine += string(key.Rune)
	}
}

// completeCommand extends the command name to the longest common prefix of its matches
func (c *call) completeCommand() {
	line := c.s.CommandLine
	if strings.ContainsAny(line, " /") {
		return
	}
	var matches []string
	for _, cmd := range exCommands {
		if strings.HasPrefix(cmd.name, line) {
			matches = append(matches, cmd.name)
		}
	}
	switch len(matches) {
	case 0:
		return
	case 1:
		c.s.CommandLine = matches[0]
		return
	}
	prefix := commonPrefix(matches)
	if prefix != line {
		c.s.CommandLine = prefix
		return
	}
	c.info("%s", strings.Join(matches, "  "))
}

func commonPrefix(words []string) string {
	p := words[0]
	for _, w := range words[1:] {
		for !strings.HasPrefix(w, p) {
			p = p[:len(p)-1]
		}
	}
	return p
}
