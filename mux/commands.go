// @lixen: #focus{prompt[command,table]}
// @lixen: #interact{state[session,window,pane,paste]}
package mux

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/lixenwraith/vi-dojo/input"
)

// command is one prompt command with its short alias
type command struct {
	name  string
	alias string
	run   func(c *call, args []string)
}

var commandTable []command

func init() {
	commandTable = []command{
		{"new-window", "neww", func(c *call, args []string) {
			name, _ := flagValue(args, "-n")
			c.newWindow(name)
		}},
		{"split-window", "splitw", func(c *call, args []string) {
			if hasFlag(args, "-h") {
				c.splitVertical()
				return
			}
			c.splitHorizontal()
		}},
		{"select-pane", "selectp", (*call).cmdSelectPane},
		{"resize-pane", "resizep", (*call).cmdResizePane},
		{"swap-pane", "swapp", func(c *call, args []string) {
			if hasFlag(args, "-U") {
				c.swapAdjacent(-1)
				return
			}
			c.swapAdjacent(1)
		}},
		{"kill-pane", "killp", func(c *call, _ []string) { c.killPane() }},
		{"kill-window", "killw", func(c *call, _ []string) { c.killWindow() }},
		{"rename-window", "renamew", func(c *call, args []string) {
			if len(args) == 0 {
				c.openPrompt(PromptRenameWindow, c.s.win().Name)
				return
			}
			c.renameWindow(strings.Join(args, " "))
		}},
		{"rename-session", "rename", func(c *call, args []string) {
			if len(args) == 0 {
				c.openPrompt(PromptRenameSession, c.s.sess().Name)
				return
			}
			c.renameSession(strings.Join(args, " "))
		}},
		{"new-session", "new", func(c *call, args []string) {
			name, _ := flagValue(args, "-s")
			c.newSession(name)
		}},
		{"kill-session", "", func(c *call, _ []string) { c.killSession() }},
		{"switch-client", "switchc", (*call).cmdSwitchClient},
		{"select-window", "selectw", func(c *call, args []string) {
			if n, ok := intFlag(args, "-t"); ok {
				c.selectWindow(n)
				return
			}
			c.fail("Usage: select-window -t INDEX")
		}},
		{"move-window", "movew", func(c *call, args []string) {
			if n, ok := intFlag(args, "-t"); ok {
				c.moveWindow(n)
				return
			}
			c.fail("Usage: move-window -t INDEX")
		}},
		{"next-window", "next", func(c *call, _ []string) { c.stepWindow(1) }},
		{"previous-window", "prev", func(c *call, _ []string) { c.stepWindow(-1) }},
		{"last-window", "last", func(c *call, _ []string) { c.lastWindow() }},
		{"find-window", "findw", func(c *call, args []string) {
			if len(args) == 0 {
				c.openPrompt(PromptFindWindow, "")
				return
			}
			c.findWindow(strings.Join(args, " "))
		}},
		{"select-layout", "selectl", func(c *call, args []string) {
			if len(args) == 0 {
				c.fail("Usage: select-layout NAME")
				return
			}
			l, ok := ParseLayout(args[0])
			if !ok {
				c.fail("Unknown layout: %s", args[0])
				return
			}
			c.applyLayout(l)
		}},
		{"next-layout", "nextl", func(c *call, _ []string) { c.cycleLayout() }},
		{"break-pane", "breakp", func(c *call, _ []string) { c.breakPane() }},
		{"display-panes", "displayp", func(c *call, _ []string) { c.displayPanes() }},
		{"copy-mode", "", func(c *call, _ []string) { c.enterCopyMode() }},
		{"paste-buffer", "pasteb", func(c *call, _ []string) { c.paste() }},
		{"list-buffers", "lsb", func(c *call, _ []string) { c.listBuffers() }},
		{"delete-buffer", "deleteb", func(c *call, _ []string) { c.deleteBuffer() }},
		{"set-buffer", "setb", func(c *call, args []string) {
			if len(args) == 0 {
				c.fail("Usage: set-buffer TEXT")
				return
			}
			text := strings.Join(args, " ")
			c.pushBuffer(text)
			c.info("Added %d bytes to buffer", len(text))
		}},
		{"choose-buffer", "", func(c *call, args []string) {
			n := 0
			if len(args) > 0 {
				v, err := strconv.Atoi(args[len(args)-1])
				if err != nil {
					c.fail("Invalid buffer index: %s", args[len(args)-1])
					return
				}
				n = v
			}
			c.chooseBuffer(n)
		}},
		{"list-sessions", "ls", func(c *call, _ []string) { c.listSessions() }},
		{"list-windows", "lsw", func(c *call, _ []string) { c.listWindows() }},
		{"list-panes", "lsp", func(c *call, _ []string) { c.listPanes() }},
		{"detach-client", "detach", func(c *call, _ []string) { c.detach() }},
		{"list-keys", "lsk", func(c *call, _ []string) { c.listKeys() }},
		{"show-options", "show", func(c *call, _ []string) { c.showOptions() }},
		{"set-option", "set", (*call).cmdSetOption},
	}
}

// lookupCommand resolves a full name or alias
func lookupCommand(name string) *command {
	for i := range commandTable {
		if commandTable[i].name == name || (commandTable[i].alias != "" && commandTable[i].alias == name) {
			return &commandTable[i]
		}
	}
	return nil
}

// execute runs one prompt line; non-empty lines enter the history
func (c *call) execute(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	c.remember(line)
	fields := strings.Fields(line)
	cmd := lookupCommand(fields[0])
	if cmd == nil {
		c.fail("Unknown command: %s", fields[0])
		return
	}
	cmd.run(c, fields[1:])
}

// === Argument helpers ===

func hasFlag(args []string, flag string) bool {
	return slices.Contains(args, flag)
}

func flagValue(args []string, flag string) (string, bool) {
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return args[i+1], true
		}
	}
	return "", false
}

func intFlag(args []string, flag string) (int, bool) {
	v, ok := flagValue(args, flag)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(v, ":"))
	return n, err == nil
}

// dirFlag reads the first of -L -R -U -D
func dirFlag(args []string) (Direction, bool) {
	for _, a := range args {
		switch a {
		case "-L":
			return DirLeft, true
		case "-R":
			return DirRight, true
		case "-U":
			return DirUp, true
		case "-D":
			return DirDown, true
		}
	}
	return 0, false
}

// === Commands with their own parsing ===

func (c *call) cmdSelectPane(args []string) {
	if n, ok := intFlag(args, "-t"); ok {
		c.selectPaneByNumber(n)
		return
	}
	if dir, ok := dirFlag(args); ok {
		c.selectPaneDirection(dir)
		return
	}
	c.fail("Usage: select-pane -L|-R|-U|-D|-t N")
}

func (c *call) cmdResizePane(args []string) {
	if hasFlag(args, "-Z") {
		c.toggleZoom()
		return
	}
	dir, ok := dirFlag(args)
	if !ok {
		c.fail("Direction required (-L/-R/-U/-D)")
		return
	}
	amount := 1
	for _, a := range args {
		if n, err := strconv.Atoi(a); err == nil && n > 0 {
			amount = n
		}
	}
	c.resize(dir, amount)
}

func (c *call) cmdSwitchClient(args []string) {
	switch {
	case hasFlag(args, "-n"):
		c.stepSession(1)
	case hasFlag(args, "-p"):
		c.stepSession(-1)
	case hasFlag(args, "-l"):
		c.lastSession()
	default:
		name, ok := flagValue(args, "-t")
		if !ok {
			c.fail("Usage: switch-client -t SESSION | -n | -p | -l")
			return
		}
		sess := c.sessionNamed(name)
		if sess == nil {
			c.fail("Session not found")
			return
		}
		c.switchSession(sess.ID)
	}
}

func (c *call) cmdSetOption(args []string) {
	rest := slices.DeleteFunc(slices.Clone(args), func(a string) bool { return strings.HasPrefix(a, "-") })
	if len(rest) == 0 {
		c.showOptions()
		return
	}
	switch rest[0] {
	case "mouse":
		if len(rest) < 2 {
			c.setMouse(!c.s.MouseMode)
			return
		}
		switch rest[1] {
		case "on":
			c.setMouse(true)
		case "off":
			c.setMouse(false)
		default:
			c.fail("Invalid value for mouse: %s", rest[1])
		}
	default:
		c.fail("Unknown option: %s", rest[0])
	}
}

// killPane closes the active pane, or its window when it is the last pane
func (c *call) killPane() {
	sess := c.s.sess()
	w := c.s.win()
	if len(w.Panes) > 1 {
		c.removePane(w, w.ActivePane)
		c.info("Closed pane")
		return
	}
	if len(sess.Windows) == 1 {
		c.fail("Cannot close last pane in last window")
		return
	}
	c.removeWindow(sess, w.ID)
	c.info("Closed window")
}

func (c *call) listPanes() {
	w := c.s.win()
	lines := make([]string, len(w.Panes))
	for i, p := range w.Panes {
		flag := ""
		if p.ID == w.ActivePane {
			flag = " (active)"
		}
		lines[i] = fmt.Sprintf("%d: [%dx%d] at %d,%d %%%d%s", i, p.Width, p.Height, p.X, p.Y, p.ID, flag)
	}
	c.output(strings.Join(lines, "\n"))
	c.info("%d panes", len(w.Panes))
}

func (c *call) showOptions() {
	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}
	lines := []string{
		"prefix " + input.EncodeKey(c.e.prefix),
		fmt.Sprintf("prefix-timeout %dms", c.e.prefixTimeout.Milliseconds()),
		"mouse " + onOff(c.s.MouseMode),
		"copy-mode " + onOff(c.s.CopyMode.Enabled),
		fmt.Sprintf("sessions %d", len(c.s.Sessions)),
		fmt.Sprintf("windows %d", len(c.s.sess().Windows)),
		fmt.Sprintf("panes %d", len(c.s.win().Panes)),
		fmt.Sprintf("buffers %d", len(c.s.PasteBuffers)),
		fmt.Sprintf("history-limit %d", MaxScrollback),
	}
	c.output(strings.Join(lines, "\n"))
	c.info("Options")
}
