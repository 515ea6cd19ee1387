// @lixen: #focus{control[prefix,bindings]}
// @lixen: #interact{state[session,window,pane]}
package mux

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/vi-dojo/input"
)

// binding is one key reachable after the prefix
type binding struct {
	key  input.Key
	desc string
	run  func(c *call)
}

var prefixBindings []binding

func init() {
	resizeBy := func(dir Direction, amount int) func(c *call) {
		return func(c *call) { c.resize(dir, amount) }
	}
	step := func(c *call) int { return c.e.resizeStep }
	arrows := []struct {
		name input.KeyName
		dir  Direction
	}{
		{input.KeyUp, DirUp}, {input.KeyDown, DirDown}, {input.KeyLeft, DirLeft}, {input.KeyRight, DirRight},
	}

	b := []binding{
		{input.RuneKey('%'), "Split pane left/right", (*call).splitVertical},
		{input.RuneKey('"'), "Split pane top/bottom", (*call).splitHorizontal},
		{input.RuneKey('x'), "Kill pane", (*call).killPane},
		{input.RuneKey('z'), "Zoom pane", (*call).toggleZoom},
		{input.RuneKey('o'), "Next pane", (*call).nextPane},
		{input.RuneKey(';'), "Last pane", (*call).lastPane},
		{input.RuneKey('q'), "Display pane numbers", (*call).displayPanes},
		{input.RuneKey('{'), "Swap with previous pane", func(c *call) { c.swapAdjacent(-1) }},
		{input.RuneKey('}'), "Swap with next pane", func(c *call) { c.swapAdjacent(1) }},
		{input.RuneKey('!'), "Break pane into window", (*call).breakPane},
		{input.RuneKey(' '), "Next layout", (*call).cycleLayout},

		{input.RuneKey('c'), "Create new window", func(c *call) { c.newWindow("") }},
		{input.RuneKey('&'), "Kill window", (*call).killWindow},
		{input.RuneKey(','), "Rename window", func(c *call) { c.openPrompt(PromptRenameWindow, c.s.win().Name) }},
		{input.RuneKey('n'), "Next window", func(c *call) { c.stepWindow(1) }},
		{input.RuneKey('p'), "Previous window", func(c *call) { c.stepWindow(-1) }},
		{input.RuneKey('l'), "Last window", (*call).lastWindow},
		{input.RuneKey('w'), "List windows", (*call).listWindows},
		{input.RuneKey('f'), "Find window", func(c *call) { c.openPrompt(PromptFindWindow, "") }},

		{input.RuneKey('$'), "Rename session", func(c *call) { c.openPrompt(PromptRenameSession, c.s.sess().Name) }},
		{input.RuneKey('C'), "New session", func(c *call) { c.openPrompt(PromptNewSession, "") }},
		{input.RuneKey('('), "Previous session", func(c *call) { c.stepSession(-1) }},
		{input.RuneKey(')'), "Next session", func(c *call) { c.stepSession(1) }},
		{input.RuneKey('L'), "Last session", (*call).lastSession},
		{input.RuneKey('s'), "List sessions", (*call).listSessions},
		{input.RuneKey('d'), "Detach session", (*call).detach},

		{input.RuneKey('['), "Copy mode", (*call).enterCopyMode},
		{input.RuneKey(']'), "Paste buffer", (*call).paste},
		{input.RuneKey('#'), "List buffers", (*call).listBuffers},
		{input.RuneKey('-'), "Delete buffer", (*call).deleteBuffer},
		{input.RuneKey('='), "Choose buffer", func(c *call) {
			c.listBuffers()
			if len(c.s.PasteBuffers) > 0 {
				c.openPrompt(PromptCommand, "choose-buffer ")
			}
		}},

		{input.RuneKey(':'), "Command prompt", func(c *call) { c.openPrompt(PromptCommand, "") }},
		{input.RuneKey('m'), "Toggle mouse", func(c *call) { c.setMouse(!c.s.MouseMode) }},
		{input.RuneKey('?'), "List keys", (*call).listKeys},
	}

	for i := range 10 {
		b = append(b, binding{input.RuneKey(rune('0' + i)), fmt.Sprintf("Select window %d", i), func(c *call) { c.selectWindow(i) }})
	}
	for _, a := range arrows {
		b = append(b,
			binding{input.NamedKey(a.name), "Select pane " + a.dir.String(), func(c *call) { c.selectPaneDirection(a.dir) }},
			binding{input.Key{Name: a.name, Ctrl: true}, "Resize pane " + a.dir.String() + " by 1", resizeBy(a.dir, 1)},
			binding{input.Key{Name: a.name, Alt: true}, "Resize pane " + a.dir.String() + " by step", func(c *call) { c.resize(a.dir, step(c)) }},
		)
	}
	for i, l := range layoutCycle {
		b = append(b, binding{input.AltKey(rune('1' + i)), "Layout " + l.String(), func(c *call) { c.applyLayout(l) }})
	}
	prefixBindings = b
}

// prefixed runs the binding for a key pressed while the prefix is armed
func (c *call) prefixed(key input.Key) {
	if key == c.e.prefix {
		return
	}
	for _, b := range prefixBindings {
		if b.key == key {
			b.run(c)
			return
		}
	}
	c.warn("Unbound key: %s", input.EncodeKey(key))
}

func (c *call) listKeys() {
	prefix := input.EncodeKey(c.e.prefix)
	lines := make([]string, len(prefixBindings))
	for i, b := range prefixBindings {
		lines[i] = fmt.Sprintf("%s %-10s %s", prefix, input.EncodeKey(b.key), b.desc)
	}
	c.output(strings.Join(lines, "\n"))
	c.info("%d key bindings", len(lines))
}
