// @lixen: #focus{control[mouse]}
// @lixen: #interact{state[pane,window,copymode]}
package mux

// Mouse events are ignored unless MouseMode is on

// SetMouse turns mouse handling on or off
func SetMouse(s *State, on bool) (*State, Result) {
	return apply(s, zeroTime, func(c *call) { c.setMouse(on) })
}

// ClickPane activates the pane under cell (x, y) of the window area
func ClickPane(s *State, x, y int) (*State, Result) {
	return apply(s, zeroTime, func(c *call) { c.clickPane(x, y) })
}

// ClickWindow activates the window at index, as from a status line click
func ClickWindow(s *State, index int) (*State, Result) {
	return apply(s, zeroTime, func(c *call) {
		if c.s.MouseMode && index != c.s.win().Index {
			c.selectWindow(index)
		}
	})
}

// ScrollWheel scrolls the active pane by delta lines; scrolling up enters copy mode
func ScrollWheel(s *State, delta int) (*State, Result) {
	return apply(s, zeroTime, func(c *call) { c.scrollWheel(delta) })
}

func (c *call) setMouse(on bool) {
	c.s.MouseMode = on
	if on {
		c.info("Mouse mode ON")
	} else {
		c.info("Mouse mode OFF")
	}
}

func (c *call) clickPane(x, y int) {
	if !c.s.MouseMode {
		return
	}
	w := c.s.win()
	if w.Zoomed() != nil {
		return
	}
	for _, p := range w.Panes {
		if p.Rect().Contains(x, y) {
			c.activate(w, p.ID)
			return
		}
	}
}

func (c *call) scrollWheel(delta int) {
	if !c.s.MouseMode || delta == 0 {
		return
	}
	cm := &c.s.CopyMode
	if !cm.Enabled {
		if delta > 0 {
			return
		}
		c.enterCopyMode()
	}
	p := c.s.pane()
	lines := p.Lines()
	cm.Cursor = clampPos(Position{Line: cm.Cursor.Line + delta, Col: cm.Cursor.Col}, lines)
	p.ScrollPos = max(0, p.ScrollPos+delta)
	c.follow(p, lines)
	if delta > 0 && cm.Cursor.Line == len(lines)-1 && !cm.Selecting {
		c.exitCopyMode()
	}
}
