// @lixen: #focus{layout[resize]}
// @lixen: #interact{state[window,pane]}
package mux

// Resize moves the shared boundary of the active pane by amount cells in dir
// Every pane touching the moved edge moves with it, so the window stays tiled
func Resize(s *State, dir Direction, amount int) (*State, Result) {
	return apply(s, zeroTime, func(c *call) { c.resize(dir, amount) })
}

// axis projects pane geometry onto the resize direction
type axis bool

const (
	axisX axis = true
	axisY axis = false
)

// span returns start and end along the axis
func (a axis) span(p *Pane) (int, int) {
	if a == axisX {
		return p.X, p.Right()
	}
	return p.Y, p.Bottom()
}

// cross returns start and end across the axis
func (a axis) cross(p *Pane) (int, int) {
	if a == axisX {
		return p.Y, p.Bottom()
	}
	return p.X, p.Right()
}

func (a axis) size(p *Pane) int {
	lo, hi := a.span(p)
	return hi - lo
}

func (a axis) shift(p *Pane, start, size int) {
	if a == axisX {
		p.X += start
		p.Width += size
		return
	}
	p.Y += start
	p.Height += size
}

func (c *call) resize(dir Direction, amount int) {
	w := c.s.win()
	p := w.Pane(w.ActivePane)
	if p.Zoomed {
		c.fail("Cannot resize zoomed pane")
		return
	}
	if amount <= 0 {
		amount = c.e.resizeStep
	}

	ax := axis(dir.horizontal())
	lo, hi := ax.span(p)
	// Left and up prefer the near edge, right and down the far one; the edge always moves in dir
	preferred, fallback, delta := lo, hi, -amount
	if dir == DirRight || dir == DirDown {
		preferred, fallback, delta = hi, lo, amount
	}

	edge := preferred
	if !touchesEdge(w.Panes, p, ax, edge) {
		edge = fallback
		if !touchesEdge(w.Panes, p, ax, edge) {
			c.warn("Cannot resize in this direction")
			return
		}
	}

	before, after := edgeClosure(w.Panes, p, ax, edge)
	minSize, minMsg := MinPaneHeight, "Pane at minimum height"
	if ax == axisX {
		minSize, minMsg = MinPaneWidth, "Pane at minimum width"
	}
	for _, q := range before {
		if ax.size(q)+delta < minSize {
			c.warn("%s", minMsg)
			return
		}
	}
	for _, q := range after {
		if ax.size(q)-delta < minSize {
			c.warn("%s", minMsg)
			return
		}
	}

	for _, q := range before {
		ax.shift(q, 0, delta)
	}
	for _, q := range after {
		ax.shift(q, delta, -delta)
	}
	w.Layout = LayoutCustom
}

// touchesEdge reports whether another pane lies across p's edge at coordinate edge
func touchesEdge(panes []*Pane, p *Pane, ax axis, edge int) bool {
	lo, _ := ax.span(p)
	c0, c1 := ax.cross(p)
	for _, q := range panes {
		if q.ID == p.ID {
			continue
		}
		qlo, qhi := ax.span(q)
		q0, q1 := ax.cross(q)
		if !overlaps(c0, c1, q0, q1) {
			continue
		}
		if (edge == lo && qhi == edge) || (edge != lo && qlo == edge) {
			return true
		}
	}
	return false
}

// edgeClosure collects the panes ending (before) and starting (after) at edge
// The segment grows from p's extent until no touching pane overlaps it any further
func edgeClosure(panes []*Pane, p *Pane, ax axis, edge int) (before, after []*Pane) {
	seg0, seg1 := ax.cross(p)
	taken := make(map[int]bool)
	for grown := true; grown; {
		grown = false
		for _, q := range panes {
			if taken[q.ID] {
				continue
			}
			qlo, qhi := ax.span(q)
			if qlo != edge && qhi != edge {
				continue
			}
			q0, q1 := ax.cross(q)
			if !overlaps(seg0, seg1, q0, q1) {
				continue
			}
			taken[q.ID] = true
			seg0, seg1 = min(seg0, q0), max(seg1, q1)
			grown = true
			if qhi == edge {
				before = append(before, q)
			} else {
				after = append(after, q)
			}
		}
	}
	return before, after
}
