// @lixen: #focus{lifecycle[split,close,select,zoom,swap,break]}
// @lixen: #interact{state[pane,window]}
package mux

import (
	"fmt"
	"strings"
)

// SplitHorizontal opens a new pane below the active one
func SplitHorizontal(s *State) (*State, Result) {
	return apply(s, zeroTime, (*call).splitHorizontal)
}

// SplitVertical opens a new pane to the right of the active one
func SplitVertical(s *State) (*State, Result) {
	return apply(s, zeroTime, (*call).splitVertical)
}

// ClosePane closes the active pane, reclaiming its space through one exactly matching neighbour
func ClosePane(s *State) (*State, Result) {
	return apply(s, zeroTime, (*call).closePane)
}

// SelectPane activates the pane with id
func SelectPane(s *State, id int) (*State, Result) {
	return apply(s, zeroTime, func(c *call) { c.selectPane(id) })
}

// SelectPaneDirection activates the neighbour of the active pane in dir
func SelectPaneDirection(s *State, dir Direction) (*State, Result) {
	return apply(s, zeroTime, func(c *call) { c.selectPaneDirection(dir) })
}

// NextPane activates the following pane, wrapping
func NextPane(s *State) (*State, Result) {
	return apply(s, zeroTime, (*call).nextPane)
}

// LastPane returns to the previously active pane
func LastPane(s *State) (*State, Result) {
	return apply(s, zeroTime, (*call).lastPane)
}

// SelectPaneByNumber activates the pane at position n of the window
func SelectPaneByNumber(s *State, n int) (*State, Result) {
	return apply(s, zeroTime, func(c *call) { c.selectPaneByNumber(n) })
}

// ToggleZoom zooms or unzooms the active pane
func ToggleZoom(s *State) (*State, Result) {
	return apply(s, zeroTime, (*call).toggleZoom)
}

// SwapPane exchanges the active pane with its neighbour in dir
func SwapPane(s *State, dir Direction) (*State, Result) {
	return apply(s, zeroTime, func(c *call) { c.swapPane(dir) })
}

// SwapPrev exchanges the active pane with the previous pane in order
func SwapPrev(s *State) (*State, Result) {
	return apply(s, zeroTime, func(c *call) { c.swapAdjacent(-1) })
}

// SwapNext exchanges the active pane with the next pane in order
func SwapNext(s *State) (*State, Result) {
	return apply(s, zeroTime, func(c *call) { c.swapAdjacent(1) })
}

// BreakPane moves the active pane into a new window of its own
func BreakPane(s *State) (*State, Result) {
	return apply(s, zeroTime, (*call).breakPane)
}

// === Split ===

func (c *call) splitHorizontal() {
	w := c.s.win()
	p := w.Pane(w.ActivePane)
	if p.Height/2 < SplitMinHeight {
		c.fail("Pane too small to split horizontally")
		return
	}
	c.unzoom(w)
	half := p.Height / 2
	p.Height -= half
	np := c.s.newPane(Rect{X: p.X, Y: p.Y + p.Height, Width: p.Width, Height: half})
	c.addPane(w, p, np)
	c.info("Split pane horizontally")
}

func (c *call) splitVertical() {
	w := c.s.win()
	p := w.Pane(w.ActivePane)
	if p.Width/2 < SplitMinWidth {
		c.fail("Pane too small to split vertically")
		return
	}
	c.unzoom(w)
	half := p.Width / 2
	p.Width -= half
	np := c.s.newPane(Rect{X: p.X + p.Width, Y: p.Y, Width: half, Height: p.Height})
	c.addPane(w, p, np)
	c.info("Split pane vertically")
}

func (c *call) addPane(w *Window, from, np *Pane) {
	w.Panes = append(w.Panes, np)
	w.LastActivePane = from.ID
	w.ActivePane = np.ID
	w.Layout = LayoutCustom
}

func (c *call) unzoom(w *Window) {
	for _, p := range w.Panes {
		p.Zoomed = false
	}
}

// === Close ===

func (c *call) closePane() {
	w := c.s.win()
	if len(w.Panes) == 1 {
		c.fail("Cannot close the only pane")
		return
	}
	c.removePane(w, w.ActivePane)
	c.info("Pane closed")
}

// removePane drops id from w and hands its rectangle to one exactly matching neighbour
func (c *call) removePane(w *Window, id int) {
	idx := w.paneIndex(id)
	gone := w.Panes[idx]
	w.Panes = append(w.Panes[:idx], w.Panes[idx+1:]...)
	c.unzoom(w)

	if n := reclaimer(w.Panes, gone.Rect()); n != nil {
		r := n.Rect()
		switch {
		case r.Bottom() == gone.Y:
			r.Height += gone.Height
		case gone.Bottom() == r.Y:
			r.Y = gone.Y
			r.Height += gone.Height
		case r.Right() == gone.X:
			r.Width += gone.Width
		default:
			r.X = gone.X
			r.Width += gone.Width
		}
		n.setRect(r)
	}

	if w.LastActivePane == id {
		w.LastActivePane = 0
	}
	if w.ActivePane == id {
		w.ActivePane = w.Panes[min(idx, len(w.Panes)-1)].ID
	}
	w.Layout = LayoutCustom
}

// reclaimer returns the first pane sharing an entire edge with r
func reclaimer(panes []*Pane, r Rect) *Pane {
	for _, p := range panes {
		q := p.Rect()
		sameColumn := q.X == r.X && q.Width == r.Width
		sameRow := q.Y == r.Y && q.Height == r.Height
		switch {
		case sameColumn && (q.Bottom() == r.Y || r.Bottom() == q.Y):
			return p
		case sameRow && (q.Right() == r.X || r.Right() == q.X):
			return p
		}
	}
	return nil
}

// === Select ===

func (c *call) activate(w *Window, id int) {
	if w.ActivePane != id {
		w.LastActivePane = w.ActivePane
		w.ActivePane = id
	}
}

func (c *call) selectPane(id int) {
	w := c.s.win()
	if w.Pane(id) == nil {
		c.fail("Pane %d not found", id)
		return
	}
	c.activate(w, id)
}

func (c *call) selectPaneDirection(dir Direction) {
	w := c.s.win()
	n := neighbour(w.Panes, w.Pane(w.ActivePane), dir)
	if n == nil {
		c.warn("%s", noPaneMessage(dir))
		return
	}
	c.unzoom(w)
	c.activate(w, n.ID)
}

func noPaneMessage(dir Direction) string {
	switch dir {
	case DirLeft:
		return "No pane to the left"
	case DirRight:
		return "No pane to the right"
	case DirUp:
		return "No pane above"
	}
	return "No pane below"
}

// neighbour finds the pane across the edge of p in dir
// Among panes touching that edge it prefers the one spanning p's centre, then the nearest centre
func neighbour(panes []*Pane, p *Pane, dir Direction) *Pane {
	r := p.Rect()
	cx2, cy2 := 2*r.X+r.Width, 2*r.Y+r.Height // doubled centre keeps integer math

	var best *Pane
	bestDist := 0
	for _, q := range panes {
		if q.ID == p.ID {
			continue
		}
		o := q.Rect()
		var touches bool
		switch dir {
		case DirLeft:
			touches = o.Right() == r.X && overlaps(o.Y, o.Bottom(), r.Y, r.Bottom())
		case DirRight:
			touches = o.X == r.Right() && overlaps(o.Y, o.Bottom(), r.Y, r.Bottom())
		case DirUp:
			touches = o.Bottom() == r.Y && overlaps(o.X, o.Right(), r.X, r.Right())
		case DirDown:
			touches = o.Y == r.Bottom() && overlaps(o.X, o.Right(), r.X, r.Right())
		}
		if !touches {
			continue
		}
		var dist int
		if dir.horizontal() {
			dist = abs(2*o.Y + o.Height - cy2)
		} else {
			dist = abs(2*o.X + o.Width - cx2)
		}
		if best == nil || dist < bestDist {
			best, bestDist = q, dist
		}
	}
	return best
}

func overlaps(a0, a1, b0, b1 int) bool {
	return a0 < b1 && b0 < a1
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func (c *call) nextPane() {
	w := c.s.win()
	if len(w.Panes) == 1 {
		c.warn("Only one pane in window")
		return
	}
	idx := w.paneIndex(w.ActivePane)
	c.unzoom(w)
	c.activate(w, w.Panes[(idx+1)%len(w.Panes)].ID)
}

func (c *call) lastPane() {
	w := c.s.win()
	if w.LastActivePane == 0 || w.Pane(w.LastActivePane) == nil {
		c.warn("No last active pane")
		return
	}
	c.unzoom(w)
	c.activate(w, w.LastActivePane)
}

func (c *call) selectPaneByNumber(n int) {
	w := c.s.win()
	if n < 0 || n >= len(w.Panes) {
		c.fail("Pane %d does not exist", n)
		return
	}
	c.unzoom(w)
	c.activate(w, w.Panes[n].ID)
}

// displayPanes lists pane numbers with the active one bracketed
func (c *call) displayPanes() {
	w := c.s.win()
	parts := make([]string, len(w.Panes))
	for i, p := range w.Panes {
		if p.ID == w.ActivePane {
			parts[i] = fmt.Sprintf("[%d]", i)
		} else {
			parts[i] = fmt.Sprintf("%d", i)
		}
	}
	c.info("Panes: %s", strings.Join(parts, " "))
}

// === Zoom, swap, break ===

func (c *call) toggleZoom() {
	w := c.s.win()
	if len(w.Panes) == 1 {
		c.warn("Only one pane in window")
		return
	}
	p := w.Pane(w.ActivePane)
	if p.Zoomed {
		p.Zoomed = false
		c.info("Pane unzoomed")
		return
	}
	c.unzoom(w)
	p.Zoomed = true
	c.info("Pane zoomed")
}

// swapWith exchanges rectangles and order of the active pane and other; focus follows the active pane
func (c *call) swapWith(w *Window, other *Pane) {
	p := w.Pane(w.ActivePane)
	pr, or := p.Rect(), other.Rect()
	p.setRect(or)
	other.setRect(pr)
	i, j := w.paneIndex(p.ID), w.paneIndex(other.ID)
	w.Panes[i], w.Panes[j] = w.Panes[j], w.Panes[i]
	c.unzoom(w)
	w.Layout = LayoutCustom
	c.info("Swapped panes")
}

func (c *call) swapPane(dir Direction) {
	w := c.s.win()
	n := neighbour(w.Panes, w.Pane(w.ActivePane), dir)
	if n == nil {
		c.warn("No pane to swap with %s", dir)
		return
	}
	c.swapWith(w, n)
}

func (c *call) swapAdjacent(step int) {
	w := c.s.win()
	if len(w.Panes) < 2 {
		c.warn("No pane to swap with")
		return
	}
	idx := w.paneIndex(w.ActivePane)
	j := (idx + step + len(w.Panes)) % len(w.Panes)
	c.swapWith(w, w.Panes[j])
}

func (c *call) breakPane() {
	sess := c.s.sess()
	w := c.s.win()
	if len(w.Panes) == 1 {
		c.fail("Can't break out the only pane")
		return
	}
	p := w.Pane(w.ActivePane)
	c.removePane(w, p.ID)

	p.setRect(Rect{Width: c.s.Width, Height: c.s.Height})
	p.Zoomed = false
	name := p.Title
	if name == "" {
		name = windowName(sess, len(sess.Windows))
	}
	nw := &Window{
		ID:         c.s.IDs.window(),
		Name:       name,
		Index:      len(sess.Windows),
		Panes:      []*Pane{p},
		ActivePane: p.ID,
		Layout:     LayoutEvenHorizontal,
	}
	sess.Windows = append(sess.Windows, nw)
	sess.LastActiveWindow = w.ID
	sess.ActiveWindow = nw.ID
	c.info("Pane broken out to window %d", nw.Index)
}
