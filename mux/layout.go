// @lixen: #focus{layout[preset,tree,recalculate,border]}
// @lixen: #interact{state[window,pane]}
package mux

import (
	"math"
	"slices"
)

// ApplyLayout rearranges the active window with a preset
func ApplyLayout(s *State, l Layout) (*State, Result) {
	return apply(s, zeroTime, func(c *call) { c.applyLayout(l) })
}

// CycleLayout applies the preset following the current one
func CycleLayout(s *State) (*State, Result) {
	return apply(s, zeroTime, (*call).cycleLayout)
}

// Recalculate resizes every window to a new container
// Preset windows are recomputed; custom ones are laid out from their split tree
func Recalculate(s *State, width, height int) *State {
	ns := s.Clone()
	if width <= 0 || height <= 0 {
		return ns
	}
	for _, sess := range ns.Sessions {
		for _, w := range sess.Windows {
			resizeWindow(w, ns.Width, ns.Height, width, height)
		}
	}
	ns.Width, ns.Height = width, height
	return ns
}

func (c *call) applyLayout(l Layout) {
	if l == LayoutCustom {
		c.fail("Unknown layout: %s", l)
		return
	}
	w := c.s.win()
	c.unzoom(w)
	arrange(w, l, c.s.Width, c.s.Height)
	c.info("Layout: %s", l)
}

func (c *call) cycleLayout() {
	cur := c.s.win().Layout
	next := layoutCycle[0]
	if i := slices.Index(layoutCycle, cur); i >= 0 {
		next = layoutCycle[(i+1)%len(layoutCycle)]
	}
	c.applyLayout(next)
}

// arrange sets every pane rectangle of w from preset l over a width x height container
func arrange(w *Window, l Layout, width, height int) {
	rects := PresetRects(l, len(w.Panes), width, height)
	for i, p := range w.Panes {
		p.setRect(rects[i])
	}
	w.Layout = l
}

// PresetRects computes n rectangles tiling a width x height container
// The last pane of each run takes the remainder so the container is covered exactly
func PresetRects(l Layout, n, width, height int) []Rect {
	out := make([]Rect, n)
	if n == 0 {
		return out
	}
	full := Rect{Width: width, Height: height}
	if n == 1 {
		out[0] = full
		return out
	}

	switch l {
	case LayoutEvenVertical:
		copy(out, stack(full, n))
	case LayoutMainHorizontal:
		mainH := height * 6 / 10
		out[0] = Rect{Width: width, Height: mainH}
		copy(out[1:], row(Rect{Y: mainH, Width: width, Height: height - mainH}, n-1))
	case LayoutMainVertical:
		mainW := width * 6 / 10
		out[0] = Rect{Width: mainW, Height: height}
		copy(out[1:], stack(Rect{X: mainW, Width: width - mainW, Height: height}, n-1))
	case LayoutTiled:
		cols := int(math.Ceil(math.Sqrt(float64(n))))
		rows := (n + cols - 1) / cols
		cellH := height / rows
		for r := range rows {
			y := r * cellH
			h := cellH
			if r == rows-1 {
				h = height - y
			}
			first := r * cols
			count := min(cols, n-first)
			// Short last row still spans the full width
			cellW := width / cols
			for k := range count {
				x := k * cellW
				wd := cellW
				if k == count-1 {
					wd = width - x
				}
				out[first+k] = Rect{X: x, Y: y, Width: wd, Height: h}
			}
		}
	default:
		copy(out, row(full, n))
	}
	return out
}

// row splits r into n side-by-side rectangles
func row(r Rect, n int) []Rect {
	out := make([]Rect, n)
	each := r.Width / n
	x := r.X
	for i := range n {
		wd := each
		if i == n-1 {
			wd = r.Right() - x
		}
		out[i] = Rect{X: x, Y: r.Y, Width: wd, Height: r.Height}
		x += wd
	}
	return out
}

// stack splits r into n stacked rectangles
func stack(r Rect, n int) []Rect {
	out := make([]Rect, n)
	each := r.Height / n
	y := r.Y
	for i := range n {
		h := each
		if i == n-1 {
			h = r.Bottom() - y
		}
		out[i] = Rect{X: r.X, Y: y, Width: r.Width, Height: h}
		y += h
	}
	return out
}

// === Split tree ===

// SplitKind is the cut of an inner layout node
type SplitKind uint8

const (
	SplitNone    SplitKind = iota // leaf
	SplitRows                     // top and bottom
	SplitColumns                  // left and right
)

// LayoutNode is a binary split tree over pane ids
// Ratio is the share of the first child along the cut axis
type LayoutNode struct {
	Split    SplitKind      `json:"split"`
	Pane     int            `json:"pane,omitempty"`
	Ratio    float64        `json:"ratio,omitempty"`
	Children [2]*LayoutNode `json:"children,omitempty"`
}

// BuildLayoutTree reconstructs a binary split tree from pane rectangles
// Panes are ordered by row then column; a cut between rows is preferred over a cut between columns
// It returns nil when the rectangles admit no straight cut
func BuildLayoutTree(panes []*Pane) *LayoutNode {
	if len(panes) == 0 {
		return nil
	}
	sorted := slices.Clone(panes)
	slices.SortStableFunc(sorted, func(a, b *Pane) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
	return buildTree(sorted)
}

func buildTree(panes []*Pane) *LayoutNode {
	if len(panes) == 1 {
		return &LayoutNode{Pane: panes[0].ID}
	}
	bounds := boundsOf(panes)

	if cut, ok := findCut(panes, func(p *Pane) (int, int) { return p.Y, p.Bottom() }); ok {
		first, second := partition(panes, func(p *Pane) bool { return p.Y < cut })
		return split(SplitRows, first, second, float64(cut-bounds.Y)/float64(bounds.Height))
	}
	if cut, ok := findCut(panes, func(p *Pane) (int, int) { return p.X, p.Right() }); ok {
		first, second := partition(panes, func(p *Pane) bool { return p.X < cut })
		return split(SplitColumns, first, second, float64(cut-bounds.X)/float64(bounds.Width))
	}
	return nil
}

func split(kind SplitKind, first, second []*Pane, ratio float64) *LayoutNode {
	a, b := buildTree(first), buildTree(second)
	if a == nil || b == nil {
		return nil
	}
	return &LayoutNode{Split: kind, Ratio: ratio, Children: [2]*LayoutNode{a, b}}
}

// findCut returns the smallest interior coordinate that no pane straddles
func findCut(panes []*Pane, span func(*Pane) (int, int)) (int, bool) {
	lo, _ := span(panes[0])
	var starts []int
	for _, p := range panes {
		s, _ := span(p)
		lo = min(lo, s)
		starts = append(starts, s)
	}
	slices.Sort(starts)
	for _, cut := range slices.Compact(starts) {
		if cut == lo {
			continue
		}
		clean := true
		for _, p := range panes {
			if s, e := span(p); s < cut && cut < e {
				clean = false
				break
			}
		}
		if clean {
			return cut, true
		}
	}
	return 0, false
}

func partition(panes []*Pane, first func(*Pane) bool) (a, b []*Pane) {
	for _, p := range panes {
		if first(p) {
			a = append(a, p)
		} else {
			b = append(b, p)
		}
	}
	return a, b
}

func boundsOf(panes []*Pane) Rect {
	x0, y0 := panes[0].X, panes[0].Y
	x1, y1 := panes[0].Right(), panes[0].Bottom()
	for _, p := range panes[1:] {
		x0, y0 = min(x0, p.X), min(y0, p.Y)
		x1, y1 = max(x1, p.Right()), max(y1, p.Bottom())
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// LayoutFromTree lays the tree out proportionally over r, returning each pane's rectangle
func LayoutFromTree(node *LayoutNode, r Rect) map[int]Rect {
	out := make(map[int]Rect)
	layoutNode(node, r, out)
	return out
}

func layoutNode(n *LayoutNode, r Rect, out map[int]Rect) {
	if n == nil {
		return
	}
	switch n.Split {
	case SplitNone:
		out[n.Pane] = r
	case SplitRows:
		top := proportion(r.Height, n.Ratio)
		layoutNode(n.Children[0], Rect{X: r.X, Y: r.Y, Width: r.Width, Height: top}, out)
		layoutNode(n.Children[1], Rect{X: r.X, Y: r.Y + top, Width: r.Width, Height: r.Height - top}, out)
	case SplitColumns:
		left := proportion(r.Width, n.Ratio)
		layoutNode(n.Children[0], Rect{X: r.X, Y: r.Y, Width: left, Height: r.Height}, out)
		layoutNode(n.Children[1], Rect{X: r.X + left, Y: r.Y, Width: r.Width - left, Height: r.Height}, out)
	}
}

// proportion rounds total*ratio, keeping both sides non-empty when total allows
func proportion(total int, ratio float64) int {
	n := int(math.Round(float64(total) * ratio))
	if total >= 2 {
		n = max(1, min(n, total-1))
	}
	return n
}

// resizeWindow moves w from an old container size to a new one
func resizeWindow(w *Window, oldW, oldH, newW, newH int) {
	if w.Layout != LayoutCustom {
		arrange(w, w.Layout, newW, newH)
		return
	}
	if tree := BuildLayoutTree(w.Panes); tree != nil {
		rects := LayoutFromTree(tree, Rect{Width: newW, Height: newH})
		for _, p := range w.Panes {
			p.setRect(rects[p.ID])
		}
		return
	}
	// No straight cut: scale every edge, which keeps shared edges shared
	for _, p := range w.Panes {
		x0, x1 := scale(p.X, oldW, newW), scale(p.Right(), oldW, newW)
		y0, y1 := scale(p.Y, oldH, newH), scale(p.Bottom(), oldH, newH)
		p.setRect(Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0})
	}
}

func scale(v, from, to int) int {
	if from == 0 {
		return 0
	}
	return v * to / from
}

// === Borders ===

// Border is a shared edge between two panes
// X1,Y1..X2,Y2 are the inclusive cells on the far side of the edge
type Border struct {
	X1       int  `json:"x1"`
	Y1       int  `json:"y1"`
	X2       int  `json:"x2"`
	Y2       int  `json:"y2"`
	Vertical bool `json:"vertical"`
	Active   bool `json:"active"`
}

// BorderPositions reports every edge shared by two panes of w
func BorderPositions(w *Window) []Border {
	var out []Border
	for i, a := range w.Panes {
		for _, b := range w.Panes[i+1:] {
			active := a.ID == w.ActivePane || b.ID == w.ActivePane
			for _, pair := range [2][2]*Pane{{a, b}, {b, a}} {
				l, r := pair[0], pair[1]
				if l.Right() == r.X && overlaps(l.Y, l.Bottom(), r.Y, r.Bottom()) {
					y0, y1 := max(l.Y, r.Y), min(l.Bottom(), r.Bottom())
					out = append(out, Border{X1: r.X, Y1: y0, X2: r.X, Y2: y1 - 1, Vertical: true, Active: active})
				}
				if l.Bottom() == r.Y && overlaps(l.X, l.Right(), r.X, r.Right()) {
					x0, x1 := max(l.X, r.X), min(l.Right(), r.Right())
					out = append(out, Border{X1: x0, Y1: r.Y, X2: x1 - 1, Y2: r.Y, Active: active})
				}
			}
		}
	}
	return out
}
