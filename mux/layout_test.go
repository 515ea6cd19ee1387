package mux

import (
	"testing"

	"pgregory.net/rapid"
)

func threePanes(t *testing.T) *State {
	t.Helper()
	s := newTestState()
	s, _ = SplitVertical(s)
	s, _ = SplitHorizontal(s)
	return s
}

func TestApplyLayoutMainVertical(t *testing.T) {
	s := threePanes(t)
	s, res := ApplyLayout(s, LayoutMainVertical)
	expectMessage(t, res, "Layout: main-vertical")
	w := s.Window()
	expectRect(t, w.Panes[0], Rect{X: 0, Y: 0, Width: 72, Height: 40})
	expectRect(t, w.Panes[1], Rect{X: 72, Y: 0, Width: 48, Height: 20})
	expectRect(t, w.Panes[2], Rect{X: 72, Y: 20, Width: 48, Height: 20})
	if w.Layout != LayoutMainVertical {
		t.Errorf("layout: expected main-vertical, got %s", w.Layout)
	}
}

func TestApplyLayoutTiledShortRow(t *testing.T) {
	s := threePanes(t)
	s, _ = ApplyLayout(s, LayoutTiled)
	w := s.Window()
	expectRect(t, w.Panes[0], Rect{X: 0, Y: 0, Width: 60, Height: 20})
	expectRect(t, w.Panes[1], Rect{X: 60, Y: 0, Width: 60, Height: 20})
	expectRect(t, w.Panes[2], Rect{X: 0, Y: 20, Width: 120, Height: 20})
}

func TestApplyCustomLayoutRejected(t *testing.T) {
	_, res := ApplyLayout(newTestState(), LayoutCustom)
	expectMessage(t, res, "Unknown layout: custom")
}

func TestCycleLayout(t *testing.T) {
	s := threePanes(t)
	s, _ = CycleLayout(s)
	if s.Window().Layout != LayoutEvenHorizontal {
		t.Errorf("from custom: expected even-horizontal, got %s", s.Window().Layout)
	}
	s, _ = CycleLayout(s)
	if s.Window().Layout != LayoutEvenVertical {
		t.Errorf("expected even-vertical, got %s", s.Window().Layout)
	}
	for range len(layoutCycle) - 1 {
		s, _ = CycleLayout(s)
	}
	if s.Window().Layout != LayoutEvenHorizontal {
		t.Errorf("cycle should wrap, got %s", s.Window().Layout)
	}
}

func TestPresetRectsTile(t *testing.T) {
	for _, l := range layoutCycle {
		for n := 1; n <= 9; n++ {
			w := &Window{}
			for i := range n {
				w.Panes = append(w.Panes, &Pane{ID: i + 1})
			}
			arrange(w, l, 97, 31)
			if err := tilingError(w, 97, 31); err != nil {
				t.Errorf("%s with %d panes: %v", l, n, err)
			}
		}
	}
}

func TestLayoutTreeRoundTrip(t *testing.T) {
	s := threePanes(t)
	w := s.Window()
	tree := BuildLayoutTree(w.Panes)
	if tree == nil {
		t.Fatal("expected a layout tree")
	}
	if tree.Split != SplitColumns {
		t.Errorf("root: expected column split, got %d", tree.Split)
	}
	rects := LayoutFromTree(tree, Rect{Width: s.Width, Height: s.Height})
	for _, p := range w.Panes {
		if rects[p.ID] != p.Rect() {
			t.Errorf("pane %d: expected %+v, got %+v", p.ID, p.Rect(), rects[p.ID])
		}
	}
}

func TestBuildLayoutTreeWithoutCut(t *testing.T) {
	// Pinwheel: no straight line crosses the container without cutting a pane
	panes := []*Pane{
		{ID: 1, X: 0, Y: 0, Width: 20, Height: 10},
		{ID: 2, X: 20, Y: 0, Width: 10, Height: 20},
		{ID: 3, X: 10, Y: 20, Width: 20, Height: 10},
		{ID: 4, X: 0, Y: 10, Width: 10, Height: 20},
		{ID: 5, X: 10, Y: 10, Width: 10, Height: 10},
	}
	if tree := BuildLayoutTree(panes); tree != nil {
		t.Errorf("expected no tree, got split %d", tree.Split)
	}
}

func TestRecalculateKeepsProportions(t *testing.T) {
	s := threePanes(t)
	ns := Recalculate(s, 100, 30)
	if ns.Width != 100 || ns.Height != 30 {
		t.Fatalf("size: expected 100x30, got %dx%d", ns.Width, ns.Height)
	}
	w := ns.Window()
	expectRect(t, w.Panes[0], Rect{X: 0, Y: 0, Width: 50, Height: 30})
	expectRect(t, w.Panes[1], Rect{X: 50, Y: 0, Width: 50, Height: 15})
	expectRect(t, w.Panes[2], Rect{X: 50, Y: 15, Width: 50, Height: 15})
	if s.Width != 120 {
		t.Error("input state changed")
	}
}

func TestRecalculatePresetAndInvalidSize(t *testing.T) {
	s := threePanes(t)
	s, _ = ApplyLayout(s, LayoutEvenVertical)
	ns := Recalculate(s, 80, 24)
	if err := tilingError(ns.Window(), 80, 24); err != nil {
		t.Error(err)
	}
	if ns.Window().Layout != LayoutEvenVertical {
		t.Errorf("layout lost: %s", ns.Window().Layout)
	}
	same := Recalculate(s, 0, 24)
	if same.Width != s.Width || same.Height != s.Height {
		t.Errorf("non-positive size should be ignored, got %dx%d", same.Width, same.Height)
	}
}

func TestBorderPositions(t *testing.T) {
	s := newTestState()
	s, _ = SplitVertical(s)
	borders := BorderPositions(s.Window())
	if len(borders) != 1 {
		t.Fatalf("expected 1 border, got %d", len(borders))
	}
	b := borders[0]
	want := Border{X1: 60, Y1: 0, X2: 60, Y2: 39, Vertical: true, Active: true}
	if b != want {
		t.Errorf("expected %+v, got %+v", want, b)
	}
}

func TestResizeMovesSharedEdge(t *testing.T) {
	s := newTestState()
	s, _ = SplitVertical(s)

	s, _ = Resize(s, DirRight, 5)
	w := s.Window()
	expectRect(t, w.Panes[0], Rect{X: 0, Y: 0, Width: 65, Height: 40})
	expectRect(t, w.Panes[1], Rect{X: 65, Y: 0, Width: 55, Height: 40})

	s, _ = Resize(s, DirLeft, 10)
	w = s.Window()
	expectRect(t, w.Panes[0], Rect{X: 0, Y: 0, Width: 55, Height: 40})
	expectRect(t, w.Panes[1], Rect{X: 55, Y: 0, Width: 65, Height: 40})
}

func TestResizeDefaultStep(t *testing.T) {
	s := newTestState()
	s, _ = SplitVertical(s)
	s, _ = Resize(s, DirLeft, 0)
	if got := s.Window().Panes[0].Width; got != 60-DefaultResizeStep {
		t.Errorf("expected width %d, got %d", 60-DefaultResizeStep, got)
	}
}

func TestResizeMovesWholeEdge(t *testing.T) {
	s := threePanes(t)
	s, _ = Resize(s, DirLeft, 10)
	w := s.Window()
	expectRect(t, w.Panes[0], Rect{X: 0, Y: 0, Width: 50, Height: 40})
	expectRect(t, w.Panes[1], Rect{X: 50, Y: 0, Width: 70, Height: 20})
	expectRect(t, w.Panes[2], Rect{X: 50, Y: 20, Width: 70, Height: 20})
	expectTiled(t, s)
}

func TestResizeGuards(t *testing.T) {
	_, res := Resize(newTestState(), DirLeft, 5)
	expectMessage(t, res, "Cannot resize in this direction")

	s := newTestState()
	s, _ = SplitVertical(s)
	_, res = Resize(s, DirLeft, 55)
	expectMessage(t, res, "Pane at minimum width")

	s, _ = ToggleZoom(s)
	_, res = Resize(s, DirLeft, 5)
	if res.Type != MessageError || res.Message != "Cannot resize zoomed pane" {
		t.Errorf("zoomed: got %s %q", res.Type, res.Message)
	}
}

// Splits, resizes, swaps, presets and container changes always leave the window tiled
func TestWindowStaysTiled(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := NewState(rapid.IntRange(40, 200).Draw(t, "width"), rapid.IntRange(12, 60).Draw(t, "height"), testNow)
		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for range steps {
			dir := Direction(rapid.IntRange(0, 3).Draw(t, "dir"))
			switch rapid.IntRange(0, 7).Draw(t, "op") {
			case 0:
				s, _ = SplitVertical(s)
			case 1:
				s, _ = SplitHorizontal(s)
			case 2:
				s, _ = Resize(s, dir, rapid.IntRange(1, 20).Draw(t, "amount"))
			case 3:
				s, _ = SelectPaneDirection(s, dir)
			case 4:
				s, _ = SwapPane(s, dir)
			case 5:
				s, _ = ApplyLayout(s, layoutCycle[rapid.IntRange(0, len(layoutCycle)-1).Draw(t, "layout")])
			case 6:
				s = Recalculate(s, rapid.IntRange(40, 200).Draw(t, "newWidth"), rapid.IntRange(12, 60).Draw(t, "newHeight"))
			case 7:
				s, _ = NextPane(s)
			}
			if err := tilingError(s.Window(), s.Width, s.Height); err != nil {
				t.Fatalf("after %d panes: %v", s.PaneCount(), err)
			}
			if s.Window().Pane(s.Window().ActivePane) == nil {
				t.Fatalf("active pane %d missing", s.Window().ActivePane)
			}
		}
	})
}
