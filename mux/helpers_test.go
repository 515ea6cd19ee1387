package mux

import (
	"fmt"
	"testing"
	"time"

	"github.com/lixenwraith/vi-dojo/input"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestState() *State {
	return NewState(120, 40, testNow)
}

func keys(t *testing.T, s *State, seq string) (*State, Result) {
	t.Helper()
	return NewEngine().HandleKeys(s, input.ParseKeys(seq), testNow)
}

func expectMessage(t *testing.T, res Result, want string) {
	t.Helper()
	if res.Message != want {
		t.Errorf("message: expected %q, got %q", want, res.Message)
	}
}

func expectRect(t *testing.T, p *Pane, want Rect) {
	t.Helper()
	if got := p.Rect(); got != want {
		t.Errorf("pane %d: expected %+v, got %+v", p.ID, want, got)
	}
}

// tilingError reports how the panes of w fail to cover a width x height container exactly
func tilingError(w *Window, width, height int) error {
	area := 0
	for i, p := range w.Panes {
		if p.Width < 0 || p.Height < 0 {
			return fmt.Errorf("pane %d has negative size %+v", p.ID, p.Rect())
		}
		if p.X < 0 || p.Y < 0 || p.Right() > width || p.Bottom() > height {
			return fmt.Errorf("pane %d %+v outside %dx%d", p.ID, p.Rect(), width, height)
		}
		area += p.Width * p.Height
		for _, q := range w.Panes[i+1:] {
			if overlaps(p.X, p.Right(), q.X, q.Right()) && overlaps(p.Y, p.Bottom(), q.Y, q.Bottom()) {
				return fmt.Errorf("panes %d %+v and %d %+v overlap", p.ID, p.Rect(), q.ID, q.Rect())
			}
		}
	}
	if area != width*height {
		return fmt.Errorf("panes cover %d cells of %d", area, width*height)
	}
	return nil
}

func expectTiled(t *testing.T, s *State) {
	t.Helper()
	if err := tilingError(s.Window(), s.Width, s.Height); err != nil {
		t.Error(err)
	}
}
