package mux

import (
	"fmt"
	"testing"
)

func copyState(t *testing.T) *State {
	t.Helper()
	s := NewState(80, 10, testNow)
	s, _ = SetContent(s, s.Pane().ID, []string{"alpha beta", "gamma delta", "epsilon"})
	return s
}

func TestEnterCopyModeStartsAtPaneCursor(t *testing.T) {
	s, res := EnterCopyMode(copyState(t))
	expectMessage(t, res, "COPY")
	if !s.InCopyMode() {
		t.Fatal("copy mode not active")
	}
	if got := s.CopyMode.Cursor; got != (Position{Line: 2, Col: 6}) {
		t.Errorf("cursor: expected {2 6}, got %+v", got)
	}
	if s.CopyMode.Pane != s.Pane().ID {
		t.Errorf("copy mode bound to pane %d, expected %d", s.CopyMode.Pane, s.Pane().ID)
	}
}

func TestCopyModeYankWord(t *testing.T) {
	s, res := keys(t, copyState(t), "<C-b>[gwvey")
	expectMessage(t, res, "Copied 4 characters")
	if s.InCopyMode() {
		t.Error("yank should leave copy mode")
	}
	if len(s.PasteBuffers) != 1 || s.PasteBuffers[0] != "beta" {
		t.Errorf("buffers: expected [beta], got %q", s.PasteBuffers)
	}
}

func TestCopyModeLineAndRectSelection(t *testing.T) {
	s, res := keys(t, copyState(t), "<C-b>[gVjy")
	expectMessage(t, res, "Copied 22 characters")
	if s.PasteBuffers[0] != "alpha beta\ngamma delta" {
		t.Errorf("line selection: got %q", s.PasteBuffers[0])
	}

	s, _ = keys(t, s, "<C-b>[g<C-v>jly")
	if s.PasteBuffers[0] != "al\nga" {
		t.Errorf("rectangle selection: got %q", s.PasteBuffers[0])
	}
	if len(s.PasteBuffers) != 2 {
		t.Errorf("expected 2 buffers, got %d", len(s.PasteBuffers))
	}
}

func TestCopyModeCount(t *testing.T) {
	s, _ := keys(t, copyState(t), "<C-b>[g3l")
	if got := s.CopyMode.Cursor; got != (Position{Line: 0, Col: 3}) {
		t.Errorf("3l: expected {0 3}, got %+v", got)
	}
	s, _ = keys(t, s, "$")
	if got := s.CopyMode.Cursor.Col; got != 9 {
		t.Errorf("$: expected col 9, got %d", got)
	}
	s, _ = keys(t, s, "0")
	if got := s.CopyMode.Cursor.Col; got != 0 {
		t.Errorf("0: expected col 0, got %d", got)
	}
}

func TestCopyModeEscape(t *testing.T) {
	s, _ := keys(t, copyState(t), "<C-b>[v<Esc>")
	if !s.InCopyMode() || s.CopyMode.Selecting {
		t.Errorf("first Esc should only clear the selection: copy=%v selecting=%v", s.InCopyMode(), s.CopyMode.Selecting)
	}
	s, _ = keys(t, s, "<Esc>")
	if s.InCopyMode() {
		t.Error("second Esc should leave copy mode")
	}

	s, _ = keys(t, copyState(t), "<C-b>[y")
	if s.InCopyMode() || len(s.PasteBuffers) != 0 {
		t.Error("y without selection should exit without copying")
	}
}

func TestCopyModeSearch(t *testing.T) {
	s, res := keys(t, copyState(t), "<C-b>[/DELTA<CR>")
	expectMessage(t, res, "[1/1]")
	if got := s.CopyMode.Cursor; got != (Position{Line: 1, Col: 6}) {
		t.Errorf("cursor: expected {1 6}, got %+v", got)
	}
	if !s.InCopyMode() {
		t.Error("search should stay in copy mode")
	}

	s, res = keys(t, s, "?e<CR>")
	expectMessage(t, res, "[1/3]")
	if got := s.CopyMode.Cursor; got != (Position{Line: 0, Col: 7}) {
		t.Errorf("backward search: expected {0 7}, got %+v", got)
	}
	// n repeats backwards and wraps to the last match
	s, res = keys(t, s, "n")
	expectMessage(t, res, "[3/3]")
	s, res = keys(t, s, "N")
	expectMessage(t, res, "[1/3]")

	_, res = keys(t, s, "/zzz<CR>")
	if res.Type != MessageError || res.Message != "Pattern not found: zzz" {
		t.Errorf("missing pattern: got %s %q", res.Type, res.Message)
	}
}

func TestCopySearchInvalidExpression(t *testing.T) {
	s := NewState(80, 10, testNow)
	s, _ = SetContent(s, s.Pane().ID, []string{"f(x) = y"})
	s, res := CopySearch(s, "(", true)
	expectMessage(t, res, "[1/1]")
	if got := s.CopyMode.Cursor; got != (Position{Line: 0, Col: 1}) {
		t.Errorf("literal fallback: expected {0 1}, got %+v", got)
	}
}

func TestCopyModeWithoutPreviousSearch(t *testing.T) {
	_, res := keys(t, copyState(t), "<C-b>[n")
	expectMessage(t, res, "No previous search")
}

func TestCopyModeScrollsScrollback(t *testing.T) {
	s := NewState(80, 10, testNow)
	lines := make([]string, 30)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}
	s, _ = SetContent(s, s.Pane().ID, lines)
	if len(s.Pane().Scrollback) != 20 {
		t.Fatalf("expected 20 scrollback lines, got %d", len(s.Pane().Scrollback))
	}

	s, res := EnterCopyMode(s)
	if res.Scroll != 20 || s.Pane().ScrollPos != 20 {
		t.Errorf("enter: expected scroll 20, got %d/%d", res.Scroll, s.Pane().ScrollPos)
	}
	s, _ = keys(t, s, "g")
	if s.Pane().ScrollPos != 0 {
		t.Errorf("g: expected scroll 0, got %d", s.Pane().ScrollPos)
	}
	s, _ = keys(t, s, "G")
	if s.CopyMode.Cursor.Line != 29 || s.Pane().ScrollPos != 20 {
		t.Errorf("G: line %d scroll %d", s.CopyMode.Cursor.Line, s.Pane().ScrollPos)
	}
	s, _ = keys(t, s, "<C-u>")
	if s.CopyMode.Cursor.Line != 24 {
		t.Errorf("C-u: expected line 24, got %d", s.CopyMode.Cursor.Line)
	}
	s, _ = ExitCopyMode(s)
	if s.InCopyMode() || s.Pane().ScrollPos != 0 {
		t.Error("exit should reset scroll position")
	}
}

func TestCopyModeDropsWhenFocusLeaves(t *testing.T) {
	s, _ := keys(t, copyState(t), "<C-b>[<C-b>%")
	if s.PaneCount() != 2 {
		t.Fatalf("prefix should still work in copy mode, got %d panes", s.PaneCount())
	}
	if s.InCopyMode() {
		t.Error("copy mode should end when the active pane changes")
	}
}

func TestWordMotions(t *testing.T) {
	lines := []string{"foo.bar  baz", "", "qux"}
	tests := []struct {
		name string
		fn   func([]string, Position) Position
		from Position
		want Position
	}{
		{"w over word", wordForward, Position{0, 0}, Position{0, 3}},
		{"w over punct", wordForward, Position{0, 3}, Position{0, 4}},
		{"w over blanks", wordForward, Position{0, 4}, Position{0, 9}},
		{"w across lines", wordForward, Position{0, 9}, Position{2, 0}},
		{"b to word start", wordBack, Position{0, 10}, Position{0, 9}},
		{"b to previous word", wordBack, Position{0, 9}, Position{0, 4}},
		{"e to word end", wordEnd, Position{0, 0}, Position{0, 2}},
		{"e skips blanks", wordEnd, Position{0, 6}, Position{0, 11}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(lines, tt.from); got != tt.want {
				t.Errorf("from %+v: expected %+v, got %+v", tt.from, tt.want, got)
			}
		})
	}
}
