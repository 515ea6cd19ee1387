package host

import (
	"testing"
)

func TestDrawTextClips(t *testing.T) {
	sim := newSim(t, 10, 1)
	sim.Clear()
	if n := drawText(sim, 0, 0, 5, "abcdefgh", styleText); n != 5 {
		t.Errorf("ascii: expected 5 cells, got %d", n)
	}
	sim.Show()
	if got := ScreenText(sim)[0]; got != "abcde" {
		t.Errorf("clipped text: got %q", got)
	}

	sim.Clear()
	// 世 is two cells wide and would straddle the edge at cell 3
	if n := drawText(sim, 0, 0, 4, "ab世世", styleText); n != 4 {
		t.Errorf("wide: expected 4 cells, got %d", n)
	}
	sim.Show()
	if got := ScreenText(sim)[0]; got != "ab世" {
		t.Errorf("wide text: got %q", got)
	}
}

func TestExpandTabs(t *testing.T) {
	tests := []struct {
		in   string
		ts   int
		want string
	}{
		{"abc", 4, "abc"},
		{"\tx", 4, "    x"},
		{"ab\tx", 4, "ab  x"},
		{"abcd\tx", 4, "abcd    x"},
		{"a\tb", 0, "a b"},
	}
	for _, tt := range tests {
		if got := expandTabs(tt.in, tt.ts); got != tt.want {
			t.Errorf("expandTabs(%q, %d): expected %q, got %q", tt.in, tt.ts, tt.want, got)
		}
	}
}

func TestDisplayCol(t *testing.T) {
	tests := []struct {
		line string
		col  int
		want int
	}{
		{"hello", 3, 3},
		{"\thello", 1, 4},
		{"a\tb", 2, 4},
		{"世界x", 2, 4},
		{"ab", 5, 5},
	}
	for _, tt := range tests {
		if got := displayCol(tt.line, tt.col, 4); got != tt.want {
			t.Errorf("displayCol(%q, %d): expected %d, got %d", tt.line, tt.col, tt.want, got)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Errorf("pad: got %q", got)
	}
	if got := padRight("abcdef", 4); got != "abcd" {
		t.Errorf("truncate: got %q", got)
	}
}

func TestLevelString(t *testing.T) {
	for l, want := range map[Level]string{LevelInfo: "info", LevelWarning: "warning", LevelError: "error"} {
		if l.String() != want {
			t.Errorf("expected %q, got %q", want, l.String())
		}
	}
}
