package vim

import (
	"testing"
)

func TestInsertKeys(t *testing.T) {
	tests := []struct {
		name string
		text string
		keys string
		want string
	}{
		{"delete word back", "x", "A foo bar<C-w><Esc>", "x foo "},
		{"delete to indent", "  abc", "A def<C-u><Esc>", "  "},
		{"insert register", "hi", `yiwA <C-r>"<Esc>`, "hi hi"},
		{"smart indent", "  if {", "A<CR>x<Esc>", "  if {\n      x"},
		{"backspace joins", "ab\ncd", "jI<BS><Esc>", "abcd"},
		{"expand tab", "", "i<Tab>x<Esc>", "    x"},
		{"indent in insert", "a", "A<C-t><Esc>", "    a"},
		{"counted insert", "", "3ia<Esc>", "aaa"},
		{"replace restores on backspace", "abc", "Rxy<BS><Esc>", "xbc"},
		{"replace extends line", "ab", "lRxyz<Esc>", "axyz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := run(t, tt.text, tt.keys)
			expectText(t, s, tt.want)
			if s.Mode() != ModeNormal {
				t.Errorf("mode: expected NORMAL, got %s", s.Mode())
			}
		})
	}
}

func TestInsertSetsLastInsertMark(t *testing.T) {
	s, _ := run(t, "abc\ndef", "jAxy<Esc>gg`^")
	expectCursor(t, s, 1, 4)
	if r := s.Register('.'); r.Content != "xy" {
		t.Errorf(". register: expected %q, got %q", "xy", r.Content)
	}
}

func TestFolds(t *testing.T) {
	s, res := run(t, "a\nb\nc", "zfj")
	if res.Action != "fold_create" {
		t.Errorf("action: expected fold_create, got %q", res.Action)
	}
	b := s.ActiveBuffer()
	if len(b.Folds) != 1 || b.Folds[0] != (Fold{Start: 0, End: 1, Closed: true}) {
		t.Fatalf("folds: %+v", b.Folds)
	}
	if _, ok := b.ClosedFoldAt(1); !ok {
		t.Error("line 1 should be hidden")
	}
	if _, ok := b.ClosedFoldAt(2); ok {
		t.Error("line 2 is outside the fold")
	}

	s, _ = run(t, "a\nb\nc", "zfjzo")
	if s.ActiveBuffer().Folds[0].Closed {
		t.Error("zo should open the fold")
	}
	s, _ = run(t, "a\nb\nc", "zfjzaza")
	if !s.ActiveBuffer().Folds[0].Closed {
		t.Error("za twice should leave the fold closed")
	}
	s, res = run(t, "a\nb\nc", "zfjzE")
	if len(s.ActiveBuffer().Folds) != 0 || res.Action != "fold_delete_all" {
		t.Errorf("zE: folds %+v action %q", s.ActiveBuffer().Folds, res.Action)
	}
}

func TestFoldWarnings(t *testing.T) {
	_, res := run(t, "a\nb", "zo")
	if res.Type != MessageWarning || res.Message != "No fold found" {
		t.Errorf("zo without fold: %q (%v)", res.Message, res.Type)
	}
	_, res = run(t, "a\nb", "zj")
	if res.Type != MessageWarning || res.Message != "No more folds" {
		t.Errorf("zj without fold: %q (%v)", res.Message, res.Type)
	}
}

func TestFoldMotions(t *testing.T) {
	s, _ := run(t, "a\nb\nc\nd", "jzfjggzj")
	expectCursor(t, s, 1, 0)
	s, _ = run(t, "a\nb\nc\nd", "jzfjzo]z")
	expectCursor(t, s, 2, 0)
	s, _ = run(t, "a\nb\nc\nd", "jzfjzoj[z")
	expectCursor(t, s, 1, 0)
}
