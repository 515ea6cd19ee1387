package vim

import (
	"testing"

	"github.com/lixenwraith/vi-dojo/input"
)

func TestMotions(t *testing.T) {
	const line = "foo bar.baz qux"
	const lines = "one\n  two\nthree"
	tests := []struct {
		name      string
		text      string
		keys      string
		line, col int
	}{
		{"word", line, "w", 0, 4},
		{"word punctuation", line, "2w", 0, 7},
		{"WORD", line, "2W", 0, 12},
		{"word end", line, "e", 0, 2},
		{"word back", line, "wb", 0, 0},
		{"word end back", line, "$ge", 0, 10},
		{"line end", line, "$", 0, 14},
		{"line start", line, "$0", 0, 0},
		{"column", line, "3|", 0, 2},
		{"find", line, "fz", 0, 10},
		{"till", line, "tz", 0, 9},
		{"find back", line, "$Fb", 0, 8},
		{"till back", line, "$Tb", 0, 9},
		{"find count", line, "2fa", 0, 9},
		{"find missing stays", line, "fy", 0, 0},
		{"repeat find", line, "fa;", 0, 9},
		{"reverse find", line, "fa;,", 0, 5},
		{"down", lines, "j", 1, 0},
		{"first non-blank", lines, "j^", 1, 2},
		{"next line start", lines, "+", 1, 2},
		{"prev line start", lines, "G-", 1, 2},
		{"file end", lines, "G", 2, 0},
		{"file start", lines, "Ggg", 0, 0},
		{"goto line", lines, "2G", 1, 2},
		{"down past end clamps", lines, "5j", 2, 0},
		{"paragraph forward", "a\nb\n\nc", "}", 2, 0},
		{"paragraph back", "a\n\nb\nc", "G{", 1, 0},
		{"match bracket", "(a [b] c)", "%", 0, 8},
		{"match inner bracket", "(a [b] c)", "f[%", 0, 5},
		{"match bracket back", "(a [b] c)", "$%", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := run(t, tt.text, tt.keys)
			expectCursor(t, s, tt.line, tt.col)
		})
	}
}

func TestOperatorMotions(t *testing.T) {
	tests := []struct {
		name string
		text string
		keys string
		want string
	}{
		{"count before operator", "a b c d", "2dw", "c d"},
		{"count after operator", "a b c d", "d2w", "c d"},
		{"delete till", "foo bar.baz", "dt.", ".baz"},
		{"delete find", "foo bar.baz", "df.", "baz"},
		{"delete to end", "foo bar", "wd$", "foo "},
		{"delete line down", "a\nb\nc", "dj", "c"},
		{"delete line up", "a\nb\nc", "jdk", "c"},
		{"delete to file end", "a\nb\nc", "jdG", "a"},
		{"delete to file start", "a\nb\nc", "Gdgg", ""},
		{"change to end", "foo bar", "wc$X<Esc>", "foo X"},
		{"upper word", "foo bar", "gUiw", "FOO bar"},
		{"lower line", "FOO BAR", "guu", "foo bar"},
		{"toggle char", "abc", "~", "Abc"},
		{"indent", "a", ">>", "    a"},
		{"dedent", "      a", "<<", "  a"},
		{"join", "a\n  b", "J", "a b"},
		{"join no space", "a\n  b", "gJ", "a  b"},
		{"delete bracket match", "x(a b)y", "f(d%", "xy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := run(t, tt.text, tt.keys)
			expectText(t, s, tt.want)
		})
	}
}

func TestTextObjects(t *testing.T) {
	tests := []struct {
		name string
		text string
		keys string
		want string
	}{
		{"inner word", "foo bar baz", "wdiw", "foo  baz"},
		{"a word", "foo bar baz", "wdaw", "foo baz"},
		{"inner WORD", "a foo.bar b", "wdiW", "a  b"},
		{"inner quote", `say "hi there" now`, `fhdi"`, `say "" now`},
		{"a quote", `say "hi there" now`, `fhda"`, `say now`},
		{"quote to the right", `x "q"`, `di"`, `x ""`},
		{"inner paren", "f(a, (b)) x", "fadi(", "f() x"},
		{"nested inner paren", "f(a, (b)) x", "fbdi(", "f(a, ()) x"},
		{"a paren", "f(a, (b)) x", "fbda(", "f(a, ) x"},
		{"count paren", "f(a, (b)) x", "fbd2i(", "f() x"},
		{"inner brace", "x{a}", "fadi{", "x{}"},
		{"change inner paren", "foo(bar)", "fbci(x<Esc>", "foo(x)"},
		{"inner tag", "<a><b>hi</b></a>", "fhdit", "<a><b></b></a>"},
		{"a tag", "<a><b>hi</b></a>", "fhdat", "<a></a>"},
		{"inner paragraph", "a\nb\n\nc", "dip", "\nc"},
		{"a paragraph", "a\nb\n\nc", "dap", "c"},
		{"no enclosing pair", "abc", "di(", "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := run(t, tt.text, tt.keys)
			expectText(t, s, tt.want)
		})
	}
}

func TestYankInnerWordFillsRegister(t *testing.T) {
	s, res := run(t, "alpha beta", "wyiw")
	if r := s.Register('"'); r.Content != "beta" {
		t.Errorf("unnamed register: expected %q, got %q", "beta", r.Content)
	}
	if r := s.Register('0'); r.Content != "beta" {
		t.Errorf("yank register: expected %q, got %q", "beta", r.Content)
	}
	if res.Clipboard != nil {
		t.Error("plain yank should not touch the clipboard")
	}
	expectCursor(t, s, 0, 6)
}

func TestClipboardSettingMirrorsYank(t *testing.T) {
	s := NewState("test.txt", "alpha beta")
	s.Settings.Clipboard = "unnamedplus"
	s, res := NewEngine().HandleKeys(s, input.ParseKeys("yiw"), testNow)
	if res.Clipboard == nil || res.Clipboard.Register != '+' || res.Clipboard.Content != "alpha" {
		t.Errorf("clipboard write: %+v", res.Clipboard)
	}
	if r := s.Register('+'); r.Content != "alpha" {
		t.Errorf("+ register: got %q", r.Content)
	}
}
