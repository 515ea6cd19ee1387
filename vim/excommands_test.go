package vim

import (
	"strings"
	"testing"

	"github.com/lixenwraith/vi-dojo/input"
)

func runEx(t *testing.T, s *State, line string) (*State, Result) {
	t.Helper()
	return NewEngine().ExecuteCommand(s, line, testNow)
}

func TestLookupExCommand(t *testing.T) {
	cases := map[string]string{
		"s":    "substitute",
		"se":   "set",
		"w":    "write",
		"wq":   "wq",
		"q":    "quit",
		"qa":   "qall",
		"bn":   "bnext",
		"bp":   "bprevious",
		"bd":   "bdelete",
		"ls":   "ls",
		"noh":  "nohlsearch",
		"d":    "delete",
		"delm": "delmarks",
		"reg":  "registers",
		"u":    "undo",
		"j":    "join",
	}
	for in, want := range cases {
		cmd := lookupExCommand(in)
		if cmd == nil {
			t.Errorf("%q: no command", in)
			continue
		}
		if cmd.name != want {
			t.Errorf("%q: expected %s, got %s", in, want, cmd.name)
		}
	}
	if lookupExCommand("xyz") != nil {
		t.Error("xyz resolved to a command")
	}
}

func TestSubstitute(t *testing.T) {
	s := NewState("t.txt", "foo foo\nfoo\nbar")
	s, res := runEx(t, s, "%s/foo/baz/g")
	expectText(t, s, "baz baz\nbaz\nbar")
	if res.Message != "3 substitutions" {
		t.Errorf("message: got %q", res.Message)
	}

	s = NewState("t.txt", "foo foo")
	s, res = runEx(t, s, "s/foo/x/")
	expectText(t, s, "x foo")
	if res.Message != "1 substitution" {
		t.Errorf("message: got %q", res.Message)
	}
}

func TestSubstituteGroupsAndAmpersand(t *testing.T) {
	s := NewState("t.txt", "key=value")
	s, _ = runEx(t, s, `s/(\w+)=(\w+)/\2=\1/`)
	expectText(t, s, "value=key")

	s = NewState("t.txt", "ab")
	s, _ = runEx(t, s, "s/b/[&]/")
	expectText(t, s, "a[b]")
}

func TestSubstituteErrors(t *testing.T) {
	s := NewState("t.txt", "abc")
	_, res := runEx(t, s, "s/zzz/y/")
	if res.Type != MessageWarning || res.Message != "Pattern not found: zzz" {
		t.Errorf("not found: got %s %q", res.Type, res.Message)
	}
	_, res = runEx(t, s, "s/a/b/q")
	if !strings.HasPrefix(res.Message, "E488") {
		t.Errorf("bad flag: got %q", res.Message)
	}
	_, res = runEx(t, s, "s")
	if !strings.HasPrefix(res.Message, "E35") {
		t.Errorf("empty pattern: got %q", res.Message)
	}
	_, res = runEx(t, s, "s 1a1b1")
	if !strings.HasPrefix(res.Message, "E146") {
		t.Errorf("digit delimiter: got %q", res.Message)
	}
}

func TestSubstituteIsOneUndoStep(t *testing.T) {
	s := NewState("t.txt", "a\na\na")
	e := NewEngine()
	s, _ = e.ExecuteCommand(s, "%s/a/b/", testNow)
	s, _ = e.ExecuteCommand(s, "undo", testNow)
	expectText(t, s, "a\na\na")
}

func TestRanges(t *testing.T) {
	s := NewState("t.txt", "1\n2\n3\n4\n5")
	s, _ = runEx(t, s, "2,4d")
	expectText(t, s, "1\n5")

	s = NewState("t.txt", "1\n2\n3\n4\n5")
	s, _ = runEx(t, s, "4")
	expectCursor(t, s, 3, 0)

	s = NewState("t.txt", "1\n2\n3")
	s, _ = runEx(t, s, "$")
	expectCursor(t, s, 2, 0)

	s = NewState("t.txt", "1\n2\n3\n4")
	s, _ = runEx(t, s, "3,1d")
	expectText(t, s, "4")

	_, res := runEx(t, NewState("t.txt", "x"), "1,2set")
	if !strings.HasPrefix(res.Message, "E481") {
		t.Errorf("range on set: got %q", res.Message)
	}
}

func TestMarkRange(t *testing.T) {
	e := NewEngine()
	s := NewState("t.txt", "a\nb\nc\nd")
	s, _ = e.HandleKeys(s, input.ParseKeys("jmajjmb"), testNow)
	s, _ = e.ExecuteCommand(s, "'a,'bd", testNow)
	expectText(t, s, "a")
}

func TestVisualColonRange(t *testing.T) {
	s, _ := run(t, "a\nb\nc", "Vj:d<CR>")
	expectText(t, s, "c")
}

func TestUnknownCommand(t *testing.T) {
	_, res := runEx(t, NewState("t.txt", ""), "frobnicate")
	if res.Type != MessageError || res.Message != "Not an editor command: frobnicate" {
		t.Errorf("got %s %q", res.Type, res.Message)
	}
}

func TestSetOptions(t *testing.T) {
	s := NewState("t.txt", "")
	s, _ = runEx(t, s, "set ts=8 nonumber")
	if s.Settings.TabStop != 8 {
		t.Errorf("tabstop: expected 8, got %d", s.Settings.TabStop)
	}
	if s.Settings.Number {
		t.Error("number still on")
	}

	s, _ = runEx(t, s, "set invnumber")
	if !s.Settings.Number {
		t.Error("invnumber did not toggle")
	}

	s, _ = runEx(t, s, "set sw+=2")
	if s.Settings.ShiftWidth != 6 {
		t.Errorf("shiftwidth: expected 6, got %d", s.Settings.ShiftWidth)
	}

	_, res := runEx(t, s, "set ts?")
	if res.Message != "tabstop=8" {
		t.Errorf("query: got %q", res.Message)
	}

	cases := map[string]string{
		"set bogus":       "E518",
		"set ts=abc":      "E521",
		"set ts=0":        "E487",
		"set cb=nonsense": "E474",
		"set number=5":    "E474",
	}
	for cmd, code := range cases {
		_, res := runEx(t, s, cmd)
		if res.Type != MessageError || !strings.HasPrefix(res.Message, code) {
			t.Errorf("%q: expected %s, got %s %q", cmd, code, res.Type, res.Message)
		}
	}
}

func TestNoHighlight(t *testing.T) {
	s, _ := run(t, "foo", "/foo<CR>")
	if !s.Search.Highlight {
		t.Fatal("search did not highlight")
	}
	s, _ = runEx(t, s, "noh")
	if s.Search.Highlight {
		t.Error("highlight not cleared")
	}
}

func TestBufferCommands(t *testing.T) {
	s := NewState("main.go", "package main")
	s.AddBuffer("README.md", "# readme")
	srv := s.AddBuffer("internal/server.go", "package server")

	s, _ = runEx(t, s, "b srv")
	if s.Active != srv {
		t.Errorf("fuzzy :b: expected buffer %d, got %d", srv, s.Active)
	}

	s, _ = runEx(t, s, "b readme")
	if s.ActiveBuffer().Filename != "README.md" {
		t.Errorf("substring :b: got %s", s.ActiveBuffer().Filename)
	}

	s, _ = runEx(t, s, "b 1")
	if s.Active != 1 {
		t.Errorf(":b 1: got %d", s.Active)
	}

	_, res := runEx(t, s, "b nothing-like-this")
	if res.Message != "Buffer not found: nothing-like-this" {
		t.Errorf("missing buffer: got %q", res.Message)
	}

	_, res = runEx(t, s, "ls")
	if !strings.Contains(res.Message, `1%  "main.go"`) || !strings.Contains(res.Message, `#  "README.md"`) {
		t.Errorf("listing: got %q", res.Message)
	}
}

func TestBufferDelete(t *testing.T) {
	s := NewState("a.txt", "a")
	s.AddBuffer("b.txt", "b")
	s, res := runEx(t, s, "bd")
	if s.BufferCount() != 1 || s.ActiveBuffer().Filename != "b.txt" {
		t.Errorf(":bd: expected only b.txt, got %d buffers active %s", s.BufferCount(), s.ActiveBuffer().Filename)
	}
	if res.Message != "Buffer deleted" {
		t.Errorf("message: got %q", res.Message)
	}

	s, _ = runEx(t, s, "bd")
	if s.BufferCount() != 1 || s.ActiveBuffer().DisplayName() != noName {
		t.Errorf("last :bd should leave an empty unnamed buffer, got %q", s.ActiveBuffer().DisplayName())
	}

	m := NewState("m.txt", "x")
	m.Buffers[0].Modified = true
	_, res = runEx(t, m, "bd")
	if !strings.HasPrefix(res.Message, "E89") {
		t.Errorf("modified :bd: got %q", res.Message)
	}
}

func TestQuitModified(t *testing.T) {
	s := NewState("t.txt", "x")
	s.Buffers[0].Modified = true
	_, res := runEx(t, s, "q")
	if res.Quit || !strings.HasPrefix(res.Message, "E37") {
		t.Errorf(":q on modified: got quit=%v %q", res.Quit, res.Message)
	}
	_, res = runEx(t, s, "q!")
	if !res.Quit {
		t.Error(":q! did not quit")
	}
}

func TestWrite(t *testing.T) {
	s := NewState("t.txt", "x")
	s.Buffers[0].Modified = true
	s, res := runEx(t, s, "w")
	if s.ActiveBuffer().Modified {
		t.Error("still modified after :w")
	}
	if res.Message != `"t.txt" written` {
		t.Errorf("message: got %q", res.Message)
	}

	_, res = runEx(t, NewState("", "x"), "w")
	if !strings.HasPrefix(res.Message, "E32") {
		t.Errorf("no name: got %q", res.Message)
	}
}

func TestCommandLineEditing(t *testing.T) {
	s, _ := run(t, "abc", ":sett<BS><Tab>")
	if s.CommandLine != "set" {
		t.Errorf("command line: expected %q, got %q", "set", s.CommandLine)
	}

	s, _ = run(t, "abc", ":<BS>")
	if s.Mode() != ModeNormal {
		t.Errorf("backspace on empty line should leave command mode, got %s", s.Mode())
	}

	s, _ = run(t, "a\nb\nc", ":3<CR>:1<CR>:<Up><Up>")
	if s.CommandLine != "3" {
		t.Errorf("history: expected %q, got %q", "3", s.CommandLine)
	}
}

func TestRepeatLastCommand(t *testing.T) {
	s, _ := run(t, "a\na\na", ":s/a/b/<CR>j@:")
	expectText(t, s, "b\nb\na")
}
