package host

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/vi-dojo/input"
	"github.com/lixenwraith/vi-dojo/vim"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

func replay(t *testing.T, app App, keys string, w, h int) *Transcript {
	t.Helper()
	tr, err := Replay(app, input.ParseKeys(keys), w, h, Options{Now: fixedNow})
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	return tr
}

type saveRecorder struct {
	files map[string]string
	err   error
}

func (r *saveRecorder) save(path, text string) error {
	if r.err != nil {
		return r.err
	}
	if r.files == nil {
		r.files = make(map[string]string)
	}
	r.files[path] = text
	return nil
}

func newTestEditor(text string, save SaveFunc) *Editor {
	return NewEditor(vim.NewEngine(), vim.NewState("a.txt", text), save)
}

func TestEditorDrawsBufferAndStatus(t *testing.T) {
	ed := newTestEditor("hello\nworld", nil)
	tr := replay(t, ed, "ix<Esc>", 40, 6)

	if tr.Screen[0] != "  1 xhello" {
		t.Errorf("row 0: got %q", tr.Screen[0])
	}
	if tr.Screen[1] != "  2 world" {
		t.Errorf("row 1: got %q", tr.Screen[1])
	}
	if tr.Screen[2] != "~" {
		t.Errorf("row past the end should show ~, got %q", tr.Screen[2])
	}
	status := tr.Screen[4]
	for _, want := range []string{"NORMAL", "a.txt", "[+]", "1:1", "All"} {
		if !strings.Contains(status, want) {
			t.Errorf("status line %q missing %q", status, want)
		}
	}
	if tr.Last().Mode != "NORMAL" {
		t.Errorf("mode: got %q", tr.Last().Mode)
	}
}

func TestEditorRelativeNumbers(t *testing.T) {
	s := vim.NewState("a.txt", "a\nb\nc")
	s.Settings.RelativeNumber = true
	ed := NewEditor(vim.NewEngine(), s, nil)
	tr := replay(t, ed, "j", 20, 6)

	want := []string{"  1 a", "  2 b", "  1 c"}
	for i, w := range want {
		if tr.Screen[i] != w {
			t.Errorf("row %d: expected %q, got %q", i, w, tr.Screen[i])
		}
	}
}

func TestEditorCommandLine(t *testing.T) {
	ed := newTestEditor("hello", nil)
	tr := replay(t, ed, ":set", 40, 6)
	if tr.Screen[5] != ":set" {
		t.Errorf("command line: got %q", tr.Screen[5])
	}

	ed = newTestEditor("hello", nil)
	tr = replay(t, ed, "?ell", 40, 6)
	if tr.Screen[5] != "?ell" {
		t.Errorf("search line: got %q", tr.Screen[5])
	}
}

func TestEditorErrorMessage(t *testing.T) {
	ed := newTestEditor("hello", nil)
	tr := replay(t, ed, "ix<Esc>:q<CR>", 60, 6)

	if tr.Quit {
		t.Fatal("modified buffer should refuse :q")
	}
	last := tr.Last()
	if last.Level != LevelError || !strings.HasPrefix(last.Message, "E37") {
		t.Errorf("expected E37 error, got %v %q", last.Level, last.Message)
	}
	if !strings.HasPrefix(tr.Screen[5], "E37") {
		t.Errorf("message row: got %q", tr.Screen[5])
	}
}

func TestEditorWritePersists(t *testing.T) {
	rec := &saveRecorder{}
	ed := newTestEditor("hello\nworld", rec.save)
	tr := replay(t, ed, "ddp:w<CR>", 40, 6)

	if got := rec.files["a.txt"]; got != "world\nhello" {
		t.Errorf("saved text: got %q", got)
	}
	if tr.Last().Action != "write" {
		t.Errorf("action: got %q", tr.Last().Action)
	}
	if ed.State().ActiveBuffer().Modified {
		t.Error("buffer should be clean after a successful write")
	}
}

func TestEditorWriteFailure(t *testing.T) {
	rec := &saveRecorder{err: errors.New("disk full")}
	ed := newTestEditor("hello", rec.save)
	tr := replay(t, ed, "ix<Esc>:wq<CR>", 60, 6)

	if tr.Quit {
		t.Error("failed write must not quit")
	}
	last := tr.Last()
	if last.Level != LevelError || !strings.Contains(last.Message, "E212") || !strings.Contains(last.Message, "disk full") {
		t.Errorf("expected E212 error, got %v %q", last.Level, last.Message)
	}
	if msg, typ := ed.State().LastMessage(); typ != vim.MessageError || !strings.Contains(msg, "E212") {
		t.Errorf("state message: %v %q", typ, msg)
	}
}

func TestEditorWriteAllSavesOnlyDirtyBuffers(t *testing.T) {
	s := vim.NewState("a.txt", "one")
	s.AddBuffer("b.txt", "two")
	s.Buffers[1].Modified = true
	rec := &saveRecorder{}
	ed := NewEditor(vim.NewEngine(), s, rec.save)

	replay(t, ed, ":wall<CR>", 40, 6)
	if len(rec.files) != 1 || rec.files["b.txt"] != "two" {
		t.Errorf("expected only b.txt saved, got %v", rec.files)
	}
}

func TestEditorClipboardOutcome(t *testing.T) {
	ed := newTestEditor("hello world", nil)
	tr := replay(t, ed, `"+yiw`, 40, 6)

	last := tr.Last()
	if !last.HasClipboard || last.Clipboard != "hello" {
		t.Errorf("clipboard: has %v text %q", last.HasClipboard, last.Clipboard)
	}
}

func TestEditorVisualHighlight(t *testing.T) {
	ed := newTestEditor("hello", nil)
	tr, err := Replay(ed, input.ParseKeys("vl"), 20, 4, Options{Now: fixedNow})
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if tr.Last().Mode != "VISUAL" {
		t.Errorf("mode: got %q", tr.Last().Mode)
	}
	v := ed.State().Visual
	if v == nil || !selected(*v, vim.Position{Col: 1}) || selected(*v, vim.Position{Col: 2}) {
		t.Errorf("selection: %+v", v)
	}
}

func TestScrollLabel(t *testing.T) {
	tests := []struct {
		top, height, total int
		want               string
	}{
		{0, 10, 5, "All"},
		{0, 10, 50, "Top"},
		{40, 10, 50, "Bot"},
		{20, 10, 50, "50%"},
	}
	for _, tt := range tests {
		if got := scrollLabel(tt.top, tt.height, tt.total); got != tt.want {
			t.Errorf("scrollLabel(%d, %d, %d): expected %q, got %q", tt.top, tt.height, tt.total, tt.want, got)
		}
	}
}

func TestSelectedBlock(t *testing.T) {
	v := vim.VisualSelection{Anchor: vim.Position{Line: 0, Col: 3}, Head: vim.Position{Line: 2, Col: 1}, Kind: vim.SelectBlock}
	if !selected(v, vim.Position{Line: 1, Col: 2}) {
		t.Error("inside the block")
	}
	if selected(v, vim.Position{Line: 1, Col: 4}) {
		t.Error("right of the block")
	}
	if selected(v, vim.Position{Line: 3, Col: 2}) {
		t.Error("below the block")
	}
}
