package host

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-dojo/input"
	"github.com/lixenwraith/vi-dojo/mux"
)

func newTestMultiplexer(mouse bool) *Multiplexer {
	s := mux.NewState(80, 23, testNow)
	if mouse {
		s, _ = mux.SetMouse(s, true)
	}
	return NewMultiplexer(mux.NewEngine(), s)
}

func TestMultiplexerDrawsPaneAndStatus(t *testing.T) {
	m := newTestMultiplexer(false)
	tr := replay(t, m, "ls", 80, 24)

	if tr.Screen[0] != "$ ls" {
		t.Errorf("pane row: got %q", tr.Screen[0])
	}
	if !strings.HasPrefix(tr.Screen[23], "[main] 0:main*") {
		t.Errorf("status row: got %q", tr.Screen[23])
	}
	if tr.Last().Mode != "SHELL" {
		t.Errorf("mode: got %q", tr.Last().Mode)
	}
}

func TestMultiplexerSplitDrawsBorder(t *testing.T) {
	m := newTestMultiplexer(false)
	tr := replay(t, m, "<C-b>%", 80, 24)

	if m.State().PaneCount() != 2 {
		t.Fatalf("expected 2 panes, got %d", m.State().PaneCount())
	}
	for y := range 23 {
		if !strings.Contains(tr.Screen[y], "│") {
			t.Errorf("row %d has no vertical border: %q", y, tr.Screen[y])
		}
	}
}

func TestMultiplexerPrefixIndicator(t *testing.T) {
	m := newTestMultiplexer(false)
	tr := replay(t, m, "<C-b>", 80, 24)
	if !strings.Contains(tr.Screen[23], "PREFIX") {
		t.Errorf("status row should show PREFIX: %q", tr.Screen[23])
	}
}

func TestMultiplexerPromptLine(t *testing.T) {
	m := newTestMultiplexer(false)
	tr := replay(t, m, "<C-b>:new-win", 80, 24)
	if tr.Screen[23] != mux.PromptCommand.Label()+"new-win" {
		t.Errorf("prompt row: got %q", tr.Screen[23])
	}
	if tr.Last().Mode != "PROMPT" {
		t.Errorf("mode: got %q", tr.Last().Mode)
	}
}

func TestMultiplexerCommandOutputOverlay(t *testing.T) {
	m := newTestMultiplexer(false)
	tr := replay(t, m, "<C-b>:list-windows<CR>", 80, 24)
	if !strings.Contains(tr.Screen[0], "main") {
		t.Errorf("output overlay missing: %q", tr.Screen[0])
	}

	// any key clears the overlay
	m.HandleKey(input.RuneKey('x'), testNow)
	if len(m.output) != 0 {
		t.Error("output should clear on the next key")
	}
}

func TestMultiplexerBufferMirrorsClipboard(t *testing.T) {
	m := newTestMultiplexer(false)
	tr := replay(t, m, "<C-b>:set-buffer hello<CR>", 80, 24)

	last := tr.Last()
	if !last.HasClipboard || last.Clipboard != "hello" {
		t.Errorf("clipboard: has %v text %q", last.HasClipboard, last.Clipboard)
	}
	for _, out := range tr.Outcomes[:len(tr.Outcomes)-1] {
		if out.HasClipboard {
			t.Error("only the key that pushed the buffer should carry clipboard text")
		}
	}
}

func TestMultiplexerDetachQuits(t *testing.T) {
	m := newTestMultiplexer(false)
	tr := replay(t, m, "<C-b>dls", 80, 24)

	if !tr.Quit {
		t.Fatal("detach should end the replay")
	}
	if tr.Last().Action != "detach" {
		t.Errorf("action: got %q", tr.Last().Action)
	}
	if len(tr.Outcomes) != 2 {
		t.Errorf("keys after detach should not run, got %d outcomes", len(tr.Outcomes))
	}
}

func TestMultiplexerMouse(t *testing.T) {
	m := newTestMultiplexer(true)
	m.Resize(80, 24)
	m.HandleKey(input.CtrlKey('b'), testNow)
	m.HandleKey(input.RuneKey('%'), testNow)
	right := m.State().Window().ActivePane

	m.HandleMouse(tcell.NewEventMouse(1, 1, tcell.Button1, tcell.ModNone), testNow)
	if m.State().Window().ActivePane == right {
		t.Error("click on the left pane should activate it")
	}

	out := m.HandleMouse(tcell.NewEventMouse(1, 1, tcell.WheelUp, tcell.ModNone), testNow)
	if !m.State().InCopyMode() || out.Mode != "COPY" {
		t.Errorf("wheel up should enter copy mode, mode %q", out.Mode)
	}

	out = m.HandleMouse(tcell.NewEventMouse(1, 1, tcell.ButtonNone, tcell.ModNone), testNow)
	if out != (Outcome{}) {
		t.Errorf("motion should be ignored, got %+v", out)
	}
}

func TestMultiplexerStatusClick(t *testing.T) {
	m := newTestMultiplexer(true)
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer sim.Fini()
	sim.SetSize(80, 24)
	m.Resize(80, 24)

	m.HandleKey(input.CtrlKey('b'), testNow)
	m.HandleKey(input.RuneKey('c'), testNow)
	if m.State().Window().Index != 1 {
		t.Fatalf("expected window 1 active, got %d", m.State().Window().Index)
	}
	m.Draw(sim, testNow)

	// "[main] " is 7 cells, so the first tab starts at x=7
	m.HandleMouse(tcell.NewEventMouse(8, 23, tcell.Button1, tcell.ModNone), testNow)
	if m.State().Window().Index != 0 {
		t.Errorf("click on tab 0: active window %d", m.State().Window().Index)
	}

	before := m.State()
	m.HandleMouse(tcell.NewEventMouse(79, 23, tcell.Button1, tcell.ModNone), testNow)
	if m.State().Window().Index != before.Window().Index {
		t.Error("click past the tabs should do nothing")
	}
}

func TestMultiplexerCopySelectionDraw(t *testing.T) {
	m := newTestMultiplexer(false)
	tr := replay(t, m, "echo<C-b>[0v$", 80, 24)
	if tr.Last().Mode != "COPY" {
		t.Fatalf("mode: got %q", tr.Last().Mode)
	}
	if !strings.Contains(tr.Screen[23], "COPY") {
		t.Errorf("status should show COPY: %q", tr.Screen[23])
	}
	cm := m.State().CopyMode
	if !cm.Selecting || !copySelected(cm, mux.Position{Line: 0, Col: 3}) {
		t.Errorf("selection: %+v", cm)
	}
}

func TestNewestBuffer(t *testing.T) {
	full := make([]string, mux.MaxPasteBuffers)
	for i := range full {
		full[i] = string(rune('a' + i%26))
	}
	rotated := append([]string{"new"}, full[:mux.MaxPasteBuffers-1]...)

	tests := []struct {
		name          string
		before, after []string
		want          string
		ok            bool
	}{
		{"first", nil, []string{"x"}, "x", true},
		{"pushed", []string{"x"}, []string{"y", "x"}, "y", true},
		{"unchanged", []string{"x"}, []string{"x"}, "", false},
		{"deleted", []string{"y", "x"}, []string{"x"}, "", false},
		{"empty", []string{"x"}, nil, "", false},
		{"full ring", full, rotated, "new", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := newestBuffer(tt.before, tt.after)
			if got != tt.want || ok != tt.ok {
				t.Errorf("expected (%q, %v), got (%q, %v)", tt.want, tt.ok, got, ok)
			}
		})
	}
}
