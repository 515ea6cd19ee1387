package mux

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/lixenwraith/vi-dojo/input"
)

func TestNewState(t *testing.T) {
	s := NewState(0, -1, testNow)
	if s.Width != DefaultWidth || s.Height != DefaultHeight {
		t.Errorf("size: expected defaults, got %dx%d", s.Width, s.Height)
	}
	if s.SessionCount() != 1 || s.WindowCount() != 1 || s.PaneCount() != 1 {
		t.Fatalf("expected 1/1/1, got %d/%d/%d", s.SessionCount(), s.WindowCount(), s.PaneCount())
	}
	if s.Session().Name != "main" || s.Window().Name != "main" || !s.Session().Attached {
		t.Errorf("session %q window %q attached %v", s.Session().Name, s.Window().Name, s.Session().Attached)
	}
	p := s.Pane()
	if p.ID != 1 || p.Content[0] != "$ " || p.Cursor.Col != 2 || p.Title != "pane-1" {
		t.Errorf("pane: %+v", p)
	}
	if !s.CopyMode.Forward || s.InCopyMode() {
		t.Error("copy mode should start off, searching forward")
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := newTestState()
	c := s.Clone()
	c.Pane().Content[0] = "changed"
	c.Window().Name = "changed"
	c.Session().Name = "changed"
	if s.Pane().Content[0] != "$ " || s.Window().Name != "main" || s.Session().Name != "main" {
		t.Error("clone shares data with the original")
	}
}

func TestStateJSONRoundTrip(t *testing.T) {
	s := newTestState()
	s, _ = SplitVertical(s)
	s, _ = NewWindow(s, "logs")
	s, _ = AddBuffer(s, "text")
	s, _ = NewSession(s, "work", testNow)
	s, _ = keys(t, s, "<C-b>:list-panes<CR>")

	first, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back State
	if err := json.Unmarshal(first, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	second, err := json.Marshal(&back)
	if err != nil {
		t.Fatalf("marshal again: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("round trip changed the state:\n%s\n%s", first, second)
	}
	if back.Session().Name != "work" || back.PasteBuffers[0] != "text" {
		t.Error("decoded state lost data")
	}
}

func TestPrefixPending(t *testing.T) {
	e := NewEngine()
	s, _ := e.HandleKey(newTestState(), input.CtrlKey('b'), testNow)
	if !s.PrefixPending(testNow.Add(time.Second)) {
		t.Error("prefix should be pending within the timeout")
	}
	if s.PrefixPending(testNow.Add(3 * time.Second)) {
		t.Error("prefix should expire after the timeout")
	}

	late, _ := e.HandleKey(s, input.RuneKey('%'), testNow.Add(3*time.Second))
	if late.PaneCount() != 1 {
		t.Error("expired prefix must not split")
	}
	if got := late.Pane().Content[0]; got != "$ %" {
		t.Errorf("expired prefix key should reach the pane, got %q", got)
	}

	inTime, _ := e.HandleKey(s, input.RuneKey('%'), testNow.Add(time.Second))
	if inTime.PaneCount() != 2 || inTime.PrefixActive {
		t.Error("armed prefix should split and disarm")
	}
}

func TestCustomPrefix(t *testing.T) {
	e := NewEngine(WithPrefix(input.CtrlKey('a'), time.Second))
	s, _ := e.HandleKeys(newTestState(), input.ParseKeys("<C-b>%"), testNow)
	if s.PaneCount() != 1 {
		t.Error("Ctrl-b should not be the prefix")
	}
	s, _ = e.HandleKeys(s, input.ParseKeys("<C-a>%"), testNow)
	if s.PaneCount() != 2 {
		t.Error("Ctrl-a prefix should split")
	}
}

// Two fresh states fed the same operations agree on every id
func TestIDsReproducible(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ops := rapid.SliceOfN(rapid.IntRange(0, 5), 1, 30).Draw(t, "ops")
		run := func() *State {
			s := newTestState()
			for _, op := range ops {
				switch op {
				case 0:
					s, _ = SplitVertical(s)
				case 1:
					s, _ = SplitHorizontal(s)
				case 2:
					s, _ = NewWindow(s, "")
				case 3:
					s, _ = NewSession(s, "", testNow)
				case 4:
					s, _ = ClosePane(s)
				case 5:
					s, _ = BreakPane(s)
				}
			}
			return s
		}
		a, err := json.Marshal(run())
		if err != nil {
			t.Fatal(err)
		}
		b, _ := json.Marshal(run())
		if !bytes.Equal(a, b) {
			t.Fatalf("states differ:\n%s\n%s", a, b)
		}
	})
}

// Every operation leaves an existing active session, window and pane behind
func TestActiveReferencesStayValid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := newTestState()
		steps := rapid.IntRange(1, 50).Draw(t, "steps")
		for range steps {
			switch rapid.IntRange(0, 11).Draw(t, "op") {
			case 0:
				s, _ = SplitVertical(s)
			case 1:
				s, _ = SplitHorizontal(s)
			case 2:
				s, _ = ClosePane(s)
			case 3:
				s, _ = NewWindow(s, "")
			case 4:
				s, _ = KillWindow(s)
			case 5:
				s, _ = NewSession(s, "", testNow)
			case 6:
				s, _ = KillSession(s)
			case 7:
				s, _ = BreakPane(s)
			case 8:
				s, _ = LastSession(s)
			case 9:
				s, _ = LastWindow(s)
			case 10:
				s, _ = LastPane(s)
			case 11:
				s, _ = NewEngine().Execute(s, "kill-pane", testNow)
			}
			sess := s.session(s.ActiveSession)
			if sess == nil {
				t.Fatalf("active session %d missing", s.ActiveSession)
			}
			w := sess.Window(sess.ActiveWindow)
			if w == nil {
				t.Fatalf("active window %d missing", sess.ActiveWindow)
			}
			if w.Pane(w.ActivePane) == nil {
				t.Fatalf("active pane %d missing", w.ActivePane)
			}
			for i, win := range sess.Windows {
				if win.Index != i {
					t.Fatalf("window %d has index %d", i, win.Index)
				}
			}
		}
	})
}
