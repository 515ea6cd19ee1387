package host

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-dojo/input"
	"github.com/lixenwraith/vi-dojo/status"
)

func newSim(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	sim.SetSize(w, h)
	t.Cleanup(sim.Fini)
	return sim
}

func TestRunQuitsOnEngineQuit(t *testing.T) {
	sim := newSim(t, 40, 6)
	reg := status.NewRegistry()
	h := New(sim, newTestEditor("hello", nil), Options{Status: reg, Now: fixedNow, Tick: 10 * time.Millisecond})

	go func() {
		for _, k := range input.ParseKeys(":q!<CR>") {
			sim.InjectKey(input.ToTcell(k))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}

	if got := reg.Counters.Get(status.KeysHandled).Load(); got != 4 {
		t.Errorf("keys handled: expected 4, got %d", got)
	}
	if got := reg.Texts.Get(status.LastAction).Load(); got != "quit" {
		t.Errorf("last action: got %q", got)
	}
}

func TestRunStopsOnContext(t *testing.T) {
	sim := newSim(t, 40, 6)
	h := New(sim, newTestEditor("hello", nil), Options{Now: fixedNow})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := h.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if rows := ScreenText(sim); rows[0] != "  1 hello" {
		t.Errorf("first paint: got %q", rows[0])
	}
}

func TestDispatchResize(t *testing.T) {
	sim := newSim(t, 40, 6)
	reg := status.NewRegistry()
	ed := newTestEditor("hello", nil)
	h := New(sim, ed, Options{Status: reg, Now: fixedNow})

	if h.Dispatch(tcell.NewEventResize(50, 10)) {
		t.Fatal("resize should not quit")
	}
	if got := ed.State().Settings.Lines; got != 8 {
		t.Errorf("text rows: expected 8, got %d", got)
	}
	if got := reg.Counters.Get(status.Resizes).Load(); got != 1 {
		t.Errorf("resizes: expected 1, got %d", got)
	}
}

func TestDispatchMouseToNonMouseApp(t *testing.T) {
	sim := newSim(t, 40, 6)
	h := New(sim, newTestEditor("hello", nil), Options{Now: fixedNow})
	if h.Dispatch(tcell.NewEventMouse(0, 0, tcell.Button1, tcell.ModNone)) {
		t.Error("mouse on the editor should be ignored")
	}
}

func TestDispatchSkipsUnmappedKeys(t *testing.T) {
	sim := newSim(t, 40, 6)
	reg := status.NewRegistry()
	h := New(sim, newTestEditor("hello", nil), Options{Status: reg, Now: fixedNow})

	h.Dispatch(tcell.NewEventKey(tcell.KeyF12, 0, tcell.ModNone))
	if got := reg.Counters.Get(status.KeysHandled).Load(); got != 0 {
		t.Errorf("unmapped key should not reach the app, handled %d", got)
	}
}

func TestObserveCountsMessages(t *testing.T) {
	reg := status.NewRegistry()
	_, err := Replay(newTestEditor("hello", nil), input.ParseKeys("ix<Esc>:q<CR>"), 60, 6,
		Options{Status: reg, Now: fixedNow, Logger: log.New(io.Discard)})
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if got := reg.Counters.Get(status.MessagesError).Load(); got != 1 {
		t.Errorf("error messages: expected 1, got %d", got)
	}
	if got := reg.Texts.Get(status.Mode).Load(); got != "NORMAL" {
		t.Errorf("mode text: got %q", got)
	}
	if reg.Gauges.Get(status.KeyLatency).Get() < 0 {
		t.Error("latency gauge should not be negative")
	}
}

func TestObserveRecordingFlag(t *testing.T) {
	reg := status.NewRegistry()
	if _, err := Replay(newTestEditor("hello", nil), input.ParseKeys("qa"), 40, 6, Options{Status: reg, Now: fixedNow}); err != nil {
		t.Fatalf("replay: %v", err)
	}
	if !reg.Flags.Get(status.Recording).Load() {
		t.Error("recording flag should be set while a macro records")
	}
}

func TestObserveMirrorsClipboard(t *testing.T) {
	cb := &fakeClipboard{}
	reg := status.NewRegistry()
	w := NewClipboardWriter(cb, reg, log.New(io.Discard))

	_, err := Replay(newTestEditor("hello world", nil), input.ParseKeys(`"+yiw`), 40, 6,
		Options{Status: reg, Now: fixedNow, Clipboard: w})
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	w.Close()

	if len(cb.texts) != 1 || cb.texts[0] != "hello" {
		t.Errorf("clipboard texts: %v", cb.texts)
	}
}

func TestObserveDetachFlag(t *testing.T) {
	reg := status.NewRegistry()
	tr, err := Replay(newTestMultiplexer(false), input.ParseKeys("<C-b>d"), 80, 24, Options{Status: reg, Now: fixedNow})
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if !tr.Quit || !reg.Flags.Get(status.Detached).Load() {
		t.Errorf("detach: quit %v flag %v", tr.Quit, reg.Flags.Get(status.Detached).Load())
	}
}

func TestTranscriptLastEmpty(t *testing.T) {
	var tr Transcript
	if tr.Last() != (Outcome{}) {
		t.Error("empty transcript should return the zero outcome")
	}
}
