package host

import (
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/vi-dojo/status"
)

type fakeClipboard struct {
	mu    sync.Mutex
	texts []string
	err   error
	gate  chan struct{}
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.texts = append(f.texts, text)
	return nil
}

func TestClipboardWriterWrites(t *testing.T) {
	cb := &fakeClipboard{}
	reg := status.NewRegistry()
	w := NewClipboardWriter(cb, reg, log.New(io.Discard))

	w.Write("one")
	w.Write("two")
	w.Close()

	if len(cb.texts) != 2 || cb.texts[0] != "one" || cb.texts[1] != "two" {
		t.Errorf("written: %v", cb.texts)
	}
	if got := reg.Counters.Get(status.ClipboardWrites).Load(); got != 2 {
		t.Errorf("writes counter: expected 2, got %d", got)
	}
}

func TestClipboardWriterCountsFailures(t *testing.T) {
	cb := &fakeClipboard{err: errors.New("no display")}
	reg := status.NewRegistry()
	w := NewClipboardWriter(cb, reg, log.New(io.Discard))

	w.Write("x")
	w.Close()

	if got := reg.Counters.Get(status.ClipboardFailures).Load(); got != 1 {
		t.Errorf("failures counter: expected 1, got %d", got)
	}
	if got := reg.Counters.Get(status.ClipboardWrites).Load(); got != 0 {
		t.Errorf("writes counter: expected 0, got %d", got)
	}
}

func TestClipboardWriterDropsWhenFull(t *testing.T) {
	cb := &fakeClipboard{gate: make(chan struct{})}
	reg := status.NewRegistry()
	w := NewClipboardWriter(cb, reg, log.New(io.Discard))

	// One write is held by the blocked clipboard; the rest fill the queue
	// The first may or may not have been dequeued yet, so overfill by two
	for range clipboardQueue + 2 {
		w.Write("x")
	}
	if got := reg.Counters.Get(status.ClipboardFailures).Load(); got < 1 {
		t.Errorf("expected dropped writes, failures %d", got)
	}

	close(cb.gate)
	w.Close()
	dropped := reg.Counters.Get(status.ClipboardFailures).Load()
	written := reg.Counters.Get(status.ClipboardWrites).Load()
	if dropped+written != clipboardQueue+2 {
		t.Errorf("every write is either written or dropped: %d + %d", written, dropped)
	}
}

func TestClipboardWriterCloseIdempotent(t *testing.T) {
	w := NewClipboardWriter(&fakeClipboard{}, status.NewRegistry(), log.New(io.Discard))
	w.Close()
	w.Close()
}
