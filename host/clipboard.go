// @lixen: #focus{host[clipboard,async]}
package host

import (
	"errors"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"

	"github.com/lixenwraith/vi-dojo/status"
)

// ErrClipboardUnsupported is reported when no clipboard utility is installed
var ErrClipboardUnsupported = errors.New("clipboard unsupported on this system")

// clipboardQueue bounds pending writes; older text is worthless once newer text is queued
const clipboardQueue = 8

// Clipboard is the OS clipboard
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes through atotto/clipboard
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnsupported
	}
	return clipboard.WriteAll(text)
}

// ClipboardWriter mirrors yanks to a Clipboard on its own goroutine
// Write never blocks the event loop; failures are counted and logged
type ClipboardWriter struct {
	cb     Clipboard
	reg    *status.Registry
	logger *log.Logger

	queue chan string
	done  sync.WaitGroup
	once  sync.Once
}

// NewClipboardWriter starts the writer goroutine
func NewClipboardWriter(cb Clipboard, reg *status.Registry, logger *log.Logger) *ClipboardWriter {
	w := &ClipboardWriter{
		cb:     cb,
		reg:    reg,
		logger: logger,
		queue:  make(chan string, clipboardQueue),
	}
	w.done.Add(1)
	Go(func() {
		defer w.done.Done()
		w.run()
	})
	return w
}

func (w *ClipboardWriter) run() {
	writes := w.reg.Counters.Get(status.ClipboardWrites)
	failures := w.reg.Counters.Get(status.ClipboardFailures)
	for text := range w.queue {
		if err := w.cb.WriteAll(text); err != nil {
			failures.Add(1)
			w.logger.Warn("clipboard write failed", "err", err, "bytes", len(text))
			continue
		}
		writes.Add(1)
		w.logger.Debug("clipboard written", "bytes", len(text))
	}
}

// Write queues text; when the queue is full the write is dropped and counted as a failure
func (w *ClipboardWriter) Write(text string) {
	select {
	case w.queue <- text:
	default:
		w.reg.Counters.Get(status.ClipboardFailures).Add(1)
		w.logger.Warn("clipboard queue full, dropping write", "bytes", len(text))
	}
}

// Close drains queued writes and stops the goroutine
func (w *ClipboardWriter) Close() {
	w.once.Do(func() {
		close(w.queue)
		w.done.Wait()
	})
}
