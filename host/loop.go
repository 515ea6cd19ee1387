// @lixen: #focus{host[loop,events,replay]}
package host

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-dojo/bell"
	"github.com/lixenwraith/vi-dojo/input"
	"github.com/lixenwraith/vi-dojo/status"
)

// DefaultTick is how often the screen redraws without input, so prefix and leader indicators expire
const DefaultTick = 250 * time.Millisecond

// Options wires the host's side channels; zero fields get silent defaults
type Options struct {
	Logger    *log.Logger
	Status    *status.Registry
	Bell      *bell.Bell
	Clipboard *ClipboardWriter
	Now       func() time.Time
	Tick      time.Duration
}

// Host drives one App from a tcell screen
type Host struct {
	screen tcell.Screen
	app    App
	opts   Options

	latency *status.Gauge
}

// New creates a host; the caller owns screen initialisation and Fini
func New(screen tcell.Screen, app App, opts Options) *Host {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Status == nil {
		opts.Status = status.NewRegistry()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Tick <= 0 {
		opts.Tick = DefaultTick
	}
	return &Host{
		screen:  screen,
		app:     app,
		opts:    opts,
		latency: opts.Status.Gauges.Get(status.KeyLatency),
	}
}

// Run paints and processes events until the app quits or ctx ends
func (h *Host) Run(ctx context.Context) error {
	w, ht := h.screen.Size()
	h.app.Resize(w, ht)
	if _, ok := h.app.(MouseApp); ok {
		h.screen.EnableMouse()
	}
	h.draw()

	events := make(chan tcell.Event, 64)
	stop := make(chan struct{})
	defer close(stop)

	Go(func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-stop:
				return
			}
		}
	})

	ticker := time.NewTicker(h.opts.Tick)
	defer ticker.Stop()

	h.opts.Logger.Info("started", "app", h.app.Name(), "width", w, "height", ht)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if h.Dispatch(ev) {
				h.opts.Logger.Info("stopped", "app", h.app.Name(), "metrics", h.opts.Status.Snapshot())
				return nil
			}
			h.draw()
		case <-ticker.C:
			h.draw()
		}
	}
}

// Dispatch processes one event and reports whether the app asked to quit
func (h *Host) Dispatch(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		out, ok := h.handleKey(ev)
		return ok && out.Quit
	case *tcell.EventMouse:
		ma, ok := h.app.(MouseApp)
		if !ok {
			return false
		}
		out := ma.HandleMouse(ev, h.opts.Now())
		h.observe(out)
		return out.Quit
	case *tcell.EventResize:
		h.screen.Sync()
		w, ht := ev.Size()
		h.app.Resize(w, ht)
		h.opts.Status.Counters.Get(status.Resizes).Add(1)
		h.opts.Logger.Debug("resized", "width", w, "height", ht)
	}
	return false
}

// handleKey converts and forwards a key; keys the engines do not consume are skipped
func (h *Host) handleKey(ev *tcell.EventKey) (Outcome, bool) {
	key := input.FromTcell(ev)
	if key.Name == input.KeyNone {
		return Outcome{}, false
	}
	start := time.Now()
	out := h.app.HandleKey(key, h.opts.Now())
	h.latency.Smooth(float64(time.Since(start).Microseconds()), 0.1)
	h.opts.Status.Counters.Get(status.KeysHandled).Add(1)
	h.opts.Logger.Debug("key", "app", h.app.Name(), "key", key.String(), "action", out.Action, "mode", out.Mode)
	h.observe(out)
	return out, true
}

// observe publishes an outcome to status, the log, the bell and the clipboard
func (h *Host) observe(out Outcome) {
	reg := h.opts.Status
	if out.Mode != "" {
		reg.Texts.Get(status.Mode).Store(out.Mode)
	}
	if out.Action != "" {
		reg.Texts.Get(status.LastAction).Store(out.Action)
	}
	if out.Message != "" {
		reg.Texts.Get(status.LastMessage).Store(out.Message)
	}
	reg.Flags.Get(status.Recording).Store(out.Recording)

	switch out.Level {
	case LevelError:
		reg.Counters.Get(status.MessagesError).Add(1)
		h.opts.Logger.Warn("engine error", "app", h.app.Name(), "message", out.Message)
		h.ring(bell.ToneError)
	case LevelWarning:
		reg.Counters.Get(status.MessagesWarning).Add(1)
		h.opts.Logger.Info("engine warning", "app", h.app.Name(), "message", out.Message)
		h.ring(bell.ToneWarning)
	}

	if out.HasClipboard && h.opts.Clipboard != nil {
		h.opts.Clipboard.Write(out.Clipboard)
	}
	if out.Quit && out.Action == "detach" {
		reg.Flags.Get(status.Detached).Store(true)
	}
}

func (h *Host) ring(tone bell.Tone) {
	if h.opts.Bell == nil {
		return
	}
	if h.opts.Bell.Ring(tone, time.Now()) {
		h.opts.Status.Counters.Get(status.BellRings).Add(1)
	}
}

func (h *Host) draw() {
	h.screen.Clear()
	h.app.Draw(h.screen, h.opts.Now())
	h.screen.Show()
}

// Transcript is the result of a headless replay
type Transcript struct {
	Outcomes []Outcome
	Screen   []string
	Quit     bool
}

// Last returns the final outcome, or the zero Outcome when no key was handled
func (t *Transcript) Last() Outcome {
	if len(t.Outcomes) == 0 {
		return Outcome{}
	}
	return t.Outcomes[len(t.Outcomes)-1]
}

// Replay feeds keys to app through tcell key events on a simulation screen and returns what it showed
// Replay stops early when the app quits
func Replay(app App, keys []input.Key, width, height int, opts Options) (*Transcript, error) {
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		return nil, fmt.Errorf("simulation screen: %w", err)
	}
	defer sim.Fini()
	sim.SetSize(width, height)

	h := New(sim, app, opts)
	h.app.Resize(width, height)

	t := &Transcript{}
	for _, k := range keys {
		tk, r, mod := input.ToTcell(k)
		out, ok := h.handleKey(tcell.NewEventKey(tk, r, mod))
		if !ok {
			continue
		}
		t.Outcomes = append(t.Outcomes, out)
		if out.Quit {
			t.Quit = true
			break
		}
	}
	h.draw()
	t.Screen = ScreenText(sim)
	return t, nil
}
