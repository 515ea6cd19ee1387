// Package status collects host counters shared between the event loop and the clipboard and bell goroutines
package status

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Well-known metric names
const (
	KeysHandled       = "keys.handled"
	MessagesError     = "messages.error"
	MessagesWarning   = "messages.warning"
	ClipboardWrites   = "clipboard.writes"
	ClipboardFailures = "clipboard.failures"
	BellRings         = "bell.rings"
	Resizes           = "screen.resizes"

	KeyLatency = "key.latency_us"

	Mode        = "mode"
	LastMessage = "message.last"
	LastAction  = "action.last"

	Recording = "recording"
	Detached  = "detached"
)

// Registry groups the metric tables by value type
type Registry struct {
	Flags    *Map[atomic.Bool]
	Counters *Map[atomic.Int64]
	Gauges   *Map[Gauge]
	Texts    *Map[Text]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		Flags:    NewMap[atomic.Bool](),
		Counters: NewMap[atomic.Int64](),
		Gauges:   NewMap[Gauge](),
		Texts:    NewMap[Text](),
	}
}

// Len returns the number of metrics across all tables
func (r *Registry) Len() int {
	return r.Flags.Len() + r.Counters.Len() + r.Gauges.Len() + r.Texts.Len()
}

// Snapshot renders every metric as "name=value" pairs on one line, grouped by type and sorted by name
func (r *Registry) Snapshot() string {
	var parts []string
	r.Counters.Range(func(name string, v *atomic.Int64) {
		parts = append(parts, fmt.Sprintf("%s=%d", name, v.Load()))
	})
	r.Gauges.Range(func(name string, g *Gauge) {
		parts = append(parts, fmt.Sprintf("%s=%.1f", name, g.Get()))
	})
	r.Flags.Range(func(name string, f *atomic.Bool) {
		parts = append(parts, fmt.Sprintf("%s=%t", name, f.Load()))
	})
	r.Texts.Range(func(name string, t *Text) {
		parts = append(parts, fmt.Sprintf("%s=%q", name, t.Load()))
	})
	return strings.Join(parts, " ")
}
