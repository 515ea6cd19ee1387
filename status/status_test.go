package status

import (
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

func TestMapGetReturnsSamePointer(t *testing.T) {
	m := NewMap[atomic.Int64]()
	a := m.Get(KeysHandled)
	a.Add(3)
	if b := m.Get(KeysHandled); b != a || b.Load() != 3 {
		t.Error("second Get should return the cached pointer")
	}
	if !m.Has(KeysHandled) || m.Has(BellRings) {
		t.Error("Has should report only registered names")
	}
}

func TestMapConcurrentGet(t *testing.T) {
	m := NewMap[atomic.Int64]()
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				m.Get(KeysHandled).Add(1)
			}
		}()
	}
	wg.Wait()
	if got := m.Get(KeysHandled).Load(); got != 1600 {
		t.Errorf("expected 1600, got %d", got)
	}
	if m.Len() != 1 {
		t.Errorf("expected 1 metric, got %d", m.Len())
	}
}

func TestMapRangeOrder(t *testing.T) {
	m := NewMap[Text]()
	for _, name := range []string{"mode", "action.last", "message.last"} {
		m.Get(name)
	}
	var names []string
	m.Range(func(name string, _ *Text) { names = append(names, name) })
	if strings.Join(names, ",") != "action.last,message.last,mode" {
		t.Errorf("range order: got %v", names)
	}
}

func TestTextTruncates(t *testing.T) {
	var txt Text
	if txt.Load() != "" {
		t.Error("zero Text should be empty")
	}
	txt.Store("short")
	if txt.Load() != "short" {
		t.Errorf("got %q", txt.Load())
	}
	txt.Store(strings.Repeat("x", 100))
	got := txt.Load()
	if !strings.HasSuffix(got, "...") || len(got) != MaxTextWidth {
		t.Errorf("truncation: got %d runes %q", len([]rune(got)), got)
	}
	txt.Store(strings.Repeat("界", 40))
	if n := len([]rune(strings.TrimSuffix(txt.Load(), "..."))); n > MaxTextWidth/2 {
		t.Errorf("wide runes should count two cells, kept %d", n)
	}
}

func TestGaugeSmooth(t *testing.T) {
	var g Gauge
	if v := g.Smooth(100, 0.5); v != 100 {
		t.Errorf("first sample: expected 100, got %v", v)
	}
	if v := g.Smooth(50, 0.5); v != 75 {
		t.Errorf("second sample: expected 75, got %v", v)
	}
	g.Set(2.5)
	if g.Get() != 2.5 {
		t.Errorf("set: got %v", g.Get())
	}
}

func TestSnapshot(t *testing.T) {
	r := NewRegistry()
	r.Counters.Get(KeysHandled).Add(4)
	r.Counters.Get(BellRings).Add(1)
	r.Flags.Get(Recording).Store(true)
	r.Texts.Get(Mode).Store("INSERT")
	r.Gauges.Get(KeyLatency).Set(12.34)

	want := `bell.rings=1 keys.handled=4 key.latency_us=12.3 recording=true mode="INSERT"`
	if got := r.Snapshot(); got != want {
		t.Errorf("expected\n%s\ngot\n%s", want, got)
	}
	if r.Len() != 5 {
		t.Errorf("expected 5 metrics, got %d", r.Len())
	}
}
