package bell

import (
	"math"
	"testing"
	"time"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// An uninitialized bell must be usable by hosts that have no audio device
func TestBellSilentWithoutInit(t *testing.T) {
	b := New()
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("bell panicked without init: %v", r)
		}
	}()
	if b.Ring(ToneError, testNow) {
		t.Error("uninitialized bell should not queue a tone")
	}
	b.Close()
}

func TestBellInit(t *testing.T) {
	b := New()
	if err := b.Init(); err != nil {
		t.Logf("speaker unavailable: %v", err)
		return
	}
	if err := b.Init(); err != nil {
		t.Errorf("second Init should be a no-op, got %v", err)
	}
	if !b.Ring(ToneWarning, testNow) {
		t.Error("first ring should queue")
	}
	if b.Ring(ToneError, testNow.Add(MinInterval/2)) {
		t.Error("ring inside MinInterval should be dropped")
	}
	if !b.Ring(ToneError, testNow.Add(MinInterval)) {
		t.Error("ring after MinInterval should queue")
	}
	b.Close()
}

func TestDue(t *testing.T) {
	b := New()
	if !b.due(testNow) {
		t.Error("a bell that never rang is due")
	}
	b.last = testNow
	if b.due(testNow.Add(MinInterval - time.Millisecond)) {
		t.Error("bell should not be due inside MinInterval")
	}
	if !b.due(testNow.Add(MinInterval)) {
		t.Error("bell should be due at MinInterval")
	}
}

func TestBuzzGenerator(t *testing.T) {
	g := NewBuzzGenerator(sampleRate, 120, 0.2)
	buf := make([][2]float64, 2048)
	n, ok := g.Stream(buf)
	if n != len(buf) || !ok {
		t.Fatalf("stream: n=%d ok=%v", n, ok)
	}
	if buf[0][0] != 0 {
		t.Errorf("fade-in should start silent, got %v", buf[0][0])
	}
	peak := 0.0
	for _, s := range buf {
		if s[0] != s[1] {
			t.Fatal("channels should match")
		}
		peak = max(peak, math.Abs(s[0]))
	}
	if peak == 0 || peak > 0.2*0.525 {
		t.Errorf("peak %v outside (0, %v]", peak, 0.2*0.525)
	}
	if g.Err() != nil {
		t.Error("generator should not fail")
	}
}

func TestToneLength(t *testing.T) {
	tests := []struct {
		tone Tone
		want int
	}{
		{ToneError, sampleRate.N(150 * time.Millisecond)},
		{ToneWarning, sampleRate.N(60 * time.Millisecond)},
	}
	for _, tt := range tests {
		s := toneStreamer(tt.tone)
		buf := make([][2]float64, 1024)
		total := 0
		for {
			n, ok := s.Stream(buf)
			total += n
			if !ok {
				break
			}
		}
		if total != tt.want {
			t.Errorf("tone %d: expected %d samples, got %d", tt.tone, tt.want, total)
		}
	}
}
