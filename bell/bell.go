// @lixen: #focus{host[bell,audio]}
// Package bell plays short tones when an engine reports an error or warning
package bell

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)

	// MinInterval is the shortest gap between two tones; rings inside it are dropped
	MinInterval = 80 * time.Millisecond
)

// Tone selects the sound played by Ring
type Tone uint8

const (
	ToneError Tone = iota
	ToneWarning
)

// Bell owns the speaker mixer
// All methods are safe on an uninitialized or disabled Bell and then do nothing
type Bell struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	last        time.Time
}

// New creates a silent bell; call Init to open the audio device
func New() *Bell {
	return &Bell{mixer: &beep.Mixer{}}
}

// Init opens the speaker and starts the mixer
func (b *Bell) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(b.mixer)
	b.initialized = true
	return nil
}

// Close drops queued tones; the speaker itself stays open for the process lifetime
func (b *Bell) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}
	speaker.Lock()
	b.mixer.Clear()
	speaker.Unlock()
	b.initialized = false
}

// Ring queues tone unless the bell is closed or rang less than MinInterval ago
// Reports whether a tone was queued
func (b *Bell) Ring(tone Tone, now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized || !b.due(now) {
		return false
	}
	b.last = now

	speaker.Lock()
	b.mixer.Add(toneStreamer(tone))
	speaker.Unlock()
	return true
}

func (b *Bell) due(now time.Time) bool {
	return b.last.IsZero() || now.Sub(b.last) >= MinInterval
}

// toneStreamer returns a finite streamer for tone
func toneStreamer(tone Tone) beep.Streamer {
	if tone == ToneWarning {
		return beep.Take(sampleRate.N(60*time.Millisecond), NewBuzzGenerator(sampleRate, 440, 0.1))
	}
	return beep.Take(sampleRate.N(150*time.Millisecond), NewBuzzGenerator(sampleRate, 120, 0.2))
}

// BuzzGenerator is a sine with two overtones and a 20ms fade-in
type BuzzGenerator struct {
	sr     beep.SampleRate
	freq   float64
	volume float64
	pos    int
}

// NewBuzzGenerator creates an endless buzz at freq; wrap it in beep.Take to bound it
func NewBuzzGenerator(sr beep.SampleRate, freq, volume float64) *BuzzGenerator {
	return &BuzzGenerator{sr: sr, freq: freq, volume: volume}
}

func (g *BuzzGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		v := 0.3*math.Sin(2*math.Pi*g.freq*t) +
			0.15*math.Sin(2*math.Pi*g.freq*2*t) +
			0.075*math.Sin(2*math.Pi*g.freq*3*t)
		v *= min(t/0.02, 1.0) * g.volume

		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *BuzzGenerator) Err() error {
	return nil
}
