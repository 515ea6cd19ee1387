package status

import (
	"math"
	"sync/atomic"
)

// Gauge is a float64 updated with compare-and-swap on its bit pattern
// The zero value holds 0
type Gauge struct {
	bits atomic.Uint64
}

// Set stores val
func (g *Gauge) Set(val float64) {
	g.bits.Store(math.Float64bits(val))
}

// Get loads the value
func (g *Gauge) Get() float64 {
	return math.Float64frombits(g.bits.Load())
}

// Smooth folds sample into an exponential moving average with weight alpha and returns the result
// The first sample on a zero gauge is taken as is
func (g *Gauge) Smooth(sample, alpha float64) float64 {
	for {
		old := g.bits.Load()
		cur := math.Float64frombits(old)
		next := sample
		if old != 0 {
			next = cur + alpha*(sample-cur)
		}
		if g.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}
