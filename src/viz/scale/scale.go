// Package scale maps record values to pixel geometry for the two chart kinds.
//
// Scales are pure values derived from the viewport on every render pass; nothing
// here is cached between passes.
package scale

import (
	"math"

	"github.com/iafilius/InteractiveDashboard/src/types"
)

// Linear maps a continuous domain onto a continuous range.
type Linear struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinear builds a linear scale. A zero-width domain maps everything to r0.
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Map converts a domain value. Values outside the domain extrapolate.
func (l Linear) Map(v float64) float64 {
	span := l.d1 - l.d0
	if span == 0 {
		return l.r0
	}
	return l.r0 + (v-l.d0)/span*(l.r1-l.r0)
}

// Clamp limits v to the domain.
func (l Linear) Clamp(v float64) float64 {
	lo, hi := l.d0, l.d1
	if lo > hi {
		lo, hi = hi, lo
	}
	return math.Min(hi, math.Max(lo, v))
}

// Band maps discrete ids onto evenly spaced bands with a gutter between them.
// Padding applies both between bands and at the outer edges, centered.
type Band struct {
	index     map[types.ID]int
	start     float64
	step      float64
	bandwidth float64
}

// NewBand builds a band scale over keys in order. Repeated keys keep their first slot.
func NewBand(keys []types.ID, r0, r1, padding float64) Band {
	index := make(map[types.ID]int, len(keys))
	for _, k := range keys {
		if _, ok := index[k]; !ok {
			index[k] = len(index)
		}
	}
	padding = math.Min(1, math.Max(0, padding))
	n := float64(len(index))
	step := (r1 - r0) / math.Max(1, n-padding+padding*2)
	start := r0 + (r1-r0-step*(n-padding))*0.5
	return Band{index: index, start: start, step: step, bandwidth: step * (1 - padding)}
}

// Map returns the start of the band for id.
func (b Band) Map(id types.ID) (float64, bool) {
	i, ok := b.index[id]
	if !ok {
		return 0, false
	}
	return b.start + b.step*float64(i), true
}

// Bandwidth is the width of every band.
func (b Band) Bandwidth() float64 { return b.bandwidth }

// Step is the distance between consecutive band starts.
func (b Band) Step() float64 { return b.step }
