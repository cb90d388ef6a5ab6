package viz

import (
	"github.com/iafilius/InteractiveDashboard/src/types"
)

// ViewportTracker follows a container's size. The Surface renderer feeds it from
// Layout; subscribers hear only real size changes.
type ViewportTracker struct {
	size         types.Viewport
	subs         map[int]func(types.Viewport)
	nextKey      int
	disconnected bool
}

// NewViewportTracker starts at {0,0}.
func NewViewportTracker() *ViewportTracker {
	return &ViewportTracker{subs: map[int]func(types.Viewport){}}
}

// Size returns the last measured size.
func (t *ViewportTracker) Size() types.Viewport { return t.size }

// Observe records a measurement.
func (t *ViewportTracker) Observe(w, h float32) {
	if t.disconnected {
		return
	}
	next := types.Viewport{Width: w, Height: h}
	if next == t.size {
		return
	}
	t.size = next
	for k := 0; k < t.nextKey; k++ {
		if fn, ok := t.subs[k]; ok {
			fn(next)
		}
	}
}

// Subscribe registers fn for size changes and returns its cancel func.
func (t *ViewportTracker) Subscribe(fn func(types.Viewport)) func() {
	key := t.nextKey
	t.nextKey++
	t.subs[key] = fn
	return func() { delete(t.subs, key) }
}

// Disconnect stops observation for good and drops every subscriber.
func (t *ViewportTracker) Disconnect() {
	t.disconnected = true
	for k := range t.subs {
		delete(t.subs, k)
	}
}

// Connected reports whether the tracker still observes.
func (t *ViewportTracker) Connected() bool { return !t.disconnected }
