package viz

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iafilius/InteractiveDashboard/src/selection"
	"github.com/iafilius/InteractiveDashboard/src/types"
)

func TestTrackerNotifiesOnlyOnChange(t *testing.T) {
	tr := NewViewportTracker()
	var seen []types.Viewport
	cancel := tr.Subscribe(func(v types.Viewport) { seen = append(seen, v) })

	tr.Observe(0, 0)
	tr.Observe(100, 50)
	tr.Observe(100, 50)
	tr.Observe(120, 50)
	assert.Equal(t, []types.Viewport{{Width: 100, Height: 50}, {Width: 120, Height: 50}}, seen)

	cancel()
	tr.Observe(10, 10)
	assert.Len(t, seen, 2)
	assert.Equal(t, types.Viewport{Width: 10, Height: 10}, tr.Size())
}

func TestTrackerDisconnect(t *testing.T) {
	tr := NewViewportTracker()
	calls := 0
	tr.Subscribe(func(types.Viewport) { calls++ })
	tr.Disconnect()
	tr.Observe(50, 50)
	assert.Zero(t, calls)
	assert.False(t, tr.Connected())
	assert.Equal(t, types.Viewport{}, tr.Size())
}

func TestIntentForMark(t *testing.T) {
	assert.Equal(t, selection.Select(3), IntentForMark(selection.None(), 3))
	assert.Equal(t, selection.Clear(), IntentForMark(selection.Of(3), 3))
	assert.Equal(t, selection.Select(4), IntentForMark(selection.Of(3), 4))
}

func TestBinderReadsStoreNotPaint(t *testing.T) {
	var got []selection.Intent
	cur := selection.Of(7)
	b := NewInteractionBinder(func(in selection.Intent) { got = append(got, in) },
		func() selection.Selection { return cur }, DefaultTheme())
	b.MarkTapped(7)
	b.MarkTapped(8)
	b.BackgroundTapped()
	assert.Equal(t, []selection.Intent{selection.Clear(), selection.Select(8), selection.Clear()}, got)
}

func TestLerpStyle(t *testing.T) {
	th := DefaultTheme()
	assert.Equal(t, th.Neutral, lerpStyle(th.Neutral, th.Highlight, 0))
	assert.Equal(t, th.Highlight, lerpStyle(th.Neutral, th.Highlight, 1))
	mid := lerpStyle(th.Neutral, th.Highlight, 0.5)
	assert.Equal(t, uint8(0xb3), mid.Fill.R)
	assert.InDelta(t, 1.5, mid.StrokeWidth, 1e-6)
}

func TestBrighten(t *testing.T) {
	c := color.NRGBA{R: 100, G: 200, B: 0, A: 0x80}
	assert.Equal(t, c, brighten(c, 1))
	assert.Equal(t, color.NRGBA{R: 130, G: 255, B: 0, A: 0x80}, brighten(c, 1.3))
}
