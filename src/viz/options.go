// Package viz renders the dashboard's linked charts on Fyne canvases.
//
// Each chart is a ChartHost: a ViewportTracker fed by the drawing Surface, a
// MarkRenderer that reconciles marks by record id, and an InteractionBinder that
// turns pointer events into selection intents. Hosts share one selection.Store.
package viz

import (
	"image/color"
	"time"

	"github.com/iafilius/InteractiveDashboard/src/viz/scale"
)

// Style is the paint of one mark.
type Style struct {
	Fill        color.NRGBA
	Stroke      color.NRGBA
	StrokeWidth float32
}

// Theme holds colors and timings shared by both charts.
type Theme struct {
	Neutral   Style
	Highlight Style

	// Transition is the linear style animation run on every render pass.
	Transition time.Duration

	HoverDuration   time.Duration
	HoverBrightness float32

	Background  color.NRGBA
	Border      color.NRGBA
	Muted       color.NRGBA
	ErrorText   color.NRGBA
	CornerRound float32
}

// DefaultTheme is the dark neutral palette with a white highlight.
func DefaultTheme() Theme {
	return Theme{
		Neutral: Style{
			Fill:        color.NRGBA{R: 0x66, G: 0x66, B: 0x66, A: 0xff},
			Stroke:      color.NRGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff},
			StrokeWidth: 1,
		},
		Highlight: Style{
			Fill:        color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
			Stroke:      color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff},
			StrokeWidth: 2,
		},
		Transition:      300 * time.Millisecond,
		HoverDuration:   200 * time.Millisecond,
		HoverBrightness: 1.3,
		Background:      color.NRGBA{R: 0x17, G: 0x17, B: 0x17, A: 0x66},
		Border:          color.NRGBA{R: 0x52, G: 0x52, B: 0x52, A: 0xff},
		Muted:           color.NRGBA{R: 0xa3, G: 0xa3, B: 0xa3, A: 0xff},
		ErrorText:       color.NRGBA{R: 0xf8, G: 0x71, B: 0x71, A: 0xff},
		CornerRound:     8,
	}
}

// StyleFor picks the highlight style for the selected record.
func (t Theme) StyleFor(selected bool) Style {
	if selected {
		return t.Highlight
	}
	return t.Neutral
}

// Options configures a chart host.
type Options struct {
	Theme Theme
	Scale scale.Options
}

// DefaultOptions pairs DefaultTheme with scale.Defaults.
func DefaultOptions() Options {
	return Options{Theme: DefaultTheme(), Scale: scale.Defaults()}
}

func lerp8(a, b uint8, p float32) uint8 {
	return uint8(float32(a) + (float32(b)-float32(a))*p + 0.5)
}

func lerpColor(a, b color.NRGBA, p float32) color.NRGBA {
	return color.NRGBA{R: lerp8(a.R, b.R, p), G: lerp8(a.G, b.G, p), B: lerp8(a.B, b.B, p), A: lerp8(a.A, b.A, p)}
}

func lerpStyle(a, b Style, p float32) Style {
	if p <= 0 {
		return a
	}
	if p >= 1 {
		return b
	}
	return Style{
		Fill:        lerpColor(a.Fill, b.Fill, p),
		Stroke:      lerpColor(a.Stroke, b.Stroke, p),
		StrokeWidth: a.StrokeWidth + (b.StrokeWidth-a.StrokeWidth)*p,
	}
}

// brighten scales RGB like a CSS brightness() filter, clamped to 255.
func brighten(c color.NRGBA, f float32) color.NRGBA {
	if f == 1 {
		return c
	}
	mul := func(v uint8) uint8 {
		s := float32(v) * f
		if s > 255 {
			return 255
		}
		if s < 0 {
			return 0
		}
		return uint8(s + 0.5)
	}
	return color.NRGBA{R: mul(c.R), G: mul(c.G), B: mul(c.B), A: c.A}
}
