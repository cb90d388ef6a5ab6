package scale

import (
	"math"

	"github.com/iafilius/InteractiveDashboard/src/types"
)

// Kind selects the geometry variant.
type Kind int

const (
	KindScatter Kind = iota
	KindBar
)

func (k Kind) String() string {
	switch k {
	case KindScatter:
		return "scatter"
	case KindBar:
		return "bar"
	default:
		return "unknown"
	}
}

// Margin is the inset kept free on every edge.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// DefaultMargin matches the 20px inset used by both charts.
var DefaultMargin = Margin{Top: 20, Right: 20, Bottom: 20, Left: 20}

// Rect is an axis-aligned box in surface pixels.
type Rect struct {
	X, Y, W, H float64
}

// Placement is where one record's mark goes.
type Placement struct {
	ID     types.ID
	Bounds Rect
	Round  bool // circle inscribed in Bounds
}

// Center of the placement bounds.
func (p Placement) Center() (float64, float64) {
	return p.Bounds.X + p.Bounds.W/2, p.Bounds.Y + p.Bounds.H/2
}

// Valid reports whether the geometry is finite.
func (p Placement) Valid() bool {
	for _, v := range []float64{p.Bounds.X, p.Bounds.Y, p.Bounds.W, p.Bounds.H} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Options configures both layouts. Zero fields fall back to Defaults.
type Options struct {
	Margin      Margin
	XDomain     [2]float64 // scatter x
	YDomain     [2]float64 // both charts
	Radius      float64    // scatter circle radius
	BandPadding float64    // bar gutter fraction
}

// Defaults are fixed domains sized to the known dataset range so point positions
// stay put across reloads.
func Defaults() Options {
	return Options{
		Margin:      DefaultMargin,
		XDomain:     [2]float64{0, 960},
		YDomain:     [2]float64{0, 500},
		Radius:      30,
		BandPadding: 0.3,
	}
}

// Layout computes placements for kind. It returns false, without building any
// scale, when the viewport is empty.
func Layout(kind Kind, data types.Dataset, vp types.Viewport, opts Options) ([]Placement, bool) {
	if vp.Empty() {
		return nil, false
	}
	switch kind {
	case KindBar:
		return BarLayout(data, vp, opts), true
	default:
		return ScatterLayout(data, vp, opts), true
	}
}

func yScale(vp types.Viewport, opts Options) Linear {
	h := float64(vp.Height)
	return NewLinear(opts.YDomain[0], opts.YDomain[1], h-opts.Margin.Bottom, opts.Margin.Top)
}

// ScatterLayout places one circle per record.
func ScatterLayout(data types.Dataset, vp types.Viewport, opts Options) []Placement {
	w := float64(vp.Width)
	x := NewLinear(opts.XDomain[0], opts.XDomain[1], opts.Margin.Left, w-opts.Margin.Right)
	y := yScale(vp, opts)
	r := opts.Radius
	out := make([]Placement, 0, len(data))
	for _, rec := range data {
		cx, cy := x.Map(rec.X), y.Map(rec.Y)
		out = append(out, Placement{
			ID:     rec.ID,
			Bounds: Rect{X: cx - r, Y: cy - r, W: 2 * r, H: 2 * r},
			Round:  true,
		})
	}
	return out
}

// BarLayout places one bar per record, banded by id.
func BarLayout(data types.Dataset, vp types.Viewport, opts Options) []Placement {
	w, h := float64(vp.Width), float64(vp.Height)
	x := NewBand(data.IDs(), opts.Margin.Left, w-opts.Margin.Right, opts.BandPadding)
	y := yScale(vp, opts)
	baseline := h - opts.Margin.Bottom
	out := make([]Placement, 0, len(data))
	for _, rec := range data {
		bx, ok := x.Map(rec.ID)
		if !ok {
			continue
		}
		top := y.Map(y.Clamp(rec.Y))
		height := math.Max(0, baseline-top)
		out = append(out, Placement{
			ID:     rec.ID,
			Bounds: Rect{X: bx, Y: baseline - height, W: x.Bandwidth(), H: height},
		})
	}
	return out
}
