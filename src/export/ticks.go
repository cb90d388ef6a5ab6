package export

import (
	"math"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
)

// ChartDimensions clamps a requested image width and derives a height keeping
// the dashboard's roughly 2:1 panel shape.
func ChartDimensions(rawW int) (int, int) {
	w := rawW
	if w < 480 {
		w = 480
	}
	h := int(float32(w) * 0.52)
	if h < 260 {
		h = 260
	}
	if h > 720 {
		h = 720
	}
	return w, h
}

// NumericTicks returns up to about n positions covering [min,max] in 1, 2, 2.5, 5
// steps times a power of ten.
func NumericTicks(min, max float64, n int) []float64 {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range []float64{1, 2, 2.5, 5, 10} {
		step := c * mag
		count := math.Ceil(span/step) + 1
		if diff := math.Abs(count - float64(n)); diff < bestScore {
			bestScore = diff
			bestStep = step
		}
	}
	start := math.Floor(min/bestStep) * bestStep
	end := math.Ceil(max/bestStep) * bestStep
	var out []float64
	for v := start; v <= end+bestStep*0.5; v += bestStep {
		out = append(out, round6(v))
	}
	if len(out) < 2 {
		out = []float64{min, max}
	}
	return out
}

func round6(v float64) float64 { return math.Round(v*1e6) / 1e6 }

// FormatTick gives a compact axis label.
func FormatTick(v float64) string {
	av := math.Abs(v)
	switch {
	case av >= 100 || v == 0:
		return strconv.FormatInt(int64(math.Round(v)), 10)
	case av >= 10:
		return strconv.FormatFloat(v, 'f', 1, 64)
	default:
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
}

// axisTicks maps NumericTicks to go-chart ticks, kept inside the domain.
func axisTicks(min, max float64, n int) []chart.Tick {
	var out []chart.Tick
	for _, v := range NumericTicks(min, max, n) {
		if v < min || v > max {
			continue
		}
		out = append(out, chart.Tick{Value: v, Label: FormatTick(v)})
	}
	return out
}
