// Package export renders the dashboard's two charts to PNG without a window.
package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/iafilius/InteractiveDashboard/src/config"
	"github.com/iafilius/InteractiveDashboard/src/logging"
	"github.com/iafilius/InteractiveDashboard/src/selection"
	"github.com/iafilius/InteractiveDashboard/src/types"
	"github.com/iafilius/InteractiveDashboard/src/viz/scale"
)

// File names written by WritePNGs.
const (
	ScatterFile = "scatter.png"
	BarFile     = "bar.png"
)

// Options sizes and colors the exported images.
type Options struct {
	Width   int
	Height  int
	Scale   scale.Options
	Palette config.Palette
	Caption CaptionStyle
}

// CaptionStyle lays out the one-line summary strip along the bottom edge.
type CaptionStyle struct {
	Show   bool
	Height int // strip height in pixels
	Inset  int // left inset of the text
	Text   color.NRGBA
	Strip  color.NRGBA
}

// DefaultCaption fits the strip into the bottom padding reserved by background.
func DefaultCaption() CaptionStyle {
	return CaptionStyle{
		Show:   true,
		Height: captionHeight,
		Inset:  8,
		Text:   color.NRGBA{R: 0xe6, G: 0xe6, B: 0xe6, A: 0xff},
		Strip:  color.NRGBA{A: 0xc8},
	}
}

const captionHeight = 18

// DefaultOptions uses the default settings at 960 pixels wide.
func DefaultOptions() Options {
	cfg := config.Default()
	return OptionsFromConfig(&cfg, 960)
}

// OptionsFromConfig sizes images from width with ChartDimensions.
func OptionsFromConfig(cfg *config.Config, width int) Options {
	w, h := ChartDimensions(width)
	return Options{Width: w, Height: h, Scale: cfg.ScaleOptions(), Palette: cfg.Palette(), Caption: DefaultCaption()}
}

var (
	canvasColor = drawing.Color{R: 18, G: 18, B: 18, A: 255}
	axisColor   = drawing.Color{R: 163, G: 163, B: 163, A: 255}
)

func dc(c color.NRGBA) drawing.Color { return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A} }

func pointStyle(col drawing.Color, radius float64) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    radius,
		DotColor:    col,
	}
}

func axisStyle() chart.Style {
	return chart.Style{FontColor: axisColor, StrokeColor: axisColor}
}

func background(o Options) chart.Style {
	m := o.Scale.Margin
	return chart.Style{
		FillColor: canvasColor,
		Padding:   chart.Box{Top: int(m.Top), Left: int(m.Left), Right: int(m.Right), Bottom: int(m.Bottom) + captionHeight},
	}
}

// RenderScatter draws one dot per record over the fixed domains; the selected
// record goes into its own series so it paints on top.
func RenderScatter(data types.Dataset, sel selection.Selection, o Options) image.Image {
	if len(data) == 0 {
		return blank(o.Width, o.Height)
	}
	xd, yd := o.Scale.XDomain, o.Scale.YDomain
	// circle radius in pixels, scaled like the on-screen chart
	plotW := float64(o.Width) - o.Scale.Margin.Left - o.Scale.Margin.Right
	radius := o.Scale.Radius * plotW / 960
	if radius < 2 {
		radius = 2
	}

	var base, hi chart.ContinuousSeries
	base.Name = "records"
	base.Style = pointStyle(dc(o.Palette.Primary), radius)
	hi.Name = "selected"
	hi.Style = pointStyle(dc(o.Palette.Selected), radius)
	for _, r := range data {
		if sel.Is(r.ID) {
			hi.XValues = append(hi.XValues, r.X)
			hi.YValues = append(hi.YValues, r.Y)
			continue
		}
		base.XValues = append(base.XValues, r.X)
		base.YValues = append(base.YValues, r.Y)
	}
	var series []chart.Series
	if len(base.XValues) > 0 {
		series = append(series, base)
	}
	if len(hi.XValues) > 0 {
		series = append(series, hi)
	}

	ch := chart.Chart{
		Width:      o.Width,
		Height:     o.Height,
		Background: background(o),
		Canvas:     chart.Style{FillColor: canvasColor},
		XAxis: chart.XAxis{
			Style: axisStyle(),
			Range: &chart.ContinuousRange{Min: xd[0], Max: xd[1]},
			Ticks: axisTicks(xd[0], xd[1], 7),
		},
		YAxis: chart.YAxis{
			Style: axisStyle(),
			Range: &chart.ContinuousRange{Min: yd[0], Max: yd[1]},
			Ticks: axisTicks(yd[0], yd[1], 6),
		},
		Series: series,
	}
	img := renderPNG(ch.Render, o, "scatter")
	return o.Caption.apply(img, fmt.Sprintf("Scatter: %d records, selected %s", len(data), sel))
}

// RenderBar draws one bar per record in dataset order, heights clamped into the
// y domain, the selected bar in the highlight color.
func RenderBar(data types.Dataset, sel selection.Selection, o Options) image.Image {
	if len(data) == 0 {
		return blank(o.Width, o.Height)
	}
	yd := o.Scale.YDomain
	y := scale.NewLinear(yd[0], yd[1], 0, 1)
	seen := make(map[types.ID]bool, len(data))
	bars := make([]chart.Value, 0, len(data))
	for _, r := range data {
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		col := o.Palette.Primary
		if sel.Is(r.ID) {
			col = o.Palette.Selected
		}
		bars = append(bars, chart.Value{
			Label: r.ID.String(),
			Value: y.Clamp(r.Y),
			Style: chart.Style{FillColor: dc(col), StrokeColor: dc(o.Palette.Stroke), StrokeWidth: 1},
		})
	}

	plotW := float64(o.Width) - o.Scale.Margin.Left - o.Scale.Margin.Right
	band := scale.NewBand(data.IDs(), 0, plotW, o.Scale.BandPadding)
	ch := chart.BarChart{
		Width:      o.Width,
		Height:     o.Height,
		Background: background(o),
		Canvas:     chart.Style{FillColor: canvasColor},
		BarWidth:   int(band.Bandwidth()),
		BarSpacing: int(band.Step() - band.Bandwidth()),
		XAxis:      axisStyle(),
		YAxis: chart.YAxis{
			Style: axisStyle(),
			Range: &chart.ContinuousRange{Min: yd[0], Max: yd[1]},
			Ticks: axisTicks(yd[0], yd[1], 6),
		},
		Bars: bars,
	}
	img := renderPNG(ch.Render, o, "bar")
	return o.Caption.apply(img, fmt.Sprintf("Bars: %d records, selected %s", len(bars), sel))
}

// renderPNG falls back to a blank image so an export always produces a file.
func renderPNG(render func(chart.RendererProvider, io.Writer) error, o Options, name string) image.Image {
	var buf bytes.Buffer
	if err := render(chart.PNG, &buf); err != nil {
		logging.Warnf("%s chart render error: %v; writing blank image", name, err)
		return blank(o.Width, o.Height)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		logging.Warnf("%s chart decode error: %v; writing blank image", name, err)
		return blank(o.Width, o.Height)
	}
	return img
}

// apply copies img and writes text into a strip across its bottom edge, the
// baseline centred in the strip.
func (c CaptionStyle) apply(img image.Image, text string) image.Image {
	text = strings.TrimSpace(text)
	if !c.Show || img == nil || text == "" {
		return img
	}
	b := img.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, img, b.Min, draw.Src)

	h := c.Height
	if h > b.Dy() {
		h = b.Dy()
	}
	strip := image.Rect(b.Min.X, b.Max.Y-h, b.Max.X, b.Max.Y)
	draw.Draw(out, strip, image.NewUniform(c.Strip), image.Point{}, draw.Over)

	face := basicfont.Face7x13
	fm := face.Metrics()
	baseline := strip.Min.Y + (h+fm.Ascent.Ceil()-fm.Descent.Ceil())/2
	d := font.Drawer{Dst: out, Src: image.NewUniform(c.Text), Face: face, Dot: fixed.P(b.Min.X+c.Inset, baseline)}
	d.DrawString(text)
	return out
}

func blank(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 18, G: 18, B: 18, A: 255}), image.Point{}, draw.Src)
	return img
}

// WritePNGs renders both charts into dir and returns the written paths.
func WritePNGs(dir string, data types.Dataset, sel selection.Selection, o Options) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create out dir: %w", err)
	}
	toRender := []struct {
		name string
		fn   func(types.Dataset, selection.Selection, Options) image.Image
	}{
		{ScatterFile, RenderScatter},
		{BarFile, RenderBar},
	}
	var written []string
	for _, item := range toRender {
		var buf bytes.Buffer
		if err := png.Encode(&buf, item.fn(data, sel, o)); err != nil {
			return written, fmt.Errorf("png encode %s: %w", item.name, err)
		}
		out := filepath.Join(dir, item.name)
		if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", out, err)
		}
		written = append(written, out)
	}
	logging.Infof("exported %d charts to %s", len(written), dir)
	return written, nil
}
