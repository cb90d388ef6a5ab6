package viz

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Surface is the drawing area of one chart: a background that takes background
// taps and a free-layout layer holding the marks. Its renderer reports every
// layout size to the tracker.
type Surface struct {
	widget.BaseWidget

	tracker *ViewportTracker
	binder  *InteractionBinder
	bg      *canvas.Rectangle
	layer   *fyne.Container
}

func newSurface(tracker *ViewportTracker, binder *InteractionBinder, theme Theme) *Surface {
	bg := canvas.NewRectangle(theme.Background)
	bg.StrokeColor = theme.Border
	bg.StrokeWidth = 1
	bg.CornerRadius = theme.CornerRound
	s := &Surface{
		tracker: tracker,
		binder:  binder,
		bg:      bg,
		layer:   container.NewWithoutLayout(),
	}
	s.ExtendBaseWidget(s)
	return s
}

// Tapped only fires when no mark is under the pointer.
func (s *Surface) Tapped(*fyne.PointEvent) {
	if s.binder != nil {
		s.binder.BackgroundTapped()
	}
}

func (s *Surface) add(m *mark) {
	m.surface = s
	s.layer.Add(m)
}

func (s *Surface) remove(m *mark) {
	s.layer.Remove(m)
	m.surface = nil
}

// markAt returns the topmost mark other than skip whose painted shape covers pos.
func (s *Surface) markAt(pos fyne.Position, skip *mark) *mark {
	objs := s.layer.Objects
	for i := len(objs) - 1; i >= 0; i-- {
		m, ok := objs[i].(*mark)
		if !ok || m == skip || !m.Visible() {
			continue
		}
		if m.hit(pos.Subtract(m.Position())) {
			return m
		}
	}
	return nil
}

// MarkCount returns the number of marks on the surface.
func (s *Surface) MarkCount() int { return len(s.layer.Objects) }

func (s *Surface) CreateRenderer() fyne.WidgetRenderer {
	return &surfaceRenderer{s: s, objs: []fyne.CanvasObject{s.bg, s.layer}}
}

var _ fyne.Tappable = (*Surface)(nil)

type surfaceRenderer struct {
	s    *Surface
	objs []fyne.CanvasObject
}

func (r *surfaceRenderer) Layout(size fyne.Size) {
	r.s.bg.Move(fyne.NewPos(0, 0))
	r.s.bg.Resize(size)
	r.s.layer.Move(fyne.NewPos(0, 0))
	r.s.layer.Resize(size)
	r.s.tracker.Observe(size.Width, size.Height)
}

func (r *surfaceRenderer) MinSize() fyne.Size           { return fyne.NewSize(0, 0) }
func (r *surfaceRenderer) Objects() []fyne.CanvasObject { return r.objs }
func (r *surfaceRenderer) Refresh() {
	r.s.bg.Refresh()
	r.s.layer.Refresh()
}

// Destroy also runs when Fyne evicts the renderer of a surface hidden for a
// while, so the tracker is left connected; ChartHost.Close owns disconnection.
func (r *surfaceRenderer) Destroy() {}
