package viz

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/iafilius/InteractiveDashboard/src/types"
)

// mark is one circle or bar bound to a record id. It stays the same object for as
// long as its id survives reconciliation.
type mark struct {
	widget.BaseWidget

	id      types.ID
	round   bool
	circle  *canvas.Circle
	rect    *canvas.Rectangle
	binder  *InteractionBinder
	surface *Surface
	hovered bool

	// shown is the style currently painted, before hover brightness.
	shown      Style
	target     Style
	brightness float32

	styleAnim *fyne.Animation
	hoverAnim *fyne.Animation
}

func newMark(id types.ID, round bool, initial Style, binder *InteractionBinder) *mark {
	m := &mark{id: id, round: round, binder: binder, shown: initial, target: initial, brightness: 1}
	if round {
		m.circle = canvas.NewCircle(initial.Fill)
	} else {
		m.rect = canvas.NewRectangle(initial.Fill)
	}
	m.ExtendBaseWidget(m)
	m.paint()
	return m
}

func (m *mark) shape() fyne.CanvasObject {
	if m.round {
		return m.circle
	}
	return m.rect
}

// paint pushes shown style and brightness into the canvas primitive.
func (m *mark) paint() {
	fill := brighten(m.shown.Fill, m.brightness)
	stroke := brighten(m.shown.Stroke, m.brightness)
	if m.round {
		m.circle.FillColor = fill
		m.circle.StrokeColor = stroke
		m.circle.StrokeWidth = m.shown.StrokeWidth
		m.circle.Refresh()
		return
	}
	m.rect.FillColor = fill
	m.rect.StrokeColor = stroke
	m.rect.StrokeWidth = m.shown.StrokeWidth
	m.rect.Refresh()
}

// fill returns the painted fill color.
func (m *mark) fill() color.Color {
	if m.round {
		return m.circle.FillColor
	}
	return m.rect.FillColor
}

// transitionTo animates the shown style toward target. Any transition still in
// flight is dropped and the new one starts from what is currently painted.
func (m *mark) transitionTo(target Style, d time.Duration) {
	if m.styleAnim != nil {
		m.styleAnim.Stop()
		m.styleAnim = nil
	}
	m.target = target
	if m.shown == target {
		return
	}
	if d <= 0 {
		m.shown = target
		m.paint()
		return
	}
	from := m.shown
	anim := fyne.NewAnimation(d, func(p float32) {
		m.shown = lerpStyle(from, target, p)
		m.paint()
	})
	anim.Curve = fyne.AnimationLinear
	m.styleAnim = anim
	anim.Start()
}

// emphasize animates hover brightness toward level.
func (m *mark) emphasize(level float32, d time.Duration) {
	if m.hoverAnim != nil {
		m.hoverAnim.Stop()
		m.hoverAnim = nil
	}
	if m.brightness == level {
		return
	}
	if d <= 0 {
		m.brightness = level
		m.paint()
		return
	}
	from := m.brightness
	anim := fyne.NewAnimation(d, func(p float32) {
		m.brightness = from + (level-from)*p
		m.paint()
	})
	anim.Curve = fyne.AnimationLinear
	m.hoverAnim = anim
	anim.Start()
}

func (m *mark) stop() {
	if m.styleAnim != nil {
		m.styleAnim.Stop()
		m.styleAnim = nil
	}
	if m.hoverAnim != nil {
		m.hoverAnim.Stop()
		m.hoverAnim = nil
	}
}

// hit reports whether pos (mark-local) lies on the painted shape.
func (m *mark) hit(pos fyne.Position) bool {
	size := m.Size()
	if !m.round {
		return pos.X >= 0 && pos.Y >= 0 && pos.X <= size.Width && pos.Y <= size.Height
	}
	r := size.Width / 2
	if size.Height/2 < r {
		r = size.Height / 2
	}
	dx := pos.X - size.Width/2
	dy := pos.Y - size.Height/2
	return dx*dx+dy*dy <= r*r
}

func (m *mark) Tapped(ev *fyne.PointEvent) {
	if m.binder == nil {
		return
	}
	if m.hit(ev.Position) {
		m.binder.MarkTapped(m.id)
		return
	}
	// outside the painted circle: the tap belongs to whatever lies beneath
	if m.surface != nil {
		if under := m.surface.markAt(m.Position().Add(ev.Position), m); under != nil {
			m.binder.MarkTapped(under.id)
			return
		}
	}
	m.binder.BackgroundTapped()
}

func (m *mark) MouseIn(ev *desktop.MouseEvent) { m.hover(ev) }

func (m *mark) MouseMoved(ev *desktop.MouseEvent) { m.hover(ev) }

func (m *mark) MouseOut() {
	if m.hovered && m.binder != nil {
		m.binder.HoverOut(m)
	}
	m.hovered = false
}

// hover brightens only while the pointer is on the painted shape.
func (m *mark) hover(ev *desktop.MouseEvent) {
	if m.binder == nil || ev == nil {
		return
	}
	on := m.hit(ev.Position)
	switch {
	case on && !m.hovered:
		m.binder.HoverIn(m)
	case !on && m.hovered:
		m.binder.HoverOut(m)
	}
	m.hovered = on
}

func (m *mark) Cursor() desktop.Cursor { return desktop.PointerCursor }

func (m *mark) CreateRenderer() fyne.WidgetRenderer {
	return &markRenderer{m: m, objs: []fyne.CanvasObject{m.shape()}}
}

var (
	_ fyne.Tappable      = (*mark)(nil)
	_ desktop.Hoverable  = (*mark)(nil)
	_ desktop.Cursorable = (*mark)(nil)
)

type markRenderer struct {
	m    *mark
	objs []fyne.CanvasObject
}

func (r *markRenderer) Layout(size fyne.Size) {
	s := r.m.shape()
	s.Move(fyne.NewPos(0, 0))
	s.Resize(size)
}

func (r *markRenderer) MinSize() fyne.Size           { return fyne.NewSize(0, 0) }
func (r *markRenderer) Objects() []fyne.CanvasObject { return r.objs }
func (r *markRenderer) Refresh()                     { r.m.shape().Refresh() }
func (r *markRenderer) Destroy()                     { r.m.stop() }
