package viz

import (
	"fyne.io/fyne/v2"

	"github.com/iafilius/InteractiveDashboard/src/selection"
	"github.com/iafilius/InteractiveDashboard/src/types"
	"github.com/iafilius/InteractiveDashboard/src/viz/scale"
	"github.com/iafilius/InteractiveDashboard/src/viz/scene"
)

// RenderStats summarizes one pass.
type RenderStats struct {
	Entered int
	Updated int
	Exited  int
	// Skipped is set when the viewport was empty and nothing was computed.
	Skipped bool
}

// MarkRenderer keeps the drawn marks of one chart in step with the dataset.
type MarkRenderer struct {
	kind    scale.Kind
	surface *Surface
	binder  *InteractionBinder
	opts    Options

	marks map[types.ID]*mark
	order []types.ID
}

func newMarkRenderer(kind scale.Kind, surface *Surface, binder *InteractionBinder, opts Options) *MarkRenderer {
	return &MarkRenderer{
		kind:    kind,
		surface: surface,
		binder:  binder,
		opts:    opts,
		marks:   map[types.ID]*mark{},
	}
}

// Render reconciles marks against data by id. Geometry is applied at once; only
// the style moves through the theme transition.
func (r *MarkRenderer) Render(data types.Dataset, sel selection.Selection, vp types.Viewport) RenderStats {
	placements, ok := scale.Layout(r.kind, data, vp, r.opts.Scale)
	if !ok {
		return RenderStats{Skipped: true}
	}
	byID := make(map[types.ID]scale.Placement, len(placements))
	next := make([]types.ID, 0, len(placements))
	for _, p := range placements {
		if _, dup := byID[p.ID]; dup {
			continue
		}
		byID[p.ID] = p
		next = append(next, p.ID)
	}

	plan := scene.Diff(r.order, next)
	for _, id := range plan.Exit {
		m := r.marks[id]
		m.stop()
		r.surface.remove(m)
		delete(r.marks, id)
	}
	theme := r.opts.Theme
	for _, id := range plan.Enter {
		m := newMark(id, byID[id].Round, theme.Neutral, r.binder)
		r.marks[id] = m
		r.surface.add(m)
	}
	for _, id := range next {
		m := r.marks[id]
		place(m, byID[id])
		m.transitionTo(theme.StyleFor(sel.Is(id)), theme.Transition)
	}
	r.order = next
	return RenderStats{Entered: len(plan.Enter), Updated: len(plan.Update), Exited: len(plan.Exit)}
}

func place(m *mark, p scale.Placement) {
	b := p.Bounds
	m.Move(fyne.NewPos(float32(b.X), float32(b.Y)))
	m.Resize(fyne.NewSize(float32(b.W), float32(b.H)))
}

// IDs returns the drawn ids in dataset order.
func (r *MarkRenderer) IDs() []types.ID { return append([]types.ID(nil), r.order...) }

// Highlighted returns the ids whose target style is the highlight.
func (r *MarkRenderer) Highlighted() []types.ID {
	var out []types.ID
	for _, id := range r.order {
		if r.marks[id].target == r.opts.Theme.Highlight {
			out = append(out, id)
		}
	}
	return out
}

func (r *MarkRenderer) mark(id types.ID) *mark { return r.marks[id] }

