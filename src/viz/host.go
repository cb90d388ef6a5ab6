package viz

import (
	"time"

	"go.uber.org/zap"

	"github.com/iafilius/InteractiveDashboard/src/logging"
	"github.com/iafilius/InteractiveDashboard/src/metrics"
	"github.com/iafilius/InteractiveDashboard/src/selection"
	"github.com/iafilius/InteractiveDashboard/src/types"
	"github.com/iafilius/InteractiveDashboard/src/viz/scale"
)

// HostState is the lifecycle of a chart host.
type HostState int

const (
	// StateUninitialized: no non-empty viewport seen yet.
	StateUninitialized HostState = iota
	// StateRendered: marks reflect the latest dataset, selection and size.
	StateRendered
	// StateIdle: the viewport collapsed to zero; the last marks stay as drawn
	// and are reconciled when a size returns.
	StateIdle
)

func (s HostState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRendered:
		return "rendered"
	case StateIdle:
		return "idle"
	default:
		return "unknown"
	}
}

// ChartHost drives one chart: it re-renders whenever the dataset, the shared
// selection or the viewport changes.
type ChartHost struct {
	kind     scale.Kind
	store    *selection.Store
	tracker  *ViewportTracker
	binder   *InteractionBinder
	surface  *Surface
	renderer *MarkRenderer
	metrics  *metrics.Collector
	log      *zap.SugaredLogger

	data     types.Dataset
	staged   selection.Selection
	selected selection.Selection
	state    HostState
	passes   int
	last     RenderStats

	unsubscribe func()
	untrack     func()
	closed      bool
}

// HostOption configures a ChartHost.
type HostOption func(*ChartHost)

// WithHostMetrics records every pass.
func WithHostMetrics(c *metrics.Collector) HostOption {
	return func(h *ChartHost) { h.metrics = c }
}

// WithHostLogger sets the session logger.
func WithHostLogger(l *zap.SugaredLogger) HostOption {
	return func(h *ChartHost) { h.log = l }
}

// NewChartHost builds a chart of kind bound to store.
func NewChartHost(kind scale.Kind, store *selection.Store, opts Options, hostOpts ...HostOption) *ChartHost {
	h := &ChartHost{
		kind:     kind,
		store:    store,
		tracker:  NewViewportTracker(),
		selected: store.Current(),
		log:      logging.L(),
	}
	for _, o := range hostOpts {
		o(h)
	}
	h.staged = h.selected
	h.binder = NewInteractionBinder(func(in selection.Intent) {
		h.log.Debugw("intent", "chart", kind.String(), "intent", in.String())
		store.Dispatch(in)
	}, store.Current, opts.Theme)
	h.surface = newSurface(h.tracker, h.binder, opts.Theme)
	h.renderer = newMarkRenderer(kind, h.surface, h.binder, opts)
	h.untrack = h.tracker.Subscribe(func(types.Viewport) { h.render() })
	h.unsubscribe = store.Subscribe(h)
	return h
}

// Surface is the canvas object to place in a layout.
func (h *ChartHost) Surface() *Surface { return h.surface }

// Kind returns the chart variant.
func (h *ChartHost) Kind() scale.Kind { return h.kind }

// State returns the lifecycle state.
func (h *ChartHost) State() HostState { return h.state }

// Viewport returns the last measured size.
func (h *ChartHost) Viewport() types.Viewport { return h.tracker.Size() }

// Passes counts render passes that produced geometry.
func (h *ChartHost) Passes() int { return h.passes }

// LastStats returns the stats of the latest pass.
func (h *ChartHost) LastStats() RenderStats { return h.last }

// Renderer exposes the mark set, mainly for inspection.
func (h *ChartHost) Renderer() *MarkRenderer { return h.renderer }

// Binder exposes the interaction binder.
func (h *ChartHost) Binder() *InteractionBinder { return h.binder }

// SetDataset replaces the dataset wholesale and re-renders.
func (h *ChartHost) SetDataset(data types.Dataset) {
	h.data = data
	h.render()
}

// Stage implements selection.Subscriber.
func (h *ChartHost) Stage(sel selection.Selection) { h.staged = sel }

// Commit implements selection.Subscriber.
func (h *ChartHost) Commit() {
	h.selected = h.staged
	h.render()
}

func (h *ChartHost) render() {
	if h.closed {
		return
	}
	vp := h.tracker.Size()
	if vp.Empty() {
		if h.state == StateRendered {
			h.state = StateIdle
			h.log.Debugw("chart idle", "chart", h.kind.String())
		}
		return
	}
	start := time.Now()
	stats := h.renderer.Render(h.data, h.selected, vp)
	took := time.Since(start)
	h.state = StateRendered
	h.passes++
	h.last = stats
	h.metrics.ObserveRender(h.kind.String(), stats.Entered, stats.Exited, took)
	h.log.Debugw("render pass", "chart", h.kind.String(), "width", vp.Width, "height", vp.Height,
		"entered", stats.Entered, "updated", stats.Updated, "exited", stats.Exited, "took", took)
}

// Close releases the store subscription and the viewport observation and stops
// running animations. Calling it again does nothing.
func (h *ChartHost) Close() {
	if h.closed {
		return
	}
	h.closed = true
	h.unsubscribe()
	h.untrack()
	h.tracker.Disconnect()
	for _, id := range h.renderer.order {
		h.renderer.marks[id].stop()
	}
}
