package viz

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iafilius/InteractiveDashboard/src/config"
	"github.com/iafilius/InteractiveDashboard/src/dataset"
	"github.com/iafilius/InteractiveDashboard/src/logging"
	"github.com/iafilius/InteractiveDashboard/src/metrics"
	"github.com/iafilius/InteractiveDashboard/src/selection"
	"github.com/iafilius/InteractiveDashboard/src/viz/scale"
)

// Default header texts.
const (
	DefaultTitle   = "Interactive Dashboard"
	DefaultTagline = "This dashboard explains why circles and bars are best friends"
)

// DashboardOptions configures NewDashboard.
type DashboardOptions struct {
	Chart   Options
	Title   string
	Tagline string
	Metrics *metrics.Collector
}

// OptionsFromConfig builds chart options from validated settings.
func OptionsFromConfig(cfg *config.Config) Options {
	pal := cfg.Palette()
	th := DefaultTheme()
	th.Neutral = Style{Fill: pal.Primary, Stroke: pal.Stroke, StrokeWidth: cfg.Chart.StrokeWidth}
	th.Highlight = Style{Fill: pal.Selected, Stroke: pal.SelectedStroke, StrokeWidth: cfg.Chart.SelectedStrokeWidth}
	th.Transition = cfg.Chart.Transition
	th.HoverDuration = cfg.Chart.Hover.Duration
	th.HoverBrightness = cfg.Chart.Hover.Brightness
	return Options{Theme: th, Scale: cfg.ScaleOptions()}
}

// Dashboard is one session: a header over the scatter and bar panels, both bound
// to a single selection store and fed by one dataset source.
type Dashboard struct {
	session string
	store   *selection.Store
	source  *dataset.Source
	scatter *ChartPanel
	bar     *ChartPanel
	content fyne.CanvasObject
	log     *zap.SugaredLogger

	unsubscribe func()
	closed      bool
}

// NewDashboard wires both charts to source. The source must post to the UI
// goroutine.
func NewDashboard(source *dataset.Source, o DashboardOptions) *Dashboard {
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Tagline == "" {
		o.Tagline = DefaultTagline
	}
	session := uuid.NewString()
	log := logging.With("session", session)

	store := selection.NewStore()
	store.OnChange(func(prev, next selection.Selection) {
		o.Metrics.ObserveSelection()
		log.Debugw("selection changed", "from", prev.String(), "to", next.String())
	})

	hostOpts := []HostOption{WithHostLogger(log), WithHostMetrics(o.Metrics)}
	scatter := NewChartPanel(NewChartHost(scale.KindScatter, store, o.Chart, hostOpts...), o.Chart.Theme)
	bar := NewChartPanel(NewChartHost(scale.KindBar, store, o.Chart, hostOpts...), o.Chart.Theme)

	title := widget.NewLabelWithStyle(o.Title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	tagline := canvas.NewText(o.Tagline, o.Chart.Theme.Muted)
	header := container.NewVBox(title, container.NewPadded(tagline))
	charts := container.NewGridWithColumns(2, scatter, bar)

	d := &Dashboard{
		session: session,
		store:   store,
		source:  source,
		scatter: scatter,
		bar:     bar,
		content: container.NewBorder(header, nil, nil, nil, charts),
		log:     log,
	}
	d.unsubscribe = source.Subscribe(d.show)
	log.Infow("dashboard session started", "data", source.Path())
	return d
}

func (d *Dashboard) show(snap dataset.Snapshot) {
	if d.closed {
		return
	}
	switch snap.Status {
	case dataset.StatusReady:
		d.log.Infow("dataset ready", "path", snap.Path, "records", len(snap.Data), "skipped", snap.Skipped)
	case dataset.StatusError:
		d.log.Warnw("dataset failed", "path", snap.Path, "error", snap.Err)
	}
	d.scatter.SetSnapshot(snap)
	d.bar.SetSnapshot(snap)
}

// Content is the root object for a window.
func (d *Dashboard) Content() fyne.CanvasObject { return d.content }

// Session returns the session id attached to every log line.
func (d *Dashboard) Session() string { return d.session }

// Store returns the shared selection store.
func (d *Dashboard) Store() *selection.Store { return d.store }

// Source returns the dataset source.
func (d *Dashboard) Source() *dataset.Source { return d.source }

// Scatter returns the scatter panel.
func (d *Dashboard) Scatter() *ChartPanel { return d.scatter }

// Bar returns the bar panel.
func (d *Dashboard) Bar() *ChartPanel { return d.bar }

// Close detaches from the source and releases both charts.
func (d *Dashboard) Close() {
	if d.closed {
		return
	}
	d.closed = true
	d.unsubscribe()
	d.scatter.Host().Close()
	d.bar.Host().Close()
	d.log.Infow("dashboard session closed")
}
