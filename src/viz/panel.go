package viz

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/iafilius/InteractiveDashboard/src/dataset"
	"github.com/iafilius/InteractiveDashboard/src/types"
)

// Panel texts.
const (
	LoadingText     = "Loading chart..."
	ErrorTextPrefix = "Error: "
)

// ChartPanel wraps a chart host with the dataset's load state: a placeholder while
// loading, an error line on failure, otherwise the chart.
type ChartPanel struct {
	widget.BaseWidget

	host    *ChartHost
	message *canvas.Text
	stack   *fyne.Container
	status  dataset.Status
	theme   Theme
}

// NewChartPanel starts in the loading state.
func NewChartPanel(host *ChartHost, theme Theme) *ChartPanel {
	msg := canvas.NewText(LoadingText, theme.Muted)
	msg.Alignment = fyne.TextAlignCenter
	p := &ChartPanel{
		host:    host,
		message: msg,
		theme:   theme,
	}
	p.stack = container.NewStack(host.Surface(), container.NewCenter(msg))
	p.ExtendBaseWidget(p)
	p.SetSnapshot(dataset.Snapshot{Status: dataset.StatusLoading})
	return p
}

// Host returns the wrapped chart host.
func (p *ChartPanel) Host() *ChartHost { return p.host }

// Status returns the state last shown.
func (p *ChartPanel) Status() dataset.Status { return p.status }

// Message returns the placeholder text, empty once the chart is visible.
func (p *ChartPanel) Message() string {
	if p.message.Hidden {
		return ""
	}
	return p.message.Text
}

// SetSnapshot applies a dataset snapshot. The chart is never drawn alongside a
// loading or error message.
func (p *ChartPanel) SetSnapshot(snap dataset.Snapshot) {
	p.status = snap.Status
	switch snap.Status {
	case dataset.StatusReady:
		p.message.Hide()
		p.host.Surface().Show()
		p.host.SetDataset(snap.Data)
	case dataset.StatusError:
		p.host.SetDataset(types.Dataset{})
		p.host.Surface().Hide()
		msg := "unknown error"
		if snap.Err != nil {
			msg = snap.Err.Error()
		}
		p.message.Text = ErrorTextPrefix + msg
		p.message.Color = p.theme.ErrorText
		p.message.Show()
	default:
		p.host.Surface().Hide()
		p.message.Text = LoadingText
		p.message.Color = p.theme.Muted
		p.message.Show()
	}
	p.message.Refresh()
}

func (p *ChartPanel) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.stack)
}
