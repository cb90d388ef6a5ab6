package viz

import (
	"time"

	"github.com/iafilius/InteractiveDashboard/src/selection"
	"github.com/iafilius/InteractiveDashboard/src/types"
)

// Dispatch receives every selection intent a chart produces.
type Dispatch func(selection.Intent)

// InteractionBinder turns pointer events on marks and on the chart background into
// intents and hover feedback. It never writes the selection itself.
type InteractionBinder struct {
	dispatch   Dispatch
	current    func() selection.Selection
	hoverLevel float32
	hoverDur   time.Duration
}

// NewInteractionBinder reports intents to dispatch. current must return the
// authoritative selection (the store), never a rendered style.
func NewInteractionBinder(dispatch Dispatch, current func() selection.Selection, theme Theme) *InteractionBinder {
	return &InteractionBinder{
		dispatch:   dispatch,
		current:    current,
		hoverLevel: theme.HoverBrightness,
		hoverDur:   theme.HoverDuration,
	}
}

// IntentForMark toggles: tapping the selected record clears, anything else selects it.
func IntentForMark(current selection.Selection, id types.ID) selection.Intent {
	if current.Is(id) {
		return selection.Clear()
	}
	return selection.Select(id)
}

// MarkTapped handles a tap that landed on the mark bound to id.
func (b *InteractionBinder) MarkTapped(id types.ID) {
	b.emit(IntentForMark(b.current(), id))
}

// BackgroundTapped handles a tap on the surface itself.
func (b *InteractionBinder) BackgroundTapped() {
	b.emit(selection.Clear())
}

func (b *InteractionBinder) emit(in selection.Intent) {
	if b.dispatch != nil {
		b.dispatch(in)
	}
}

// HoverIn brightens m.
func (b *InteractionBinder) HoverIn(m *mark) { m.emphasize(b.hoverLevel, b.hoverDur) }

// HoverOut restores m.
func (b *InteractionBinder) HoverOut(m *mark) { m.emphasize(1, b.hoverDur) }
