// Package selection holds the dashboard-wide selected record.
//
// One Store exists per dashboard session. Charts never mutate it directly: views
// report Intents, the store reduces them into a new Selection and notifies every
// subscriber in two phases (Stage to all, then Commit to all) so that no chart
// redraws while another still holds the previous value.
package selection

import "github.com/iafilius/InteractiveDashboard/src/types"

// Selection is either empty or exactly one record id.
type Selection struct {
	id  types.ID
	set bool
}

// None is the empty selection.
func None() Selection { return Selection{} }

// Of selects id.
func Of(id types.ID) Selection { return Selection{id: id, set: true} }

// ID returns the selected id and whether anything is selected.
func (s Selection) ID() (types.ID, bool) { return s.id, s.set }

// Is reports whether id is the selected record.
func (s Selection) Is(id types.ID) bool { return s.set && s.id == id }

// Empty reports whether nothing is selected.
func (s Selection) Empty() bool { return !s.set }

func (s Selection) String() string {
	if !s.set {
		return "none"
	}
	return s.id.String()
}

// IntentKind tags an Intent.
type IntentKind int

const (
	IntentClear IntentKind = iota
	IntentSelect
)

// Intent is what a view asks for; the store decides.
type Intent struct {
	Kind IntentKind
	ID   types.ID
}

// Select asks for id to become the selection.
func Select(id types.ID) Intent { return Intent{Kind: IntentSelect, ID: id} }

// Clear asks for the selection to be emptied.
func Clear() Intent { return Intent{Kind: IntentClear} }

func (in Intent) String() string {
	if in.Kind == IntentSelect {
		return "select(" + in.ID.String() + ")"
	}
	return "clear"
}

// Reduce applies an intent. Updates are full replacement, never merges.
func Reduce(_ Selection, in Intent) Selection {
	switch in.Kind {
	case IntentSelect:
		return Of(in.ID)
	default:
		return None()
	}
}
