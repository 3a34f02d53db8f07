// Package selection tracks which catalogue entry, if any, is selected.
//
// The machine has two states: Unselected (the zero value) and Selected(id).
// Select only moves to ids that resolve in the catalogue; once something is
// selected there is no way back to Unselected.
package selection

import (
	"errors"
	"fmt"

	"github.com/atomicstack/menagerie/internal/catalogue"
)

// ErrUnknownID reports a selection of an id absent from the catalogue.
var ErrUnknownID = errors.New("unknown animal id")

// State is the current selection. The zero value is Unselected.
type State struct {
	id       string
	selected bool
}

// Unselected returns the initial state.
func Unselected() State {
	return State{}
}

// Selected reports the selected id and whether a selection exists.
func (s State) Selected() (string, bool) {
	return s.id, s.selected
}

// IsSelected reports whether id is the current selection.
func (s State) IsSelected(id string) bool {
	return s.selected && s.id == id
}

// Select transitions to Selected(id) when id resolves in cat. Re-selecting
// the current id is accepted and yields an identical state. On failure the
// receiver is returned unchanged together with an error wrapping ErrUnknownID.
func (s State) Select(cat catalogue.Catalogue, id string) (State, error) {
	if _, ok := catalogue.FindByID(cat, id); !ok {
		return s, fmt.Errorf("select %q: %w", id, ErrUnknownID)
	}
	return State{id: id, selected: true}, nil
}

func (s State) String() string {
	if !s.selected {
		return "unselected"
	}
	return "selected(" + s.id + ")"
}
