package ui

import (
	"github.com/atomicstack/menagerie/internal/render"
	uistate "github.com/atomicstack/menagerie/internal/ui/state"
)

// surface is the presentation side of render.Writer. Each write overwrites
// the previous fragment for its mount point.
type surface struct {
	buttons []render.Button
	panel   render.Panel
	writes  int
}

func newSurface() *surface {
	return &surface{panel: render.Welcome()}
}

func (s *surface) WriteButtons(buttons []render.Button) {
	s.buttons = append([]render.Button(nil), buttons...)
}

func (s *surface) WriteDetail(panel render.Panel) {
	s.panel = panel
	s.writes++
}

func (s *surface) items() []uistate.Item {
	items := make([]uistate.Item, len(s.buttons))
	for i, b := range s.buttons {
		items[i] = uistate.Item{ID: b.ID, Label: b.Label, Emoji: b.Emoji}
	}
	return items
}
