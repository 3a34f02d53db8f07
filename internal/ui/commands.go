package ui

import (
	"github.com/atomicstack/menagerie/internal/catalogue"
	"github.com/atomicstack/menagerie/internal/controller"
	"github.com/atomicstack/menagerie/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

// catalogueLoadedMsg carries the result of the one-shot catalogue load. The
// loader never fails outright; problems yield an empty catalogue.
type catalogueLoadedMsg struct {
	cat catalogue.Catalogue
}

func (m *Model) loadCatalogueCmd() tea.Cmd {
	loader := m.opts.Loader
	location := m.opts.Location
	ctx := m.ctx
	label := location
	if label == "" {
		label = catalogue.DefaultLocation
	}
	return m.bus.Execute(command.Request{
		ID:    "catalogue:load",
		Label: label,
		Run: func() tea.Msg {
			return catalogueLoadedMsg{cat: loader.Load(ctx, location)}
		},
	})
}

func (m *Model) handleCatalogueLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(catalogueLoadedMsg)
	if !ok {
		return nil
	}
	m.loading = false
	m.ctrl = controller.New(loaded.cat, m.surface, m.controllerOptions())
	m.grid.UpdateItems(m.surface.items())
	m.grid.MoveCursorHome()
	m.syncViewport()
	m.resetArt()
	return nil
}
