package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/menagerie/internal/logging"
	"github.com/atomicstack/menagerie/internal/logging/events"
	"github.com/atomicstack/menagerie/internal/render"
	"github.com/atomicstack/menagerie/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

// artState tracks the artwork of the animal currently shown in the detail
// panel. A failed load leaves lines empty and the image hidden.
type artState struct {
	id      string
	ref     string
	seq     int
	lines   []string
	loading bool
	failed  bool
}

type artLoadedMsg struct {
	id  string
	ref string
	seq int
	art string
	err error
}

func (m *Model) resetArt() {
	m.art = artState{}
}

// ensureArt schedules an artwork load for the animal in the detail panel
// when it differs from the one already loaded or loading.
func (m *Model) ensureArt() tea.Cmd {
	panel := m.surface.panel
	if panel.Kind != render.PanelAnimal {
		m.resetArt()
		return nil
	}
	if !m.opts.Images || m.opts.Art == nil {
		return nil
	}
	id := panel.Animal.ID
	ref := strings.TrimSpace(panel.Animal.Image)
	if ref == "" {
		m.art = artState{id: id}
		return nil
	}
	if m.art.id == id && m.art.ref == ref {
		return nil
	}
	width := m.artWidth()
	if width <= 0 {
		return nil
	}
	m.artSeq++
	seq := m.artSeq
	m.art = artState{id: id, ref: ref, seq: seq, loading: true}
	events.Image.Request(id, ref, seq)

	renderer := m.opts.Art
	ctx := m.ctx
	return m.bus.Execute(command.Request{
		ID:    "image:" + id,
		Label: ref,
		Run: func() tea.Msg {
			art, err := renderer.Render(ctx, ref, width, 0)
			return artLoadedMsg{id: id, ref: ref, seq: seq, art: art, err: err}
		},
	})
}

func (m *Model) artWidth() int {
	width := m.opts.ImageWidth
	if inner := m.detailInnerWidth(); inner > 0 && (width <= 0 || width > inner) {
		width = inner
	}
	return width
}

func (m *Model) handleArtLoadedMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(artLoadedMsg)
	if !ok {
		return nil
	}
	if update.seq != m.art.seq || update.id != m.art.id {
		events.Image.Stale(update.id, update.seq)
		return nil
	}
	m.art.loading = false
	if update.err != nil {
		m.art.failed = true
		m.art.lines = nil
		logging.Error(fmt.Errorf("artwork for %s: %w", update.id, update.err))
		events.Image.Failed(update.id, update.ref, update.err)
		m.opts.Metrics.IncImageFailure()
		return nil
	}
	m.art.lines = strings.Split(strings.TrimRight(update.art, "\n"), "\n")
	events.Image.Loaded(update.id, len(m.art.lines))
	return nil
}
