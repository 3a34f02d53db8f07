package ui

import (
	"github.com/atomicstack/menagerie/internal/logging/events"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const detailWheelStep = 3

// activate fires one activation for the button at idx. Focus follows the
// activated button whether or not the controller accepts it.
func (m *Model) activate(idx int, source string) tea.Cmd {
	item, ok := m.itemAt(idx)
	if !ok {
		return nil
	}
	m.grid.Focus(idx)
	m.syncViewport()
	events.UI.Activate(item.ID, source)
	if !m.ctrl.OnActivate(item.ID) {
		return nil
	}
	if m.detailID != item.ID {
		m.detailID = item.ID
		m.detail.GotoTop()
	}
	return m.ensureArt()
}

func (m *Model) activateFocused(source string) tea.Cmd {
	return m.activate(m.grid.Cursor, source)
}

func (m *Model) moveCursor(move func() bool) {
	if move() {
		events.UI.Focus(m.grid.Cursor)
	}
	m.syncViewport()
}

func (m *Model) syncViewport() {
	m.grid.EnsureCursorVisible(m.maxVisibleItems())
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.jumping {
		if handled, cmd := m.handleJumpInput(keyMsg); handled {
			return cmd
		}
	}
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return tea.Quit
	case key.Matches(keyMsg, m.keys.Jump):
		m.startJump()
	case key.Matches(keyMsg, m.keys.Clear):
		m.cancelJump()
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.syncViewport()
	case key.Matches(keyMsg, m.keys.Activate):
		return m.activateFocused("key")
	case key.Matches(keyMsg, m.keys.Up):
		m.moveCursor(m.grid.MoveCursorUp)
	case key.Matches(keyMsg, m.keys.Down):
		m.moveCursor(m.grid.MoveCursorDown)
	case key.Matches(keyMsg, m.keys.PageUp):
		m.moveCursor(func() bool { return m.grid.MoveCursorPageUp(m.maxVisibleItems()) })
	case key.Matches(keyMsg, m.keys.PageDown):
		m.moveCursor(func() bool { return m.grid.MoveCursorPageDown(m.maxVisibleItems()) })
	case key.Matches(keyMsg, m.keys.Home):
		m.moveCursor(m.grid.MoveCursorHome)
	case key.Matches(keyMsg, m.keys.End):
		m.moveCursor(m.grid.MoveCursorEnd)
	case key.Matches(keyMsg, m.keys.ScrollUp):
		m.detail.HalfViewUp()
	case key.Matches(keyMsg, m.keys.ScrollDown):
		m.detail.HalfViewDown()
	default:
		if idx, ok := digitIndex(keyMsg); ok {
			return m.activate(idx, "digit")
		}
	}
	return nil
}

// digitIndex maps the keys 1 to 9 onto button indices.
func digitIndex(msg tea.KeyMsg) (int, bool) {
	if msg.Type != tea.KeyRunes || msg.Alt || len(msg.Runes) != 1 {
		return 0, false
	}
	r := msg.Runes[0]
	if r < '1' || r > '9' {
		return 0, false
	}
	return int(r - '1'), true
}

// handleMouseMsg activates a clicked button and scrolls with the wheel: the
// grid focus over the grid, the detail body over the panel.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	inDetail := m.inDetail(ev.X, ev.Y)
	switch ev.Button {
	case tea.MouseButtonLeft:
		if ev.Action != tea.MouseActionPress || inDetail {
			return nil
		}
		if idx, ok := m.buttonAt(ev.X, ev.Y); ok {
			return m.activate(idx, "mouse")
		}
	case tea.MouseButtonWheelUp:
		if inDetail {
			m.detail.LineUp(detailWheelStep)
		} else {
			m.moveCursor(m.grid.MoveCursorUp)
		}
	case tea.MouseButtonWheelDown:
		if inDetail {
			m.detail.LineDown(detailWheelStep)
		} else {
			m.moveCursor(m.grid.MoveCursorDown)
		}
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.help.Width = m.width
	events.UI.Layout(m.width, m.height, m.hasSideDetail())
	m.syncViewport()
	return nil
}
