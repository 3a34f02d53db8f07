package ui

import (
	"unicode"

	"github.com/atomicstack/menagerie/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) startJump() {
	if m.jumping {
		return
	}
	m.jumping = true
	m.grid.SetQuery("", 0)
}

// cancelJump drops the query and restores the focus held before it.
func (m *Model) cancelJump() {
	if !m.jumping {
		return
	}
	m.jumping = false
	m.grid.SetQuery("", 0)
	m.grid.CommitQuery()
	events.Jump.Cleared()
	m.syncViewport()
}

// commitJump leaves jump mode keeping the focus the query produced.
func (m *Model) commitJump() {
	m.jumping = false
	m.grid.CommitQuery()
}

// handleJumpInput edits the jump query. Keys it does not consume end jump
// mode and are handled as ordinary navigation.
func (m *Model) handleJumpInput(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.cancelJump()
		return true, nil
	case "enter":
		m.commitJump()
		return true, m.activateFocused("jump")
	case "ctrl+c":
		return false, nil
	case "ctrl+u":
		m.grid.SetQuery("", 0)
		m.noteJump()
		return true, nil
	case "ctrl+w":
		if m.grid.DeleteQueryWordBackward() {
			m.noteJump()
		}
		return true, nil
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		if m.grid.Query == "" {
			m.cancelJump()
			return true, nil
		}
		if m.grid.DeleteQueryRuneBackward() {
			m.noteJump()
		}
		return true, nil
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false, nil
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false, nil
			}
		}
		if m.grid.InsertQueryText(string(msg.Runes)) {
			m.noteJump()
		}
		return true, nil
	case tea.KeySpace:
		if m.grid.InsertQueryText(" ") {
			m.noteJump()
		}
		return true, nil
	}
	m.commitJump()
	return false, nil
}

func (m *Model) noteJump() {
	events.Jump.Query(m.grid.Query, m.grid.Cursor)
	m.syncViewport()
}

// jumpPrompt renders the query with a block caret.
func (m *Model) jumpPrompt() string {
	prompt := "/ "
	if styles.JumpPrompt != nil {
		prompt = styles.JumpPrompt.Render(prompt)
	}
	runes := []rune(m.grid.Query)
	pos := m.grid.QueryCursorPos()
	before := string(runes[:pos])
	caret := " "
	after := ""
	if pos < len(runes) {
		caret = string(runes[pos])
		after = string(runes[pos+1:])
	}
	if styles.Jump != nil {
		before = styles.Jump.Render(before)
		after = styles.Jump.Render(after)
	}
	if styles.Cursor != nil {
		caret = styles.Cursor.Render(caret)
	}
	return prompt + before + caret + after
}
