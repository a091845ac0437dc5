package update

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	case "/":
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active"}
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		if m.HelpVisible {
			m.Status = StatusBar{Text: "help shown"}
		} else {
			m.Status = StatusBar{Text: "help hidden"}
		}
	case m.Keys.New:
		return m.openForCreate(), nil
	case m.Keys.Edit, "enter":
		if id := m.selectedID(); id != "" {
			return m.openForEdit(id), nil
		}
	case m.Keys.Delete, "x":
		if id := m.selectedID(); id != "" {
			return m.deleteTask(id), nil
		}
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < m.board.Len()-1 {
			m.Cursor++
		}
	case "g", "home":
		m.Cursor = 0
	case "G", "end":
		m.Cursor = m.board.Len() - 1
		m.clampCursor()
	}
	return m, nil
}

func (m Model) selectedID() string {
	if m.Cursor < 0 || m.Cursor >= m.board.Len() {
		return ""
	}
	return m.board.Cards[m.Cursor].ID
}

func (m *Model) selectID(id string) {
	for i, c := range m.board.Cards {
		if c.ID == id {
			m.Cursor = i
			return
		}
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.Cursor >= m.board.Len() {
		m.Cursor = m.board.Len() - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}
