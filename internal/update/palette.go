package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskform/internal/commands"
	"github.com/sandeepkv93/taskform/internal/editor"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		m.commandInput, _ = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		New: func() (commands.Result, error) {
			if m.editor.Mode() != editor.ModeClosed {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "form is already open"}
			}
			m = m.openForCreate()
			return commands.Result{Message: "new task"}, nil
		},
		Edit: func(a commands.TargetArgs) (commands.Result, error) {
			if _, ok := m.board.Card(a.ID); !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task with id %s", a.ID)}
			}
			m = m.openForEdit(a.ID)
			return commands.Result{Message: fmt.Sprintf("editing %s", a.ID)}, nil
		},
		Delete: func(a commands.TargetArgs) (commands.Result, error) {
			if _, ok := m.board.Card(a.ID); !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task with id %s", a.ID)}
			}
			m.LastError = nil
			m = m.deleteTask(a.ID)
			if m.LastError != nil {
				return commands.Result{}, m.LastError
			}
			return commands.Result{Message: fmt.Sprintf("deleted %s", a.ID)}, nil
		},
		Close: func() (commands.Result, error) {
			if m.editor.Mode() == editor.ModeClosed {
				return commands.Result{Message: "form already closed"}, nil
			}
			m = m.requestClose()
			if m.editor.Confirming() {
				return commands.Result{Message: "unsaved changes"}, nil
			}
			return commands.Result{Message: "form closed"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.logger.Warn("command failed", "input", raw, "err", err)
		return m
	}
	m.Status = StatusBar{Text: res.Message}
	return m
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}
