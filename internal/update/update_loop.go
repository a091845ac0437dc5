package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskform/internal/editor"
	"github.com/sandeepkv93/taskform/internal/views"
)

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.editor.Confirming() {
			return m.handleConfirmKey(typed), nil
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed), nil
		}
		if m.editor.Mode() != editor.ModeClosed {
			return m.handleFormKey(typed), nil
		}
		return m.handleListKey(typed)
	case OpenFormMsg:
		return m.openForCreate(), nil
	case EditTaskMsg:
		return m.openForEdit(typed.ID), nil
	case SubmitFormMsg:
		return m.submit(), nil
	case RequestCloseMsg:
		return m.requestClose(), nil
	case ConfirmDiscardMsg:
		return m.confirmDiscard(), nil
	case CancelCloseMsg:
		return m.cancelClose(), nil
	case DeleteTaskMsg:
		return m.deleteTask(typed.ID), nil
	case SetFormFieldsMsg:
		if m.editor.Mode() != editor.ModeClosed {
			m.editor.SetForm(typed.Fields)
			m.pullForm()
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.logger.Error("app error", "err", typed.Err)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	rightPane := ""
	if m.editor.Mode() != editor.ModeClosed {
		rightPane = m.renderFormView() + m.renderConfirmIfVisible()
	} else {
		rightPane = m.renderDetailView()
	}
	rightPane += m.renderCommandPalette() + m.renderHelpIfVisible()

	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("taskform | tasks: %d | mode: %s | selected: %s", m.board.Len(), m.editor.Mode(), m.selectedID()),
		LeftPane:   views.RenderTaskList(m.board.Cards, m.selectedID()),
		RightPane:  rightPane,
		StatusLine: status,
		Footer: fmt.Sprintf("keys: %s new | %s/enter edit | %s delete | j/k move | / cmd | %s help | %s quit",
			m.Keys.New, m.Keys.Edit, m.Keys.Delete, m.Keys.Help, m.Keys.Quit),
	})
}
