package update

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskform/internal/editor"
	"github.com/sandeepkv93/taskform/internal/model"
)

func (m Model) handleFormKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		return m.requestClose()
	case "ctrl+s":
		return m.submit()
	case "tab":
		m.cycleFocus(1)
		return m
	case "shift+tab":
		m.cycleFocus(-1)
		return m
	case "enter":
		// enter submits from single-line inputs and breaks lines in the description
		if m.Focused != FieldDescription {
			return m.submit()
		}
	}
	m.typeIntoFocused(msg)
	return m
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "c", "n", "esc":
		return m.cancelClose()
	case "d", "y":
		return m.confirmDiscard()
	}
	return m
}

func (m *Model) typeIntoFocused(msg tea.KeyMsg) {
	var before, after string
	switch m.Focused {
	case FieldTitle:
		before = m.titleInput.Value()
		m.titleInput, _ = m.titleInput.Update(msg)
		after = m.titleInput.Value()
	case FieldDate:
		before = m.dateInput.Value()
		m.dateInput, _ = m.dateInput.Update(msg)
		after = m.dateInput.Value()
	case FieldDescription:
		before = m.descriptionArea.Value()
		m.descriptionArea, _ = m.descriptionArea.Update(msg)
		after = m.descriptionArea.Value()
	}
	// cursor movement alone leaves the stored value alone
	if before != after {
		m.touched.mark(m.Focused)
	}
	m.pushForm()
}

func (m Model) openForCreate() Model {
	if !m.editor.OpenForCreate() {
		return m
	}
	m.Focused = FieldTitle
	m.pullForm()
	m.Status = StatusBar{Text: "new task"}
	return m
}

func (m Model) openForEdit(id string) Model {
	if err := m.editor.OpenForEdit(id); err != nil {
		// stale ids come from cards removed elsewhere; nothing to report
		return m
	}
	m.Focused = FieldTitle
	m.pullForm()
	m.selectID(id)
	m.Status = StatusBar{Text: "editing " + id}
	return m
}

func (m Model) submit() Model {
	m.pushForm()
	editing := m.editor.Mode() == editor.ModeEditing
	task, err := m.editor.Submit(context.Background())
	if err != nil {
		if errors.Is(err, editor.ErrNotSubmittable) {
			return m
		}
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.pullForm()
	m.selectID(task.ID)
	if editing {
		m.Status = StatusBar{Text: "task updated"}
	} else {
		m.Status = StatusBar{Text: "task added"}
	}
	return m
}

func (m Model) requestClose() Model {
	m.pushForm()
	if m.editor.RequestClose() {
		m.pullForm()
		m.Status = StatusBar{Text: "form closed"}
		return m
	}
	m.Status = StatusBar{Text: "unsaved changes"}
	return m
}

func (m Model) confirmDiscard() Model {
	if !m.editor.Confirming() {
		return m
	}
	m.editor.ConfirmDiscard()
	m.pullForm()
	m.Status = StatusBar{Text: "changes discarded"}
	return m
}

func (m Model) cancelClose() Model {
	if !m.editor.Confirming() {
		return m
	}
	m.editor.CancelClose()
	m.Status = StatusBar{Text: "keep editing"}
	return m
}

func (m Model) deleteTask(id string) Model {
	if m.editor.Confirming() {
		return m
	}
	removed, err := m.editor.Delete(context.Background(), id)
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	if !removed {
		return m
	}
	m.clampCursor()
	m.Status = StatusBar{Text: "task deleted"}
	return m
}

// currentFields starts from the editor's values and takes an input's text
// only once the user has typed into it, since the widgets normalize tabs
// and newlines on SetValue.
func (m Model) currentFields() model.Fields {
	f := m.editor.Form()
	if m.touched.title {
		f.Title = m.titleInput.Value()
	}
	if m.touched.date {
		f.Date = m.dateInput.Value()
	}
	if m.touched.description {
		f.Description = m.descriptionArea.Value()
	}
	return f
}

// pushForm hands the edited input values to the editor.
func (m *Model) pushForm() {
	if m.editor.Mode() == editor.ModeClosed {
		return
	}
	m.editor.SetForm(m.currentFields())
}

// pullForm copies the editor's form values into the inputs.
func (m *Model) pullForm() {
	f := m.editor.Form()
	m.touched = touchedFields{}
	m.titleInput.SetValue(f.Title)
	m.titleInput.CursorEnd()
	m.dateInput.SetValue(f.Date)
	m.dateInput.CursorEnd()
	m.descriptionArea.SetValue(f.Description)
	m.applyFocus()
}

func (m *Model) cycleFocus(delta int) {
	idx := 0
	for i, f := range formFieldOrder {
		if f == m.Focused {
			idx = i
		}
	}
	idx = (idx + delta + len(formFieldOrder)) % len(formFieldOrder)
	m.Focused = formFieldOrder[idx]
	m.applyFocus()
}

func (m *Model) applyFocus() {
	m.titleInput.Blur()
	m.dateInput.Blur()
	m.descriptionArea.Blur()
	if m.editor.Mode() == editor.ModeClosed {
		return
	}
	switch m.Focused {
	case FieldDate:
		m.dateInput.Focus()
	case FieldDescription:
		m.descriptionArea.Focus()
	default:
		m.titleInput.Focus()
	}
}
