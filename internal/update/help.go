package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/taskform/internal/editor"
	"github.com/sandeepkv93/taskform/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return "\n" + m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.modeBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Mode:     m.modeLabel(),
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) modeLabel() string {
	if m.editor.Confirming() {
		return "confirm"
	}
	return string(m.editor.Mode())
}

func (m Model) modeBindings() []KeyBinding {
	if m.editor.Confirming() {
		return []KeyBinding{
			{Key: "c/esc", Action: "cancel, keep editing"},
			{Key: "d", Action: "discard changes"},
		}
	}
	if m.editor.Mode() != editor.ModeClosed {
		return []KeyBinding{
			{Key: "tab/shift+tab", Action: "next/previous field"},
			{Key: "ctrl+s", Action: "save task"},
			{Key: "esc", Action: "close form"},
		}
	}
	return []KeyBinding{
		{Key: m.Keys.New, Action: "new task"},
		{Key: m.Keys.Edit + "/enter", Action: "edit selected task"},
		{Key: m.Keys.Delete, Action: "delete selected task"},
		{Key: "j/k", Action: "move selection"},
		{Key: "/", Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.modeBindings()))
	for _, kb := range m.modeBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
