package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type FormData struct {
	Open            bool
	Editing         bool
	TitleView       string
	DateView        string
	DescriptionView string
	FocusedField    string
}

type DetailData struct {
	Card         TaskCard
	Found        bool
	ViewportView string
}

type HelpPanelData struct {
	Mode     string
	Bindings []string
	HelpView string
}

// RenderTaskList draws one card per entry, marking selectedID.
func RenderTaskList(cards []TaskCard, selectedID string) string {
	if len(cards) == 0 {
		return "tasks:\n(no tasks yet, press n to add one)"
	}
	blocks := make([]string, 0, len(cards)+1)
	blocks = append(blocks, fmt.Sprintf("tasks (%d):", len(cards)))
	for _, card := range cards {
		blocks = append(blocks, RenderCard(card, card.ID == selectedID))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func RenderCard(card TaskCard, selected bool) string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("Title:") + " " + card.Title + "\n")
	b.WriteString(labelStyle.Render("Date:") + " " + card.Date + "\n")
	b.WriteString(labelStyle.Render("Description:") + " " + card.Description + "\n")
	buttons := make([]string, 0, len(card.Actions))
	for _, a := range card.Actions {
		buttons = append(buttons, buttonStyle.Render("["+a.Label+"]"))
	}
	b.WriteString(strings.Join(buttons, " "))
	style := cardStyle
	if selected {
		style = selectedStyle
	}
	return style.Render(b.String())
}

func RenderForm(data FormData) string {
	if !data.Open {
		return ""
	}
	submit := "Add Task"
	if data.Editing {
		submit = "Update Task"
	}
	var b strings.Builder
	b.WriteString("task-form:\n")
	b.WriteString(formLine("title", data.TitleView, data.FocusedField))
	b.WriteString(formLine("date", data.DateView, data.FocusedField))
	b.WriteString(formLine("description", data.DescriptionView, data.FocusedField))
	b.WriteString(fmt.Sprintf("\n[ctrl+s] %s  [tab] next field  [esc] close", submit))
	return b.String()
}

func formLine(name, view, focused string) string {
	marker := " "
	if name == focused {
		marker = ">"
	}
	return fmt.Sprintf("%s %s:\n%s\n", marker, name, view)
}

func RenderConfirmDialog(open bool) string {
	if !open {
		return ""
	}
	return dialogStyle.Render("Discard unsaved changes?\n[c] Cancel   [d] Discard")
}

func RenderDetail(data DetailData) string {
	if !data.Found {
		return "details:\n(no selection)"
	}
	return fmt.Sprintf("details:\nid: %s\ndate: %s\n\n%s", data.Card.ID, data.Card.Date, data.ViewportView)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help (%s):\n%s\n%s",
		strings.ToLower(data.Mode),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("\ncommand: /%s\nexamples: /new, /edit <id>, /delete <id>, /close", input)
}
