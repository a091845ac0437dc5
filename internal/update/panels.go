package update

import (
	"strings"

	"github.com/sandeepkv93/taskform/internal/editor"
	"github.com/sandeepkv93/taskform/internal/views"
)

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderFormView() string {
	return views.RenderForm(views.FormData{
		Open:            m.editor.Mode() != editor.ModeClosed,
		Editing:         m.editor.Mode() == editor.ModeEditing,
		TitleView:       m.titleInput.View(),
		DateView:        m.dateInput.View(),
		DescriptionView: m.descriptionArea.View(),
		FocusedField:    string(m.Focused),
	})
}

func (m Model) renderConfirmIfVisible() string {
	if !m.editor.Confirming() {
		return ""
	}
	return "\n" + views.RenderConfirmDialog(true)
}

func (m Model) renderDetailView() string {
	card, ok := m.board.Card(m.selectedID())
	if !ok {
		return views.RenderDetail(views.DetailData{})
	}
	md := card.Description
	if strings.TrimSpace(md) == "" {
		md = "_No description_"
	}
	vp := m.detailViewport
	vp.SetContent(m.detailCache.render(card.ID, md, m.markdownStyle))
	return views.RenderDetail(views.DetailData{
		Card:         card,
		Found:        true,
		ViewportView: vp.View(),
	})
}

// markdownCache keeps the last rendered description so View does not build
// a glamour renderer on every frame.
type markdownCache struct {
	id       string
	source   string
	style    string
	rendered string
	ok       bool
}

func (c *markdownCache) render(id, md, style string) string {
	if c == nil {
		return views.RenderMarkdown(md, style)
	}
	if c.ok && c.id == id && c.source == md && c.style == style {
		return c.rendered
	}
	c.id, c.source, c.style = id, md, style
	c.rendered = views.RenderMarkdown(md, style)
	c.ok = true
	return c.rendered
}
