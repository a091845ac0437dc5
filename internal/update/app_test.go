package update

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskform/internal/editor"
	"github.com/sandeepkv93/taskform/internal/model"
	"github.com/sandeepkv93/taskform/internal/storage"
	"github.com/sandeepkv93/taskform/internal/store"
	"github.com/sandeepkv93/taskform/internal/views"
)

const fixedMillis = 1707480000000

type flakyRepo struct {
	*storage.MemoryRepository
	fail bool
}

func (r *flakyRepo) Set(ctx context.Context, key, value string) error {
	if r.fail {
		return errors.New("quota exceeded")
	}
	return r.MemoryRepository.Set(ctx, key, value)
}

func newTestModelWithRepo(t *testing.T, repo storage.Repository) Model {
	t.Helper()
	board := views.NewBoard()
	ed := editor.New(store.New(repo), board, editor.WithClock(func() time.Time {
		return time.UnixMilli(fixedMillis)
	}))
	if err := ed.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := DefaultRuntimeConfig()
	cfg.MarkdownStyle = "notty"
	return NewModel(ed, board, cfg, nil)
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	return newTestModelWithRepo(t, storage.NewMemoryRepository())
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyMsg(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func addTask(t *testing.T, m Model, f model.Fields) Model {
	t.Helper()
	return send(t, m,
		OpenFormMsg{},
		SetFormFieldsMsg{Fields: f},
		SubmitFormMsg{},
	)
}

func TestNewModelDefaults(t *testing.T) {
	m := newTestModel(t)
	if m.editor.Mode() != editor.ModeClosed {
		t.Fatalf("expected closed editor, got %q", m.editor.Mode())
	}
	if m.Keys.Quit != "q" || m.Keys.New != "n" {
		t.Fatalf("unexpected keys: %+v", m.Keys)
	}
	if m.Focused != FieldTitle {
		t.Fatalf("expected title focus, got %q", m.Focused)
	}
}

func TestCreateTaskWithKeyboard(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m,
		runes("n"),
		runes("Buy milk"),
		keyMsg(tea.KeyTab),
		runes("2026-02-09"),
		keyMsg(tea.KeyTab),
		runes("two litres"),
		keyMsg(tea.KeyCtrlS),
	)

	if m.editor.Mode() != editor.ModeClosed {
		t.Fatalf("expected form closed after submit, got %q", m.editor.Mode())
	}
	if m.board.Len() != 1 {
		t.Fatalf("expected 1 card, got %d", m.board.Len())
	}
	card := m.board.Cards[0]
	if card.ID != "buy-milk-1707480000000" {
		t.Fatalf("unexpected id: %q", card.ID)
	}
	if card.Title != "Buy milk" || card.Date != "2026-02-09" || card.Description != "two litres" {
		t.Fatalf("unexpected card: %#v", card)
	}
	if m.titleInput.Value() != "" || m.dateInput.Value() != "" || m.descriptionArea.Value() != "" {
		t.Fatal("expected inputs cleared after submit")
	}
	if m.Status.Text != "task added" {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
}

func TestEnterSubmitsFromTitleButNotDescription(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m,
		runes("n"),
		keyMsg(tea.KeyShiftTab),
		runes("line one"),
		keyMsg(tea.KeyEnter),
		runes("line two"),
	)
	if m.editor.Mode() != editor.ModeCreating {
		t.Fatalf("enter in description must not submit, mode=%q", m.editor.Mode())
	}
	if got := m.editor.Form().Description; got != "line one\nline two" {
		t.Fatalf("unexpected description: %q", got)
	}

	m = send(t, m, keyMsg(tea.KeyTab), runes("Title"), keyMsg(tea.KeyEnter))
	if m.editor.Mode() != editor.ModeClosed || m.board.Len() != 1 {
		t.Fatalf("expected submit from title, mode=%q cards=%d", m.editor.Mode(), m.board.Len())
	}
}

func TestEditUnchangedThenCloseSkipsDialog(t *testing.T) {
	m := newTestModel(t)
	m = addTask(t, m, model.Fields{Title: "Pay rent", Date: "2026-03-01", Description: "landlord"})

	m = send(t, m, runes("e"))
	if m.editor.Mode() != editor.ModeEditing {
		t.Fatalf("expected editing mode, got %q", m.editor.Mode())
	}
	if m.titleInput.Value() != "Pay rent" || m.dateInput.Value() != "2026-03-01" {
		t.Fatal("expected inputs populated from task")
	}

	m = send(t, m, keyMsg(tea.KeyEsc))
	if m.editor.Confirming() {
		t.Fatal("unchanged edit must not open the dialog")
	}
	if m.editor.Mode() != editor.ModeClosed {
		t.Fatalf("expected closed, got %q", m.editor.Mode())
	}
}

func TestEditChangeThenCloseCancelAndDiscard(t *testing.T) {
	m := newTestModel(t)
	m = addTask(t, m, model.Fields{Title: "Pay rent", Date: "2026-03-01", Description: "landlord"})
	original := m.board.Cards[0]

	m = send(t, m, keyMsg(tea.KeyEnter), runes("!"), keyMsg(tea.KeyEsc))
	if !m.editor.Confirming() {
		t.Fatal("expected dialog after changing a field")
	}
	if !strings.Contains(m.View(), "Discard unsaved changes?") {
		t.Fatal("expected dialog in view")
	}

	m = send(t, m, runes("c"))
	if m.editor.Confirming() || m.editor.Mode() != editor.ModeEditing {
		t.Fatalf("cancel should keep editing, mode=%q", m.editor.Mode())
	}
	if m.titleInput.Value() != "Pay rent!" {
		t.Fatalf("cancel must keep typed value, got %q", m.titleInput.Value())
	}

	m = send(t, m, keyMsg(tea.KeyEsc), runes("d"))
	if m.editor.Mode() != editor.ModeClosed || m.editor.Confirming() {
		t.Fatalf("discard should close, mode=%q", m.editor.Mode())
	}
	if m.board.Cards[0].Title != original.Title {
		t.Fatalf("discard changed the task: %#v", m.board.Cards[0])
	}
	if m.titleInput.Value() != "" {
		t.Fatal("expected inputs cleared after discard")
	}
}

func TestSubmitEditKeepsIDAndOrder(t *testing.T) {
	m := newTestModel(t)
	m = addTask(t, m, model.Fields{Title: "first"})
	first := m.board.Cards[0].ID
	m = send(t, m, OpenFormMsg{}, SetFormFieldsMsg{Fields: model.Fields{Title: "second"}}, SubmitFormMsg{})
	second := m.board.Cards[0].ID

	m = send(t, m,
		EditTaskMsg{ID: first},
		SetFormFieldsMsg{Fields: model.Fields{Title: "first edited"}},
		SubmitFormMsg{},
	)
	if m.board.Cards[0].ID != second || m.board.Cards[1].ID != first {
		t.Fatalf("edit reordered cards: %#v", m.board.Cards)
	}
	if m.board.Cards[1].Title != "first edited" {
		t.Fatalf("edit not applied: %#v", m.board.Cards[1])
	}
	if m.Status.Text != "task updated" {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
}

func TestDeleteSelectedWithKeyboard(t *testing.T) {
	m := newTestModel(t)
	m = addTask(t, m, model.Fields{Title: "a"})
	m = send(t, m, OpenFormMsg{}, SetFormFieldsMsg{Fields: model.Fields{Title: "b", Date: "x"}}, SubmitFormMsg{})
	if m.board.Len() != 2 {
		t.Fatalf("expected 2 cards, got %d", m.board.Len())
	}

	m = send(t, m, runes("j"), runes("d"))
	if m.board.Len() != 1 || m.board.Cards[0].Title != "b" {
		t.Fatalf("expected only b left, got %#v", m.board.Cards)
	}
	if m.Cursor != 0 {
		t.Fatalf("expected cursor clamped, got %d", m.Cursor)
	}

	m = send(t, m, DeleteTaskMsg{ID: "ghost"})
	if m.board.Len() != 1 {
		t.Fatal("unknown id delete must be a no-op")
	}
}

func TestEditStaleIDIsSilent(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, SetStatusMsg{Text: "ready"}, EditTaskMsg{ID: "gone-1"})
	if m.editor.Mode() != editor.ModeClosed {
		t.Fatalf("expected closed, got %q", m.editor.Mode())
	}
	if m.Status.Text != "ready" || m.Status.IsError {
		t.Fatalf("stale edit must not surface, got %+v", m.Status)
	}
}

func TestPersistFailureSurfacesErrorAndKeepsForm(t *testing.T) {
	repo := &flakyRepo{MemoryRepository: storage.NewMemoryRepository(), fail: true}
	m := newTestModelWithRepo(t, repo)
	m = send(t, m, runes("n"), runes("Unsaved"), keyMsg(tea.KeyCtrlS))

	if !m.Status.IsError || !errors.Is(m.LastError, store.ErrPersist) {
		t.Fatalf("expected persist error status, got %+v err=%v", m.Status, m.LastError)
	}
	if m.editor.Mode() != editor.ModeCreating || m.titleInput.Value() != "Unsaved" {
		t.Fatalf("expected form kept open, mode=%q", m.editor.Mode())
	}
	if m.board.Len() != 0 {
		t.Fatal("failed save must not render a card")
	}

	repo.fail = false
	m = send(t, m, keyMsg(tea.KeyCtrlS))
	if m.board.Len() != 1 || m.Status.IsError {
		t.Fatalf("retry should succeed, cards=%d status=%+v", m.board.Len(), m.Status)
	}
}

func TestPaletteEditAndDelete(t *testing.T) {
	m := newTestModel(t)
	m = addTask(t, m, model.Fields{Title: "Call mom"})
	id := m.board.Cards[0].ID

	m = send(t, m, runes("/"), runes("edit "+id), keyMsg(tea.KeyEnter))
	if m.editor.Mode() != editor.ModeEditing {
		t.Fatalf("expected editing via palette, got %q (status %+v)", m.editor.Mode(), m.Status)
	}
	m = send(t, m, keyMsg(tea.KeyEsc))

	m = send(t, m, runes("/"), runes("delete nope-1"), keyMsg(tea.KeyEnter))
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "no task with id") {
		t.Fatalf("expected unknown id error, got %+v", m.Status)
	}

	m = send(t, m, runes("/"), runes("delete "+id), keyMsg(tea.KeyEnter))
	if m.board.Len() != 0 || m.Status.IsError {
		t.Fatalf("expected delete via palette, cards=%d status=%+v", m.board.Len(), m.Status)
	}
	if m.Palette.Active {
		t.Fatal("palette should close after executing")
	}
}

func TestPaletteParseError(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, runes("/"), runes("frobnicate"), keyMsg(tea.KeyEnter))
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "unknown_command") {
		t.Fatalf("expected parse error status, got %+v", m.Status)
	}
}

func TestViewContainsCardsAndHeader(t *testing.T) {
	m := newTestModel(t)
	m = addTask(t, m, model.Fields{Title: "Water plants", Date: "2026-02-10", Description: "balcony"})
	out := m.View()
	for _, want := range []string{"taskform | tasks: 1 | mode: closed", "Title: Water plants", "[Edit]", "[Delete]", "details:", "status: task added"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in view:\n%s", want, out)
		}
	}

	m = send(t, m, runes("n"))
	if !strings.Contains(m.View(), "Add Task") {
		t.Fatal("expected add form in view")
	}
}

func TestHelpToggleAndQuit(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, runes("?"))
	if !m.HelpVisible || !strings.Contains(m.View(), "help (closed)") {
		t.Fatal("expected help panel visible")
	}

	updated, cmd := m.Update(runes("q"))
	next := updated.(Model)
	if !next.Quitting || cmd == nil {
		t.Fatal("expected quit")
	}
}

func TestCtrlCQuitsFromForm(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, runes("n"))
	updated, cmd := m.Update(keyMsg(tea.KeyCtrlC))
	if !updated.(Model).Quitting || cmd == nil {
		t.Fatal("expected ctrl+c to quit while the form is open")
	}
}

func TestStatusAndErrorMessages(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, AppErrorMsg{Err: errors.New("boom")})
	if m.LastError == nil || !m.Status.IsError || m.Status.Text != "boom" {
		t.Fatalf("unexpected error status: %+v", m.Status)
	}
	m = send(t, m, ClearStatusMsg{})
	if m.Status.Text != "" || m.Status.IsError {
		t.Fatalf("expected cleared status, got %+v", m.Status)
	}
}

func seedTasks(t *testing.T, repo storage.Repository, tasks ...model.Task) {
	t.Helper()
	raw, err := json.Marshal(tasks)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := repo.Set(context.Background(), store.DataKey, string(raw)); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func storedTasks(t *testing.T, repo storage.Repository) []model.Task {
	t.Helper()
	entry, err := repo.Get(context.Background(), store.DataKey)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	var out []model.Task
	if err := json.Unmarshal([]byte(entry.Value), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return out
}

func TestUnchangedEditKeepsRawValues(t *testing.T) {
	repo := storage.NewMemoryRepository()
	seeded := model.Task{
		ID:          "a-1",
		Title:       strings.Repeat("x", 300),
		Date:        "2026-02-09\tmorning",
		Description: "col1\tcol2\nrow2",
	}
	seedTasks(t, repo, seeded)
	m := newTestModelWithRepo(t, repo)

	m = send(t, m, EditTaskMsg{ID: "a-1"}, RequestCloseMsg{})
	if m.editor.Confirming() || m.editor.Mode() != editor.ModeClosed {
		t.Fatalf("unchanged edit must close without dialog, confirming=%v mode=%q", m.editor.Confirming(), m.editor.Mode())
	}

	m = send(t, m, EditTaskMsg{ID: "a-1"}, SubmitFormMsg{})
	if got := storedTasks(t, repo); len(got) != 1 || got[0] != seeded {
		t.Fatalf("unchanged submit altered the task: %#v", got)
	}

	m = send(t, m, EditTaskMsg{ID: "a-1"}, runes("!"), keyMsg(tea.KeyCtrlS))
	got := storedTasks(t, repo)
	if got[0].Title != seeded.Title+"!" {
		t.Fatalf("expected typed suffix, got len %d", len(got[0].Title))
	}
	if got[0].Date != seeded.Date || got[0].Description != seeded.Description {
		t.Fatalf("untouched fields changed: %#v", got[0])
	}
}

func TestTypingInsertsAtCursor(t *testing.T) {
	m := newTestModel(t)
	m = addTask(t, m, model.Fields{Title: "Pay rent"})

	m = send(t, m, runes("e"), keyMsg(tea.KeyLeft), keyMsg(tea.KeyLeft), keyMsg(tea.KeyEsc))
	if m.editor.Confirming() || m.editor.Mode() != editor.ModeClosed {
		t.Fatal("moving the cursor must not count as a change")
	}

	m = send(t, m, runes("e"))
	for i := 0; i < 4; i++ {
		m = send(t, m, keyMsg(tea.KeyLeft))
	}
	m = send(t, m, runes("the "), keyMsg(tea.KeyCtrlS))
	if got := m.board.Cards[0].Title; got != "Pay the rent" {
		t.Fatalf("expected insert at cursor, got %q", got)
	}
}

func TestDetailMarkdownIsCachedPerCard(t *testing.T) {
	m := newTestModel(t)
	m = addTask(t, m, model.Fields{Title: "Notes", Description: "first draft"})
	id := m.board.Cards[0].ID

	_ = m.View()
	if m.detailCache.id != id || m.detailCache.source != "first draft" {
		t.Fatalf("expected cache for %s, got %+v", id, *m.detailCache)
	}
	cached := m.detailCache.rendered
	_ = m.View()
	if m.detailCache.rendered != cached {
		t.Fatal("expected cached rendering reused")
	}

	m = send(t, m,
		EditTaskMsg{ID: id},
		SetFormFieldsMsg{Fields: model.Fields{Title: "Notes", Description: "second draft"}},
		SubmitFormMsg{},
	)
	if out := m.View(); !strings.Contains(out, "second draft") {
		t.Fatalf("expected refreshed description in view:\n%s", out)
	}
	if m.detailCache.source != "second draft" {
		t.Fatalf("expected cache refreshed, got %q", m.detailCache.source)
	}
}
