package views

import "github.com/sandeepkv93/taskform/internal/model"

type ActionKind string

const (
	ActionEdit   ActionKind = "edit"
	ActionDelete ActionKind = "delete"
)

// CardAction is a control on a card, keyed by the task it acts on.
type CardAction struct {
	Kind   ActionKind
	Label  string
	TaskID string
}

// TaskCard is the display record for one task.
type TaskCard struct {
	ID          string
	Title       string
	Date        string
	Description string
	Actions     []CardAction
}

// Board holds the rendered cards. Every Render discards the previous
// cards and rebuilds one per task, in collection order.
type Board struct {
	Cards []TaskCard
}

func NewBoard() *Board {
	return &Board{Cards: []TaskCard{}}
}

func (b *Board) Render(tasks []model.Task) {
	b.Cards = BuildCards(tasks)
}

func (b *Board) Len() int {
	return len(b.Cards)
}

func (b *Board) Card(id string) (TaskCard, bool) {
	for _, c := range b.Cards {
		if c.ID == id {
			return c, true
		}
	}
	return TaskCard{}, false
}

func BuildCards(tasks []model.Task) []TaskCard {
	out := make([]TaskCard, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, TaskCard{
			ID:          t.ID,
			Title:       t.Title,
			Date:        t.Date,
			Description: t.Description,
			Actions: []CardAction{
				{Kind: ActionEdit, Label: "Edit", TaskID: t.ID},
				{Kind: ActionDelete, Label: "Delete", TaskID: t.ID},
			},
		})
	}
	return out
}
