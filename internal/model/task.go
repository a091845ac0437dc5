package model

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Task is a single to-do item. ID is assigned once at creation and never
// regenerated on edit.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// Fields returns the editable values of the task.
func (t Task) Fields() Fields {
	return Fields{Title: t.Title, Date: t.Date, Description: t.Description}
}

// Fields holds the raw values of the three form inputs. No validation is
// applied: empty or free-form values are accepted as-is.
type Fields struct {
	Title       string
	Date        string
	Description string
}

func (f Fields) IsEmpty() bool {
	return f.Title == "" && f.Date == "" && f.Description == ""
}

// WithID builds a task carrying id and the field values.
func (f Fields) WithID(id string) Task {
	return Task{ID: id, Title: f.Title, Date: f.Date, Description: f.Description}
}

// Slug lowercases the title and joins its single-space separated parts
// with dashes. Runs of spaces produce runs of dashes.
func Slug(title string) string {
	return strings.Join(strings.Split(cases.Lower(language.Und).String(title), " "), "-")
}

// NewTaskID derives an id from the title slug and the creation instant in
// Unix milliseconds. Two tasks created with the same title in the same
// millisecond get the same id; that collision is accepted and not guarded.
func NewTaskID(title string, at time.Time) string {
	return Slug(title) + "-" + strconv.FormatInt(at.UnixMilli(), 10)
}
