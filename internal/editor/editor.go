// Package editor tracks whether the task form is closed, creating a new
// task or editing an existing one, and applies form submissions to the
// store.
package editor

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/taskform/internal/logging"
	"github.com/sandeepkv93/taskform/internal/model"
	"github.com/sandeepkv93/taskform/internal/store"
)

// ErrNotSubmittable is returned by Submit when the form is closed or the
// discard dialog is showing.
var ErrNotSubmittable = errors.New("editor: form cannot be submitted")

type Mode string

const (
	ModeClosed   Mode = "closed"
	ModeCreating Mode = "creating"
	ModeEditing  Mode = "editing"
)

// Renderer receives the full collection after every mutation.
type Renderer interface {
	Render(tasks []model.Task)
}

type Editor struct {
	store    *store.Store
	renderer Renderer
	logger   *log.Logger
	now      func() time.Time

	mode       Mode
	original   model.Task
	form       model.Fields
	confirming bool
}

type Option func(*Editor)

func WithLogger(logger *log.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithClock replaces time.Now for id generation.
func WithClock(now func() time.Time) Option {
	return func(e *Editor) {
		if now != nil {
			e.now = now
		}
	}
}

func New(s *store.Store, r Renderer, opts ...Option) *Editor {
	e := &Editor{
		store:    s,
		renderer: r,
		logger:   logging.Discard(),
		now:      time.Now,
		mode:     ModeClosed,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load reads the persisted collection and renders it.
func (e *Editor) Load(ctx context.Context) error {
	if err := e.store.Load(ctx); err != nil {
		return err
	}
	e.render()
	return nil
}

func (e *Editor) Mode() Mode          { return e.mode }
func (e *Editor) Confirming() bool    { return e.confirming }
func (e *Editor) Form() model.Fields  { return e.form }
func (e *Editor) Tasks() []model.Task { return e.store.Tasks() }

// SetForm records the current raw input values.
func (e *Editor) SetForm(f model.Fields) {
	e.form = f
}

// OpenForCreate moves Closed to CreatingNew with empty fields. It is
// ignored in any other state.
func (e *Editor) OpenForCreate() bool {
	if e.mode != ModeClosed {
		return false
	}
	e.mode = ModeCreating
	e.original = model.Task{}
	e.form = model.Fields{}
	return true
}

// OpenForEdit loads the task with id into the form from any state. A stale
// id returns store.ErrTaskNotFound and leaves the state untouched.
func (e *Editor) OpenForEdit(id string) error {
	task, err := e.store.Get(id)
	if err != nil {
		e.logger.Debug("edit of unknown task ignored", "id", id)
		return err
	}
	e.mode = ModeEditing
	e.original = task
	e.form = task.Fields()
	e.confirming = false
	return nil
}

// Submit stores the form as a new task, or as a replacement keeping the
// edited task's id, then persists, re-renders and closes the form. On a
// persist failure the state and form are kept so the user can retry.
func (e *Editor) Submit(ctx context.Context) (model.Task, error) {
	if e.mode == ModeClosed || e.confirming {
		return model.Task{}, ErrNotSubmittable
	}
	var task model.Task
	if e.mode == ModeEditing {
		task = e.form.WithID(e.original.ID)
	} else {
		task = e.form.WithID(model.NewTaskID(e.form.Title, e.now()))
	}
	if err := e.store.Save(ctx, task); err != nil {
		return model.Task{}, err
	}
	if e.mode == ModeEditing {
		e.logger.Info("task updated", "id", task.ID)
	} else {
		e.logger.Info("task created", "id", task.ID)
	}
	e.render()
	e.reset()
	return task, nil
}

// HasUnsavedChanges reports whether closing should ask for confirmation:
// some field is non-empty and some field differs from the baseline (the
// edited task, or empty when creating).
func (e *Editor) HasUnsavedChanges() bool {
	baseline := model.Fields{}
	if e.mode == ModeEditing {
		baseline = e.original.Fields()
	}
	return !e.form.IsEmpty() && e.form != baseline
}

// RequestClose closes the form directly when nothing would be lost and
// reports true. Otherwise it opens the confirmation dialog and reports
// false.
func (e *Editor) RequestClose() bool {
	if e.mode == ModeClosed {
		return true
	}
	if e.confirming {
		return false
	}
	if e.HasUnsavedChanges() {
		e.confirming = true
		return false
	}
	e.reset()
	return true
}

// ConfirmDiscard closes the dialog and the form, dropping the input.
func (e *Editor) ConfirmDiscard() {
	if !e.confirming {
		return
	}
	e.logger.Debug("form changes discarded", "mode", e.mode)
	e.reset()
}

// CancelClose closes the dialog and keeps editing with the fields as-is.
func (e *Editor) CancelClose() {
	e.confirming = false
}

// Delete removes the task with id, persists and re-renders. Unknown ids
// are a no-op reported as false.
func (e *Editor) Delete(ctx context.Context, id string) (bool, error) {
	removed, err := e.store.Delete(ctx, id)
	if err != nil || !removed {
		return false, err
	}
	e.logger.Info("task deleted", "id", id)
	e.render()
	return true, nil
}

func (e *Editor) reset() {
	e.mode = ModeClosed
	e.original = model.Task{}
	e.form = model.Fields{}
	e.confirming = false
}

func (e *Editor) render() {
	if e.renderer != nil {
		e.renderer.Render(e.store.Tasks())
	}
}
