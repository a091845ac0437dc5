// Package store holds the authoritative task collection and mirrors it,
// as one serialized blob, into a key-value repository.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/taskform/internal/logging"
	"github.com/sandeepkv93/taskform/internal/model"
	"github.com/sandeepkv93/taskform/internal/storage"
)

// DataKey is the repository key holding the serialized collection.
const DataKey = "data"

var (
	ErrUnreadable   = errors.New("store: persisted data unreadable")
	ErrTaskNotFound = errors.New("store: task not found")
	ErrPersist      = errors.New("store: persist failed")
)

// Store is the in-memory task collection, newest first. It is not safe
// for concurrent use; one event handler owns it at a time.
type Store struct {
	repo   storage.Repository
	key    string
	logger *log.Logger
	tasks  []model.Task
}

type Option func(*Store)

func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func New(repo storage.Repository, opts ...Option) *Store {
	s := &Store{
		repo:   repo,
		key:    DataKey,
		logger: logging.Discard(),
		tasks:  []model.Task{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the persisted blob into memory. An absent or unreadable blob
// yields an empty collection and no error; only repository failures are
// returned.
func (s *Store) Load(ctx context.Context) error {
	s.tasks = []model.Task{}
	entry, err := s.repo.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Debug("no persisted tasks", "key", s.key)
			return nil
		}
		return fmt.Errorf("load %s: %w", s.key, err)
	}
	tasks, err := decodeBlob(entry.Value)
	if err != nil {
		s.logger.Warn("ignoring persisted tasks", "key", s.key, "err", err)
		return nil
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	s.tasks = tasks
	s.logger.Info("tasks loaded", "count", len(tasks))
	return nil
}

// Tasks returns a copy of the collection in display order.
func (s *Store) Tasks() []model.Task {
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) Len() int {
	return len(s.tasks)
}

func (s *Store) Get(id string) (model.Task, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Task{}, fmt.Errorf("%w: %q", ErrTaskNotFound, id)
	}
	return s.tasks[idx], nil
}

// Upsert replaces the task with the same id in place, or inserts it at the
// front when no such task exists.
func (s *Store) Upsert(task model.Task) {
	if idx := s.indexOf(task.ID); idx >= 0 {
		s.tasks[idx] = task
		return
	}
	s.tasks = append([]model.Task{task}, s.tasks...)
}

// Remove deletes the task with id and reports whether one was found.
// Unknown ids leave the collection unchanged.
func (s *Store) Remove(id string) bool {
	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	s.tasks = append(s.tasks[:idx:idx], s.tasks[idx+1:]...)
	return true
}

// Persist overwrites the stored blob with the whole collection.
func (s *Store) Persist(ctx context.Context) error {
	raw, err := encodeBlob(s.tasks)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrPersist, err)
	}
	if err := s.repo.Set(ctx, s.key, raw); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

// Save upserts task and persists. If the write fails the collection is
// restored to its previous contents so memory never diverges from disk.
func (s *Store) Save(ctx context.Context, task model.Task) error {
	snapshot := s.Tasks()
	s.Upsert(task)
	if err := s.Persist(ctx); err != nil {
		s.tasks = snapshot
		s.logger.Error("save task", "id", task.ID, "err", err)
		return err
	}
	return nil
}

// Delete removes id and persists. It reports false without writing when
// the id is unknown.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	snapshot := s.Tasks()
	if !s.Remove(id) {
		s.logger.Debug("delete of unknown task ignored", "id", id)
		return false, nil
	}
	if err := s.Persist(ctx); err != nil {
		s.tasks = snapshot
		s.logger.Error("delete task", "id", id, "err", err)
		return false, err
	}
	return true, nil
}

func (s *Store) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
