package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/erauner12/showcase/internal/model"
	"github.com/erauner12/showcase/internal/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// TaskService encapsulates the task manager's server-side rules
type TaskService struct {
	Tasks *storage.Collection[model.Task]

	now   func() time.Time
	newID func() string
}

// NewTaskService creates a TaskService over the tasks document of backend
func NewTaskService(backend storage.Backend) *TaskService {
	return &TaskService{
		Tasks: storage.NewCollection[model.Task](backend, storage.TasksCollection),
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// List returns every task in display order
func (s *TaskService) List(ctx context.Context) []model.Task {
	return s.Tasks.Read(ctx)
}

// Create appends a new pending task with a server-assigned id.
// A *storage.PersistenceError is returned alongside the created task when
// the write fails; the task is still the canonical answer for the caller.
func (s *TaskService) Create(ctx context.Context, title string) (model.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Task{}, &ValidationError{Field: "title", Message: "Title is required"}
	}

	task := model.Task{
		ID:        s.newID(),
		Title:     title,
		Completed: false,
		CreatedAt: s.now(),
	}

	_, err := s.Tasks.Update(ctx, func(tasks []model.Task) ([]model.Task, error) {
		return append(tasks, task), nil
	})
	if err != nil {
		return task, err
	}

	log.Ctx(ctx).Info().Str("taskId", task.ID).Msg("task created")
	return task, nil
}

// Update merges patch into the task with the given id and returns the result
func (s *TaskService) Update(ctx context.Context, id string, patch model.Patch) (model.Task, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return model.Task{}, &ValidationError{Field: "title", Message: "Title cannot be empty"}
	}

	var updated model.Task
	_, err := s.Tasks.Update(ctx, func(tasks []model.Task) ([]model.Task, error) {
		i := indexOf(tasks, id)
		if i < 0 {
			return nil, &NotFoundError{Kind: "task", ID: id}
		}
		tasks[i] = tasks[i].Patched(patch)
		updated = tasks[i]
		return tasks, nil
	})
	if err != nil && !isPersistence(err) {
		return model.Task{}, err
	}
	return updated, err
}

// Delete removes the task with the given id. Unknown ids are not an error.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	_, err := s.Tasks.Update(ctx, func(tasks []model.Task) ([]model.Task, error) {
		return removeID(tasks, id), nil
	})
	return err
}

// Reorder arranges the stored tasks in the order of ordered, matched by id.
// Stored tasks missing from ordered keep their relative order at the end;
// ids that are not stored are ignored.
func (s *TaskService) Reorder(ctx context.Context, ordered []model.Task) error {
	_, err := s.Tasks.Update(ctx, func(tasks []model.Task) ([]model.Task, error) {
		byID := make(map[string]model.Task, len(tasks))
		for _, t := range tasks {
			byID[t.ID] = t
		}

		out := make([]model.Task, 0, len(tasks))
		for _, t := range ordered {
			if stored, ok := byID[t.ID]; ok {
				out = append(out, stored)
				delete(byID, t.ID)
			}
		}
		for _, t := range tasks {
			if _, left := byID[t.ID]; left {
				out = append(out, t)
			}
		}
		return out, nil
	})
	return err
}

type identified interface {
	ItemID() string
}

func indexOf[T identified](items []T, id string) int {
	for i, it := range items {
		if it.ItemID() == id {
			return i
		}
	}
	return -1
}

func removeID[T identified](items []T, id string) []T {
	out := items[:0]
	for _, it := range items {
		if it.ItemID() != id {
			out = append(out, it)
		}
	}
	return out
}

// isPersistence reports whether err is a failed write after a successful
// mutation, in which case the mutated state is still returned.
func isPersistence(err error) bool {
	var perr *storage.PersistenceError
	return errors.As(err, &perr)
}
