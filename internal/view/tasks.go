package view

import (
	"fmt"

	"github.com/erauner12/showcase/internal/model"
)

// TaskFilter is the completion filter of the task list.
type TaskFilter string

const (
	TasksAll       TaskFilter = "all"
	TasksPending   TaskFilter = "pending"
	TasksCompleted TaskFilter = "completed"
)

// ParseTaskFilter accepts "", all, pending and completed.
func ParseTaskFilter(s string) (TaskFilter, error) {
	switch TaskFilter(s) {
	case "", TasksAll:
		return TasksAll, nil
	case TasksPending, TasksCompleted:
		return TaskFilter(s), nil
	default:
		return "", fmt.Errorf("unknown task filter %q", s)
	}
}

// Predicate returns the filter function for f.
func (f TaskFilter) Predicate() Filter[model.Task] {
	switch f {
	case TasksPending:
		return func(t model.Task) bool { return !t.Completed }
	case TasksCompleted:
		return func(t model.Task) bool { return t.Completed }
	default:
		return nil
	}
}
