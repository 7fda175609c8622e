package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/erauner12/showcase/internal/collection"
	"github.com/erauner12/showcase/internal/model"
	"github.com/erauner12/showcase/internal/view"
	"github.com/spf13/cobra"
)

type taskStore = collection.Store[model.Task, model.TaskDraft]

func newTasksCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task", "t"},
		Short:   "Manage the task list",
	}

	var filter, search string
	list := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := view.ParseTaskFilter(filter)
			if err != nil {
				return err
			}
			s, err := a.taskStore(cmd)
			if err != nil {
				return err
			}
			s.SetFilter(f.Predicate())
			s.SetQuery(search)
			renderTasks(cmd.OutOrStdout(), s)
			return nil
		},
	}
	list.Flags().StringVar(&filter, "filter", "all", "Show all, pending or completed tasks")
	list.Flags().StringVar(&search, "search", "", "Only show tasks whose title contains this text")

	cmd.AddCommand(
		list,
		&cobra.Command{
			Use:   "add <title>",
			Short: "Add a task",
			Args:  cobra.MinimumNArgs(1),
			RunE: a.withTasks(func(cmd *cobra.Command, s *taskStore, args []string) error {
				return reported(s.Create(cmd.Context(), model.TaskDraft{Title: strings.Join(args, " ")}))
			}),
		},
		&cobra.Command{
			Use:   "done <id>",
			Short: "Mark a task completed",
			Args:  cobra.ExactArgs(1),
			RunE:  a.withTask(model.SetCompleted(true), collection.Optimistic),
		},
		&cobra.Command{
			Use:   "undo <id>",
			Short: "Mark a task pending again",
			Args:  cobra.ExactArgs(1),
			RunE:  a.withTask(model.SetCompleted(false), collection.Optimistic),
		},
		&cobra.Command{
			Use:   "rename <id> <title>",
			Short: "Change a task's title",
			Args:  cobra.MinimumNArgs(2),
			RunE: a.withTasks(func(cmd *cobra.Command, s *taskStore, args []string) error {
				id, err := resolveID(s.Items(), args[0])
				if err != nil {
					return err
				}
				title := strings.TrimSpace(strings.Join(args[1:], " "))
				if title == "" {
					return model.ErrBlankTitle
				}
				return reported(s.Update(cmd.Context(), id, model.SetTitle(title), collection.Confirmed))
			}),
		},
		&cobra.Command{
			Use:     "rm <id>",
			Aliases: []string{"delete"},
			Short:   "Delete a task",
			Args:    cobra.ExactArgs(1),
			RunE: a.withTasks(func(cmd *cobra.Command, s *taskStore, args []string) error {
				id, err := resolveID(s.Items(), args[0])
				if err != nil {
					return err
				}
				return reported(s.Delete(cmd.Context(), id))
			}),
		},
		&cobra.Command{
			Use:   "reorder <id>...",
			Short: "Put the tasks in the given order; every task must be named once",
			Args:  cobra.MinimumNArgs(1),
			RunE: a.withTasks(func(cmd *cobra.Command, s *taskStore, args []string) error {
				items := s.Items()
				ids := make([]string, len(args))
				for i, prefix := range args {
					id, err := resolveID(items, prefix)
					if err != nil {
						return err
					}
					ids[i] = id
				}
				return reported(s.Reorder(cmd.Context(), ids))
			}),
		},
		&cobra.Command{
			Use:   "clear-completed",
			Short: "Delete every completed task",
			Args:  cobra.NoArgs,
			RunE: a.withTasks(func(cmd *cobra.Command, s *taskStore, args []string) error {
				return reported(s.DeleteWhere(cmd.Context(), view.TasksCompleted.Predicate()))
			}),
		},
	)
	return cmd
}

// withTasks hydrates the task store, runs fn, waits for background writes
// and prints the resulting list
func (a *app) withTasks(fn func(cmd *cobra.Command, s *taskStore, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := a.taskStore(cmd)
		if err != nil {
			return err
		}
		err = fn(cmd, s, args)
		s.Wait()
		if err != nil {
			return err
		}
		renderTasks(cmd.OutOrStdout(), s)
		return nil
	}
}

// withTask applies patch to the task named by the first argument
func (a *app) withTask(patch model.Patch, policy collection.UpdatePolicy) func(*cobra.Command, []string) error {
	return a.withTasks(func(cmd *cobra.Command, s *taskStore, args []string) error {
		id, err := resolveID(s.Items(), args[0])
		if err != nil {
			return err
		}
		return reported(s.Update(cmd.Context(), id, patch, policy))
	})
}

func renderTasks(w io.Writer, s *taskStore) {
	visible := s.Visible()
	if len(visible) == 0 {
		fmt.Fprintln(w, "No tasks.")
	}
	for _, t := range visible {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		fmt.Fprintf(w, "[%s] %-40s %s\n", mark, t.Title, shortID(t.ID))
	}
	fmt.Fprintln(w, model.PendingLabel(s.Items()))
}

// shortID trims uuids for display; resolveID accepts the prefix back
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
