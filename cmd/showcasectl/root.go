package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/erauner12/showcase/internal/client"
	"github.com/erauner12/showcase/internal/collection"
	"github.com/erauner12/showcase/internal/config"
	"github.com/erauner12/showcase/internal/model"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

// errReported marks failures already shown to the user as a notice
type errReported struct {
	err error
}

func (e errReported) Error() string { return e.err.Error() }
func (e errReported) Unwrap() error { return e.err }

// reported wraps an error the store has already turned into a notice
func reported(err error) error {
	if err == nil {
		return nil
	}
	return errReported{err}
}

// app is the state shared by every command of one invocation
type app struct {
	configPath string
	apiURL     string
	logLevel   string

	cfg  *config.Config
	http *client.HTTPClient
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "showcasectl",
		Short: "Manage tasks, shop the catalogue and talk to the assistant",
		Long: `showcasectl drives the showcase API from the terminal.

Tasks and the cart are loaded from the server on every invocation, changed
locally and persisted back; failures are reported as notices on stderr.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to configuration file (TOML)")
	cmd.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "API base URL (overrides config)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(newTasksCmd(a))
	cmd.AddCommand(newCartCmd(a))
	cmd.AddCommand(newProductsCmd(a))
	cmd.AddCommand(newChatCmd(a))
	cmd.AddCommand(newContactCmd(a))
	return cmd
}

// init loads configuration, applies flag overrides and builds the client
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.apiURL != "" {
		cfg.Client.APIBaseURL = a.apiURL
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if err := cfg.ValidateClient(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	config.SetupLoggingTo(cmd.ErrOrStderr(), cfg, "showcasectl")
	a.cfg = cfg
	a.http = client.NewHTTPClient(cfg.Client.APIBaseURL, cfg.Client.Timeout())
	return nil
}

// notifier prints notices to w, one line each
func notifier(w io.Writer) collection.Notifier {
	return collection.NotifierFunc(func(n collection.Notice) {
		line := fmt.Sprintf("%s: %s", n.Level, n.Message)
		if n.Kind != "" && n.Kind != collection.FailureValidation {
			line += fmt.Sprintf(" (%s)", n.Kind)
		}
		if n.Err != nil && n.Kind != collection.FailureValidation {
			line += ": " + n.Err.Error()
		}
		fmt.Fprintln(w, line)
	})
}

// taskStore hydrates a task store whose notices go to cmd's stderr
func (a *app) taskStore(cmd *cobra.Command) (*collection.Store[model.Task, model.TaskDraft], error) {
	s := collection.NewStore[model.Task, model.TaskDraft]("tasks",
		client.NewTaskRemote(a.http), collection.WithNotifier(notifier(cmd.ErrOrStderr())))
	if err := s.Hydrate(cmd.Context()); err != nil {
		return nil, errReported{err}
	}
	return s, nil
}

// cartStore hydrates a cart store whose notices go to cmd's stderr
func (a *app) cartStore(cmd *cobra.Command) (*collection.Store[model.CartEntry, model.Product], error) {
	s := collection.NewStore[model.CartEntry, model.Product]("cart",
		client.NewCartRemote(a.http), collection.WithNotifier(notifier(cmd.ErrOrStderr())))
	if err := s.Hydrate(cmd.Context()); err != nil {
		return nil, errReported{err}
	}
	return s, nil
}

// ErrAmbiguousID is returned when an id prefix matches several items
var ErrAmbiguousID = errors.New("ambiguous id")

// resolveID expands a unique id prefix to the full id
func resolveID[T interface{ ItemID() string }](items []T, prefix string) (string, error) {
	var match string
	for _, it := range items {
		id := it.ItemID()
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			if match != "" {
				return "", fmt.Errorf("%w: %q", ErrAmbiguousID, prefix)
			}
			match = id
		}
	}
	if match == "" {
		return "", fmt.Errorf("no item with id %q", prefix)
	}
	return match, nil
}
