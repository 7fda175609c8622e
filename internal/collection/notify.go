package collection

import (
	"github.com/rs/zerolog"
)

// Level is the severity of a Notice
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notice is a transient, user-facing message about an operation outcome
type Notice struct {
	Collection string
	Level      Level
	Message    string
	Kind       FailureKind
	Err        error
}

// Notifier receives notices. Implementations must be safe for concurrent
// use; background persistence reports from its own goroutine.
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

// LogNotifier writes notices to logger
type LogNotifier struct {
	Logger zerolog.Logger
}

func (l LogNotifier) Notify(n Notice) {
	var evt *zerolog.Event
	switch n.Level {
	case LevelError:
		evt = l.Logger.Error()
	case LevelWarn:
		evt = l.Logger.Warn()
	default:
		evt = l.Logger.Info()
	}
	evt = evt.Str("collection", n.Collection)
	if n.Kind != "" {
		evt = evt.Str("failure", string(n.Kind))
	}
	if n.Err != nil {
		evt = evt.Err(n.Err)
	}
	evt.Msg(n.Message)
}
