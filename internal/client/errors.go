package client

import (
	"fmt"

	"github.com/erauner12/showcase/internal/collection"
)

// ErrNotFound is returned when the server answers 404 for an item
type ErrNotFound struct {
	ID string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("item %s not found", e.ID)
}

func (e ErrNotFound) FailureKind() collection.FailureKind { return collection.FailureNotFound }

// ErrServer is any other non-2xx answer. Message is the server's
// {"error": ...} text when it sent one.
type ErrServer struct {
	Status  int
	Message string
}

func (e ErrServer) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.Status)
	}
	return fmt.Sprintf("server returned status %d: %s", e.Status, e.Message)
}

func (e ErrServer) FailureKind() collection.FailureKind {
	if e.Status == 400 {
		return collection.FailureValidation
	}
	return collection.FailureServer
}

// ErrRateLimited is returned for 429 answers. The request is not retried.
type ErrRateLimited struct {
	RetryAfter int // seconds
}

func (e ErrRateLimited) Error() string {
	return fmt.Sprintf("rate limited, retry after %d seconds", e.RetryAfter)
}

func (e ErrRateLimited) FailureKind() collection.FailureKind { return collection.FailureRateLimited }

// ErrNetwork wraps transport failures: refused connections, timeouts,
// unreadable responses
type ErrNetwork struct {
	Err error
}

func (e ErrNetwork) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e ErrNetwork) Unwrap() error { return e.Err }

func (e ErrNetwork) FailureKind() collection.FailureKind { return collection.FailureNetwork }
