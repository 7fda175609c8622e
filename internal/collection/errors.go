package collection

import (
	"context"
	"errors"
	"fmt"
	"net"
)

var (
	// ErrInvalidOrder is returned by Reorder when the ids are not a
	// permutation of the current ids.
	ErrInvalidOrder = errors.New("order must contain every item id exactly once")

	// ErrUnknownItem is returned when an operation names an id the store does not hold.
	ErrUnknownItem = errors.New("unknown item")
)

// ValidationError is a draft or patch rejected before any remote call
type ValidationError struct {
	Collection string
	Err        error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Collection, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// FailureKind is the user-facing category of an error
type FailureKind string

const (
	FailureNetwork     FailureKind = "network"
	FailureServer      FailureKind = "server"
	FailureValidation  FailureKind = "validation"
	FailureNotFound    FailureKind = "not_found"
	FailureRateLimited FailureKind = "rate_limited"
	FailurePersistence FailureKind = "persistence"
)

// Kinded is implemented by errors that know their own FailureKind, such as
// the remote client's typed errors.
type Kinded interface {
	FailureKind() FailureKind
}

// Classify maps any error onto a FailureKind. Errors of unknown shape are
// reported as server failures.
func Classify(err error) FailureKind {
	if err == nil {
		return ""
	}

	var verr *ValidationError
	var kinded Kinded
	var netErr net.Error

	switch {
	case errors.As(err, &verr), errors.Is(err, ErrInvalidOrder):
		return FailureValidation
	case errors.Is(err, ErrUnknownItem):
		return FailureNotFound
	case errors.As(err, &kinded):
		return kinded.FailureKind()
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled), errors.As(err, &netErr):
		return FailureNetwork
	default:
		return FailureServer
	}
}
