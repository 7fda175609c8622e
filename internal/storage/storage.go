// Package storage persists collections as whole JSON documents. Every
// mutation rewrites the full array; read-modify-write cycles on one
// Collection are serialised so that writers inside a process never lose
// each other's updates.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// Backend stores raw JSON documents by collection name.
type Backend interface {
	// Load returns the stored document, or nil and no error when absent.
	Load(ctx context.Context, name string) ([]byte, error)
	// Save replaces the stored document.
	Save(ctx context.Context, name string, data []byte) error
	// Ensure creates an empty array document when none exists.
	Ensure(ctx context.Context, name string) (created bool, err error)
}

// PersistenceError reports a failed write of a collection document.
type PersistenceError struct {
	Collection string
	Err        error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Collection, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Collection is a typed view over one named document.
type Collection[T any] struct {
	name    string
	backend Backend
	mu      sync.Mutex
}

// NewCollection binds name on backend.
func NewCollection[T any](backend Backend, name string) *Collection[T] {
	return &Collection[T]{name: name, backend: backend}
}

// Name returns the document name.
func (c *Collection[T]) Name() string { return c.name }

// Read loads the collection. Missing or unreadable documents yield an empty
// slice; the failure is logged, never returned.
func (c *Collection[T]) Read(ctx context.Context) []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readLocked(ctx)
}

// Write replaces the collection with items.
func (c *Collection[T]) Write(ctx context.Context, items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeLocked(ctx, items)
}

// Update runs fn over the current items and persists its result, holding the
// collection lock for the whole cycle. When fn returns an error nothing is
// written. The returned slice is what fn produced; on a write failure it is
// returned together with a *PersistenceError so callers can still answer
// with the best-effort state.
func (c *Collection[T]) Update(ctx context.Context, fn func([]T) ([]T, error)) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := fn(c.readLocked(ctx))
	if err != nil {
		return nil, err
	}
	if err := c.writeLocked(ctx, items); err != nil {
		return items, err
	}
	return items, nil
}

func (c *Collection[T]) readLocked(ctx context.Context) []T {
	data, err := c.backend.Load(ctx, c.name)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("collection", c.name).Msg("failed to read collection")
		return []T{}
	}
	if len(data) == 0 {
		return []T{}
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("collection", c.name).Msg("failed to parse collection")
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}

func (c *Collection[T]) writeLocked(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return &PersistenceError{Collection: c.name, Err: err}
	}
	if err := c.backend.Save(ctx, c.name, data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("collection", c.name).Msg("failed to save collection")
		return &PersistenceError{Collection: c.name, Err: err}
	}
	return nil
}
