// Package collection keeps a client-side copy of a remote collection in sync
// with the server and derives filtered views and aggregates from it.
package collection

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/erauner12/showcase/internal/model"
	"github.com/erauner12/showcase/internal/view"
	"github.com/rs/zerolog/log"
)

// Item is an element of a collection. Patched returns a copy with p applied.
type Item[T any] interface {
	ItemID() string
	DisplayName() string
	Patched(p model.Patch) T
}

// Draft is the client-side input for creating an item
type Draft interface {
	Validate() error
}

// Ack is a remote acknowledgement. When Full is set Snapshot is the whole
// collection; otherwise Item, if any, is the canonical affected item.
type Ack[T any] struct {
	Item     *T
	Snapshot []T
	Full     bool
}

// Remote is the request/response adapter for one collection
type Remote[T any, D any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, draft D) (Ack[T], error)
	Patch(ctx context.Context, id string, p model.Patch) (Ack[T], error)
	Remove(ctx context.Context, id string) (Ack[T], error)
}

// OrderPersister is implemented by remotes that can store a new ordering
type OrderPersister[T any] interface {
	PersistOrder(ctx context.Context, items []T) error
}

// UpdatePolicy selects when local state changes relative to the remote call
type UpdatePolicy int

const (
	// Optimistic applies the patch locally first and persists in the
	// background. A failed write is reported, not rolled back.
	Optimistic UpdatePolicy = iota
	// Confirmed calls the remote first and applies its answer.
	Confirmed
)

func (p UpdatePolicy) String() string {
	if p == Confirmed {
		return "confirmed"
	}
	return "optimistic"
}

// Store owns the client copy of one collection.
// Mutation of items is serialised by mu; remote calls never run under it.
type Store[T Item[T], D Draft] struct {
	name     string
	remote   Remote[T, D]
	notifier Notifier

	mu        sync.Mutex
	items     []T
	filter    view.Filter[T]
	query     string
	listeners []func([]T)

	inflight sync.WaitGroup
}

// Option configures a Store
type Option func(*options)

type options struct {
	notifier Notifier
}

// WithNotifier routes notices to n instead of the global logger
func WithNotifier(n Notifier) Option {
	return func(o *options) { o.notifier = n }
}

// NewStore creates an empty store for the collection called name
func NewStore[T Item[T], D Draft](name string, remote Remote[T, D], opts ...Option) *Store[T, D] {
	o := options{notifier: LogNotifier{Logger: log.Logger}}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store[T, D]{
		name:     name,
		remote:   remote,
		notifier: o.notifier,
		items:    []T{},
	}
}

// Name returns the collection name
func (s *Store[T, D]) Name() string { return s.name }

// Items returns a copy of the collection in display order
func (s *Store[T, D]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.items)
}

// Find returns the item with id
func (s *Store[T, D]) Find(id string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.items, id); i >= 0 {
		return s.items[i], true
	}
	var zero T
	return zero, false
}

// OnChange registers fn to be called with a copy of the items after every
// local state change
func (s *Store[T, D]) OnChange(fn func([]T)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// SetFilter sets the view filter; nil shows everything
func (s *Store[T, D]) SetFilter(f view.Filter[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f
}

// SetQuery sets the view search text
func (s *Store[T, D]) SetQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = q
}

// Visible returns the current view: filtered, then searched
func (s *Store[T, D]) Visible() []T {
	s.mu.Lock()
	items, filter, query := clone(s.items), s.filter, s.query
	s.mu.Unlock()
	return view.Project(items, filter, query)
}

// Wait blocks until background persistence started so far has finished
func (s *Store[T, D]) Wait() {
	s.inflight.Wait()
}

// Hydrate replaces the collection with the remote's. On failure the
// collection is emptied.
func (s *Store[T, D]) Hydrate(ctx context.Context) error {
	items, err := s.remote.List(ctx)
	if err != nil {
		s.replace([]T{})
		s.fail(LevelError, "Could not load "+s.name, err)
		return err
	}
	s.replace(items)
	return nil
}

// Create validates draft locally and adds the remote's canonical item.
// Nothing is added until the remote acknowledges.
func (s *Store[T, D]) Create(ctx context.Context, draft D) error {
	if err := draft.Validate(); err != nil {
		verr := &ValidationError{Collection: s.name, Err: err}
		s.fail(LevelWarn, err.Error(), verr)
		return verr
	}

	ack, err := s.remote.Create(ctx, draft)
	if err != nil {
		s.fail(LevelError, "Could not add to "+s.name, err)
		return err
	}

	switch {
	case ack.Full:
		s.replace(ack.Snapshot)
	case ack.Item != nil:
		s.upsert(*ack.Item)
	}
	return nil
}

// Update applies patch to the item with id according to policy.
// A patch that sets quantity to zero or less deletes the item instead.
func (s *Store[T, D]) Update(ctx context.Context, id string, patch model.Patch, policy UpdatePolicy) error {
	if patch.Qty != nil && *patch.Qty <= 0 {
		return s.Delete(ctx, id)
	}

	if policy == Optimistic {
		return s.updateOptimistic(ctx, id, patch)
	}

	if _, ok := s.Find(id); !ok {
		return s.unknown(id)
	}

	ack, err := s.remote.Patch(ctx, id, patch)
	if err != nil {
		s.fail(LevelError, "Could not update "+s.name, err)
		return err
	}

	switch {
	case ack.Full:
		s.replace(ack.Snapshot)
	case ack.Item != nil:
		s.replaceInPlace(*ack.Item)
	}
	return nil
}

func (s *Store[T, D]) updateOptimistic(ctx context.Context, id string, patch model.Patch) error {
	s.mu.Lock()
	i := indexOf(s.items, id)
	if i < 0 {
		s.mu.Unlock()
		return s.unknown(id)
	}
	s.items[i] = s.items[i].Patched(patch)
	snapshot, listeners := clone(s.items), s.listeners
	s.mu.Unlock()

	emit(listeners, snapshot)

	s.background(func() {
		if _, err := s.remote.Patch(ctx, id, patch); err != nil {
			s.fail(LevelError, "Could not save changes to "+s.name, err)
		}
	})
	return nil
}

// Delete removes the item remotely, then locally. On failure local state
// is left as it was.
func (s *Store[T, D]) Delete(ctx context.Context, id string) error {
	ack, err := s.remote.Remove(ctx, id)
	if err != nil {
		s.fail(LevelError, "Could not delete from "+s.name, err)
		return err
	}

	if ack.Full {
		s.replace(ack.Snapshot)
		return nil
	}

	s.mu.Lock()
	s.items = removeID(s.items, id)
	snapshot, listeners := clone(s.items), s.listeners
	s.mu.Unlock()

	emit(listeners, snapshot)
	return nil
}

// DeleteWhere deletes every item matching pred, one remote call each.
// Failures are collected; items whose removal succeeded stay removed.
func (s *Store[T, D]) DeleteWhere(ctx context.Context, pred func(T) bool) error {
	var ids []string
	for _, it := range s.Items() {
		if pred(it) {
			ids = append(ids, it.ItemID())
		}
	}

	var errs []error
	for _, id := range ids {
		if err := s.Delete(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Reorder arranges the collection in the order of ids, which must be a
// permutation of the current ids. The new order is applied immediately and
// persisted in the background when the remote supports it.
func (s *Store[T, D]) Reorder(ctx context.Context, ids []string) error {
	s.mu.Lock()
	reordered, ok := permute(s.items, ids)
	if !ok {
		s.mu.Unlock()
		err := fmt.Errorf("%s: %w", s.name, ErrInvalidOrder)
		s.fail(LevelWarn, "Invalid order for "+s.name, err)
		return err
	}
	s.items = reordered
	snapshot, listeners := clone(s.items), s.listeners
	s.mu.Unlock()

	emit(listeners, snapshot)

	if persister, ok := s.remote.(OrderPersister[T]); ok {
		s.background(func() {
			if err := persister.PersistOrder(ctx, snapshot); err != nil {
				s.fail(LevelError, "Could not save order of "+s.name, err)
			}
		})
	}
	return nil
}

// background runs fn on a goroutine tracked by Wait
func (s *Store[T, D]) background(fn func()) {
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		fn()
	}()
}

// replace sets the collection wholesale, dropping duplicate ids.
// Later snapshots always win.
func (s *Store[T, D]) replace(items []T) {
	s.mu.Lock()
	s.items = dedupe(items)
	snapshot, listeners := clone(s.items), s.listeners
	s.mu.Unlock()

	emit(listeners, snapshot)
}

// upsert appends item, or replaces the stored item with the same id
func (s *Store[T, D]) upsert(item T) {
	s.mu.Lock()
	if i := indexOf(s.items, item.ItemID()); i >= 0 {
		s.items[i] = item
	} else {
		s.items = append(s.items, item)
	}
	snapshot, listeners := clone(s.items), s.listeners
	s.mu.Unlock()

	emit(listeners, snapshot)
}

// replaceInPlace swaps in item if its id is still present
func (s *Store[T, D]) replaceInPlace(item T) {
	s.mu.Lock()
	i := indexOf(s.items, item.ItemID())
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.items[i] = item
	snapshot, listeners := clone(s.items), s.listeners
	s.mu.Unlock()

	emit(listeners, snapshot)
}

func (s *Store[T, D]) unknown(id string) error {
	err := fmt.Errorf("%s %s: %w", s.name, id, ErrUnknownItem)
	s.fail(LevelWarn, "No such item in "+s.name, err)
	return err
}

func (s *Store[T, D]) fail(level Level, msg string, err error) {
	s.notifier.Notify(Notice{
		Collection: s.name,
		Level:      level,
		Message:    msg,
		Kind:       Classify(err),
		Err:        err,
	})
}

func emit[T any](listeners []func([]T), items []T) {
	for _, fn := range listeners {
		fn(items)
	}
}

func clone[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
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
	out := make([]T, 0, len(items))
	for _, it := range items {
		if it.ItemID() != id {
			out = append(out, it)
		}
	}
	return out
}

// dedupe keeps the first occurrence of each id
func dedupe[T identified](items []T) []T {
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		if _, dup := seen[it.ItemID()]; dup {
			continue
		}
		seen[it.ItemID()] = struct{}{}
		out = append(out, it)
	}
	return out
}

// permute returns items in the order of ids, or false when ids is not a
// permutation of the items' ids
func permute[T identified](items []T, ids []string) ([]T, bool) {
	if len(ids) != len(items) {
		return nil, false
	}
	byID := make(map[string]T, len(items))
	for _, it := range items {
		byID[it.ItemID()] = it
	}
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		it, ok := byID[id]
		if !ok {
			return nil, false
		}
		delete(byID, id)
		out = append(out, it)
	}
	return out, true
}
