package collection

import (
	"context"
	"fmt"
	"sync"

	"github.com/erauner12/showcase/internal/model"
)

// fakeTaskRemote is an in-memory task remote with error injection.
type fakeTaskRemote struct {
	mu     sync.Mutex
	tasks  []model.Task
	nextID int
	calls  map[string]int
	orders [][]string

	// Error injection
	ListErr    error
	CreateErr  error
	PatchErr   error
	RemoveErr  error
	PersistErr error

	// gate, when set, blocks Patch and PersistOrder until closed
	gate chan struct{}
}

func newFakeTaskRemote(tasks ...model.Task) *fakeTaskRemote {
	return &fakeTaskRemote{tasks: tasks, calls: map[string]int{}}
}

func (f *fakeTaskRemote) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeTaskRemote) record(op string) {
	f.mu.Lock()
	f.calls[op]++
	f.mu.Unlock()
}

func (f *fakeTaskRemote) List(context.Context) ([]model.Task, error) {
	f.record("list")
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Task(nil), f.tasks...), nil
}

func (f *fakeTaskRemote) Create(_ context.Context, d model.TaskDraft) (Ack[model.Task], error) {
	f.record("create")
	if f.CreateErr != nil {
		return Ack[model.Task]{}, f.CreateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	task := model.Task{ID: fmt.Sprintf("srv-%d", f.nextID), Title: d.Title}
	f.tasks = append(f.tasks, task)
	return Ack[model.Task]{Item: &task}, nil
}

func (f *fakeTaskRemote) Patch(_ context.Context, id string, p model.Patch) (Ack[model.Task], error) {
	f.record("patch")
	if f.gate != nil {
		<-f.gate
	}
	if f.PatchErr != nil {
		return Ack[model.Task]{}, f.PatchErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks[i] = t.Patched(p)
			updated := f.tasks[i]
			return Ack[model.Task]{Item: &updated}, nil
		}
	}
	return Ack[model.Task]{}, fmt.Errorf("task %s not found", id)
}

func (f *fakeTaskRemote) Remove(_ context.Context, id string) (Ack[model.Task], error) {
	f.record("remove")
	if f.RemoveErr != nil {
		return Ack[model.Task]{}, f.RemoveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = removeID(f.tasks, id)
	return Ack[model.Task]{}, nil
}

func (f *fakeTaskRemote) PersistOrder(_ context.Context, tasks []model.Task) error {
	f.record("persist_order")
	if f.gate != nil {
		<-f.gate
	}
	if f.PersistErr != nil {
		return f.PersistErr
	}
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	f.mu.Lock()
	f.orders = append(f.orders, ids)
	f.mu.Unlock()
	return nil
}

// fakeCartRemote answers every mutation with the full cart, like the
// storefront API does.
type fakeCartRemote struct {
	mu        sync.Mutex
	cart      []model.CartEntry
	RemoveErr error
	removes   int
}

func (f *fakeCartRemote) snapshot() Ack[model.CartEntry] {
	return Ack[model.CartEntry]{Snapshot: append([]model.CartEntry(nil), f.cart...), Full: true}
}

func (f *fakeCartRemote) List(context.Context) ([]model.CartEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.CartEntry(nil), f.cart...), nil
}

func (f *fakeCartRemote) Create(_ context.Context, p model.Product) (Ack[model.CartEntry], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.cart {
		if f.cart[i].ID == p.ID {
			f.cart[i].Qty++
			return f.snapshot(), nil
		}
	}
	f.cart = append(f.cart, model.CartEntry{Product: p, Qty: 1})
	return f.snapshot(), nil
}

func (f *fakeCartRemote) Patch(_ context.Context, id string, p model.Patch) (Ack[model.CartEntry], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.cart {
		if f.cart[i].ID == id {
			f.cart[i] = f.cart[i].Patched(p)
		}
	}
	return f.snapshot(), nil
}

func (f *fakeCartRemote) Remove(_ context.Context, id string) (Ack[model.CartEntry], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removes++
	if f.RemoveErr != nil {
		return Ack[model.CartEntry]{}, f.RemoveErr
	}
	f.cart = removeID(f.cart, id)
	return f.snapshot(), nil
}

// noticeRecorder collects notices for assertions.
type noticeRecorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *noticeRecorder) Notify(n Notice) {
	r.mu.Lock()
	r.notices = append(r.notices, n)
	r.mu.Unlock()
}

func (r *noticeRecorder) all() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}
