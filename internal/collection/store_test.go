package collection

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/erauner12/showcase/internal/model"
	"github.com/erauner12/showcase/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func seedTasks() []model.Task {
	return []model.Task{
		{ID: "id1", Title: "Write report"},
		{ID: "id2", Title: "Buy milk", Completed: true},
		{ID: "id3", Title: "Call mom"},
	}
}

func newTaskStore(t *testing.T, remote *fakeTaskRemote) (*Store[model.Task, model.TaskDraft], *noticeRecorder) {
	t.Helper()
	rec := &noticeRecorder{}
	s := NewStore[model.Task, model.TaskDraft]("tasks", remote, WithNotifier(rec))
	require.NoError(t, s.Hydrate(context.Background()))
	return s, rec
}

func ids[T identified](items []T) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ItemID()
	}
	return out
}

func TestHydrate(t *testing.T) {
	s, _ := newTaskStore(t, newFakeTaskRemote(seedTasks()...))
	assert.Equal(t, []string{"id1", "id2", "id3"}, ids(s.Items()))
}

func TestHydrate_FailureEmptiesCollection(t *testing.T) {
	remote := newFakeTaskRemote(seedTasks()...)
	s, rec := newTaskStore(t, remote)

	remote.ListErr = errors.New("connection refused")
	err := s.Hydrate(context.Background())

	require.Error(t, err)
	assert.Empty(t, s.Items())
	notices := rec.all()
	require.Len(t, notices, 1)
	assert.Equal(t, LevelError, notices[0].Level)
}

func TestHydrate_DropsDuplicateIDs(t *testing.T) {
	s, _ := newTaskStore(t, newFakeTaskRemote(
		model.Task{ID: "a", Title: "first"},
		model.Task{ID: "a", Title: "again"},
		model.Task{ID: "b", Title: "other"},
	))
	assert.Equal(t, []string{"a", "b"}, ids(s.Items()))
}

func TestCreate_BlankTitleMakesNoCall(t *testing.T) {
	remote := newFakeTaskRemote()
	s, rec := newTaskStore(t, remote)

	err := s.Create(context.Background(), model.TaskDraft{Title: "   "})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ErrorIs(t, err, model.ErrBlankTitle)
	assert.Equal(t, FailureValidation, Classify(err))
	assert.Equal(t, 0, remote.count("create"))
	assert.Empty(t, s.Items())
	require.Len(t, rec.all(), 1)
}

func TestCreate_AppendsServerItem(t *testing.T) {
	remote := newFakeTaskRemote()
	s, _ := newTaskStore(t, remote)

	require.NoError(t, s.Create(context.Background(), model.TaskDraft{Title: "Buy milk"}))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "srv-1", items[0].ID)
	assert.Equal(t, "Buy milk", items[0].Title)
	assert.Equal(t, 1, remote.count("create"))
}

func TestCreate_FailureAddsNothing(t *testing.T) {
	remote := newFakeTaskRemote()
	remote.CreateErr = errors.New("500")
	s, rec := newTaskStore(t, remote)

	require.Error(t, s.Create(context.Background(), model.TaskDraft{Title: "Buy milk"}))
	assert.Empty(t, s.Items())
	assert.Len(t, rec.all(), 1)
}

func TestUpdate_OptimisticAppliesBeforeRemote(t *testing.T) {
	remote := newFakeTaskRemote(seedTasks()...)
	remote.gate = make(chan struct{})
	s, _ := newTaskStore(t, remote)

	require.NoError(t, s.Update(context.Background(), "id1", model.SetCompleted(true), Optimistic))

	// Local state already reflects the patch while the remote call is blocked
	got, ok := s.Find("id1")
	require.True(t, ok)
	assert.True(t, got.Completed)

	close(remote.gate)
	s.Wait()
	assert.Equal(t, 1, remote.count("patch"))
}

func TestUpdate_OptimisticFailureIsNotRolledBack(t *testing.T) {
	remote := newFakeTaskRemote(seedTasks()...)
	remote.PatchErr = errors.New("503")
	s, rec := newTaskStore(t, remote)

	require.NoError(t, s.Update(context.Background(), "id1", model.SetTitle("Renamed"), Optimistic))
	s.Wait()

	got, _ := s.Find("id1")
	assert.Equal(t, "Renamed", got.Title)
	notices := rec.all()
	require.Len(t, notices, 1)
	assert.Equal(t, LevelError, notices[0].Level)
}

func TestUpdate_ConfirmedWaitsForRemote(t *testing.T) {
	remote := newFakeTaskRemote(seedTasks()...)
	remote.PatchErr = errors.New("503")
	s, _ := newTaskStore(t, remote)

	require.Error(t, s.Update(context.Background(), "id1", model.SetTitle("Renamed"), Confirmed))
	got, _ := s.Find("id1")
	assert.Equal(t, "Write report", got.Title)

	remote.PatchErr = nil
	require.NoError(t, s.Update(context.Background(), "id1", model.SetTitle("Renamed"), Confirmed))
	got, _ = s.Find("id1")
	assert.Equal(t, "Renamed", got.Title)
}

func TestUpdate_UnknownID(t *testing.T) {
	s, _ := newTaskStore(t, newFakeTaskRemote(seedTasks()...))

	for _, policy := range []UpdatePolicy{Optimistic, Confirmed} {
		err := s.Update(context.Background(), "nope", model.SetCompleted(true), policy)
		assert.ErrorIs(t, err, ErrUnknownItem, policy.String())
	}
}

func TestDelete(t *testing.T) {
	remote := newFakeTaskRemote(seedTasks()...)
	s, _ := newTaskStore(t, remote)

	require.NoError(t, s.Delete(context.Background(), "id2"))
	assert.Equal(t, []string{"id1", "id3"}, ids(s.Items()))
}

func TestDelete_FailureLeavesState(t *testing.T) {
	remote := newFakeTaskRemote(seedTasks()...)
	remote.RemoveErr = errors.New("offline")
	s, rec := newTaskStore(t, remote)

	require.Error(t, s.Delete(context.Background(), "id2"))
	assert.Equal(t, []string{"id1", "id2", "id3"}, ids(s.Items()))
	assert.Len(t, rec.all(), 1)
}

func TestDeleteWhere_ClearsCompleted(t *testing.T) {
	remote := newFakeTaskRemote(seedTasks()...)
	s, _ := newTaskStore(t, remote)

	require.NoError(t, s.DeleteWhere(context.Background(), func(task model.Task) bool { return task.Completed }))
	assert.Equal(t, []string{"id1", "id3"}, ids(s.Items()))
	assert.Equal(t, 1, remote.count("remove"))
}

func TestReorder(t *testing.T) {
	remote := newFakeTaskRemote(seedTasks()...)
	s, _ := newTaskStore(t, remote)

	require.NoError(t, s.Reorder(context.Background(), []string{"id3", "id1", "id2"}))
	assert.Equal(t, []string{"id3", "id1", "id2"}, ids(s.Items()))

	s.Wait()
	require.Len(t, remote.orders, 1)
	assert.Equal(t, []string{"id3", "id1", "id2"}, remote.orders[0])
}

func TestReorder_RejectsNonPermutation(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
	}{
		{"foreign id", []string{"id3", "id1", "id9"}},
		{"missing id", []string{"id3", "id1"}},
		{"duplicate id", []string{"id1", "id1", "id2"}},
		{"extra id", []string{"id1", "id2", "id3", "id4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote := newFakeTaskRemote(seedTasks()...)
			s, _ := newTaskStore(t, remote)

			err := s.Reorder(context.Background(), tt.ids)
			assert.ErrorIs(t, err, ErrInvalidOrder)
			assert.Equal(t, []string{"id1", "id2", "id3"}, ids(s.Items()))
			s.Wait()
			assert.Equal(t, 0, remote.count("persist_order"))
		})
	}
}

func TestReorder_PersistFailureKeepsLocalOrder(t *testing.T) {
	remote := newFakeTaskRemote(seedTasks()...)
	remote.PersistErr = errors.New("500")
	s, rec := newTaskStore(t, remote)

	require.NoError(t, s.Reorder(context.Background(), []string{"id2", "id3", "id1"}))
	s.Wait()

	assert.Equal(t, []string{"id2", "id3", "id1"}, ids(s.Items()))
	assert.Len(t, rec.all(), 1)
}

func TestVisible_FilterThenSearch(t *testing.T) {
	s, _ := newTaskStore(t, newFakeTaskRemote(seedTasks()...))

	s.SetFilter(view.TasksPending.Predicate())
	assert.Equal(t, []string{"id1", "id3"}, ids(s.Visible()))

	s.SetQuery("CALL")
	assert.Equal(t, []string{"id3"}, ids(s.Visible()))

	s.SetFilter(nil)
	s.SetQuery("")
	assert.Equal(t, []string{"id1", "id2", "id3"}, ids(s.Visible()))
}

func TestOnChange(t *testing.T) {
	s, _ := newTaskStore(t, newFakeTaskRemote(seedTasks()...))

	var seen [][]string
	s.OnChange(func(items []model.Task) { seen = append(seen, ids(items)) })

	require.NoError(t, s.Delete(context.Background(), "id1"))
	require.NoError(t, s.Reorder(context.Background(), []string{"id3", "id2"}))
	s.Wait()

	assert.Equal(t, [][]string{{"id2", "id3"}, {"id3", "id2"}}, seen)
}

func TestCart_QuantityFloor(t *testing.T) {
	remote := &fakeCartRemote{}
	rec := &noticeRecorder{}
	s := NewStore[model.CartEntry, model.Product]("cart", remote, WithNotifier(rec))
	ctx := context.Background()

	apple := model.Product{ID: "apple", Name: "Apple", Price: 2.5}
	banana := model.Product{ID: "banana", Name: "Banana", Price: 1}

	require.NoError(t, s.Create(ctx, apple))
	require.NoError(t, s.Create(ctx, apple))
	require.NoError(t, s.Create(ctx, banana))
	require.NoError(t, s.Update(ctx, "banana", model.SetQty(3), Confirmed))

	items := s.Items()
	assert.Equal(t, 8.0, model.CartTotal(items))
	assert.Equal(t, 5, model.BadgeCount(items))

	// qty 0 is a delete, for either policy
	require.NoError(t, s.Update(ctx, "apple", model.SetQty(0), Optimistic))
	assert.Equal(t, []string{"banana"}, ids(s.Items()))
	assert.Equal(t, 1, remote.removes)
	s.Wait()
}

func TestCart_FailedRemoveKeepsEntry(t *testing.T) {
	remote := &fakeCartRemote{cart: []model.CartEntry{{Product: model.Product{ID: "apple", Name: "Apple"}, Qty: 1}}}
	s := NewStore[model.CartEntry, model.Product]("cart", remote, WithNotifier(&noticeRecorder{}))
	ctx := context.Background()
	require.NoError(t, s.Hydrate(ctx))

	remote.RemoveErr = errors.New("offline")
	require.Error(t, s.Update(ctx, "apple", model.SetQty(-1), Confirmed))
	assert.Equal(t, []string{"apple"}, ids(s.Items()))
}

func TestConcurrentOperationsKeepIDsUnique(t *testing.T) {
	remote := newFakeTaskRemote()
	s, _ := newTaskStore(t, remote)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.Create(ctx, model.TaskDraft{Title: fmt.Sprintf("task %d", i)})
		}(i)
	}
	wg.Wait()

	for _, task := range s.Items() {
		_ = s.Update(ctx, task.ID, model.SetCompleted(true), Optimistic)
	}
	s.Wait()

	got := ids(s.Items())
	assert.Len(t, got, 20)
	seen := map[string]bool{}
	for _, id := range got {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want FailureKind
	}{
		{nil, ""},
		{&ValidationError{Collection: "tasks", Err: model.ErrBlankTitle}, FailureValidation},
		{fmt.Errorf("x: %w", ErrInvalidOrder), FailureValidation},
		{fmt.Errorf("x: %w", ErrUnknownItem), FailureNotFound},
		{context.DeadlineExceeded, FailureNetwork},
		{kindedErr(FailureRateLimited), FailureRateLimited},
		{errors.New("something else"), FailureServer},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.err), fmt.Sprint(tt.err))
	}
}

type kindedErr FailureKind

func (k kindedErr) Error() string             { return string(k) }
func (k kindedErr) FailureKind() FailureKind { return FailureKind(k) }
