package listpush

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantry-sync-backend/internal/apperr"
	"pantry-sync-backend/internal/db"
	"pantry-sync-backend/internal/model"
	"pantry-sync-backend/internal/pantry"
	"pantry-sync-backend/internal/skylight"
	"pantry-sync-backend/internal/store"
)

type fakeFetcher struct{}

func (fakeFetcher) FetchLists(ctx context.Context, creds model.Credentials) ([]model.ShoppingList, error) {
	return nil, nil
}

func (fakeFetcher) FetchListDetail(ctx context.Context, creds model.Credentials, listID string) (model.ListDetail, error) {
	return model.ListDetail{
		List:  model.ShoppingList{ID: listID, Attributes: model.ListAttributes{Label: "Groceries"}},
		Items: []model.ListItem{},
	}, nil
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) ItemAdded(ctx context.Context, itemName, listLabel string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, itemName+" -> "+listLabel)
}

type fixture struct {
	pool     *WorkerPool
	pantry   *pantry.Reconciler
	lists    *skylight.ListCache
	notifier *recordingNotifier
	results  chan error
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	rec := pantry.NewReconciler(store.NewGormStore(db.NewTestDB(t)))
	require.NoError(t, rec.Add(ctx, model.PantryItem{ID: "p1", Name: "Whole Milk", Quantity: "1", Category: model.CategoryDairy}))

	lists := skylight.NewListCache(fakeFetcher{}, time.Minute)
	_, err := lists.Refresh(ctx, model.Credentials{FrameID: "f", Token: "t", AuthType: model.AuthBearer}, "L1")
	require.NoError(t, err)

	notifier := &recordingNotifier{}
	pool := NewWorkerPool(1, rec, lists, notifier)
	results := make(chan error, 4)
	pool.done = func(job Job, err error) { results <- err }

	runCtx, cancel := context.WithCancel(ctx)
	t.Cleanup(cancel)
	pool.Start(runCtx)

	return &fixture{pool: pool, pantry: rec, lists: lists, notifier: notifier, results: results}
}

func (f *fixture) wait(t *testing.T) error {
	t.Helper()
	select {
	case err := <-f.results:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for job")
		return nil
	}
}

func TestWorkerPool_Dispatch(t *testing.T) {
	pool := NewWorkerPool(1, nil, nil, nil)
	require.NoError(t, pool.Dispatch(context.Background(), Job{ItemID: "a", ListID: "b"}))

	select {
	case job := <-pool.jobs:
		assert.Equal(t, Job{ItemID: "a", ListID: "b"}, job)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for job to be dispatched")
	}
}

func TestWorkerPool_DispatchCancelled(t *testing.T) {
	pool := NewWorkerPool(1, nil, nil, nil)
	require.NoError(t, pool.Dispatch(context.Background(), Job{ItemID: "fills buffer"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, pool.Dispatch(ctx, Job{ItemID: "blocked"}), context.Canceled)
}

func TestWorkerPool_PushesItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.pool.Dispatch(ctx, Job{ItemID: "p1", ListID: "L1"}))
	require.NoError(t, f.wait(t))

	detail, ok := f.lists.Get("L1")
	require.True(t, ok)
	require.Len(t, detail.Items, 1)
	listed := detail.Items[0]
	assert.Equal(t, "Whole Milk", listed.Attributes.Label)
	assert.Equal(t, "Dairy", *listed.Attributes.Section)
	assert.True(t, listed.IsUnsynced())
	assert.Equal(t, model.StatusPending, listed.Attributes.Status)

	item, ok, err := f.pantry.Get(ctx, "p1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, item.IsInList)

	f.notifier.mu.Lock()
	assert.Equal(t, []string{"Whole Milk -> Groceries"}, f.notifier.messages)
	f.notifier.mu.Unlock()
}

func TestWorkerPool_MissingItemIsSkipped(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.pool.Dispatch(context.Background(), Job{ItemID: "gone", ListID: "L1"}))
	require.NoError(t, f.wait(t))

	detail, _ := f.lists.Get("L1")
	assert.Empty(t, detail.Items)
	assert.Empty(t, f.notifier.messages)
}

func TestWorkerPool_UncachedList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.pool.Dispatch(ctx, Job{ItemID: "p1", ListID: "other"}))
	assert.ErrorIs(t, f.wait(t), apperr.ErrNotFound)

	item, _, err := f.pantry.Get(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, item.IsInList)
}
