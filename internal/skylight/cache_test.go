package skylight

import (
	"bytes"
	"context"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantry-sync-backend/internal/apperr"
	"pantry-sync-backend/internal/model"
)

type fakeFetcher struct {
	lists  []model.ShoppingList
	detail model.ListDetail
	calls  int
}

func (f *fakeFetcher) FetchLists(ctx context.Context, creds model.Credentials) ([]model.ShoppingList, error) {
	return f.lists, nil
}

func (f *fakeFetcher) FetchListDetail(ctx context.Context, creds model.Credentials, listID string) (model.ListDetail, error) {
	f.calls++
	return cloneDetail(f.detail), nil
}

func intPtr(i int) *int { return &i }

func groceries() model.ListDetail {
	return model.ListDetail{
		List: model.ShoppingList{Type: "list", ID: "L1", Attributes: model.ListAttributes{Label: "Groceries"}},
		Items: []model.ListItem{
			{Type: "list_item", ID: "1", Attributes: model.ListItemAttributes{Label: "Milk", Status: model.StatusPending, Position: intPtr(0)}},
			{Type: "list_item", ID: "2", Attributes: model.ListItemAttributes{Label: "Eggs", Status: model.StatusCompleted, Position: intPtr(1)}},
		},
	}
}

func TestListCache_AppendLocal(t *testing.T) {
	lc := NewListCache(&fakeFetcher{detail: groceries()}, time.Minute)
	_, err := lc.Refresh(context.Background(), testCreds, "L1")
	require.NoError(t, err)

	section := "Dairy"
	item, err := lc.AppendLocal("L1", "Yogurt", &section)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(item.ID, model.TempIDPrefix))
	assert.True(t, item.IsUnsynced())
	assert.Equal(t, model.StatusPending, item.Attributes.Status)
	assert.Equal(t, 2, *item.Attributes.Position)
	assert.Equal(t, "Dairy", *item.Attributes.Section)

	detail, ok := lc.Get("L1")
	require.True(t, ok)
	require.Len(t, detail.Items, 3)
	assert.Equal(t, "Yogurt", detail.Items[2].Attributes.Label)
}

func TestListCache_AppendLocal_Errors(t *testing.T) {
	lc := NewListCache(&fakeFetcher{detail: groceries()}, time.Minute)

	_, err := lc.AppendLocal("L1", "Yogurt", nil)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = lc.AppendLocal("L1", "", nil)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestListCache_ToggleStatus(t *testing.T) {
	lc := NewListCache(&fakeFetcher{detail: groceries()}, time.Minute)
	_, err := lc.Refresh(context.Background(), testCreds, "L1")
	require.NoError(t, err)

	item, err := lc.ToggleStatus("L1", "1")
	require.NoError(t, err)
	assert.True(t, item.IsCompleted())

	item, err = lc.ToggleStatus("L1", "1")
	require.NoError(t, err)
	assert.False(t, item.IsCompleted())

	_, err = lc.ToggleStatus("L1", "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestListCache_RefreshDiscardsLocalEdits(t *testing.T) {
	fetcher := &fakeFetcher{detail: groceries()}
	lc := NewListCache(fetcher, time.Minute)
	ctx := context.Background()

	_, err := lc.Refresh(ctx, testCreds, "L1")
	require.NoError(t, err)
	_, err = lc.AppendLocal("L1", "Yogurt", nil)
	require.NoError(t, err)
	_, err = lc.AppendLocal("L1", "Butter", nil)
	require.NoError(t, err)

	var logs bytes.Buffer
	log.SetOutput(&logs)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	detail, err := lc.Refresh(ctx, testCreds, "L1")
	require.NoError(t, err)
	assert.Len(t, detail.Items, 2)
	assert.Equal(t, 2, fetcher.calls)
	assert.Contains(t, logs.String(), "list L1 discards 2 unsynced local items")

	logs.Reset()
	_, err = lc.Refresh(ctx, testCreds, "L1")
	require.NoError(t, err)
	assert.Empty(t, logs.String())
}

func TestCountUnsynced(t *testing.T) {
	items := []model.ListItem{{ID: "1"}, {ID: model.TempIDPrefix + "a"}, {ID: model.TempIDPrefix + "b"}}
	assert.Equal(t, 2, countUnsynced(items))
	assert.Zero(t, countUnsynced(nil))
}

func TestListCache_GetReturnsCopy(t *testing.T) {
	lc := NewListCache(&fakeFetcher{detail: groceries()}, time.Minute)
	_, err := lc.Refresh(context.Background(), testCreds, "L1")
	require.NoError(t, err)

	detail, _ := lc.Get("L1")
	detail.Items[0].Attributes.Label = "changed"

	again, _ := lc.Get("L1")
	assert.Equal(t, "Milk", again.Items[0].Attributes.Label)
}

func TestListCache_Active(t *testing.T) {
	yes := true
	fetcher := &fakeFetcher{
		lists: []model.ShoppingList{
			{ID: "todo", Attributes: model.ListAttributes{Label: "Chores"}},
			{ID: "L1", Attributes: model.ListAttributes{Label: "Groceries", DefaultGroceryList: &yes}},
		},
		detail: groceries(),
	}
	lc := NewListCache(fetcher, time.Minute)

	_, ok := lc.Active()
	assert.False(t, ok)

	_, err := lc.Lists(context.Background(), testCreds)
	require.NoError(t, err)
	active, ok := lc.Active()
	assert.True(t, ok)
	assert.Equal(t, "L1", active)

	_, err = lc.Refresh(context.Background(), testCreds, "todo")
	require.NoError(t, err)
	active, _ = lc.Active()
	assert.Equal(t, "todo", active)
}
