package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapKV struct {
	values map[string]string
}

func newMapKV() *mapKV {
	return &mapKV{values: make(map[string]string)}
}

func (m *mapKV) Get(ctx context.Context, key string) (string, error) {
	return m.values[key], nil
}

func (m *mapKV) Set(ctx context.Context, key, value string) error {
	m.values[key] = value
	return nil
}

func TestFilterStateRoundTrip(t *testing.T) {
	store := NewFilterStateStore(newMapKV())
	ctx := context.Background()

	saved := Filters{CategoryID: "cat-1", ColorSearch: "red", SortMode: SortOldest}
	require.NoError(t, store.Save(ctx, "user-1", saved))

	loaded := store.Load(ctx, "user-1")
	assert.Equal(t, saved, loaded)
}

func TestFilterStateMissingReturnsDefaults(t *testing.T) {
	store := NewFilterStateStore(newMapKV())

	loaded := store.Load(context.Background(), "user-1")
	assert.Equal(t, DefaultFilters(), loaded)
}

func TestFilterStateMalformedReturnsDefaults(t *testing.T) {
	kv := newMapKV()
	kv.values[filterStateKeyPrefix+"user-1"] = "{not json"
	store := NewFilterStateStore(kv)

	loaded := store.Load(context.Background(), "user-1")
	assert.Equal(t, DefaultFilters(), loaded)
}

func TestFilterStateEmptySortModeDefaultsToRecent(t *testing.T) {
	kv := newMapKV()
	kv.values[filterStateKeyPrefix+"user-1"] = `{"categoryId":"cat-1"}`
	store := NewFilterStateStore(kv)

	loaded := store.Load(context.Background(), "user-1")
	assert.Equal(t, "cat-1", loaded.CategoryID)
	assert.Equal(t, SortRecent, loaded.SortMode)
}

func TestFilterStateWithoutBackendIsInert(t *testing.T) {
	store := NewFilterStateStore(nil)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "user-1", Filters{CategoryID: "cat-1"}))
	assert.Equal(t, DefaultFilters(), store.Load(ctx, "user-1"))
}

func TestFilterStateIsScopedPerUser(t *testing.T) {
	store := NewFilterStateStore(newMapKV())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "user-1", Filters{CategoryID: "cat-1", SortMode: SortRecent}))

	assert.Equal(t, DefaultFilters(), store.Load(ctx, "user-2"))
	assert.Equal(t, "cat-1", store.Load(ctx, "user-1").CategoryID)
}
