package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/checklister/internal/db"
	"github.com/vbonduro/checklister/internal/domain"
)

func openTestStore(t *testing.T) *ItemStore {
	t.Helper()
	database, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, database.Close()) })
	return NewItemStore(database)
}

func TestItemStoreRoundTrip(t *testing.T) {
	s := openTestStore(t)

	amount := 12.5
	items := []domain.ChecklistItem{
		{ID: "a", Name: "2 l milk", Category: "Dairy", Quantity: 2, Unit: "l", Notes: "milk", Checked: true, Amount: &amount},
		{ID: "b", Name: "bread", Category: "Bakery", Quantity: 1},
	}
	require.NoError(t, s.Save(items))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, items, loaded)
}

func TestItemStorePreservesOrder(t *testing.T) {
	s := openTestStore(t)

	items := []domain.ChecklistItem{
		{ID: "z", Name: "zucchini", Category: "Produce"},
		{ID: "a", Name: "apples", Category: "Produce"},
		{ID: "m", Name: "milk", Category: "Dairy"},
	}
	require.NoError(t, s.Save(items))

	loaded, err := s.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	assert.Equal(t, "zucchini", loaded[0].Name)
	assert.Equal(t, "apples", loaded[1].Name)
	assert.Equal(t, "milk", loaded[2].Name)
}

func TestItemStoreSaveReplaces(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Save([]domain.ChecklistItem{
		{ID: "a", Name: "milk", Category: "Dairy"},
		{ID: "b", Name: "bread", Category: "Bakery"},
	}))
	require.NoError(t, s.Save([]domain.ChecklistItem{
		{ID: "c", Name: "eggs", Category: "Dairy"},
	}))

	loaded, err := s.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "eggs", loaded[0].Name)
}

func TestItemStoreEmptyLoad(t *testing.T) {
	s := openTestStore(t)

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestItemStoreSaveEmptyClears(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Save([]domain.ChecklistItem{{ID: "a", Name: "milk", Category: "Dairy"}}))
	require.NoError(t, s.Save(nil))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
