package checklist

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/checklister/internal/domain"
	"github.com/vbonduro/checklister/internal/taxonomy"
)

func TestFileAdapterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	adapter := NewFileAdapter(path)

	amount := 4.2
	items := []domain.ChecklistItem{
		{ID: "1", Name: "milk", Category: "Dairy", Checked: true, Amount: &amount},
		{ID: "2", Name: "bread", Category: "Bakery"},
	}
	require.NoError(t, adapter.Save(items))

	loaded, err := adapter.Load()
	require.NoError(t, err)
	assert.Equal(t, items, loaded)
}

func TestFileAdapterMissingFile(t *testing.T) {
	adapter := NewFileAdapter(filepath.Join(t.TempDir(), "absent.json"))

	loaded, err := adapter.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestFileAdapterCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	// The adapter reports the error...
	_, err := NewFileAdapter(path).Load()
	assert.Error(t, err)

	// ...and the store treats it as an empty session.
	s := NewStore(NewFileAdapter(path), taxonomy.Default(), slog.Default())
	assert.Empty(t, s.Items())
}

func TestStorePersistsAcrossRestarts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	tax := taxonomy.Default()

	first := NewStore(NewFileAdapter(path), tax, slog.Default())
	first.ReplaceAll([]domain.ChecklistItem{
		{ID: "1", Name: "milk", Category: "Dairy"},
	})
	_, err := first.ToggleCheck("1")
	require.NoError(t, err)

	second := NewStore(NewFileAdapter(path), tax, slog.Default())
	items := second.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "milk", items[0].Name)
}

func TestMemoryAdapterCopies(t *testing.T) {
	adapter := NewMemoryAdapter()
	items := []domain.ChecklistItem{{ID: "1", Name: "milk", Category: "Dairy"}}
	require.NoError(t, adapter.Save(items))

	items[0].Name = "mutated"
	loaded, err := adapter.Load()
	require.NoError(t, err)
	assert.Equal(t, "milk", loaded[0].Name)
}
