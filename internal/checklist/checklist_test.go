package checklist

import (
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/checklister/internal/domain"
	"github.com/vbonduro/checklister/internal/taxonomy"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(NewMemoryAdapter(), taxonomy.Default(), slog.Default())
}

func item(name, category string) domain.ChecklistItem {
	return domain.ChecklistItem{ID: uuid.NewString(), Name: name, Category: category}
}

func seed(t *testing.T, s *Store, names ...string) []domain.ChecklistItem {
	t.Helper()
	items := make([]domain.ChecklistItem, 0, len(names))
	for _, n := range names {
		items = append(items, item(n, "Dairy"))
	}
	s.ReplaceAll(items)
	return s.Items()
}

func TestReplaceAllReplacesPriorList(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, "milk", "cheese")
	seed(t, s, "bread")

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "bread", items[0].Name)
}

func TestToggleCheckUncheckedIsPending(t *testing.T) {
	s := newTestStore(t)
	items := seed(t, s, "milk")

	res, err := s.ToggleCheck(items[0].ID)
	require.NoError(t, err)
	assert.True(t, res.PendingAmount)

	// No mutation happened: the item is still unchecked.
	assert.False(t, s.Items()[0].Checked)
}

func TestConfirmAmountChecksItem(t *testing.T) {
	s := newTestStore(t)
	items := seed(t, s, "milk", "cheese")

	_, err := s.ConfirmAmount(items[0].ID, 12.50)
	require.NoError(t, err)

	got := s.Items()[0]
	assert.True(t, got.Checked)
	require.NotNil(t, got.Amount)
	assert.Equal(t, 12.50, *got.Amount)
}

func TestConfirmAmountRejectsInvalid(t *testing.T) {
	s := newTestStore(t)
	items := seed(t, s, "milk")

	for _, amount := range []float64{0, -1} {
		_, err := s.ConfirmAmount(items[0].ID, amount)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}
	// State untouched after rejections.
	assert.False(t, s.Items()[0].Checked)
}

func TestUncheckClearsAmount(t *testing.T) {
	s := newTestStore(t)
	items := seed(t, s, "milk", "cheese")

	_, err := s.ConfirmAmount(items[0].ID, 5)
	require.NoError(t, err)

	res, err := s.ToggleCheck(items[0].ID)
	require.NoError(t, err)
	assert.False(t, res.PendingAmount)

	got := s.Items()[0]
	assert.False(t, got.Checked)
	assert.Nil(t, got.Amount)
}

func TestCompletionFiresOnceOnTransition(t *testing.T) {
	s := newTestStore(t)
	items := seed(t, s, "milk", "bread", "eggs")

	completed, err := s.ConfirmAmount(items[0].ID, 1)
	require.NoError(t, err)
	assert.False(t, completed)

	completed, err = s.ConfirmAmount(items[1].ID, 2)
	require.NoError(t, err)
	assert.False(t, completed)

	// Checking the final item crosses the boundary.
	completed, err = s.ConfirmAmount(items[2].ID, 3)
	require.NoError(t, err)
	assert.True(t, completed)

	// Re-confirming while already all-checked must not refire.
	completed, err = s.ConfirmAmount(items[2].ID, 4)
	require.NoError(t, err)
	assert.False(t, completed)
}

func TestCompletionRefiresAfterLeavingAllChecked(t *testing.T) {
	s := newTestStore(t)
	items := seed(t, s, "milk", "bread")

	_, err := s.ConfirmAmount(items[0].ID, 1)
	require.NoError(t, err)
	completed, err := s.ConfirmAmount(items[1].ID, 2)
	require.NoError(t, err)
	assert.True(t, completed)

	// Leave and re-enter the all-checked state.
	_, err = s.ToggleCheck(items[1].ID)
	require.NoError(t, err)
	completed, err = s.ConfirmAmount(items[1].ID, 2)
	require.NoError(t, err)
	assert.True(t, completed)
}

func TestCompletionNotFiredForSingleItem(t *testing.T) {
	s := newTestStore(t)
	items := seed(t, s, "milk")

	completed, err := s.ConfirmAmount(items[0].ID, 1)
	require.NoError(t, err)
	assert.False(t, completed)
}

func TestMoveToCategory(t *testing.T) {
	s := newTestStore(t)
	items := seed(t, s, "milk")

	_, err := s.ConfirmAmount(items[0].ID, 3)
	require.NoError(t, err)

	require.NoError(t, s.MoveToCategory(items[0].ID, "My Corner Shop"))

	got := s.Items()[0]
	assert.Equal(t, "My Corner Shop", got.Category)
	// Checked state and amount survive the move.
	assert.True(t, got.Checked)
	require.NotNil(t, got.Amount)
	assert.Equal(t, 3.0, *got.Amount)
}

func TestMoveMany(t *testing.T) {
	s := newTestStore(t)
	items := seed(t, s, "milk", "bread", "eggs")

	moved := s.MoveMany([]string{items[0].ID, items[2].ID, "no-such-id"}, "Bakery")
	assert.Equal(t, 2, moved)

	got := s.Items()
	assert.Equal(t, "Bakery", got[0].Category)
	assert.Equal(t, "Dairy", got[1].Category)
	assert.Equal(t, "Bakery", got[2].Category)
}

func TestDeleteMany(t *testing.T) {
	s := newTestStore(t)
	items := seed(t, s, "milk", "bread", "eggs")

	deleted := s.DeleteMany([]string{items[1].ID, "no-such-id"})
	assert.Equal(t, 1, deleted)

	got := s.Items()
	require.Len(t, got, 2)
	assert.Equal(t, "milk", got[0].Name)
	assert.Equal(t, "eggs", got[1].Name)
}

func TestToggleUnknownID(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, "milk")

	_, err := s.ToggleCheck("no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGroupedViewOrdering(t *testing.T) {
	s := newTestStore(t)
	s.ReplaceAll([]domain.ChecklistItem{
		item("custom thing", "ZZZ-Custom"),
		item("cake", "Bakery"),
		item("milk", "Dairy"),
		item("another", "aaa custom"),
	})

	groups := s.GroupedView()
	require.Len(t, groups, 4)
	// Taxonomy categories first in declared order, then unknown categories
	// case-insensitively alphabetical.
	assert.Equal(t, "Dairy", groups[0].Category)
	assert.Equal(t, "Bakery", groups[1].Category)
	assert.Equal(t, "aaa custom", groups[2].Category)
	assert.Equal(t, "ZZZ-Custom", groups[3].Category)
}

func TestProgress(t *testing.T) {
	s := newTestStore(t)
	items := seed(t, s, "milk", "bread", "eggs")

	_, err := s.ConfirmAmount(items[0].ID, 10)
	require.NoError(t, err)
	_, err = s.ConfirmAmount(items[1].ID, 2.5)
	require.NoError(t, err)

	p := s.Progress()
	assert.Equal(t, 2, p.Checked)
	assert.Equal(t, 3, p.Total)
	assert.Equal(t, 12.5, p.TotalAmount)
}

func TestReset(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, "milk")

	s.Reset()
	assert.Empty(t, s.Items())
	assert.Equal(t, domain.Progress{}, s.Progress())
}

// failingAdapter simulates an unavailable storage backend.
type failingAdapter struct{}

func (failingAdapter) Load() ([]domain.ChecklistItem, error) {
	return nil, assert.AnError
}

func (failingAdapter) Save(_ []domain.ChecklistItem) error {
	return assert.AnError
}

func TestPersistenceFailuresAreNotFatal(t *testing.T) {
	s := NewStore(failingAdapter{}, taxonomy.Default(), slog.Default())
	assert.Empty(t, s.Items())

	// Mutations still work in memory.
	s.ReplaceAll([]domain.ChecklistItem{item("milk", "Dairy")})
	assert.Len(t, s.Items(), 1)
}
