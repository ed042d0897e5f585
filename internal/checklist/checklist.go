// Package checklist owns the authoritative item collection for the active
// session: check state, amounts, category assignment, grouping, and
// persistence.
package checklist

import (
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/vbonduro/checklister/internal/domain"
	"github.com/vbonduro/checklister/internal/taxonomy"
)

var (
	ErrNotFound      = errors.New("item not found")
	ErrInvalidAmount = errors.New("amount must be a positive number")
)

// PersistenceAdapter is the storage slot for the serialized collection. Load
// and Save failures are recoverable: the in-memory state stays authoritative
// for the session.
type PersistenceAdapter interface {
	Load() ([]domain.ChecklistItem, error)
	Save(items []domain.ChecklistItem) error
}

// Store holds the current checklist. Every mutating operation persists the
// whole collection; persistence failures are logged and otherwise ignored.
type Store struct {
	mu      sync.Mutex
	items   []domain.ChecklistItem
	persist PersistenceAdapter
	tax     *taxonomy.Taxonomy
	logger  *slog.Logger

	// allChecked tracks whether the list is currently in the fully-checked
	// state, so the completion signal fires exactly on the transition in.
	allChecked bool
}

// NewStore loads any previously persisted collection. A missing, corrupt, or
// unreadable slot starts an empty session, never an error.
func NewStore(persist PersistenceAdapter, tax *taxonomy.Taxonomy, logger *slog.Logger) *Store {
	s := &Store{persist: persist, tax: tax, logger: logger}
	items, err := persist.Load()
	if err != nil {
		logger.Warn("failed to load persisted checklist, starting empty", "error", err)
		return s
	}
	s.items = items
	s.allChecked = allChecked(items)
	return s
}

// ToggleResult reports what a toggle did. PendingAmount means the item was
// unchecked and the caller should collect an amount before confirming.
type ToggleResult struct {
	PendingAmount bool
	Item          domain.ChecklistItem
}

// ReplaceAll installs a fresh collection, discarding the previous one. Used
// after each successful categorization.
func (s *Store) ReplaceAll(items []domain.ChecklistItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	s.allChecked = allChecked(items)
	s.save()
}

// ToggleCheck flips the given item. Unchecked items are not mutated; the
// caller gets PendingAmount=true and completes the check via ConfirmAmount.
// Checked items are unchecked immediately and their amount cleared.
func (s *Store) ToggleCheck(id string) (*ToggleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.find(id)
	if item == nil {
		return nil, ErrNotFound
	}
	if !item.Checked {
		return &ToggleResult{PendingAmount: true, Item: *item}, nil
	}

	item.Checked = false
	item.Amount = nil
	s.allChecked = false
	s.save()
	return &ToggleResult{Item: *item}, nil
}

// ConfirmAmount marks the item checked with the supplied amount. The amount
// must be positive; otherwise the item is left untouched. The returned bool
// is true exactly when this call transitions the list into the all-checked
// state (and the list has more than one item).
func (s *Store) ConfirmAmount(id string, amount float64) (bool, error) {
	if amount <= 0 || amount != amount { // rejects non-positive and NaN
		return false, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.find(id)
	if item == nil {
		return false, ErrNotFound
	}

	item.Checked = true
	item.Amount = &amount

	completed := false
	if !s.allChecked && allChecked(s.items) {
		s.allChecked = true
		completed = len(s.items) > 1
	}
	s.save()
	return completed, nil
}

// MoveToCategory reassigns one item's category. Checked state and amount are
// untouched. The category may be any user-supplied name, not just a taxonomy
// one.
func (s *Store) MoveToCategory(id, category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.find(id)
	if item == nil {
		return ErrNotFound
	}
	item.Category = category
	s.save()
	return nil
}

// MoveMany is the batch form used by the unrecognized-items resolution flow.
// Unknown ids are skipped; the number of moved items is returned.
func (s *Store) MoveMany(ids []string, category string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	moved := 0
	for _, id := range ids {
		if item := s.find(id); item != nil {
			item.Category = category
			moved++
		}
	}
	if moved > 0 {
		s.save()
	}
	return moved
}

// DeleteMany removes the given items entirely, returning how many existed.
func (s *Store) DeleteMany(ids []string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	kept := s.items[:0]
	deleted := 0
	for _, item := range s.items {
		if drop[item.ID] {
			deleted++
			continue
		}
		kept = append(kept, item)
	}
	if deleted > 0 {
		s.items = kept
		s.allChecked = allChecked(s.items)
		s.save()
	}
	return deleted
}

// Reset destroys the current list, starting a new session.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.allChecked = false
	s.save()
}

// Items returns a copy of the current collection in insertion order.
func (s *Store) Items() []domain.ChecklistItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ChecklistItem, len(s.items))
	copy(out, s.items)
	return out
}

// GroupedView groups items by category. Taxonomy categories come first in
// declared order; anything else (user-created categories included) follows in
// case-insensitive alphabetical order. Within a group, insertion order holds.
func (s *Store) GroupedView() []domain.CategoryGroup {
	s.mu.Lock()
	defer s.mu.Unlock()

	byCategory := make(map[string][]domain.ChecklistItem)
	var categories []string
	for _, item := range s.items {
		if _, seen := byCategory[item.Category]; !seen {
			categories = append(categories, item.Category)
		}
		byCategory[item.Category] = append(byCategory[item.Category], item)
	}

	sort.SliceStable(categories, func(i, j int) bool {
		oi, iKnown := s.tax.Order(categories[i])
		oj, jKnown := s.tax.Order(categories[j])
		switch {
		case iKnown && jKnown:
			return oi < oj
		case iKnown:
			return true
		case jKnown:
			return false
		default:
			return strings.ToLower(categories[i]) < strings.ToLower(categories[j])
		}
	})

	groups := make([]domain.CategoryGroup, 0, len(categories))
	for _, c := range categories {
		groups = append(groups, domain.CategoryGroup{Category: c, Items: byCategory[c]})
	}
	return groups
}

// Progress reports checked/total counts and the running total of amounts on
// checked items.
func (s *Store) Progress() domain.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := domain.Progress{Total: len(s.items)}
	for _, item := range s.items {
		if !item.Checked {
			continue
		}
		p.Checked++
		if item.Amount != nil {
			p.TotalAmount += *item.Amount
		}
	}
	return p
}

func (s *Store) find(id string) *domain.ChecklistItem {
	for i := range s.items {
		if s.items[i].ID == id {
			return &s.items[i]
		}
	}
	return nil
}

// save persists the full collection. Callers hold the lock.
func (s *Store) save() {
	if err := s.persist.Save(s.items); err != nil {
		s.logger.Warn("failed to persist checklist", "error", err, "items", len(s.items))
	}
}

func allChecked(items []domain.ChecklistItem) bool {
	if len(items) == 0 {
		return false
	}
	for _, item := range items {
		if !item.Checked {
			return false
		}
	}
	return true
}
