// Package store mirrors the checklist into sqlite. The table is a plain CRUD
// mirror of the in-memory collection: every save rewrites all rows, matching
// the serialize-and-store discipline of the single-slot persistence contract.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/vbonduro/checklister/internal/domain"
)

// ItemStore implements checklist.PersistenceAdapter over sqlite.
type ItemStore struct {
	db *sql.DB
}

func NewItemStore(db *sql.DB) *ItemStore {
	return &ItemStore{db: db}
}

// Load reads the persisted collection in its original insertion order.
func (s *ItemStore) Load() ([]domain.ChecklistItem, error) {
	rows, err := s.db.Query(`
		SELECT id, name, category, quantity, unit, notes, checked, amount
		FROM checklist_items
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load items: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	var items []domain.ChecklistItem
	for rows.Next() {
		var item domain.ChecklistItem
		var amount sql.NullFloat64
		if err := rows.Scan(&item.ID, &item.Name, &item.Category, &item.Quantity, &item.Unit, &item.Notes, &item.Checked, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		if amount.Valid {
			item.Amount = &amount.Float64
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}

	return items, nil
}

// Save replaces all rows with the given collection in one transaction. Last
// write wins; there is no merging.
func (s *ItemStore) Save(items []domain.ChecklistItem) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			slog.Error("failed to roll back save", "error", err)
		}
	}()

	if _, err := tx.Exec(`DELETE FROM checklist_items`); err != nil {
		return fmt.Errorf("failed to clear items: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO checklist_items (id, name, category, quantity, unit, notes, checked, amount, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			slog.Error("failed to close statement", "error", err)
		}
	}()

	for pos, item := range items {
		var amount any
		if item.Amount != nil {
			amount = *item.Amount
		}
		if _, err := stmt.Exec(item.ID, item.Name, item.Category, item.Quantity, item.Unit, item.Notes, item.Checked, amount, pos); err != nil {
			return fmt.Errorf("failed to insert item %q: %w", item.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit save: %w", err)
	}
	return nil
}
