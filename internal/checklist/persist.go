package checklist

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/vbonduro/checklister/internal/domain"
)

// MemoryAdapter keeps the collection in memory only. Used in tests and when
// no persistence is configured.
type MemoryAdapter struct {
	items []domain.ChecklistItem
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{}
}

func (a *MemoryAdapter) Load() ([]domain.ChecklistItem, error) {
	return a.items, nil
}

func (a *MemoryAdapter) Save(items []domain.ChecklistItem) error {
	a.items = make([]domain.ChecklistItem, len(items))
	copy(a.items, items)
	return nil
}

// FileAdapter stores the whole collection as JSON in a single file, the
// server-side analog of the browser's localStorage slot. There is no
// versioning: an unreadable or incompatible file is reported as an error and
// the store starts the session empty.
type FileAdapter struct {
	path string
}

func NewFileAdapter(path string) *FileAdapter {
	return &FileAdapter{path: path}
}

func (a *FileAdapter) Load() ([]domain.ChecklistItem, error) {
	data, err := os.ReadFile(a.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var items []domain.ChecklistItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}
	return items, nil
}

func (a *FileAdapter) Save(items []domain.ChecklistItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to serialize checklist: %w", err)
	}
	if err := os.WriteFile(a.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}
