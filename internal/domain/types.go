package domain

// ChecklistItem is one shopping-list entry. Name is preserved exactly as the
// user typed or scanned it; only Category is ever rewritten. Quantity, Unit
// and Notes are extracted metadata and never affect Name.
type ChecklistItem struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Quantity float64  `json:"quantity"`
	Unit     string   `json:"unit,omitempty"`
	Notes    string   `json:"notes,omitempty"`
	Checked  bool     `json:"checked"`
	Amount   *float64 `json:"amount,omitempty"`
}

// CategoryGroup is a derived (category, items) pairing used for rendering.
type CategoryGroup struct {
	Category string          `json:"category"`
	Items    []ChecklistItem `json:"items"`
}

// Progress summarises the state of the current checklist. TotalAmount sums
// Amount over checked items that have one.
type Progress struct {
	Checked     int     `json:"checked"`
	Total       int     `json:"total"`
	TotalAmount float64 `json:"total_amount"`
}
