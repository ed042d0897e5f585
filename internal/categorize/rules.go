package categorize

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/vbonduro/checklister/internal/domain"
	"github.com/vbonduro/checklister/internal/parse"
	"github.com/vbonduro/checklister/internal/taxonomy"
)

// RuleCategorizer is the local fallback used when no AI backend is configured
// or the remote call fails. It assigns each item the first taxonomy rule
// whose keyword matches, and the sentinel category otherwise. The item's
// display name is never altered; keywords (including regional synonyms like
// "lauki" or "khubz") affect only the assigned category.
type RuleCategorizer struct {
	tax *taxonomy.Taxonomy
}

func NewRuleCategorizer(tax *taxonomy.Taxonomy) *RuleCategorizer {
	return &RuleCategorizer{tax: tax}
}

// Categorize maps each item name to a category and extracts quantity
// metadata. URLs cannot be resolved locally and are ignored. Duplicate
// (lowercased name, category) pairs are collapsed, keeping the first-seen
// casing.
func (c *RuleCategorizer) Categorize(_ context.Context, req Request) (*Result, error) {
	items := make([]domain.ChecklistItem, 0, len(req.Items))
	for _, name := range req.Items {
		if strings.TrimSpace(name) == "" {
			continue
		}
		qty := parse.ParseQty(name)
		items = append(items, domain.ChecklistItem{
			ID:       uuid.NewString(),
			Name:     name,
			Category: c.tax.Categorize(name),
			Quantity: qty.Quantity,
			Unit:     qty.Unit,
			Notes:    qty.Notes,
		})
	}
	return &Result{Items: dedupe(items)}, nil
}

// dedupe collapses items sharing the same (category, lowercased trimmed name)
// pair, keeping the first occurrence.
func dedupe(items []domain.ChecklistItem) []domain.ChecklistItem {
	seen := make(map[string]bool, len(items))
	out := items[:0]
	for _, item := range items {
		key := item.Category + "::" + strings.ToLower(strings.TrimSpace(item.Name))
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}
