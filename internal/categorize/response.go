package categorize

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/vbonduro/checklister/internal/domain"
	"github.com/vbonduro/checklister/internal/parse"
)

// The categorization service has shipped three incompatible response schemas
// over its lifetime. ParseResponse probes them in priority order (newest
// first) and converts whichever matches into a flat item list. A payload
// matching none of them yields an empty result, never an error; the caller
// surfaces that as a "nothing found" state.

// statusResponse is the explicit no-result signal, checked before any shape
// probing.
type statusResponse struct {
	Status string `json:"status"`
	Notice string `json:"notice"`
}

// ParseResponse normalizes a raw service response. Items without a usable
// category (including the oldest schema's uncategorized bucket) are assigned
// sentinel. The result is deduplicated on (category, lowercased name).
func ParseResponse(raw []byte, sentinel string) *Result {
	var status statusResponse
	if err := json.Unmarshal(raw, &status); err == nil && status.Status == "no_recipe_found" {
		notice := status.Notice
		if notice == "" {
			notice = "No recipe items found in the provided content"
		}
		return &Result{Notice: notice}
	}

	for _, probe := range []func([]byte, string) ([]domain.ChecklistItem, bool){
		parseCategoriesShape,
		parseFlatItemsShape,
		parseAisleMapShape,
	} {
		if items, ok := probe(raw, sentinel); ok {
			return &Result{Items: dedupe(items)}
		}
	}
	return &Result{}
}

// parseCategoriesShape handles the newest schema:
//
//	{"categories": [{"name": ..., "items": [{"display_name"|"name": ...}]}]}
func parseCategoriesShape(raw []byte, sentinel string) ([]domain.ChecklistItem, bool) {
	var payload struct {
		Categories []struct {
			Name  string `json:"name"`
			Items []struct {
				DisplayName string  `json:"display_name"`
				Name        string  `json:"name"`
				Qty         float64 `json:"qty"`
				Unit        string  `json:"unit"`
				Notes       string  `json:"notes"`
			} `json:"items"`
		} `json:"categories"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Categories == nil {
		return nil, false
	}

	var out []domain.ChecklistItem
	for _, cat := range payload.Categories {
		category := cat.Name
		if category == "" {
			category = sentinel
		}
		for _, it := range cat.Items {
			name := it.DisplayName
			if name == "" {
				name = it.Name
			}
			if name == "" {
				continue
			}
			out = append(out, domain.ChecklistItem{
				ID:       uuid.NewString(),
				Name:     name,
				Category: category,
				Quantity: qtyOrDefault(it.Qty),
				Unit:     it.Unit,
				Notes:    it.Notes,
			})
		}
	}
	return out, true
}

// parseFlatItemsShape handles the legacy flat schema:
//
//	{"items": [{"input"|"display_name"|"name": ..., "category"|"aisle": ...}]}
func parseFlatItemsShape(raw []byte, sentinel string) ([]domain.ChecklistItem, bool) {
	var payload struct {
		Items []struct {
			Input       string  `json:"input"`
			DisplayName string  `json:"display_name"`
			Name        string  `json:"name"`
			Category    string  `json:"category"`
			Aisle       string  `json:"aisle"`
			Qty         float64 `json:"qty"`
			Unit        string  `json:"unit"`
			Notes       string  `json:"notes"`
		} `json:"items"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Items == nil {
		return nil, false
	}

	var out []domain.ChecklistItem
	for _, it := range payload.Items {
		name := it.Input
		if name == "" {
			name = it.DisplayName
		}
		if name == "" {
			name = it.Name
		}
		if name == "" {
			continue
		}
		category := it.Category
		if category == "" {
			category = it.Aisle
		}
		if category == "" {
			category = sentinel
		}
		out = append(out, domain.ChecklistItem{
			ID:       uuid.NewString(),
			Name:     name,
			Category: category,
			Quantity: qtyOrDefault(it.Qty),
			Unit:     it.Unit,
			Notes:    it.Notes,
		})
	}
	return out, true
}

// parseAisleMapShape handles the oldest map schema:
//
//	{"aisles": {"Produce": ["..."]}, "uncategorized": ["..."]}
//
// Aisle iteration order is made deterministic by sorting the map keys; the
// uncategorized bucket lands in the sentinel category.
func parseAisleMapShape(raw []byte, sentinel string) ([]domain.ChecklistItem, bool) {
	var payload struct {
		Aisles        map[string][]string `json:"aisles"`
		Uncategorized []string            `json:"uncategorized"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Aisles == nil {
		return nil, false
	}

	aisles := make([]string, 0, len(payload.Aisles))
	for aisle := range payload.Aisles {
		aisles = append(aisles, aisle)
	}
	sort.Strings(aisles)

	var out []domain.ChecklistItem
	for _, aisle := range aisles {
		for _, name := range payload.Aisles[aisle] {
			if strings.TrimSpace(name) == "" {
				continue
			}
			out = append(out, mapShapeItem(name, aisle))
		}
	}
	for _, name := range payload.Uncategorized {
		if strings.TrimSpace(name) == "" {
			continue
		}
		out = append(out, mapShapeItem(name, sentinel))
	}
	return out, true
}

// mapShapeItem builds an item from the oldest schema, which carried bare
// strings: quantity metadata is extracted locally instead.
func mapShapeItem(name, category string) domain.ChecklistItem {
	qty := parse.ParseQty(name)
	return domain.ChecklistItem{
		ID:       uuid.NewString(),
		Name:     name,
		Category: category,
		Quantity: qty.Quantity,
		Unit:     qty.Unit,
		Notes:    qty.Notes,
	}
}

// qtyOrDefault applies the extractor's default of 1 to absent or nonsensical
// quantities in service responses.
func qtyOrDefault(q float64) float64 {
	if q <= 0 {
		return 1
	}
	return q
}
