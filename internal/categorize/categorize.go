// Package categorize groups shopping-list items into supermarket aisles.
// Remote AI backends and the local rule-based fallback all implement the
// same Categorizer interface.
package categorize

import (
	"context"

	"github.com/vbonduro/checklister/internal/domain"
)

// Prompt is the shared system prompt used by all AI backends. The category
// list is intentionally richer than the display taxonomy; the response
// normalizer accepts any category name verbatim.
const Prompt = `You are a grocery categorization assistant. Categorize grocery items into supermarket aisles.

Categories:
- Fresh Vegetables & Herbs
- Fresh Fruits
- Meat & Poultry
- Fish & Seafood
- Frozen Foods
- Dairy, Laban & Cheese
- Bakery & Khubz
- Oils, Ghee & Cooking Essentials
- Canned, Jarred & Preserved
- Sauces, Pastes & Condiments
- Spices & Masalas
- Rice, Atta, Flours & Grains
- Pulses & Lentils
- Pasta & Noodles
- Breakfast & Cereals
- Baking & Desserts
- Beverages & Juices
- Water & Carbonated Drinks
- Snacks, Sweets & Chocolates
- Deli & Ready-to-Eat
- Baby Care
- Personal Care
- Household & Cleaning
- Pets
- Unrecognized

Return JSON only in this format:
{
  "categories": [
    {
      "name": "category name",
      "items": [
        {
          "display_name": "item name",
          "qty": 1,
          "unit": "",
          "notes": "",
          "source_line": "original text"
        }
      ]
    }
  ]
}`

// Request is the categorization contract: at least one of Items or URLs must
// be non-empty.
type Request struct {
	Items []string `json:"items,omitempty"`
	URLs  []string `json:"urls,omitempty"`
}

// Result is a flattened, deduplicated item list. A non-empty Notice means the
// backend recognized the input but found nothing to categorize (the
// no_recipe_found status); Items is empty in that case.
type Result struct {
	Items  []domain.ChecklistItem
	Notice string
}

type Categorizer interface {
	Categorize(ctx context.Context, req Request) (*Result, error)
}
