package parse

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Qty is the result of extracting a quantity from an item string. Quantity
// defaults to 1 and Unit to "" when nothing matches; Notes carries whatever
// text is left after the matched quantity/unit substring is removed.
type Qty struct {
	Quantity float64
	Unit     string
	Notes    string
}

// unitSynonyms maps verbose unit words to a short canonical token. Container
// words (bottle, jar, can, ...) all collapse to "pack".
var unitSynonyms = map[string]string{
	"kg": "kg", "kilogram": "kg", "kilograms": "kg", "kilo": "kg", "kilos": "kg",
	"g": "g", "gm": "g", "gms": "g", "gram": "g", "grams": "g",
	"l": "l", "ltr": "l", "litre": "l", "litres": "l", "liter": "l", "liters": "l",
	"ml": "ml", "millilitre": "ml", "millilitres": "ml", "milliliter": "ml", "milliliters": "ml",
	"lb": "lb", "lbs": "lb", "pound": "lb", "pounds": "lb",
	"oz": "oz", "ounce": "oz", "ounces": "oz",
	"tbsp": "tbsp", "tablespoon": "tbsp", "tablespoons": "tbsp",
	"tsp": "tsp", "teaspoon": "tsp", "teaspoons": "tsp",
	"cup": "cup", "cups": "cup",
	"dozen": "dozen",
	"pc": "pc", "pcs": "pc", "piece": "pc", "pieces": "pc",
	"pack": "pack", "packs": "pack", "packet": "pack", "packets": "pack",
	"bottle": "pack", "bottles": "pack", "jar": "pack", "jars": "pack",
	"can": "pack", "cans": "pack", "box": "pack", "boxes": "pack",
	"bag": "pack", "bags": "pack", "tub": "pack", "tubs": "pack",
}

// unitAlternation builds a longest-first regex alternation of all unit words,
// so "kilograms" is tried before "kg" and "g".
func unitAlternation() string {
	words := make([]string, 0, len(unitSynonyms))
	for w := range unitSynonyms {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if len(words[i]) != len(words[j]) {
			return len(words[i]) > len(words[j])
		}
		return words[i] < words[j]
	})
	return strings.Join(words, "|")
}

var (
	fractionQty   = regexp.MustCompile(`(?i)^(\d+ \d+/\d+|\d+/\d+)\s*(` + unitAlternation() + `)?\b\.?`)
	decimalQty    = regexp.MustCompile(`(?i)^(\d+(?:[.,]\d+)?)\s*(` + unitAlternation() + `)\b\.?`)
	multiplierQty = regexp.MustCompile(`(?i)(?:^|\s)(?:[x×]\s*(\d+)|\((\d+)\))(?:\s|$)`)
	bareQty       = regexp.MustCompile(`^(\d+(?:[.,]\d+)?)\b`)

	fractionGlyphs = strings.NewReplacer("½", " 1/2", "¼", " 1/4", "¾", " 3/4")
	multiSpace     = regexp.MustCompile(`\s+`)
)

// ParseQty extracts a quantity and unit from one cleaned item string.
// Patterns are tried in priority order: fraction/mixed number (unicode glyphs
// included), decimal plus unit word, multiplier or parenthetical count, and
// finally a bare leading number. No match is the common case for
// un-quantified items and is not an error.
func ParseQty(input string) Qty {
	s := strings.TrimSpace(input)
	if s == "" {
		return Qty{Quantity: 1}
	}
	norm := multiSpace.ReplaceAllString(fractionGlyphs.Replace(s), " ")
	norm = strings.TrimSpace(norm)

	if m := fractionQty.FindStringSubmatch(norm); m != nil {
		if qty, ok := parseFraction(m[1]); ok {
			return Qty{
				Quantity: qty,
				Unit:     canonicalUnit(m[2]),
				Notes:    remainderOf(norm, m[0]),
			}
		}
	}

	if m := decimalQty.FindStringSubmatch(norm); m != nil {
		if qty, ok := parseNumber(m[1]); ok {
			return Qty{
				Quantity: qty,
				Unit:     canonicalUnit(m[2]),
				Notes:    remainderOf(norm, m[0]),
			}
		}
	}

	if m := multiplierQty.FindStringSubmatch(norm); m != nil {
		token := m[1]
		if token == "" {
			token = m[2]
		}
		if qty, ok := parseNumber(token); ok {
			return Qty{
				Quantity: qty,
				Notes:    remainderOf(norm, strings.TrimSpace(m[0])),
			}
		}
	}

	if m := bareQty.FindStringSubmatch(norm); m != nil {
		if qty, ok := parseNumber(m[1]); ok {
			return Qty{
				Quantity: qty,
				Notes:    remainderOf(norm, m[0]),
			}
		}
	}

	return Qty{Quantity: 1, Notes: s}
}

// parseFraction parses "a b/c" or "b/c" forms, summing integer and
// fractional parts for mixed numbers.
func parseFraction(token string) (float64, bool) {
	whole := 0.0
	frac := token
	if i := strings.IndexByte(token, ' '); i >= 0 {
		w, ok := parseNumber(token[:i])
		if !ok {
			return 0, false
		}
		whole = w
		frac = token[i+1:]
	}
	num, den, ok := strings.Cut(frac, "/")
	if !ok {
		return 0, false
	}
	n, err1 := strconv.ParseFloat(num, 64)
	d, err2 := strconv.ParseFloat(den, 64)
	if err1 != nil || err2 != nil || d == 0 {
		return 0, false
	}
	return whole + n/d, true
}

// parseNumber accepts both "2.5" and the comma decimal form "2,5".
func parseNumber(token string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(token, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func canonicalUnit(word string) string {
	if word == "" {
		return ""
	}
	return unitSynonyms[strings.ToLower(word)]
}

// remainderOf removes the first occurrence of matched from s and tidies the
// result into free-form notes.
func remainderOf(s, matched string) string {
	rest := strings.Replace(s, matched, " ", 1)
	rest = multiSpace.ReplaceAllString(rest, " ")
	return strings.TrimSpace(rest)
}
