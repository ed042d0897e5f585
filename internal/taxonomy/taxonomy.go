// Package taxonomy defines the aisle taxonomy used for grouping order and for
// the rule-based fallback categorizer. The taxonomy is data, not code: it can
// be loaded from a YAML file, and a default is embedded in the binary.
package taxonomy

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Rule maps a category to an ordered keyword list. Rules are evaluated in
// declared order and the first substring match wins.
type Rule struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// Taxonomy is one versioned aisle configuration.
type Taxonomy struct {
	Categories []string `yaml:"categories"`
	Sentinel   string   `yaml:"sentinel"`
	Rules      []Rule   `yaml:"rules"`

	order map[string]int
}

// Default returns the embedded taxonomy. It panics only if the embedded file
// is invalid, which is a build defect.
func Default() *Taxonomy {
	t, err := parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded taxonomy invalid: %v", err))
	}
	return t
}

// Load reads a taxonomy from a YAML file.
func Load(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read taxonomy file: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Taxonomy, error) {
	var t Taxonomy
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy: %w", err)
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	t.order = make(map[string]int, len(t.Categories))
	for i, c := range t.Categories {
		t.order[c] = i
	}
	return &t, nil
}

func (t *Taxonomy) validate() error {
	if len(t.Categories) == 0 {
		return fmt.Errorf("taxonomy has no categories")
	}
	if t.Sentinel == "" {
		return fmt.Errorf("taxonomy has no sentinel category")
	}
	found := false
	for _, c := range t.Categories {
		if c == t.Sentinel {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("sentinel %q is not in the category list", t.Sentinel)
	}
	for _, r := range t.Rules {
		if len(r.Keywords) == 0 {
			return fmt.Errorf("rule for %q has no keywords", r.Category)
		}
	}
	return nil
}

// Order returns the declared position of category, and whether the category
// is part of the taxonomy at all.
func (t *Taxonomy) Order(category string) (int, bool) {
	i, ok := t.order[category]
	return i, ok
}

// Categorize returns the first rule category whose keyword set matches name
// (case-insensitive substring), or the sentinel when nothing matches.
func (t *Taxonomy) Categorize(name string) string {
	lower := strings.ToLower(name)
	for _, rule := range t.Rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Category
			}
		}
	}
	return t.Sentinel
}
