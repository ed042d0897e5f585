package taxonomy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	tax := Default()

	assert.NotEmpty(t, tax.Categories)
	assert.Equal(t, "Other / Miscellaneous", tax.Sentinel)
	assert.NotEmpty(t, tax.Rules)

	// Every rule category must be orderable.
	for _, rule := range tax.Rules {
		_, ok := tax.Order(rule.Category)
		assert.True(t, ok, "rule category %q missing from category list", rule.Category)
	}
}

func TestOrder(t *testing.T) {
	tax := Default()

	produce, ok := tax.Order("Produce")
	require.True(t, ok)
	dairy, ok := tax.Order("Dairy")
	require.True(t, ok)
	assert.Less(t, produce, dairy)

	_, ok = tax.Order("ZZZ-Custom")
	assert.False(t, ok)
}

func TestCategorizeFirstMatchWins(t *testing.T) {
	tax := Default()

	// The frozen rule is declared first, so "frozen chicken" must not land in
	// Meat & Poultry.
	assert.Equal(t, "Frozen Food", tax.Categorize("frozen chicken nuggets"))
	assert.Equal(t, "Meat & Poultry", tax.Categorize("chicken thighs"))
}

func TestCategorizeIsDeterministic(t *testing.T) {
	tax := Default()
	for i := 0; i < 3; i++ {
		assert.Equal(t, "Dairy", tax.Categorize("2% Milk"))
	}
}

func TestCategorizeRegionalSynonyms(t *testing.T) {
	tax := Default()

	assert.Equal(t, "Produce", tax.Categorize("lauki"))
	assert.Equal(t, "Bakery", tax.Categorize("khubz"))
	assert.Equal(t, "Rice & Grains", tax.Categorize("garam masala"))
}

func TestCategorizeUnmatchedGetsSentinel(t *testing.T) {
	tax := Default()
	assert.Equal(t, tax.Sentinel, tax.Categorize("xyzzy plugh"))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tax.yaml")
	data := []byte(`
categories: [A, B, Other]
sentinel: Other
rules:
  - category: A
    keywords: [alpha]
  - category: B
    keywords: [beta]
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	tax, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "A", tax.Categorize("one alpha please"))
	assert.Equal(t, "Other", tax.Categorize("gamma"))
}

func TestLoadRejectsBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tax.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories: [A]\nsentinel: Missing\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
