package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitItemsCleanInput(t *testing.T) {
	// Already-clean input passes through unchanged, in order.
	got := SplitItems("milk\nbread\neggs")
	assert.Equal(t, []string{"milk", "bread", "eggs"}, got)
}

func TestSplitItemsBulletPrefixes(t *testing.T) {
	got := SplitItems("1. apples\n- bananas\n* carrots")
	assert.Equal(t, []string{"apples", "bananas", "carrots"}, got)
}

func TestSplitItemsSeparators(t *testing.T) {
	got := SplitItems("milk, bread; eggs\r\nbutter")
	assert.Equal(t, []string{"milk", "bread", "eggs", "butter"}, got)
}

func TestSplitItemsDropsEmptyAndPunctuation(t *testing.T) {
	got := SplitItems("milk\n\n   \n---\n3.\nbread")
	assert.Equal(t, []string{"milk", "bread"}, got)
}

func TestSplitItemsEmptyInput(t *testing.T) {
	assert.Empty(t, SplitItems(""))
	assert.Empty(t, SplitItems(" \n , ; "))
}

func TestSplitItemsDeterministic(t *testing.T) {
	input := "2) flour\n1) sugar"
	assert.Equal(t, SplitItems(input), SplitItems(input))
}

func TestExtractURLs(t *testing.T) {
	urls, rest := ExtractURLs("https://example.com/recipe milk\nbread")
	assert.Equal(t, []string{"https://example.com/recipe"}, urls)
	assert.Equal(t, "milk\nbread", rest)
}

func TestExtractURLsNone(t *testing.T) {
	urls, rest := ExtractURLs("milk and bread")
	assert.Empty(t, urls)
	assert.Equal(t, "milk and bread", rest)
}
