// Package parse turns raw pasted or OCR'd text into candidate checklist
// items and extracts quantity/unit information from item strings.
package parse

import (
	"regexp"
	"strings"
)

var (
	lineSplit    = regexp.MustCompile(`\r?\n|,|;`)
	bulletPrefix = regexp.MustCompile(`^[-*\d.)\s]+`)
	urlPattern   = regexp.MustCompile(`https?://\S+`)
)

// SplitItems splits raw text into an ordered list of non-empty candidate item
// strings. Pieces are split on newlines, commas and semicolons, trimmed, and
// stripped of leading list markers ("1) ", "- ", "3. "). Pieces that become
// empty are dropped, so input order is preserved but nothing else is changed.
func SplitItems(text string) []string {
	pieces := lineSplit.Split(text, -1)
	out := make([]string, 0, len(pieces))
	for _, p := range pieces {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		p = strings.TrimSpace(bulletPrefix.ReplaceAllString(p, ""))
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ExtractURLs pulls http(s) URLs out of text and returns them alongside the
// remaining text. Callers run this before SplitItems so recipe URLs are sent
// to the categorization service instead of being tokenized as items.
func ExtractURLs(text string) (urls []string, remainder string) {
	urls = urlPattern.FindAllString(text, -1)
	remainder = strings.TrimSpace(urlPattern.ReplaceAllString(text, " "))
	return urls, remainder
}
