package web

import "strings"

// CleanText collapses whitespace and non-breaking spaces out of scraped text.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}
