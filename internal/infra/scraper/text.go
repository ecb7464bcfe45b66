package scraper

import (
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// CollapseWhitespace replaces every whitespace run with a single space and
// trims both ends.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// StripMarkup replaces each <...> span with a space and collapses the result.
// Entities are left as they are. StripMarkup(StripMarkup(s)) == StripMarkup(s).
func StripMarkup(s string) string {
	return CollapseWhitespace(tagPattern.ReplaceAllString(s, " "))
}
