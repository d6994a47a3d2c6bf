package indexer

import (
	"regexp"
	"strings"
)

// ExcerptLength is the number of characters kept before the ellipsis.
const ExcerptLength = 200

const ellipsis = "..."

var (
	headingMarker = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	fencedCode    = regexp.MustCompile("```[\\s\\S]*?```")
	inlineCode    = regexp.MustCompile("`([^`]+)`")
	inlineLink    = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
)

// Excerpt returns a plain-text preview of a Markdown body: heading markers
// and fenced code blocks are removed, inline code and links are reduced to
// their text, and the result is cut to ExcerptLength runes with "..."
// appended only when something was cut.
func Excerpt(body string) string {
	cleaned := headingMarker.ReplaceAllString(body, "")
	cleaned = fencedCode.ReplaceAllString(cleaned, "")
	cleaned = inlineCode.ReplaceAllString(cleaned, "${1}")
	cleaned = inlineLink.ReplaceAllString(cleaned, "${1}")
	cleaned = strings.TrimSpace(cleaned)

	runes := []rune(cleaned)
	if len(runes) <= ExcerptLength {
		return cleaned
	}
	return string(runes[:ExcerptLength]) + ellipsis
}
