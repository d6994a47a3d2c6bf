package markdown

import (
	"regexp"
	"strings"
)

// frontMatterPattern matches a leading "---" block. The block is captured
// lazily so the first closing "---" line ends it; everything after is body.
var frontMatterPattern = regexp.MustCompile(`^---\s*\n([\s\S]*?)\n---\s*\n([\s\S]*)$`)

// Matter is the result of splitting a Markdown source.
type Matter struct {
	// Fields holds the flat key/value pairs of the frontmatter block.
	Fields map[string]string
	// Body is the Markdown after the closing delimiter, untrimmed.
	Body string
}

// Get returns the value for key, or "" when absent.
func (m Matter) Get(key string) string {
	return m.Fields[key]
}

// Split separates frontmatter from body. When text does not open with a
// well-formed block the whole text is returned as Body with empty Fields and
// ok set to false.
func Split(text string) (matter Matter, ok bool) {
	match := frontMatterPattern.FindStringSubmatch(text)
	if match == nil {
		return Matter{Fields: map[string]string{}, Body: text}, false
	}
	return Matter{Fields: ParseBlock(match[1]), Body: match[2]}, true
}

// ParseBlock reads "key: value" lines. Keys and values are trimmed, one
// quote character is dropped from each end of the value, and later keys
// replace earlier ones. Lines without a colon are skipped.
func ParseBlock(block string) map[string]string {
	fields := map[string]string{}
	for _, line := range strings.Split(block, "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		fields[strings.TrimSpace(key)] = unquote(strings.TrimSpace(value))
	}
	return fields
}

// Strip removes a leading frontmatter block, returning text unchanged when
// there is none.
func Strip(text string) string {
	matter, _ := Split(text)
	return matter.Body
}

func unquote(value string) string {
	if value != "" && isQuote(value[0]) {
		value = value[1:]
	}
	if value != "" && isQuote(value[len(value)-1]) {
		value = value[:len(value)-1]
	}
	return value
}

func isQuote(c byte) bool {
	return c == '"' || c == '\''
}
