// Package markdown reads blog documents: it splits the flat "key: value"
// frontmatter block from the body, discovers documents in a directory and
// renders bodies to HTML with goldmark.
package markdown
