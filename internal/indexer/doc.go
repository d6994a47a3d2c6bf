// Package indexer builds blog-index.json from a flat directory of Markdown
// documents.
//
// A build discovers "*.md" files in lexical order, maps each file's
// frontmatter onto a blog.DocumentRecord through a FieldRule table, derives
// an excerpt from the body, orders the records newest first and replaces the
// output file atomically. When a blogs.json is available the records are
// also correlated with it by slug.
package indexer
