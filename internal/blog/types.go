package blog

import "strings"

// DefaultTitle is used when a document has no title key.
const DefaultTitle = "Untitled"

// DefaultAuthor is used when a document has no author key and config does
// not override it.
const DefaultAuthor = "Vijay Saini"

// DateLayout is the build-date format written into records lacking a date.
const DateLayout = "2006-01-02"

// DocumentRecord is one entry of the generated index. Field order matches
// the serialized JSON.
type DocumentRecord struct {
	Slug    string   `json:"slug"`
	Title   string   `json:"title"`
	Date    string   `json:"date"`
	Author  string   `json:"author"`
	Tags    []string `json:"tags"`
	Excerpt string   `json:"excerpt"`
	Content string   `json:"content"`
}

// Meta is one entry of blogs.json, the curated metadata used by the document
// page.
type Meta struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	MDFile      string   `json:"mdFile"`
	Date        string   `json:"date"`
	ReadTime    string   `json:"readTime"`
	Tags        []string `json:"tags"`
	Published   bool     `json:"published"`
}

// MetaIndex is the blogs.json envelope.
type MetaIndex struct {
	Blogs []Meta `json:"blogs"`
}

// Lookup returns the first entry with the given slug. The match is reported
// as absent when that entry is unpublished, even if a later duplicate is
// published.
func (m MetaIndex) Lookup(slug string) (Meta, bool) {
	for _, entry := range m.Blogs {
		if entry.Slug != slug {
			continue
		}
		if !entry.Published {
			return Meta{}, false
		}
		return entry, true
	}
	return Meta{}, false
}

// SplitTags splits a comma separated tag list, trimming each entry. Empty
// input yields an empty, non-nil slice.
func SplitTags(raw string) []string {
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		tags = append(tags, strings.TrimSpace(part))
	}
	return tags
}
