package indexer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-folio/internal/blog"
	"github.com/goliatone/go-folio/internal/markdown"
)

// RuleEnv carries build-wide values that field defaults may depend on.
type RuleEnv struct {
	BuildDate     string
	DefaultAuthor string
}

// FieldRule maps one frontmatter key onto a DocumentRecord field.
type FieldRule struct {
	Name     string
	Required bool
	// Default supplies the value used when the key is absent or empty.
	Default func(RuleEnv) string
	// Apply stores the resolved value on the record.
	Apply func(rec *blog.DocumentRecord, value string)
}

// DefaultFieldRules returns the mapping for title, date, author and tags.
// None of the keys are required.
func DefaultFieldRules() []FieldRule {
	return []FieldRule{
		{
			Name:    "title",
			Default: func(RuleEnv) string { return blog.DefaultTitle },
			Apply:   func(rec *blog.DocumentRecord, v string) { rec.Title = v },
		},
		{
			Name:    "date",
			Default: func(env RuleEnv) string { return env.BuildDate },
			Apply:   func(rec *blog.DocumentRecord, v string) { rec.Date = v },
		},
		{
			Name:    "author",
			Default: func(env RuleEnv) string { return env.DefaultAuthor },
			Apply:   func(rec *blog.DocumentRecord, v string) { rec.Author = v },
		},
		{
			Name:  "tags",
			Apply: func(rec *blog.DocumentRecord, v string) { rec.Tags = blog.SplitTags(v) },
		},
	}
}

// ErrFieldRequired is wrapped by mapRecord when a required key is empty.
var ErrFieldRequired = errors.New("indexer: required frontmatter field missing")

// mapRecord builds the record for one document. Slug and body-derived fields
// are filled by the caller's inputs; frontmatter keys go through rules.
func mapRecord(rules []FieldRule, env RuleEnv, slug string, matter markdown.Matter) (blog.DocumentRecord, error) {
	rec := blog.DocumentRecord{
		Slug:    slug,
		Tags:    []string{},
		Excerpt: Excerpt(matter.Body),
		Content: strings.TrimSpace(matter.Body),
	}

	for _, rule := range rules {
		value := matter.Get(rule.Name)
		if value == "" {
			if rule.Required {
				return blog.DocumentRecord{}, fmt.Errorf("%w: %s", ErrFieldRequired, rule.Name)
			}
			if rule.Default != nil {
				value = rule.Default(env)
			}
		}
		if rule.Apply != nil {
			rule.Apply(&rec, value)
		}
	}

	if rec.Tags == nil {
		rec.Tags = []string{}
	}
	return rec, nil
}
