package indexer

import (
	"errors"
	"reflect"
	"testing"

	"github.com/goliatone/go-folio/internal/blog"
	"github.com/goliatone/go-folio/internal/markdown"
)

func TestMapRecordAppliesDefaults(t *testing.T) {
	env := RuleEnv{BuildDate: "2024-09-09", DefaultAuthor: blog.DefaultAuthor}
	matter, _ := markdown.Split("No frontmatter at all.")

	rec, err := mapRecord(DefaultFieldRules(), env, "bare", matter)
	if err != nil {
		t.Fatalf("mapRecord: %v", err)
	}

	want := blog.DocumentRecord{
		Slug:    "bare",
		Title:   "Untitled",
		Date:    "2024-09-09",
		Author:  "Vijay Saini",
		Tags:    []string{},
		Excerpt: "No frontmatter at all.",
		Content: "No frontmatter at all.",
	}
	if !reflect.DeepEqual(rec, want) {
		t.Fatalf("unexpected record\nwant: %+v\ngot:  %+v", want, rec)
	}
}

func TestMapRecordEmptyValuesUseDefaults(t *testing.T) {
	env := RuleEnv{BuildDate: "2024-09-09", DefaultAuthor: "Someone"}
	matter, ok := markdown.Split("---\ntitle: \"\"\nauthor:\ntags:\n---\nbody")
	if !ok {
		t.Fatal("expected frontmatter")
	}

	rec, err := mapRecord(DefaultFieldRules(), env, "empty", matter)
	if err != nil {
		t.Fatalf("mapRecord: %v", err)
	}
	if rec.Title != blog.DefaultTitle || rec.Author != "Someone" {
		t.Fatalf("expected defaults, got %+v", rec)
	}
	if rec.Tags == nil || len(rec.Tags) != 0 {
		t.Fatalf("expected empty non-nil tags, got %#v", rec.Tags)
	}
}

func TestMapRecordRequiredField(t *testing.T) {
	rules := append(DefaultFieldRules(), FieldRule{
		Name:     "summary",
		Required: true,
		Apply:    func(*blog.DocumentRecord, string) {},
	})
	matter, _ := markdown.Split("---\ntitle: x\n---\nbody")

	_, err := mapRecord(rules, RuleEnv{}, "x", matter)
	if !errors.Is(err, ErrFieldRequired) {
		t.Fatalf("expected ErrFieldRequired, got %v", err)
	}
}
