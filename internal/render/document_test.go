package render

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/goliatone/go-folio/internal/blog"
)

const metaFixture = `{"blogs":[
  {"slug":"hello","title":"Hello","description":"Say hi","mdFile":"hello.md","date":"2024-01-01","readTime":"2 min","tags":["a"],"published":true},
  {"slug":"draft","title":"Draft","mdFile":"draft.md","published":false},
  {"slug":"lost","title":"Lost","mdFile":"lost.md","published":true}
]}`

func newDocumentSource() *countingSource {
	return &countingSource{mapSource: mapSource{
		DefaultMetaPath:          metaFixture,
		"content/blogs/hello.md": "---\ntitle: ignored\n---\nFirst line\nsecond line\n\n```go\nfmt.Println(1)\n```\n",
		"content/blogs/draft.md": "draft body",
	}}
}

func TestDocumentRendererRendersPublishedEntry(t *testing.T) {
	src := newDocumentSource()
	view := NewDocumentRenderer(src, nil, DocumentOptions{}).Render(context.Background(), "hello")

	if view.State != DocRendered {
		t.Fatalf("expected rendered, got %s (%v)", view.State, view.Err)
	}
	want := []DocState{DocNoSlug, DocLoadingMeta, DocLookup, DocLoadingBody, DocRendering, DocRendered}
	if !reflect.DeepEqual(view.Trace, want) {
		t.Fatalf("unexpected trace %v", view.Trace)
	}
	if !reflect.DeepEqual(src.paths, []string{"data/blogs.json", "content/blogs/hello.md"}) {
		t.Fatalf("unexpected fetches %v", src.paths)
	}
	if view.PageTitle != "Hello - Vijay" || view.Description != "Say hi" {
		t.Fatalf("unexpected page metadata %q %q", view.PageTitle, view.Description)
	}
	if view.Date != "January 1, 2024" {
		t.Fatalf("unexpected date %q", view.Date)
	}

	body := string(view.Body)
	if strings.Contains(body, "ignored") {
		t.Fatalf("expected frontmatter to be stripped: %s", body)
	}
	if !strings.Contains(body, "First line<br") {
		t.Fatalf("expected hard wrap: %s", body)
	}
	if view.CodeBlocks != 1 || !strings.Contains(body, `<div class="code-block-wrapper">`) {
		t.Fatalf("expected wrapped code block: %s", body)
	}
}

func TestDocumentRendererNoSlug(t *testing.T) {
	src := newDocumentSource()
	view := NewDocumentRenderer(src, nil, DocumentOptions{}).Render(context.Background(), "")

	if view.State != DocError || view.Message != MessageNoSlug {
		t.Fatalf("unexpected view %+v", view)
	}
	if !errors.Is(view.Err, blog.ErrMissingInput) {
		t.Fatalf("expected missing input, got %v", view.Err)
	}
	if len(src.paths) != 0 {
		t.Fatalf("expected no fetches, got %v", src.paths)
	}
}

func TestDocumentRendererUnpublishedMatchesAbsent(t *testing.T) {
	renderer := NewDocumentRenderer(newDocumentSource(), nil, DocumentOptions{})

	draft := renderer.Render(context.Background(), "draft")
	missing := renderer.Render(context.Background(), "nope")

	for _, view := range []DocumentView{draft, missing} {
		if view.State != DocError || view.Message != MessageNotFound {
			t.Fatalf("expected not found panel, got %+v", view)
		}
		if !errors.Is(view.Err, blog.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", view.Err)
		}
	}
	if !reflect.DeepEqual(draft.Trace, missing.Trace) {
		t.Fatalf("expected identical traces, got %v and %v", draft.Trace, missing.Trace)
	}
}

func TestDocumentRendererFetchFailures(t *testing.T) {
	view := NewDocumentRenderer(mapSource{}, nil, DocumentOptions{}).Render(context.Background(), "hello")
	if view.State != DocError || view.Message != MessageLoadFailure {
		t.Fatalf("expected load failure for metadata, got %+v", view)
	}
	if view.Trace[len(view.Trace)-2] != DocLoadingMeta {
		t.Fatalf("expected failure while loading metadata, got %v", view.Trace)
	}

	view = NewDocumentRenderer(newDocumentSource(), nil, DocumentOptions{}).Render(context.Background(), "lost")
	if view.State != DocError || view.Message != MessageLoadFailure {
		t.Fatalf("expected load failure for body, got %+v", view)
	}
	if view.Trace[len(view.Trace)-2] != DocLoadingBody {
		t.Fatalf("expected failure while loading body, got %v", view.Trace)
	}
	if !errors.Is(view.Err, blog.ErrFetchFailure) {
		t.Fatalf("expected fetch failure, got %v", view.Err)
	}
}

func TestDocumentRendererMalformedMetadata(t *testing.T) {
	view := NewDocumentRenderer(mapSource{DefaultMetaPath: "[]"}, nil, DocumentOptions{}).Render(context.Background(), "hello")
	if view.Message != MessageLoadFailure || !errors.Is(view.Err, blog.ErrParseFailure) {
		t.Fatalf("expected parse failure panel, got %+v", view)
	}
}

func TestDocumentRendererCustomPaths(t *testing.T) {
	src := mapSource{
		"meta.json":  `{"blogs":[{"slug":"x","title":"X","mdFile":"x.md","published":true}]}`,
		"posts/x.md": "plain",
	}
	view := NewDocumentRenderer(src, nil, DocumentOptions{
		MetaPath:      "meta.json",
		ContentPrefix: "posts",
		Owner:         "Folio",
	}).Render(context.Background(), "x")

	if view.State != DocRendered || view.PageTitle != "X - Folio" {
		t.Fatalf("unexpected view %+v", view)
	}
}
