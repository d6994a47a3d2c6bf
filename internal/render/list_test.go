package render

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goliatone/go-folio/internal/blog"
	"github.com/goliatone/go-folio/internal/source"
)

func TestListRendererNotFoundRendersErrorPanel(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	view := NewListRenderer(source.NewHTTPSource(server.URL, server.Client())).Render(context.Background())

	if view.State != ListStateError {
		t.Fatalf("expected error state, got %s", view.State)
	}
	if len(view.Cards) != 0 {
		t.Fatalf("expected no cards, got %d", len(view.Cards))
	}
	if view.Panel == nil || view.Panel.Heading != ListErrorHeading || view.Panel.Message != ListErrorMessage {
		t.Fatalf("unexpected panel %+v", view.Panel)
	}
	if !errors.Is(view.Err, blog.ErrFetchFailure) {
		t.Fatalf("expected fetch failure cause, got %v", view.Err)
	}
}

func TestListRendererMalformedIndexIsTreatedAsFailure(t *testing.T) {
	view := NewListRenderer(mapSource{DefaultIndexPath: "{not json"}).Render(context.Background())

	if view.State != ListStateError {
		t.Fatalf("expected error state, got %s", view.State)
	}
	if !errors.Is(view.Err, blog.ErrParseFailure) {
		t.Fatalf("expected parse failure cause, got %v", view.Err)
	}
}

func TestListRendererNullIndexIsTreatedAsFailure(t *testing.T) {
	view := NewListRenderer(mapSource{DefaultIndexPath: "null"}).Render(context.Background())

	if view.State != ListStateError {
		t.Fatalf("expected error state, got %s", view.State)
	}
	if view.Panel == nil || view.Panel.Heading != ListErrorHeading {
		t.Fatalf("unexpected panel %+v", view.Panel)
	}
	if !errors.Is(view.Err, blog.ErrParseFailure) {
		t.Fatalf("expected parse failure cause, got %v", view.Err)
	}
}

func TestListRendererEmptyIndex(t *testing.T) {
	view := NewListRenderer(mapSource{DefaultIndexPath: "[]"}).Render(context.Background())

	if view.State != ListStateEmpty {
		t.Fatalf("expected empty state, got %s", view.State)
	}
	if view.Panel == nil || view.Panel.Heading != ListEmptyHeading || view.Panel.Kind != PanelEmpty {
		t.Fatalf("unexpected panel %+v", view.Panel)
	}
}

func TestListRendererBuildsCardsInOrder(t *testing.T) {
	index := `[
	  {"slug":"my post","title":"Second","date":"2024-03-10","author":"A","tags":["go"],"excerpt":"e2","content":""},
	  {"slug":"first","title":"First","date":"sometime","author":"B","tags":[],"excerpt":"e1","content":""}
	]`
	src := &countingSource{mapSource: mapSource{"data/index.json": index}}

	view := NewListRenderer(src, WithIndexPath("data/index.json")).Render(context.Background())

	if view.State != ListStateCards || len(view.Cards) != 2 {
		t.Fatalf("unexpected view %+v", view)
	}
	if len(src.paths) != 1 {
		t.Fatalf("expected a single fetch, got %v", src.paths)
	}

	first := view.Cards[0]
	if first.Href != "blog-post.html?slug=my+post" {
		t.Fatalf("unexpected href %q", first.Href)
	}
	if first.Date != "March 10, 2024" || first.RawDate != "2024-03-10" {
		t.Fatalf("unexpected date %q", first.Date)
	}
	if first.Delay != "0s" || view.Cards[1].Delay != "0.1s" {
		t.Fatalf("unexpected delays %q %q", first.Delay, view.Cards[1].Delay)
	}
	if view.Cards[1].Date != "sometime" {
		t.Fatalf("expected unparseable date to pass through, got %q", view.Cards[1].Date)
	}
}

func TestFormatDate(t *testing.T) {
	cases := map[string]string{
		"2024-01-01":           "January 1, 2024",
		"2024-12-31T23:00:00Z": "December 31, 2024",
		"":                     "",
		"not a date":           "not a date",
	}
	for input, want := range cases {
		if got := FormatDate(input); got != want {
			t.Fatalf("FormatDate(%q) = %q, want %q", input, got, want)
		}
	}
}
