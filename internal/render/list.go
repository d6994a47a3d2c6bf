package render

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/goliatone/go-folio/internal/blog"
	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

// DefaultIndexPath is where the list renderer reads the index from.
const DefaultIndexPath = "public/data/blog-index.json"

// DefaultDocumentPage is the page cards link to.
const DefaultDocumentPage = "blog-post.html"

// Fixed panel texts shown by the list page.
const (
	ListErrorHeading = "Unable to load blog posts"
	ListErrorMessage = "Please try again later or contact us if the problem persists."
	ListEmptyHeading = "No blog posts yet"
	ListEmptyMessage = "Check back soon for new content!"
)

// ListState is the terminal state of a list render.
type ListState string

const (
	ListStateError ListState = "error"
	ListStateEmpty ListState = "empty"
	ListStateCards ListState = "cards"
)

// PanelKind selects the panel styling.
type PanelKind string

const (
	PanelError PanelKind = "error-state"
	PanelEmpty PanelKind = "empty-state"
)

// Panel is a fixed message block shown instead of content.
type Panel struct {
	Kind    PanelKind
	Heading string
	Message string
}

// Card summarises one index record.
type Card struct {
	Slug    string
	Title   string
	RawDate string
	Date    string
	Author  string
	Tags    []string
	Excerpt string
	Href    string
	Delay   string
}

// ListView is the outcome of a list render.
type ListView struct {
	State ListState
	Cards []Card
	Panel *Panel
	// Err holds the cause of ListStateError for logging; it is never shown.
	Err error
}

// ListRenderer turns the JSON index into summary cards.
type ListRenderer struct {
	source       interfaces.Source
	indexPath    string
	documentPage string
	logger       interfaces.Logger
}

// ListOption customises a ListRenderer.
type ListOption func(*ListRenderer)

// WithIndexPath overrides the index location.
func WithIndexPath(path string) ListOption {
	return func(r *ListRenderer) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			r.indexPath = trimmed
		}
	}
}

// WithDocumentPage overrides the page cards link to.
func WithDocumentPage(page string) ListOption {
	return func(r *ListRenderer) {
		if trimmed := strings.TrimSpace(page); trimmed != "" {
			r.documentPage = trimmed
		}
	}
}

// WithListLogger sets the renderer logger.
func WithListLogger(logger interfaces.Logger) ListOption {
	return func(r *ListRenderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewListRenderer returns a renderer reading the index from src.
func NewListRenderer(src interfaces.Source, opts ...ListOption) *ListRenderer {
	r := &ListRenderer{
		source:       src,
		indexPath:    DefaultIndexPath,
		documentPage: DefaultDocumentPage,
		logger:       logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Render fetches the index once and builds the view. Failures become the
// error panel; Render itself never fails.
func (r *ListRenderer) Render(ctx context.Context) ListView {
	records, err := r.load(ctx)
	if err != nil {
		r.logger.Error("render.list.failed", "path", r.indexPath, "error", err, "code", blog.TextCode(err))
		return ListView{
			State: ListStateError,
			Panel: &Panel{Kind: PanelError, Heading: ListErrorHeading, Message: ListErrorMessage},
			Err:   err,
		}
	}

	if len(records) == 0 {
		r.logger.Debug("render.list.empty", "path", r.indexPath)
		return ListView{
			State: ListStateEmpty,
			Panel: &Panel{Kind: PanelEmpty, Heading: ListEmptyHeading, Message: ListEmptyMessage},
		}
	}

	cards := make([]Card, len(records))
	for i, rec := range records {
		cards[i] = Card{
			Slug:    rec.Slug,
			Title:   rec.Title,
			RawDate: rec.Date,
			Date:    FormatDate(rec.Date),
			Author:  rec.Author,
			Tags:    rec.Tags,
			Excerpt: rec.Excerpt,
			Href:    DocumentHref(r.documentPage, rec.Slug),
			Delay:   revealDelay(i),
		}
	}
	r.logger.Debug("render.list.rendered", "path", r.indexPath, "count", len(cards))
	return ListView{State: ListStateCards, Cards: cards}
}

func (r *ListRenderer) load(ctx context.Context) ([]blog.DocumentRecord, error) {
	if r.source == nil {
		return nil, blog.FetchFailure(nil, "no index source configured")
	}
	data, err := r.source.Fetch(ctx, r.indexPath)
	if err != nil {
		return nil, err
	}
	var records []blog.DocumentRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, blog.ParseFailure(err, "decode "+r.indexPath)
	}
	// A JSON null decodes without error but is not an index.
	if records == nil {
		return nil, blog.ParseFailure(nil, r.indexPath+" is not a JSON array")
	}
	return records, nil
}

// DocumentHref links page to the document identified by slug.
func DocumentHref(page, slug string) string {
	return page + "?slug=" + url.QueryEscape(slug)
}
