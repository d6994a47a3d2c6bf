package render

import (
	"context"
	"encoding/json"
	"html/template"
	"path"
	"strings"

	"github.com/goliatone/go-folio/internal/blog"
	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/internal/markdown"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

const (
	// DefaultMetaPath is where the document renderer reads blogs.json from.
	DefaultMetaPath = "data/blogs.json"
	// DefaultContentPrefix is prepended to each entry's mdFile.
	DefaultContentPrefix = "content/blogs/"
	// DefaultOwner is appended to document page titles.
	DefaultOwner = "Vijay"
)

// Fixed messages shown by the document error panel.
const (
	MessageNoSlug      = "No blog post specified"
	MessageNotFound    = "Blog post not found"
	MessageLoadFailure = "Unable to load blog post. Please try again later."
)

// DocState names a step of a document render.
type DocState string

const (
	DocNoSlug      DocState = "no_slug"
	DocLoadingMeta DocState = "loading_meta"
	DocLookup      DocState = "lookup"
	DocLoadingBody DocState = "loading_body"
	DocRendering   DocState = "rendering"
	DocRendered    DocState = "rendered"
	DocError       DocState = "error"
)

// DocumentView is the outcome of a document render.
type DocumentView struct {
	State DocState
	Slug  string
	Meta  blog.Meta
	// Date is Meta.Date in display form.
	Date        string
	PageTitle   string
	Description string
	Body        template.HTML
	CodeBlocks  int
	// Message is the fixed panel text when State is DocError.
	Message string
	// Trace lists the states visited, ending with State.
	Trace []DocState
	Err   error
}

// DocumentOptions locates metadata and Markdown bodies.
type DocumentOptions struct {
	MetaPath      string
	ContentPrefix string
	Owner         string
}

// DocumentRenderer resolves a slug through blogs.json and renders its body.
type DocumentRenderer struct {
	opts     DocumentOptions
	source   interfaces.Source
	markdown *markdown.Service
	logger   interfaces.Logger
}

// DocumentOption customises a DocumentRenderer.
type DocumentOption func(*DocumentRenderer)

// WithDocumentLogger sets the renderer logger.
func WithDocumentLogger(logger interfaces.Logger) DocumentOption {
	return func(r *DocumentRenderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewDocumentRenderer returns a renderer reading metadata and bodies from
// src and converting them with svc. A nil svc gets a service with the
// document parse options.
func NewDocumentRenderer(src interfaces.Source, svc *markdown.Service, opts DocumentOptions, options ...DocumentOption) *DocumentRenderer {
	if strings.TrimSpace(opts.MetaPath) == "" {
		opts.MetaPath = DefaultMetaPath
	}
	if opts.ContentPrefix == "" {
		opts.ContentPrefix = DefaultContentPrefix
	}
	if strings.TrimSpace(opts.Owner) == "" {
		opts.Owner = DefaultOwner
	}
	if svc == nil {
		svc = markdown.NewService(nil, markdown.Config{Parser: markdown.DocumentParseOptions()}, nil)
	}
	r := &DocumentRenderer{
		opts:     opts,
		source:   src,
		markdown: svc,
		logger:   logging.NoOp(),
	}
	for _, option := range options {
		if option != nil {
			option(r)
		}
	}
	return r
}

type docRun struct {
	view   DocumentView
	logger interfaces.Logger
}

func (d *docRun) enter(state DocState) {
	d.view.State = state
	d.view.Trace = append(d.view.Trace, state)
}

func (d *docRun) fail(message string, err error) DocumentView {
	from := d.view.State
	d.enter(DocError)
	d.view.Message = message
	d.view.Err = err
	d.logger.Warn("render.document.failed", "from", string(from), "message", message, "error", err, "code", blog.TextCode(err))
	return d.view
}

// Render walks the document states for slug. It performs at most two
// sequential fetches and never fails; errors end in DocError with a fixed
// message.
func (r *DocumentRenderer) Render(ctx context.Context, slug string) DocumentView {
	run := &docRun{
		view:   DocumentView{Slug: slug},
		logger: logging.WithDocumentContext(r.logger, slug, ""),
	}

	run.enter(DocNoSlug)
	if slug == "" {
		return run.fail(MessageNoSlug, blog.MissingInput(nil, "slug parameter is empty"))
	}

	run.enter(DocLoadingMeta)
	index, err := r.loadMeta(ctx)
	if err != nil {
		return run.fail(MessageLoadFailure, err)
	}

	run.enter(DocLookup)
	meta, ok := index.Lookup(slug)
	if !ok {
		return run.fail(MessageNotFound, blog.NotFound(nil, "slug "+slug+" is not published"))
	}
	run.view.Meta = meta

	run.enter(DocLoadingBody)
	raw, err := r.fetch(ctx, r.contentPath(meta.MDFile))
	if err != nil {
		return run.fail(MessageLoadFailure, err)
	}

	run.enter(DocRendering)
	html, err := r.markdown.RenderSource(ctx, raw)
	if err != nil {
		return run.fail(MessageLoadFailure, blog.ParseFailure(err, "render "+meta.MDFile))
	}
	blocks := markdown.CountCodeBlocks(html)

	run.enter(DocRendered)
	run.view.Date = FormatDate(meta.Date)
	run.view.PageTitle = meta.Title + " - " + r.opts.Owner
	run.view.Description = meta.Description
	run.view.Body = template.HTML(html)
	run.view.CodeBlocks = blocks
	run.logger.Debug("render.document.rendered", "md_file", meta.MDFile, "code_blocks", blocks)
	return run.view
}

func (r *DocumentRenderer) loadMeta(ctx context.Context) (blog.MetaIndex, error) {
	data, err := r.fetch(ctx, r.opts.MetaPath)
	if err != nil {
		return blog.MetaIndex{}, err
	}
	var index blog.MetaIndex
	if err := json.Unmarshal(data, &index); err != nil {
		return blog.MetaIndex{}, blog.ParseFailure(err, "decode "+r.opts.MetaPath)
	}
	return index, nil
}

func (r *DocumentRenderer) fetch(ctx context.Context, name string) ([]byte, error) {
	if r.source == nil {
		return nil, blog.FetchFailure(nil, "no document source configured")
	}
	return r.source.Fetch(ctx, name)
}

func (r *DocumentRenderer) contentPath(mdFile string) string {
	return path.Join(r.opts.ContentPrefix, mdFile)
}
