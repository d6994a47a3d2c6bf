package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/goliatone/go-folio/pkg/interfaces"
)

// Template names understood by Templates.Render.
const (
	ListTemplate     = "list"
	DocumentTemplate = "document"
)

const pageShell = `{{define "shell"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta name="description" content="{{.Description}}">
<title id="pageTitle">{{.Title}}</title>
<link rel="stylesheet" href="{{.Stylesheet}}">
</head>
<body>
<main class="container">
{{template "content" .Content}}
</main>
</body>
</html>
{{end}}`

const listContent = `{{define "content"}}<section id="blogList" class="blog-list">
{{- with .Panel}}
<div class="{{.Kind}}">
<h3>{{if eq .Kind "error-state"}}⚠️ {{end}}{{.Heading}}</h3>
<p>{{.Message}}</p>
</div>
{{- else}}
{{- range .Cards}}
<article class="blog-card fade-in" style="animation-delay: {{.Delay}}">
<div class="blog-card-header">
<h2 class="blog-card-title"><a href="{{.Href}}">{{.Title}}</a></h2>
<div class="blog-card-meta">
<span class="blog-date">📅 {{.Date}}</span>
<span class="blog-author">✍️ {{.Author}}</span>
</div>
</div>
<p class="blog-card-excerpt">{{.Excerpt}}</p>
<div class="blog-card-footer">
<div class="blog-tags">{{range .Tags}}<span class="blog-tag">{{.}}</span>{{end}}</div>
<a href="{{.Href}}" class="btn btn-outline btn-small">Read More →</a>
</div>
</article>
{{- end}}
{{- end}}
</section>
{{end}}`

const documentContent = `{{define "content"}}<article id="blogPostContent" class="blog-post">
{{- if eq .State "rendered"}}
<header class="blog-post-header">
<h1 class="blog-post-title">{{.Meta.Title}}</h1>
<div class="blog-post-meta">
<span class="blog-date">📅 {{.Date}}</span>
<span class="blog-read-time">⏱️ {{.Meta.ReadTime}}</span>
</div>
<div class="blog-post-tags">{{range .Meta.Tags}}<span class="blog-tag">{{.}}</span>{{end}}</div>
</header>
<div class="blog-post-content">
{{.Body}}
</div>
{{- if .CodeBlocks}}
<script>` + "{{copyScript}}" + `</script>
{{- end}}
{{- else}}
<div class="error-state">
<h2>⚠️ {{.Message}}</h2>
<p>Please return to the <a href="{{listPage}}">blog listing</a> or <a href="{{contactPage}}">contact us</a> if you need assistance.</p>
</div>
{{- end}}
</article>
{{end}}`

// TemplateOptions configures page chrome.
type TemplateOptions struct {
	Owner       string
	Stylesheet  string
	ListPage    string
	ContactPage string
}

// Templates renders the list and document pages with html/template, so all
// record and metadata text is escaped. Only DocumentView.Body is inserted
// verbatim.
type Templates struct {
	opts  TemplateOptions
	pages map[string]*template.Template
}

var _ interfaces.TemplateRenderer = (*Templates)(nil)

type pageData struct {
	Title       string
	Description string
	Stylesheet  string
	Content     any
}

// NewTemplates parses the page templates.
func NewTemplates(opts TemplateOptions) (*Templates, error) {
	if strings.TrimSpace(opts.Owner) == "" {
		opts.Owner = DefaultOwner
	}
	if opts.Stylesheet == "" {
		opts.Stylesheet = "assets/css/style.css"
	}
	if opts.ListPage == "" {
		opts.ListPage = "blog.html"
	}
	if opts.ContactPage == "" {
		opts.ContactPage = "contact.html"
	}

	funcs := template.FuncMap{
		"copyScript":  func() template.JS { return template.JS(copyScript) },
		"listPage":    func() string { return opts.ListPage },
		"contactPage": func() string { return opts.ContactPage },
	}

	pages := make(map[string]*template.Template, 2)
	for name, content := range map[string]string{
		ListTemplate:     listContent,
		DocumentTemplate: documentContent,
	} {
		tpl, err := template.New(name).Funcs(funcs).Parse(pageShell)
		if err != nil {
			return nil, fmt.Errorf("render: parse shell for %s: %w", name, err)
		}
		if _, err := tpl.Parse(content); err != nil {
			return nil, fmt.Errorf("render: parse %s: %w", name, err)
		}
		pages[name] = tpl
	}
	return &Templates{opts: opts, pages: pages}, nil
}

// MustTemplates is NewTemplates for the built-in templates, which always
// parse.
func MustTemplates(opts TemplateOptions) *Templates {
	tpl, err := NewTemplates(opts)
	if err != nil {
		panic(err)
	}
	return tpl
}

// Render executes the page named name. data must be a ListView for
// ListTemplate and a DocumentView for DocumentTemplate.
func (t *Templates) Render(name string, data any, out ...io.Writer) (string, error) {
	tpl, ok := t.pages[name]
	if !ok {
		return "", fmt.Errorf("render: unknown template %q", name)
	}

	page, err := t.page(name, data)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, "shell", page); err != nil {
		return "", fmt.Errorf("render: execute %s: %w", name, err)
	}
	for _, w := range out {
		if w == nil {
			continue
		}
		if _, err := w.Write(buf.Bytes()); err != nil {
			return "", fmt.Errorf("render: write %s: %w", name, err)
		}
	}
	return buf.String(), nil
}

func (t *Templates) page(name string, data any) (pageData, error) {
	page := pageData{Stylesheet: t.opts.Stylesheet, Content: data}
	switch view := data.(type) {
	case ListView:
		if name != ListTemplate {
			break
		}
		page.Title = "Blog - " + t.opts.Owner
		return page, nil
	case DocumentView:
		if name != DocumentTemplate {
			break
		}
		page.Title = "Blog Post - " + t.opts.Owner
		if view.State == DocRendered {
			page.Title = view.PageTitle
			page.Description = view.Description
		}
		return page, nil
	}
	return pageData{}, fmt.Errorf("render: %s cannot render %T", name, data)
}
