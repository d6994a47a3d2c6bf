package markdown

import (
	"bytes"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-folio/pkg/interfaces"
)

const defaultHighlightStyle = "github"

// GoldmarkParser implements interfaces.MarkdownParser on top of goldmark.
// The engine for the default options is built once; per-call overrides get a
// fresh engine.
type GoldmarkParser struct {
	defaults interfaces.ParseOptions
	engine   goldmark.Markdown
}

// NewGoldmarkParser returns a parser rendering with defaults.
func NewGoldmarkParser(defaults interfaces.ParseOptions) *GoldmarkParser {
	return &GoldmarkParser{
		defaults: defaults,
		engine:   newGoldmarkEngine(defaults),
	}
}

// DocumentParseOptions is the option set used for blog bodies: GFM, linkify,
// task lists, hard wraps, raw HTML, chroma highlighting and copy buttons.
func DocumentParseOptions() interfaces.ParseOptions {
	return interfaces.ParseOptions{
		HardWraps:      true,
		Highlight:      true,
		HighlightStyle: defaultHighlightStyle,
		CopyButtons:    true,
	}
}

// Parse renders markdown with the parser defaults.
func (p *GoldmarkParser) Parse(markdown []byte) ([]byte, error) {
	return convert(p.engine, markdown)
}

// ParseWithOptions renders markdown with opts instead of the defaults.
func (p *GoldmarkParser) ParseWithOptions(markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	return convert(newGoldmarkEngine(opts), markdown)
}

func convert(engine goldmark.Markdown, markdown []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := engine.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("markdown parse: %w", err)
	}
	return buf.Bytes(), nil
}

func newGoldmarkEngine(opts interfaces.ParseOptions) goldmark.Markdown {
	rendererOptions := []renderer.Option{}
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	if !opts.SafeMode {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	exts := collectExtensions(opts.Extensions)
	if opts.Highlight {
		exts = append(exts, highlighter(opts.HighlightStyle, opts.CopyButtons))
	}
	if opts.CopyButtons {
		exts = append(exts, copyButtons{fenced: !opts.Highlight})
	}

	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithExtensions(exts...),
	}
	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}
	return goldmark.New(engineOptions...)
}

// highlighter colours fenced code by its language hint. Blocks without a
// hint or with an unknown language are emitted as plain escaped
// <pre><code>. With copy buttons both paths go through wrapHighlightedBlock.
func highlighter(style string, wrapBlocks bool) goldmark.Extender {
	if strings.TrimSpace(style) == "" {
		style = defaultHighlightStyle
	}
	opts := []highlighting.Option{
		highlighting.WithCustomStyle(styles.Get(style)),
		highlighting.WithGuessLanguage(false),
		highlighting.WithFormatOptions(
			chromahtml.WithClasses(false),
		),
	}
	if wrapBlocks {
		opts = append(opts, highlighting.WithWrapperRenderer(wrapHighlightedBlock))
	}
	return highlighting.NewHighlighting(opts...)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"footnote":      extension.Footnote,
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{
			extension.GFM,
			extension.Linkify,
			extension.TaskList,
		}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, dup := seen[key]; dup {
			continue
		}
		if ext, ok := extensionRegistry[key]; ok {
			extenders = append(extenders, ext)
			seen[key] = struct{}{}
		}
	}
	return extenders
}
