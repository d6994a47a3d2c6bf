package markdown

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-folio/pkg/interfaces"
)

// Config controls how the Markdown service discovers and renders documents.
type Config struct {
	Extension string
	Parser    interfaces.ParseOptions
}

// Service ties a Loader to a MarkdownParser. The index builder uses it to
// read documents; the document renderer uses it to turn raw bodies into HTML.
type Service struct {
	cfg    Config
	parser interfaces.MarkdownParser
	loader *Loader
}

// NewService builds a service over filesystem. A nil parser is replaced by a
// GoldmarkParser using cfg.Parser.
func NewService(filesystem fs.FS, cfg Config, parser interfaces.MarkdownParser) *Service {
	if parser == nil {
		parser = NewGoldmarkParser(cfg.Parser)
	}
	return &Service{
		cfg:    cfg,
		parser: parser,
		loader: NewLoader(filesystem, LoaderConfig{Extension: cfg.Extension}),
	}
}

// Loader exposes the underlying loader.
func (s *Service) Loader() *Loader {
	return s.loader
}

// Parser exposes the configured parser.
func (s *Service) Parser() interfaces.MarkdownParser {
	return s.parser
}

// Render converts a Markdown body to HTML.
func (s *Service) Render(ctx context.Context, body []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.parser.Parse(body)
}

// RenderSource strips a leading frontmatter block from raw before rendering.
func (s *Service) RenderSource(ctx context.Context, raw []byte) ([]byte, error) {
	return s.Render(ctx, []byte(Strip(string(raw))))
}
