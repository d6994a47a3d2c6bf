package di

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-folio/internal/commands"
	indexcmd "github.com/goliatone/go-folio/internal/commands/index"
	folhttp "github.com/goliatone/go-folio/internal/http"
	"github.com/goliatone/go-folio/internal/indexer"
	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/internal/logging/console"
	"github.com/goliatone/go-folio/internal/logging/gologger"
	"github.com/goliatone/go-folio/internal/markdown"
	"github.com/goliatone/go-folio/internal/render"
	"github.com/goliatone/go-folio/internal/runtimeconfig"
	"github.com/goliatone/go-folio/internal/source"
	"github.com/goliatone/go-folio/internal/watcher"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

// Container wires the folio services from a runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	logWriter      io.Writer

	siteFS     fs.FS
	siteSource interfaces.Source
	localSrc   interfaces.Source
	httpClient *http.Client

	parser   interfaces.MarkdownParser
	markdown *markdown.Service
	writer   indexer.ArtifactWriter
	builder  *indexer.Builder
	now      func() time.Time

	list      *render.ListRenderer
	document  *render.DocumentRenderer
	templates *render.Templates

	indexHandlers *indexcmd.HandlerSet
	sessionSecret []byte
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected by Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithLogWriter sends console provider output to w instead of stderr.
func WithLogWriter(w io.Writer) Option {
	return func(c *Container) {
		c.logWriter = w
	}
}

// WithFileSystem replaces os.DirFS(Config.Site.Root) as the site tree.
func WithFileSystem(filesystem fs.FS) Option {
	return func(c *Container) {
		c.siteFS = filesystem
	}
}

// WithSource overrides the source the renderers fetch from.
func WithSource(src interfaces.Source) Option {
	return func(c *Container) {
		c.siteSource = src
	}
}

// WithHTTPClient sets the client used when Config.Site.BaseURL is set.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Container) {
		c.httpClient = client
	}
}

// WithMarkdownParser overrides the goldmark parser.
func WithMarkdownParser(parser interfaces.MarkdownParser) Option {
	return func(c *Container) {
		c.parser = parser
	}
}

// WithArtifactWriter overrides the index file writer.
func WithArtifactWriter(writer indexer.ArtifactWriter) Option {
	return func(c *Container) {
		c.writer = writer
	}
}

// WithClock overrides the clock shared by the builder and the HTTP server.
func WithClock(now func() time.Time) Option {
	return func(c *Container) {
		if now != nil {
			c.now = now
		}
	}
}

// NewContainer validates cfg and builds every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.configureSources()
	c.configureMarkdown()
	c.configureBuilder()
	if err := c.configureRenderers(); err != nil {
		return nil, err
	}
	if err := c.configureCommands(); err != nil {
		return nil, err
	}
	c.configureSession()

	logging.ModuleLogger(c.loggerProvider, "folio.di").Debug("di.container.ready",
		"site_root", cfg.Site.Root,
		"source_dir", cfg.Build.SourceDir,
		"remote", cfg.Site.BaseURL != "",
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}

	logCfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(logCfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     logCfg.Level,
			Format:    logCfg.Format,
			AddSource: logCfg.AddSource,
			Focus:     logCfg.Focus,
		})
		if err != nil {
			return fmt.Errorf("di: configure go-logger: %w", err)
		}
		c.loggerProvider = provider
	default:
		opts := console.Options{Writer: c.logWriter}
		if level, ok := console.ParseLevel(logCfg.Level); ok {
			opts.MinLevel = &level
		}
		c.loggerProvider = console.NewProvider(opts)
	}
	return nil
}

func (c *Container) configureSources() {
	if c.siteFS == nil {
		c.siteFS = os.DirFS(c.Config.Site.Root)
	}
	c.localSrc = source.NewDirSource(c.siteFS)

	if c.siteSource != nil {
		return
	}
	if base := strings.TrimSpace(c.Config.Site.BaseURL); base != "" {
		client := c.httpClient
		if client == nil {
			client = &http.Client{Timeout: c.Config.Render.FetchTimeout.Std()}
		}
		c.siteSource = source.NewHTTPSource(base, client)
		return
	}
	c.siteSource = c.localSrc
}

func (c *Container) configureMarkdown() {
	md := c.Config.Render.Markdown
	c.markdown = markdown.NewService(c.siteFS, markdown.Config{
		Extension: c.Config.Build.Extension,
		Parser: interfaces.ParseOptions{
			Extensions:     md.Extensions,
			HardWraps:      md.HardWraps,
			SafeMode:       md.SafeMode,
			Highlight:      md.Highlight,
			HighlightStyle: md.HighlightStyle,
			CopyButtons:    true,
		},
	}, c.parser)
}

func (c *Container) configureBuilder() {
	opts := []indexer.BuilderOption{
		indexer.WithLogger(logging.IndexerLogger(c.loggerProvider)),
		indexer.WithClock(c.now),
	}
	if strings.TrimSpace(c.Config.Build.MetaPath) != "" {
		opts = append(opts, indexer.WithMetaSource(c.localSrc))
	}
	if c.writer != nil {
		opts = append(opts, indexer.WithWriter(c.writer))
	}

	c.builder = indexer.NewBuilder(c.siteFS, c.markdown.Loader(), indexer.Options{
		SourceDir:     sitePath(c.Config.Build.SourceDir),
		OutputPath:    c.OutputPath(),
		MetaPath:      sitePath(c.Config.Build.MetaPath),
		DefaultAuthor: c.Config.Build.DefaultAuthor,
	}, opts...)
}

func (c *Container) configureRenderers() error {
	renderLogger := logging.RenderLogger(c.loggerProvider)
	rc := c.Config.Render

	c.list = render.NewListRenderer(c.siteSource,
		render.WithIndexPath(rc.IndexPath),
		render.WithDocumentPage(rc.DocumentPage),
		render.WithListLogger(renderLogger),
	)
	c.document = render.NewDocumentRenderer(c.siteSource, c.markdown, render.DocumentOptions{
		MetaPath:      rc.MetaPath,
		ContentPrefix: rc.ContentPrefix,
		Owner:         c.Config.Site.Owner,
	}, render.WithDocumentLogger(renderLogger))

	templates, err := render.NewTemplates(render.TemplateOptions{
		Owner:    c.Config.Site.Owner,
		ListPage: folhttp.DefaultListPage,
	})
	if err != nil {
		return fmt.Errorf("di: configure templates: %w", err)
	}
	c.templates = templates
	return nil
}

func (c *Container) configureCommands() error {
	timeout := c.Config.Commands.Timeout.Std()
	set, err := indexcmd.RegisterIndexCommands(nil, c.builder, c.loggerProvider,
		indexcmd.WithBuildHandlerOptions(commands.WithTimeout[indexcmd.BuildIndexCommand](timeout)),
		indexcmd.WithVerifyHandlerOptions(commands.WithTimeout[indexcmd.VerifyIndexCommand](timeout)),
	)
	if err != nil {
		return fmt.Errorf("di: configure index commands: %w", err)
	}
	c.indexHandlers = set
	return nil
}

func (c *Container) configureSession() {
	if secret := strings.TrimSpace(c.Config.Server.SessionSecret); secret != "" {
		c.sessionSecret = []byte(secret)
		return
	}
	c.sessionSecret = []byte(uuid.NewString() + uuid.NewString())
	logging.HTTPLogger(c.loggerProvider).Warn("di.session.secret_generated",
		"reason", "server.session_secret is empty; unlock sessions will not survive restarts",
	)
}

// OutputPath is the operating system path of the JSON index. Relative
// config values are resolved against the site root.
func (c *Container) OutputPath() string {
	out := c.Config.Build.OutputPath
	if filepath.IsAbs(out) {
		return out
	}
	return filepath.Join(c.Config.Site.Root, filepath.FromSlash(out))
}

// SourceDir is the operating system path of the document directory.
func (c *Container) SourceDir() string {
	return filepath.Join(c.Config.Site.Root, filepath.FromSlash(sitePath(c.Config.Build.SourceDir)))
}

// LoggerProvider exposes the configured logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// MarkdownService exposes the markdown service.
func (c *Container) MarkdownService() *markdown.Service {
	return c.markdown
}

// Builder exposes the index builder.
func (c *Container) Builder() *indexer.Builder {
	return c.builder
}

// ListRenderer exposes the list renderer.
func (c *Container) ListRenderer() *render.ListRenderer {
	return c.list
}

// DocumentRenderer exposes the document renderer.
func (c *Container) DocumentRenderer() *render.DocumentRenderer {
	return c.document
}

// Templates exposes the page templates.
func (c *Container) Templates() *render.Templates {
	return c.templates
}

// Source exposes the source the renderers fetch from.
func (c *Container) Source() interfaces.Source {
	return c.siteSource
}

// IndexHandlers exposes the build and verify command handlers.
func (c *Container) IndexHandlers() *indexcmd.HandlerSet {
	return c.indexHandlers
}

// HTTPServer builds the gin front end over the container services. Raw
// artifacts are always served from the local site tree. The rebuild route
// stays disabled unless opts include folhttp.WithRebuildHandler.
func (c *Container) HTTPServer(opts ...folhttp.Option) *folhttp.Server {
	rc := c.Config.Render
	base := []folhttp.Option{
		folhttp.WithSource(c.localSrc),
		folhttp.WithPaths(folhttp.Paths{
			IndexPath:     rc.IndexPath,
			MetaPath:      rc.MetaPath,
			ContentPrefix: rc.ContentPrefix,
		}),
		folhttp.WithPages(folhttp.DefaultListPage, rc.DocumentPage),
		folhttp.WithSession(c.Config.Server.SessionName, c.sessionSecret),
		folhttp.WithLogger(logging.HTTPLogger(c.loggerProvider)),
		folhttp.WithClock(c.now),
	}
	return folhttp.NewServer(c.list, c.document, c.templates, append(base, opts...)...)
}

// Watcher returns a watcher over SourceDir that calls rebuild.
func (c *Container) Watcher(rebuild func(ctx context.Context) error) *watcher.Watcher {
	return watcher.New(c.SourceDir(), rebuild,
		watcher.WithDebounce(c.Config.Build.Watch.Debounce.Std()),
		watcher.WithExtension(c.Config.Build.Extension),
		watcher.WithLogger(logging.WatcherLogger(c.loggerProvider)),
	)
}

func sitePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	return path.Clean(strings.TrimPrefix(filepath.ToSlash(p), "/"))
}
