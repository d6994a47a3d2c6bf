package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	command "github.com/goliatone/go-command"

	indexcmd "github.com/goliatone/go-folio/internal/commands/index"
	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/internal/render"
	"github.com/goliatone/go-folio/internal/unlock"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

// Default route and session settings.
const (
	DefaultListPage     = "blog.html"
	DefaultDocumentPage = "blog-post.html"
	DefaultSessionName  = "folio"
	DefaultAPIBase      = "/api"
)

// Paths locates the raw artifacts served next to the pages. All values are
// slash separated and relative to the site root.
type Paths struct {
	IndexPath     string
	MetaPath      string
	ContentPrefix string
}

// Server exposes the list and document pages, raw artifacts and the JSON
// API.
type Server struct {
	list      *render.ListRenderer
	document  *render.DocumentRenderer
	templates interfaces.TemplateRenderer
	source    interfaces.Source
	paths     Paths

	listPage     string
	documentPage string
	apiBase      string

	sessionName   string
	sessionSecret []byte

	rebuild command.Commander[indexcmd.BuildIndexCommand]
	logger  interfaces.Logger
	now     func() time.Time
}

// Option mutates the Server configuration.
type Option func(*Server)

// WithSource sets the source used for raw artifacts and /api/blogs.
func WithSource(src interfaces.Source) Option {
	return func(s *Server) {
		if src != nil {
			s.source = src
		}
	}
}

// WithPaths overrides the raw artifact locations.
func WithPaths(paths Paths) Option {
	return func(s *Server) {
		if strings.TrimSpace(paths.IndexPath) != "" {
			s.paths.IndexPath = paths.IndexPath
		}
		if strings.TrimSpace(paths.MetaPath) != "" {
			s.paths.MetaPath = paths.MetaPath
		}
		if strings.TrimSpace(paths.ContentPrefix) != "" {
			s.paths.ContentPrefix = paths.ContentPrefix
		}
	}
}

// WithPages overrides the page file names, "blog.html" and "blog-post.html"
// by default.
func WithPages(listPage, documentPage string) Option {
	return func(s *Server) {
		if trimmed := strings.TrimSpace(listPage); trimmed != "" {
			s.listPage = trimmed
		}
		if trimmed := strings.TrimSpace(documentPage); trimmed != "" {
			s.documentPage = trimmed
		}
	}
}

// WithAPIBase overrides the JSON API prefix (defaults to "/api").
func WithAPIBase(base string) Option {
	return func(s *Server) {
		if trimmed := strings.TrimSpace(base); trimmed != "" {
			s.apiBase = trimmed
		}
	}
}

// WithSession configures the cookie session holding unlock state.
func WithSession(name string, secret []byte) Option {
	return func(s *Server) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			s.sessionName = trimmed
		}
		if len(secret) > 0 {
			s.sessionSecret = secret
		}
	}
}

// WithRebuildHandler enables POST {api}/index/rebuild.
func WithRebuildHandler(handler command.Commander[indexcmd.BuildIndexCommand]) Option {
	return func(s *Server) {
		s.rebuild = handler
	}
}

// WithLogger sets the request logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the clock used for unlock checks.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// NewServer constructs a Server. Without WithSource, raw artifact routes and
// /api/blogs are not registered.
func NewServer(list *render.ListRenderer, document *render.DocumentRenderer, templates interfaces.TemplateRenderer, opts ...Option) *Server {
	s := &Server{
		list:      list,
		document:  document,
		templates: templates,
		paths: Paths{
			IndexPath:     render.DefaultIndexPath,
			MetaPath:      render.DefaultMetaPath,
			ContentPrefix: render.DefaultContentPrefix,
		},
		listPage:     DefaultListPage,
		documentPage: DefaultDocumentPage,
		apiBase:      DefaultAPIBase,
		sessionName:  DefaultSessionName,
		logger:       logging.NoOp(),
		now:          time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Register attaches every route to router.
func (s *Server) Register(router gin.IRouter) error {
	if router == nil {
		return fmt.Errorf("http: router is required")
	}
	if s == nil {
		return fmt.Errorf("http: server is nil")
	}
	if s.list == nil || s.document == nil || s.templates == nil {
		return errors.New("http: list, document and templates are required")
	}
	if len(s.sessionSecret) == 0 {
		return errors.New("http: session secret is required")
	}

	s.registerPageRoutes(router)
	if s.source != nil {
		s.registerArtifactRoutes(router)
	}
	s.registerAPIRoutes(router.Group(joinPath(s.apiBase, "")))
	return nil
}

// Engine returns a gin engine with recovery, request logging and every
// route registered.
func (s *Server) Engine() (*gin.Engine, error) {
	engine := gin.New()
	engine.Use(gin.Recovery(), s.requestLogger())
	engine.NoRoute(func(c *gin.Context) {
		c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte(notFoundPage))
	})
	if err := s.Register(engine); err != nil {
		return nil, err
	}
	return engine, nil
}

func (s *Server) sessionMiddleware() gin.HandlerFunc {
	store := cookie.NewStore(s.sessionSecret)
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(unlock.Window.Seconds()),
		HttpOnly: true,
	})
	return sessions.Sessions(s.sessionName, store)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		logging.WithFields(s.logger, map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(started).Milliseconds(),
		}).Debug("http.request")
	}
}

const notFoundPage = `<!DOCTYPE html>
<html lang="en"><head><meta charset="UTF-8"><title>Not Found</title></head>
<body><h1>404</h1><p>Page not found.</p></body></html>
`
