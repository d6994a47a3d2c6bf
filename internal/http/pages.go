package http

import (
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-folio/internal/blog"
	"github.com/goliatone/go-folio/internal/render"
)

const htmlContentType = "text/html; charset=utf-8"

func (s *Server) registerPageRoutes(router gin.IRouter) {
	router.GET(joinPath(s.listPage, ""), s.handleList)
	router.GET("/blog", s.handleList)
	router.GET(joinPath(s.documentPage, ""), func(c *gin.Context) {
		s.renderDocument(c, c.Query("slug"))
	})
	router.GET("/blog/:slug", func(c *gin.Context) {
		s.renderDocument(c, c.Param("slug"))
	})
}

func (s *Server) handleList(c *gin.Context) {
	view := s.list.Render(c.Request.Context())
	s.writePage(c, render.ListTemplate, view)
}

func (s *Server) renderDocument(c *gin.Context, slug string) {
	view := s.document.Render(c.Request.Context(), slug)
	s.writePage(c, render.DocumentTemplate, view)
}

// writePage answers 200 for every renderer outcome, panels included.
func (s *Server) writePage(c *gin.Context, name string, view any) {
	page, err := s.templates.Render(name, view)
	if err != nil {
		s.logger.Error("http.page.render_failed", "template", name, "error", err)
		c.Data(http.StatusInternalServerError, htmlContentType, []byte(errorPage))
		return
	}
	c.Data(http.StatusOK, htmlContentType, []byte(page))
}

func (s *Server) registerArtifactRoutes(router gin.IRouter) {
	router.GET(joinPath(s.paths.IndexPath, ""), s.serveArtifact(s.paths.IndexPath))
	router.GET(joinPath(s.paths.MetaPath, ""), s.serveArtifact(s.paths.MetaPath))
	router.GET(joinPath(s.paths.ContentPrefix, "*name"), func(c *gin.Context) {
		prefix := strings.Trim(s.paths.ContentPrefix, "/")
		name := path.Clean(path.Join(prefix, c.Param("name")))
		if !strings.HasPrefix(name, prefix+"/") {
			c.Data(http.StatusNotFound, htmlContentType, []byte(notFoundPage))
			return
		}
		s.serveArtifact(name)(c)
	})
}

func (s *Server) serveArtifact(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := s.source.Fetch(c.Request.Context(), name)
		if err != nil {
			if missing(err) {
				c.Data(http.StatusNotFound, htmlContentType, []byte(notFoundPage))
				return
			}
			s.logger.Warn("http.artifact.failed", "path", name, "code", blog.TextCode(err), "error", err)
			writeError(c, err)
			return
		}
		c.Data(http.StatusOK, contentType(name), data)
	}
}

func contentType(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		return "application/json; charset=utf-8"
	case ".md", ".markdown":
		return "text/markdown; charset=utf-8"
	case ".html":
		return htmlContentType
	}
	return "text/plain; charset=utf-8"
}

const errorPage = `<!DOCTYPE html>
<html lang="en"><head><meta charset="UTF-8"><title>Error</title></head>
<body><h1>Something went wrong</h1></body></html>
`
