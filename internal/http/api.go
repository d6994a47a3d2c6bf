package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-folio/internal/blog"
	indexcmd "github.com/goliatone/go-folio/internal/commands/index"
	"github.com/goliatone/go-folio/internal/indexer"
	"github.com/goliatone/go-folio/internal/render"
	"github.com/goliatone/go-folio/internal/unlock"
)

type documentResponse struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	DisplayDate string   `json:"display_date"`
	ReadTime    string   `json:"read_time,omitempty"`
	Tags        []string `json:"tags"`
	HTML        string   `json:"html"`
	CodeBlocks  int      `json:"code_blocks"`
}

type unlockRequest struct {
	Email string `json:"email" form:"email"`
}

type unlockResponse struct {
	Unlocked   bool       `json:"unlocked"`
	Email      string     `json:"email,omitempty"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

type rebuildResponse struct {
	BuildID   string   `json:"build_id"`
	Documents int      `json:"documents"`
	Skipped   []string `json:"skipped,omitempty"`
	Written   bool     `json:"written"`
}

func (s *Server) registerAPIRoutes(api gin.IRouter) {
	if s.source != nil {
		api.GET("/blogs", s.handleIndex)
	}
	api.GET("/blogs/:slug", s.handleDocument)

	unlockGroup := api.Group("/unlock", s.sessionMiddleware())
	unlockGroup.GET("", s.handleUnlockStatus)
	unlockGroup.POST("", s.handleUnlock)

	if s.rebuild != nil {
		api.POST("/index/rebuild", s.handleRebuild)
	}
}

// handleIndex returns the index as stored, after checking it parses.
func (s *Server) handleIndex(c *gin.Context) {
	data, err := s.source.Fetch(c.Request.Context(), s.paths.IndexPath)
	if err != nil {
		writeError(c, err)
		return
	}
	var records []blog.DocumentRecord
	if err := json.Unmarshal(data, &records); err != nil {
		writeError(c, blog.ParseFailure(err, "decode "+s.paths.IndexPath))
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func (s *Server) handleDocument(c *gin.Context) {
	view := s.document.Render(c.Request.Context(), c.Param("slug"))
	if view.State != render.DocRendered {
		writeError(c, view.Err)
		return
	}
	tags := view.Meta.Tags
	if tags == nil {
		tags = []string{}
	}
	c.JSON(http.StatusOK, documentResponse{
		Slug:        view.Slug,
		Title:       view.Meta.Title,
		Description: view.Description,
		Date:        view.Meta.Date,
		DisplayDate: view.Date,
		ReadTime:    view.Meta.ReadTime,
		Tags:        tags,
		HTML:        string(view.Body),
		CodeBlocks:  view.CodeBlocks,
	})
}

func (s *Server) handleUnlockStatus(c *gin.Context) {
	store := unlock.NewSessionStore(sessions.Default(c))
	state, ok, err := unlock.Check(c.Request.Context(), store, s.now())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, unlockPayload(state, ok))
}

func (s *Server) handleUnlock(c *gin.Context) {
	var req unlockRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}

	store := unlock.NewSessionStore(sessions.Default(c))
	state, err := unlock.Record(c.Request.Context(), store, req.Email, s.now())
	if err != nil {
		writeError(c, err)
		return
	}
	s.logger.Info("http.unlock.recorded", "domain", emailDomain(state.Email))
	c.JSON(http.StatusOK, unlockPayload(state, true))
}

func (s *Server) handleRebuild(c *gin.Context) {
	var result *indexer.BuildResult
	msg := indexcmd.BuildIndexCommand{
		Policy:  indexer.SkipAndReport,
		Trigger: indexcmd.TriggerHTTP,
		ResultCallback: func(r *indexer.BuildResult) {
			result = r
		},
	}
	if err := s.rebuild.Execute(c.Request.Context(), msg); err != nil {
		writeError(c, err)
		return
	}

	resp := rebuildResponse{}
	if result != nil {
		resp.BuildID = result.BuildID
		resp.Documents = len(result.Records)
		resp.Written = result.Written
		for _, skipped := range result.Skipped {
			resp.Skipped = append(resp.Skipped, skipped.Path)
		}
	}
	c.JSON(http.StatusOK, resp)
}

func unlockPayload(state unlock.State, ok bool) unlockResponse {
	if !ok {
		return unlockResponse{}
	}
	unlockedAt := state.UnlockedAt
	expiresAt := state.UnlockedAt.Add(unlock.Window)
	return unlockResponse{
		Unlocked:   true,
		Email:      state.Email,
		UnlockedAt: &unlockedAt,
		ExpiresAt:  &expiresAt,
	}
}

func emailDomain(email string) string {
	if at := strings.LastIndex(email, "@"); at >= 0 {
		return email[at+1:]
	}
	return ""
}
