package http

import (
	"errors"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-folio/internal/blog"
	"github.com/goliatone/go-folio/internal/indexer"
	"github.com/goliatone/go-folio/internal/source"
	"github.com/goliatone/go-folio/internal/unlock"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.Trim(strings.TrimSpace(base), "/")
	trimmedSuffix := strings.Trim(strings.TrimSpace(suffix), "/")
	switch {
	case trimmedBase == "" && trimmedSuffix == "":
		return "/"
	case trimmedBase == "":
		return "/" + trimmedSuffix
	case trimmedSuffix == "":
		return "/" + trimmedBase
	}
	return "/" + trimmedBase + "/" + trimmedSuffix
}

func writeError(c *gin.Context, err error) {
	status, payload := mapError(err)
	c.JSON(status, payload)
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	code := blog.TextCode(err)
	switch {
	case errors.Is(err, unlock.ErrInvalidEmail):
		return http.StatusUnprocessableEntity, errorResponse{Error: "invalid_email", Message: err.Error()}
	case errors.Is(err, indexer.ErrIntegrity):
		return http.StatusConflict, errorResponse{Error: "integrity_drift", Message: err.Error(), Code: code}
	case goerrors.IsCategory(err, goerrors.CategoryValidation):
		return http.StatusBadRequest, errorResponse{Error: "invalid_input", Message: err.Error(), Code: code}
	case goerrors.IsCategory(err, goerrors.CategoryNotFound):
		return http.StatusNotFound, errorResponse{Error: "not_found", Message: err.Error(), Code: code}
	case goerrors.IsCategory(err, goerrors.CategoryExternal):
		if missing(err) {
			return http.StatusNotFound, errorResponse{Error: "not_found", Message: err.Error(), Code: code}
		}
		return http.StatusBadGateway, errorResponse{Error: "fetch_failed", Message: err.Error(), Code: code}
	case goerrors.IsCategory(err, goerrors.CategoryBadInput):
		return http.StatusUnprocessableEntity, errorResponse{Error: "parse_failed", Message: err.Error(), Code: code}
	case goerrors.IsCategory(err, goerrors.CategoryCommand):
		return http.StatusInternalServerError, errorResponse{Error: "build_failed", Message: err.Error(), Code: code}
	}
	return http.StatusInternalServerError, errorResponse{Error: "internal_error", Message: err.Error(), Code: code}
}

// missing reports fetch failures caused by an absent artifact.
func missing(err error) bool {
	if errors.Is(err, fs.ErrNotExist) {
		return true
	}
	var status *source.StatusError
	return errors.As(err, &status) && status.StatusCode == http.StatusNotFound
}
