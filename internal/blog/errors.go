package blog

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to folio errors.
const (
	CodeMissingInput = "MISSING_INPUT"
	CodeFetchFailure = "FETCH_FAILURE"
	CodeNotFound     = "NOT_FOUND"
	CodeParseFailure = "PARSE_FAILURE"
	CodeBuildFatal   = "BUILD_FATAL"
)

var (
	// ErrMissingInput reports an absent source directory or slug.
	ErrMissingInput = errors.New("folio: missing input")
	// ErrFetchFailure reports a transport error or non-2xx response.
	ErrFetchFailure = errors.New("folio: fetch failed")
	// ErrNotFound reports a slug that is absent or unpublished.
	ErrNotFound = errors.New("folio: not found")
	// ErrParseFailure reports unreadable JSON or Markdown input.
	ErrParseFailure = errors.New("folio: parse failed")
	// ErrBuildFatal reports an aborted index build.
	ErrBuildFatal = errors.New("folio: build failed")
)

// MissingInput wraps cause as a validation error.
func MissingInput(cause error, msg string) error {
	return classify(ErrMissingInput, cause, goerrors.CategoryValidation, CodeMissingInput, msg)
}

// FetchFailure wraps cause as an external error.
func FetchFailure(cause error, msg string) error {
	return classify(ErrFetchFailure, cause, goerrors.CategoryExternal, CodeFetchFailure, msg)
}

// NotFound wraps cause as a not-found error.
func NotFound(cause error, msg string) error {
	return classify(ErrNotFound, cause, goerrors.CategoryNotFound, CodeNotFound, msg)
}

// ParseFailure wraps cause as a bad-input error.
func ParseFailure(cause error, msg string) error {
	return classify(ErrParseFailure, cause, goerrors.CategoryBadInput, CodeParseFailure, msg)
}

// BuildFatal wraps cause as a command error that aborts a build.
func BuildFatal(cause error, msg string) error {
	return classify(ErrBuildFatal, cause, goerrors.CategoryCommand, CodeBuildFatal, msg)
}

// classify joins sentinel and cause so errors.Is matches both, then tags the
// result with a go-errors category and text code. goerrors.Wrap is avoided
// because it would clone a go-errors cause and drop the sentinel.
func classify(sentinel, cause error, category goerrors.Category, code, msg string) error {
	source := sentinel
	if cause != nil {
		source = fmt.Errorf("%w: %w", sentinel, cause)
	}
	wrapped := goerrors.New(msg, category).WithTextCode(code)
	wrapped.Source = source
	return wrapped
}

// TextCode reports the text code of the first folio sentinel err matches.
func TextCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingInput):
		return CodeMissingInput
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrFetchFailure):
		return CodeFetchFailure
	case errors.Is(err, ErrParseFailure):
		return CodeParseFailure
	case errors.Is(err, ErrBuildFatal):
		return CodeBuildFatal
	default:
		return ""
	}
}
