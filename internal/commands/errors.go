package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes for command failures that arrive without a go-errors category.
const (
	CodeMessageRejected = "FOLIO_COMMAND_REJECTED"
	CodeCancelled       = "FOLIO_COMMAND_CANCELLED"
	CodeTimedOut        = "FOLIO_COMMAND_TIMED_OUT"
	CodeFailed          = "FOLIO_COMMAND_FAILED"
)

// categorise returns err as a go-errors value. Errors that already are one,
// such as the blog taxonomy raised by builds, keep their category and code.
func categorise(err error, category goerrors.Category, code, message string) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, category, message).WithTextCode(code)
}

func rejected(err error) error {
	return categorise(err, goerrors.CategoryValidation, CodeMessageRejected, "command message rejected")
}

func interrupted(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return categorise(err, goerrors.CategoryCommand, CodeTimedOut, "command timed out")
	}
	return categorise(err, goerrors.CategoryCommand, CodeCancelled, "command cancelled")
}

func failed(err error) error {
	return categorise(err, goerrors.CategoryCommand, CodeFailed, "command failed")
}
