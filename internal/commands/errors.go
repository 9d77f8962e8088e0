package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	commandValidationCode   = "COMMAND_VALIDATION_FAILED"
	commandContextCanceled  = "COMMAND_CONTEXT_CANCELED"
	commandContextTimeout   = "COMMAND_CONTEXT_TIMEOUT"
	commandContextErrorCode = "COMMAND_CONTEXT_ERROR"
	commandExecuteFailed    = "COMMAND_EXECUTION_FAILED"
)

// contextFailures maps context errors to their message and text code. Any
// other context error falls back to commandContextErrorCode.
var contextFailures = []struct {
	target  error
	message string
	code    string
}{
	{context.Canceled, "command execution cancelled", commandContextCanceled},
	{context.DeadlineExceeded, "command execution deadline exceeded", commandContextTimeout},
}

// wrapCommandError attaches category and code unless err already carries a
// go-errors classification, as pipeline errors such as ErrStoreParse do.
func wrapCommandError(err error, category goerrors.Category, message, code string) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, category, message).WithTextCode(code)
}

func wrapValidationError(err error) error {
	return wrapCommandError(err, goerrors.CategoryValidation, "command validation failed", commandValidationCode)
}

func wrapContextError(err error) error {
	for _, failure := range contextFailures {
		if errors.Is(err, failure.target) {
			return wrapCommandError(err, goerrors.CategoryCommand, failure.message, failure.code)
		}
	}
	return wrapCommandError(err, goerrors.CategoryCommand, "command context error", commandContextErrorCode)
}

func wrapExecuteError(err error) error {
	return wrapCommandError(err, goerrors.CategoryCommand, "command execution failed", commandExecuteFailed)
}
