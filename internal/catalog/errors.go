package catalog

import (
	"fmt"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

// StoreParseError wraps a failure to locate or decode a stored collection.
// The result matches interfaces.ErrStoreParse with errors.Is.
func StoreParseError(collection string, err error) error {
	if err == nil {
		err = fmt.Errorf("collection %q not found", collection)
	}
	return goerrors.Wrap(
		fmt.Errorf("%w: %s: %w", interfaces.ErrStoreParse, collection, err),
		goerrors.CategoryValidation,
		"catalog store could not be parsed",
	).WithTextCode(interfaces.TextCodeStoreParse)
}

// FileSystemError wraps a failed read, write or delete on path. The result
// matches interfaces.ErrFileSystem with errors.Is.
func FileSystemError(path string, err error) error {
	return goerrors.Wrap(
		fmt.Errorf("%w: %s: %w", interfaces.ErrFileSystem, path, err),
		goerrors.CategoryCommand,
		"filesystem operation failed",
	).WithTextCode(interfaces.TextCodeFileSystem)
}
