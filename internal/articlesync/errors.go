package articlesync

import (
	"fmt"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

func missingTitleError(path string) error {
	return goerrors.Wrap(
		fmt.Errorf("%w: %s", interfaces.ErrMissingTitle, path),
		goerrors.CategoryValidation,
		"markdown file has no title",
	).WithTextCode(interfaces.TextCodeMissingTitle)
}

func errSlice(errs []error) []error {
	filtered := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	return filtered
}

func firstError(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return errs[0]
}
