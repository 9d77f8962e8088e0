package interfaces

import "errors"

var (
	// ErrMissingTitle marks a Markdown document with neither a front matter
	// title nor a top level heading.
	ErrMissingTitle = errors.New("mdsite: article title missing")
	// ErrStoreParse marks a store whose article or catalog collection could
	// not be located or decoded.
	ErrStoreParse = errors.New("mdsite: store parse failed")
	// ErrFileSystem marks read, write or delete failures on Markdown, HTML or
	// store files.
	ErrFileSystem = errors.New("mdsite: filesystem operation failed")
)

// Text codes attached to wrapped pipeline errors.
const (
	TextCodeMissingTitle = "MISSING_TITLE"
	TextCodeStoreParse   = "STORE_PARSE_FAILED"
	TextCodeFileSystem   = "FILESYSTEM_FAILED"
)
