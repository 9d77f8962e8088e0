package markdown

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

// LoaderConfig configures how Markdown files are discovered within a base directory.
type LoaderConfig struct {
	// BasePath is the directory the loader's filesystem is rooted at. It is
	// used to turn absolute paths into filesystem relative ones.
	BasePath string
	// Pattern limits discovered files to those matching the glob (defaults to "*.md").
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
	// Resolver derives article metadata. A resolver with default settings is used when nil.
	Resolver *MetadataResolver
}

// Loader turns filesystem paths into Markdown documents with resolved metadata.
type Loader struct {
	fs        fs.FS
	basePath  string
	pattern   string
	recursive bool
	resolver  *MetadataResolver
}

// NewLoader constructs a Loader using the provided filesystem and configuration.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := cfg.Pattern
	if strings.TrimSpace(pattern) == "" {
		pattern = "*.md"
	}
	resolver := cfg.Resolver
	if resolver == nil {
		resolver = NewMetadataResolver(DefaultDefaults(), nil)
	}
	return &Loader{
		fs:        filesystem,
		basePath:  filepath.Clean(cfg.BasePath),
		pattern:   pattern,
		recursive: cfg.Recursive,
		resolver:  resolver,
	}
}

// BuildDocument assembles a Document from raw source. BodyHTML and TOC are
// left empty so callers can render lazily.
func BuildDocument(path string, source []byte, modified time.Time, resolver *MetadataResolver) *interfaces.Document {
	if resolver == nil {
		resolver = NewMetadataResolver(DefaultDefaults(), nil)
	}
	meta, body := resolver.Resolve(source)
	sum := sha256.Sum256(source)
	return &interfaces.Document{
		FilePath:     path,
		Metadata:     meta,
		Body:         body,
		LastModified: modified,
		Checksum:     sum[:],
	}
}

// LoadFile reads and parses a single Markdown document.
func (l *Loader) LoadFile(ctx context.Context, name string) (*DocumentResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rel, err := l.makeRelative(name)
	if err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", rel, err)
	}
	info, err := fs.Stat(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader stat %s: %w", rel, err)
	}

	return &DocumentResult{
		Document: BuildDocument(rel, data, info.ModTime(), l.resolver),
		Source:   data,
	}, nil
}

// ListFiles returns the slash separated paths of every file under dir that
// matches the pattern, sorted lexically.
func (l *Loader) ListFiles(ctx context.Context, dir string, opts LoadParams) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root, err := l.makeRelative(dir)
	if err != nil {
		return nil, err
	}

	recursive := l.recursive
	if opts.Recursive != nil {
		recursive = *opts.Recursive
	}

	var files []string
	walkErr := fs.WalkDir(l.fs, root, func(current string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if current != root && !recursive {
				return fs.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if l.matchesPattern(current, opts.Pattern) {
			files = append(files, current)
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Strings(files)
	return files, nil
}

// LoadDirectory discovers Markdown files under dir and returns parsed
// documents. The first unreadable file aborts the walk; callers needing
// per-file outcomes combine ListFiles with LoadFile.
func (l *Loader) LoadDirectory(ctx context.Context, dir string, opts LoadParams) ([]*DocumentResult, error) {
	files, err := l.ListFiles(ctx, dir, opts)
	if err != nil {
		return nil, err
	}
	results := make([]*DocumentResult, 0, len(files))
	for _, file := range files {
		result, err := l.LoadFile(ctx, file)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

func (l *Loader) matchesPattern(name string, override string) bool {
	pattern := override
	if strings.TrimSpace(pattern) == "" {
		pattern = l.pattern
	}
	pattern = strings.ReplaceAll(filepath.ToSlash(pattern), "**/", "")

	target := path.Base(name)
	if strings.Contains(pattern, "/") {
		target = name
	}
	match, err := path.Match(pattern, target)
	return err == nil && match
}

func (l *Loader) makeRelative(name string) (string, error) {
	clean := filepath.Clean(name)
	if !filepath.IsAbs(clean) {
		return filepath.ToSlash(clean), nil
	}
	if l.basePath == "" || l.basePath == "." {
		return "", fmt.Errorf("markdown loader: absolute path %s provided without base path", name)
	}
	rel, err := filepath.Rel(l.basePath, clean)
	if err != nil {
		return "", fmt.Errorf("markdown loader: make relative %s: %w", name, err)
	}
	return filepath.ToSlash(rel), nil
}

// DocumentResult carries the parsed document along with the raw source.
type DocumentResult struct {
	Document *interfaces.Document
	Source   []byte
}

// LoadParams provide call-specific overrides for discovery.
type LoadParams struct {
	Pattern   string
	Recursive *bool
}
