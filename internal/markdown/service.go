package markdown

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

// Config controls how the Markdown service discovers, parses and renders files.
type Config struct {
	BasePath  string
	Pattern   string
	Recursive bool
	Parser    interfaces.ParseOptions
	Defaults  Defaults
	// Now supplies the processing date used as the default article date.
	Now func() time.Time
}

// Service implements interfaces.MarkdownService for filesystem-backed articles.
type Service struct {
	cfg    Config
	parser interfaces.MarkdownParser
	loader *Loader
}

var _ interfaces.MarkdownService = (*Service)(nil)

// NewService constructs a Markdown service rooted at cfg.BasePath. When
// parser is nil a GoldmarkParser using cfg.Parser is created. The base path
// may not exist yet; reads fail per file until it does.
func NewService(cfg Config, parser interfaces.MarkdownParser) (*Service, error) {
	filesystem, err := prepareFilesystem(cfg.BasePath)
	if err != nil {
		return nil, err
	}
	if parser == nil {
		parser = NewGoldmarkParser(cfg.Parser)
	}

	loader := NewLoader(filesystem, LoaderConfig{
		BasePath:  cfg.BasePath,
		Pattern:   cfg.Pattern,
		Recursive: cfg.Recursive,
		Resolver:  NewMetadataResolver(cfg.Defaults, cfg.Now),
	})

	return &Service{
		cfg:    cfg,
		parser: parser,
		loader: loader,
	}, nil
}

// BasePath returns the directory the service reads Markdown sources from.
func (s *Service) BasePath() string {
	return s.cfg.BasePath
}

// Load reads and renders a single document relative to the base path.
func (s *Service) Load(ctx context.Context, path string, opts interfaces.LoadOptions) (*interfaces.Document, error) {
	result, err := s.loader.LoadFile(ctx, s.normalisePath(path))
	if err != nil {
		return nil, err
	}
	if err := s.RenderDocument(ctx, result.Document, opts.Parser); err != nil {
		return nil, err
	}
	return result.Document, nil
}

// LoadDirectory reads and renders every document within dir.
func (s *Service) LoadDirectory(ctx context.Context, dir string, opts interfaces.LoadOptions) ([]*interfaces.Document, error) {
	results, err := s.loader.LoadDirectory(ctx, s.normalisePath(dir), toLoaderParams(opts))
	if err != nil {
		return nil, err
	}
	docs := make([]*interfaces.Document, 0, len(results))
	for _, result := range results {
		if err := s.RenderDocument(ctx, result.Document, opts.Parser); err != nil {
			return nil, err
		}
		docs = append(docs, result.Document)
	}
	return docs, nil
}

// ListFiles returns the Markdown files under dir without reading them.
func (s *Service) ListFiles(ctx context.Context, dir string, opts interfaces.LoadOptions) ([]string, error) {
	return s.loader.ListFiles(ctx, s.normalisePath(dir), toLoaderParams(opts))
}

// Parse reads a single document and resolves its metadata without rendering.
func (s *Service) Parse(ctx context.Context, path string) (*interfaces.Document, error) {
	result, err := s.loader.LoadFile(ctx, s.normalisePath(path))
	if err != nil {
		return nil, err
	}
	return result.Document, nil
}

// Render converts Markdown into HTML with stable heading ids and collects
// the table of contents.
func (s *Service) Render(ctx context.Context, markdown []byte, opts interfaces.ParseOptions) (*interfaces.RenderResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		rendered []byte
		err      error
	)
	if isZeroParseOptions(opts) {
		rendered, err = s.parser.Parse(markdown)
	} else {
		rendered, err = s.parser.ParseWithOptions(markdown, mergeParseOptions(s.cfg.Parser, opts))
	}
	if err != nil {
		return nil, err
	}

	rendered = InjectHeadingIDs(rendered)
	return &interfaces.RenderResult{
		HTML: rendered,
		TOC:  BuildTOC(rendered),
	}, nil
}

// RenderDocument renders doc's body and stores the HTML and TOC on it.
func (s *Service) RenderDocument(ctx context.Context, doc *interfaces.Document, opts interfaces.ParseOptions) error {
	if doc == nil {
		return errors.New("markdown service: document is nil")
	}
	result, err := s.Render(ctx, doc.Body, opts)
	if err != nil {
		return fmt.Errorf("markdown render document %s: %w", doc.FilePath, err)
	}
	doc.BodyHTML = result.HTML
	doc.TOC = result.TOC
	return nil
}

func (s *Service) normalisePath(path string) string {
	if strings.TrimSpace(path) == "" {
		return "."
	}
	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) && strings.TrimSpace(s.cfg.BasePath) != "" {
		if rel, err := filepath.Rel(s.cfg.BasePath, clean); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(clean)
}

func isZeroParseOptions(opts interfaces.ParseOptions) bool {
	return len(opts.Extensions) == 0 && !opts.HardWraps && !opts.SafeMode && opts.HighlightStyle == ""
}

func mergeParseOptions(base, override interfaces.ParseOptions) interfaces.ParseOptions {
	result := base
	if len(override.Extensions) > 0 {
		result.Extensions = append([]string(nil), override.Extensions...)
	}
	if override.HardWraps {
		result.HardWraps = true
	}
	if override.SafeMode {
		result.SafeMode = true
	}
	if override.HighlightStyle != "" {
		result.HighlightStyle = override.HighlightStyle
	}
	return result
}

func toLoaderParams(opts interfaces.LoadOptions) LoadParams {
	return LoadParams{
		Pattern:   opts.Pattern,
		Recursive: opts.Recursive,
	}
}

func prepareFilesystem(basePath string) (fs.FS, error) {
	if strings.TrimSpace(basePath) == "" {
		basePath = "."
	}
	info, err := os.Stat(basePath)
	switch {
	case err == nil && !info.IsDir():
		return nil, fmt.Errorf("markdown service: base path %s is not a directory", basePath)
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("markdown service: stat base path %s: %w", basePath, err)
	}
	return os.DirFS(basePath), nil
}
