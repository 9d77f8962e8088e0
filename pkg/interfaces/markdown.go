package interfaces

import (
	"context"
	"time"
)

// MarkdownParser converts raw Markdown bytes into HTML.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown rendering. Option names stay readable so
// they can be decoded from configuration files and CLI flags.
type ParseOptions struct {
	// Extensions lists goldmark extensions by name (gfm, table, linkify, ...).
	// An empty list selects GFM with linkify and task lists.
	Extensions []string `yaml:"extensions"`
	// HardWraps renders single newlines as <br>.
	HardWraps bool `yaml:"hard_wraps"`
	// SafeMode suppresses raw HTML embedded in Markdown.
	SafeMode bool `yaml:"safe_mode"`
	// HighlightStyle enables chroma syntax highlighting with the named style.
	HighlightStyle string `yaml:"highlight_style"`
}

// MarkdownService exposes the article level Markdown workflows: loading
// documents from disk, resolving metadata and rendering bodies together with
// their table of contents.
type MarkdownService interface {
	Load(ctx context.Context, path string, opts LoadOptions) (*Document, error)
	LoadDirectory(ctx context.Context, dir string, opts LoadOptions) ([]*Document, error)
	Render(ctx context.Context, markdown []byte, opts ParseOptions) (*RenderResult, error)
	RenderDocument(ctx context.Context, doc *Document, opts ParseOptions) error
}

// Document is a Markdown source file with its resolved metadata. BodyHTML and
// TOC are populated once the document has been rendered.
type Document struct {
	FilePath     string
	Metadata     ArticleMetadata
	Body         []byte
	BodyHTML     []byte
	TOC          []TOCEntry
	LastModified time.Time
	// Checksum is the SHA-256 digest of the raw file content.
	Checksum []byte
}

// ArticleMetadata is the per-document metadata after defaults have been
// applied. It is rebuilt on every run and flattened into an ArticleRecord.
type ArticleMetadata struct {
	Title       string
	Category    string
	Section     string
	Date        string
	Gradient    string
	Description string
	Excerpt     string
	Author      string
	ReadTime    string
	// Extra keeps front matter keys that have no dedicated field.
	Extra map[string]string
}

// HasTitle reports whether a title could be derived for the document.
func (m ArticleMetadata) HasTitle() bool {
	for _, r := range m.Title {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return true
		}
	}
	return false
}

// TOCEntry is one heading captured for the table of contents.
type TOCEntry struct {
	Level int
	ID    string
	Text  string
}

// RenderResult is the output of rendering a Markdown body.
type RenderResult struct {
	HTML []byte
	TOC  []TOCEntry
}

// LoadOptions fine-tunes how documents are discovered and parsed from disk.
type LoadOptions struct {
	Recursive *bool
	Pattern   string
	Parser    ParseOptions
}

// ArticleSyncService runs the Markdown to article synchronisation batch.
type ArticleSyncService interface {
	Sync(ctx context.Context, opts SyncOptions) (*SyncResult, error)
	StripBacklinks(ctx context.Context, opts StripOptions) (*StripResult, error)
}

// SyncOptions controls a synchronisation run.
type SyncOptions struct {
	// DryRun computes every outcome without touching the output directory or store.
	DryRun bool
	// DeleteOrphaned runs the reconcile phase once all files are processed.
	DeleteOrphaned bool
	// SeedExample creates the source directory and an example article when it is missing.
	SeedExample bool
}

// FileStatus is the terminal state of a single Markdown file within a run.
type FileStatus string

const (
	FileStatusCreated FileStatus = "created"
	FileStatusUpdated FileStatus = "updated"
	FileStatusSkipped FileStatus = "skipped"
	FileStatusFailed  FileStatus = "failed"
)

// FileResult records the outcome for one Markdown source file.
type FileResult struct {
	Path     string
	Title    string
	FileName string
	Status   FileStatus
	Error    error
}

// Succeeded reports whether the file produced an article.
func (r FileResult) Succeeded() bool {
	return r.Status == FileStatusCreated || r.Status == FileStatusUpdated
}

// SyncResult summarises a synchronisation run.
type SyncResult struct {
	RunID   string
	Created int
	Updated int
	Skipped int
	// Deleted counts orphaned HTML files removed from the output directory.
	Deleted int
	// Removed counts orphaned records dropped from the article database.
	Removed       int
	DeletedFiles  []string
	RemovedTitles []string
	Files         []FileResult
	Errors        []error
}

// Failed returns the files that could not be processed. Skipped files are
// not failures.
func (r *SyncResult) Failed() []FileResult {
	if r == nil {
		return nil
	}
	out := make([]FileResult, 0)
	for _, file := range r.Files {
		if file.Status == FileStatusFailed {
			out = append(out, file)
		}
	}
	return out
}

// HasFailures reports whether any file or phase failed.
func (r *SyncResult) HasFailures() bool {
	if r == nil {
		return false
	}
	return len(r.Errors) > 0 || len(r.Failed()) > 0
}

// StripOptions controls a backlink stripping run over generated articles.
type StripOptions struct {
	DryRun bool
}

// StripResult summarises a backlink stripping run.
type StripResult struct {
	Processed []string
	Changed   []string
	Failed    map[string]error
}
