// Package articlesync drives the Markdown to article batch: every source file
// is parsed, rendered, composed into a page and recorded in the catalog
// store, then output files and records without a source are reconciled away.
package articlesync

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-mdsite/internal/catalog"
	"github.com/goliatone/go-mdsite/internal/logging"
	"github.com/goliatone/go-mdsite/internal/markdown"
	"github.com/goliatone/go-mdsite/internal/slugs"
	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

// DocumentSource discovers, parses and renders Markdown sources.
type DocumentSource interface {
	BasePath() string
	ListFiles(ctx context.Context, dir string, opts interfaces.LoadOptions) ([]string, error)
	Parse(ctx context.Context, path string) (*interfaces.Document, error)
	RenderDocument(ctx context.Context, doc *interfaces.Document, opts interfaces.ParseOptions) error
}

// PageComposer turns metadata and rendered HTML into a named page.
type PageComposer interface {
	Compose(meta interfaces.ArticleMetadata, body []byte, toc string) (string, []byte, error)
}

// Config locates generated pages and shapes new records.
type Config struct {
	OutputDir  string
	LinkPrefix string
	Icons      map[string]string
}

// Service implements interfaces.ArticleSyncService.
type Service struct {
	cfg      Config
	source   DocumentSource
	composer PageComposer
	repo     interfaces.CatalogRepository
	slugger  *slugs.Slugger
	logger   interfaces.Logger
	newRunID func() string
}

var _ interfaces.ArticleSyncService = (*Service)(nil)

// Option customises a Service.
type Option func(*Service)

// WithLogger sets the logger used for run and file events.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSlugger shares a slugger with the page composer so both derive file
// names from the same memoised table.
func WithSlugger(slugger *slugs.Slugger) Option {
	return func(s *Service) {
		if slugger != nil {
			s.slugger = slugger
		}
	}
}

// WithRunIDGenerator overrides how run identifiers are minted.
func WithRunIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newRunID = fn
		}
	}
}

// NewService wires the driver.
func NewService(cfg Config, source DocumentSource, composer PageComposer, repo interfaces.CatalogRepository, opts ...Option) *Service {
	if cfg.LinkPrefix == "" {
		cfg.LinkPrefix = catalog.DefaultLinkPrefix
	}
	if cfg.Icons == nil {
		cfg.Icons = catalog.DefaultIcons()
	}
	svc := &Service{
		cfg:      cfg,
		source:   source,
		composer: composer,
		repo:     repo,
		slugger:  slugs.NewSlugger(),
		logger:   logging.NoOp(),
		newRunID: uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

// Sync processes every Markdown file in the source directory and, when
// opts.DeleteOrphaned is set, reconciles the output directory and article
// database against the sources. Failures are collected per file and phase;
// only context cancellation stops the batch early. The returned error is the
// first collected failure.
func (s *Service) Sync(ctx context.Context, opts interfaces.SyncOptions) (*interfaces.SyncResult, error) {
	runID := s.newRunID()
	ctx, logger := logging.WithRunID(ctx, s.logger, runID)
	acc := newSyncAccumulator(runID)

	logger.Info("articlesync.run.started",
		"source", s.source.BasePath(),
		"output", s.cfg.OutputDir,
		"dry_run", opts.DryRun,
		"delete_orphaned", opts.DeleteOrphaned,
	)

	if opts.SeedExample {
		if err := s.seedExample(opts, logger); err != nil {
			acc.addError(err)
		}
	}

	repo := s.repo
	if opts.DryRun {
		repo = newDryRunStore(s.repo)
	}

	files, listErr := s.listSources(ctx)
	if listErr != nil {
		acc.addError(listErr)
		logger.Error("articlesync.source.list_failed", "error", listErr)
	}
	if len(files) == 0 && listErr == nil {
		logger.Warn("articlesync.source.empty", "source", s.source.BasePath())
	}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			acc.addError(err)
			return acc.result(), err
		}
		acc.record(s.processFile(ctx, repo, file, opts, logger))
	}

	if opts.DeleteOrphaned {
		if listErr != nil {
			logger.Warn("articlesync.reconcile.skipped", "reason", "source listing failed")
		} else if err := s.reconcile(ctx, repo, opts, acc, logger); err != nil {
			acc.addError(err)
		}
	}

	result := acc.result()
	logger.Info("articlesync.run.completed",
		"created", result.Created,
		"updated", result.Updated,
		"skipped", result.Skipped,
		"failed", len(result.Failed()),
		"deleted", result.Deleted,
		"removed", result.Removed,
	)
	return result, firstError(errSlice(result.Errors))
}

func (s *Service) processFile(ctx context.Context, repo interfaces.CatalogRepository, file string, opts interfaces.SyncOptions, logger interfaces.Logger) interfaces.FileResult {
	result := interfaces.FileResult{Path: file}
	fullPath := s.sourcePath(file)

	fail := func(err error) interfaces.FileResult {
		result.Status = interfaces.FileStatusFailed
		result.Error = err
		logging.WithArticleContext(logger, file, result.Title, "failed").
			Error("articlesync.file.failed", "error", err)
		return result
	}

	doc, err := s.source.Parse(ctx, file)
	if err != nil {
		return fail(catalog.FileSystemError(fullPath, err))
	}

	meta := doc.Metadata
	if !meta.HasTitle() {
		result.Status = interfaces.FileStatusSkipped
		result.Error = missingTitleError(fullPath)
		logging.WithArticleContext(logger, file, "", "skipped").
			Warn("articlesync.file.skipped", "reason", "missing title")
		return result
	}
	result.Title = meta.Title

	if err := s.source.RenderDocument(ctx, doc, interfaces.ParseOptions{}); err != nil {
		return fail(err)
	}

	fileName, html, err := s.composer.Compose(meta, doc.BodyHTML, markdown.RenderTOC(doc.TOC))
	if err != nil {
		return fail(err)
	}
	result.FileName = fileName

	if !opts.DryRun {
		if err := s.writePage(fileName, html); err != nil {
			return fail(err)
		}
	}

	status, err := s.upsert(ctx, repo, meta, fileName, logger)
	if err != nil {
		return fail(err)
	}
	result.Status = status

	logging.WithArticleContext(logger, file, meta.Title, string(status)).
		Info("articlesync.file."+string(status), "file_name", fileName)
	return result
}

// upsert records the article. New titles also ensure their category and
// section exist in the catalog; the catalog is never pruned.
func (s *Service) upsert(ctx context.Context, repo interfaces.CatalogRepository, meta interfaces.ArticleMetadata, fileName string, logger interfaces.Logger) (interfaces.FileStatus, error) {
	snapshot, err := repo.Load(ctx)
	if err != nil {
		return interfaces.FileStatusFailed, err
	}

	record := catalog.NewRecord(meta, s.cfg.LinkPrefix, fileName)
	articles, created := catalog.UpsertArticle(snapshot.Articles, record)
	status := interfaces.FileStatusUpdated
	if created {
		status = interfaces.FileStatusCreated
	}

	if created {
		tree, changed := catalog.EnsureNode(snapshot.Catalog, meta.Category, meta.Section, s.cfg.Icons)
		if changed {
			if err := repo.SaveCatalog(ctx, tree); err != nil {
				return interfaces.FileStatusFailed, err
			}
			logger.Info("articlesync.catalog.extended", "category", meta.Category, "section", meta.Section)
		}
	}
	if err := repo.SaveArticles(ctx, articles); err != nil {
		return interfaces.FileStatusFailed, err
	}
	return status, nil
}

// reconcile removes output pages and records whose title no longer maps to
// a Markdown source. Expected names are recomputed from a fresh read of the
// sources. Deletions are skipped if any source cannot be read.
func (s *Service) reconcile(ctx context.Context, repo interfaces.CatalogRepository, opts interfaces.SyncOptions, acc *syncAccumulator, logger interfaces.Logger) error {
	files, err := s.listSources(ctx)
	if err != nil {
		return err
	}

	expected := make(map[string]struct{}, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		doc, err := s.source.Parse(ctx, file)
		if err != nil {
			logger.Error("articlesync.reconcile.aborted", "markdown_path", file, "error", err)
			return catalog.FileSystemError(s.sourcePath(file), err)
		}
		if doc.Metadata.HasTitle() {
			expected[s.slugger.HTMLName(doc.Metadata.Title)] = struct{}{}
		}
	}

	s.deleteOrphanedPages(expected, opts.DryRun, acc, logger)

	snapshot, err := repo.Load(ctx)
	if err != nil {
		return err
	}
	kept, removed := catalog.PruneArticles(snapshot.Articles, expected)
	if len(removed) == 0 {
		return nil
	}
	if err := repo.SaveArticles(ctx, kept); err != nil {
		return err
	}
	for _, record := range removed {
		acc.removeRecord(record.Title)
		logger.Info("articlesync.record.removed", "article_title", record.Title, "link", record.Link)
	}
	return nil
}

func (s *Service) deleteOrphanedPages(expected map[string]struct{}, dryRun bool, acc *syncAccumulator, logger interfaces.Logger) {
	entries, err := os.ReadDir(s.cfg.OutputDir)
	if errors.Is(err, fs.ErrNotExist) {
		return
	}
	if err != nil {
		acc.addError(catalog.FileSystemError(s.cfg.OutputDir, err))
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(name), slugs.HTMLExtension) {
			continue
		}
		if _, ok := expected[name]; ok {
			continue
		}
		if !dryRun {
			path := filepath.Join(s.cfg.OutputDir, name)
			if err := os.Remove(path); err != nil {
				acc.addError(catalog.FileSystemError(path, err))
				logger.Error("articlesync.page.delete_failed", "file_name", name, "error", err)
				continue
			}
		}
		acc.deletePage(name)
		logger.Info("articlesync.page.deleted", "file_name", name)
	}
}

func (s *Service) listSources(ctx context.Context) ([]string, error) {
	files, err := s.source.ListFiles(ctx, ".", interfaces.LoadOptions{})
	if err != nil {
		return nil, catalog.FileSystemError(s.source.BasePath(), err)
	}
	return files, nil
}

func (s *Service) seedExample(opts interfaces.SyncOptions, logger interfaces.Logger) error {
	dir := s.source.BasePath()
	_, err := os.Stat(dir)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return catalog.FileSystemError(dir, err)
	}
	if opts.DryRun {
		logger.Info("articlesync.source.seed_skipped", "source", dir)
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return catalog.FileSystemError(dir, err)
	}
	path := filepath.Join(dir, ExampleFileName)
	if err := os.WriteFile(path, []byte(exampleArticle), 0o644); err != nil {
		return catalog.FileSystemError(path, err)
	}
	logger.Info("articlesync.source.seeded", "source", dir, "file_name", ExampleFileName)
	return nil
}

func (s *Service) writePage(fileName string, html []byte) error {
	if err := os.MkdirAll(s.cfg.OutputDir, 0o755); err != nil {
		return catalog.FileSystemError(s.cfg.OutputDir, err)
	}
	path := filepath.Join(s.cfg.OutputDir, fileName)
	if err := os.WriteFile(path, html, 0o644); err != nil {
		return catalog.FileSystemError(path, err)
	}
	return nil
}

func (s *Service) sourcePath(file string) string {
	return filepath.Join(s.source.BasePath(), filepath.FromSlash(file))
}

type syncAccumulator struct {
	runID         string
	created       int
	updated       int
	skipped       int
	deletedFiles  []string
	removedTitles []string
	files         []interfaces.FileResult
	errors        []error
}

func newSyncAccumulator(runID string) *syncAccumulator {
	return &syncAccumulator{
		runID:         runID,
		deletedFiles:  []string{},
		removedTitles: []string{},
		files:         []interfaces.FileResult{},
		errors:        []error{},
	}
}

func (a *syncAccumulator) record(file interfaces.FileResult) {
	a.files = append(a.files, file)
	switch file.Status {
	case interfaces.FileStatusCreated:
		a.created++
	case interfaces.FileStatusUpdated:
		a.updated++
	case interfaces.FileStatusSkipped:
		a.skipped++
	case interfaces.FileStatusFailed:
		a.addError(file.Error)
	}
}

func (a *syncAccumulator) deletePage(name string) {
	a.deletedFiles = append(a.deletedFiles, name)
}

func (a *syncAccumulator) removeRecord(title string) {
	a.removedTitles = append(a.removedTitles, title)
}

func (a *syncAccumulator) addError(err error) {
	if err != nil {
		a.errors = append(a.errors, err)
	}
}

func (a *syncAccumulator) result() *interfaces.SyncResult {
	return &interfaces.SyncResult{
		RunID:         a.runID,
		Created:       a.created,
		Updated:       a.updated,
		Skipped:       a.skipped,
		Deleted:       len(a.deletedFiles),
		Removed:       len(a.removedTitles),
		DeletedFiles:  a.deletedFiles,
		RemovedTitles: a.removedTitles,
		Files:         a.files,
		Errors:        a.errors,
	}
}
