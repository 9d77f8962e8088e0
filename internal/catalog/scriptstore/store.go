// Package scriptstore persists the article database and catalog inside the
// browser script that renders them. Only the two array declarations are
// rewritten; every other byte of the file is preserved.
package scriptstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/goliatone/go-mdsite/internal/catalog"
	"github.com/goliatone/go-mdsite/internal/logging"
	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

// Default declaration names used by the site's script.
const (
	DefaultArticlesName = "articlesDatabase"
	DefaultCatalogName  = "articlesCatalog"
)

// Config locates the script file and the declarations inside it.
type Config struct {
	Path         string
	ArticlesName string
	CatalogName  string
	Logger       interfaces.Logger
}

// Store implements interfaces.CatalogRepository over a script file.
type Store struct {
	mu           sync.Mutex
	path         string
	articlesName string
	catalogName  string
	logger       interfaces.Logger
}

var _ interfaces.CatalogRepository = (*Store)(nil)

// New constructs a Store. Declaration names default to the site's names.
func New(cfg Config) *Store {
	articles := strings.TrimSpace(cfg.ArticlesName)
	if articles == "" {
		articles = DefaultArticlesName
	}
	catalogName := strings.TrimSpace(cfg.CatalogName)
	if catalogName == "" {
		catalogName = DefaultCatalogName
	}
	return &Store{
		path:         cfg.Path,
		articlesName: articles,
		catalogName:  catalogName,
		logger:       logging.Ensure(cfg.Logger),
	}
}

// Path returns the script file path.
func (s *Store) Path() string {
	return s.path
}

// Load parses both declarations. When one of them cannot be located or
// decoded the returned snapshot holds an empty collection in its place and
// the error reports every failure; callers decide whether that is fatal.
func (s *Store) Load(ctx context.Context) (*interfaces.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	src, err := s.read()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return Parse(src, s.articlesName, s.catalogName)
}

// SaveArticles rewrites the article declaration with articles.
func (s *Store) SaveArticles(ctx context.Context, articles []interfaces.ArticleRecord) error {
	return s.save(ctx, s.articlesName, catalog.CloneArticles(articles))
}

// SaveCatalog rewrites the catalog declaration with categories.
func (s *Store) SaveCatalog(ctx context.Context, categories []interfaces.Category) error {
	return s.save(ctx, s.catalogName, catalog.CloneCatalog(categories))
}

func (s *Store) save(ctx context.Context, name string, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	src, err := s.read()
	if err != nil {
		return err
	}
	updated, err := Replace(src, name, value)
	if err != nil {
		return err
	}
	if bytes.Equal(src, updated) {
		s.logger.Debug("catalog.store.unchanged", "path", s.path, "declaration", name)
		return nil
	}

	info, err := os.Stat(s.path)
	if err != nil {
		return catalog.FileSystemError(s.path, err)
	}
	if err := os.WriteFile(s.path, updated, info.Mode().Perm()); err != nil {
		return catalog.FileSystemError(s.path, err)
	}
	s.logger.Debug("catalog.store.saved", "path", s.path, "declaration", name, "bytes", len(updated))
	return nil
}

func (s *Store) read() ([]byte, error) {
	src, err := os.ReadFile(s.path)
	if err != nil {
		return nil, catalog.FileSystemError(s.path, err)
	}
	return src, nil
}

// Parse decodes the article and catalog declarations from script source.
// See Store.Load for the partial failure contract.
func Parse(src []byte, articlesName, catalogName string) (*interfaces.Snapshot, error) {
	snapshot := &interfaces.Snapshot{
		Articles: []interfaces.ArticleRecord{},
		Catalog:  []interfaces.Category{},
	}

	var errs []error
	if err := decodeDeclaration(src, articlesName, &snapshot.Articles); err != nil {
		snapshot.Articles = []interfaces.ArticleRecord{}
		errs = append(errs, err)
	}
	if err := decodeDeclaration(src, catalogName, &snapshot.Catalog); err != nil {
		snapshot.Catalog = []interfaces.Category{}
		errs = append(errs, err)
	}
	snapshot = catalog.CloneSnapshot(snapshot)
	return snapshot, errors.Join(errs...)
}

// Replace renders value in the script dialect and splices it over the
// declaration called name, keeping the declaration keyword.
func Replace(src []byte, name string, value any) ([]byte, error) {
	loc, err := locate(src, name)
	if err != nil {
		return nil, catalog.StoreParseError(name, err)
	}
	literal, err := encodeLiteral(value)
	if err != nil {
		return nil, fmt.Errorf("scriptstore: encode %s: %w", name, err)
	}

	var out bytes.Buffer
	out.Grow(len(src) + len(literal))
	out.Write(src[:loc.start])
	out.WriteString(loc.keyword + " " + name + " = ")
	out.Write(literal)
	out.WriteByte(';')
	out.Write(src[loc.end:])
	return out.Bytes(), nil
}

func decodeDeclaration(src []byte, name string, target any) error {
	loc, err := locate(src, name)
	if err != nil {
		return catalog.StoreParseError(name, err)
	}
	if err := decodeLiteral(src[loc.literalStart:loc.literalEnd], target); err != nil {
		return catalog.StoreParseError(name, err)
	}
	return nil
}
