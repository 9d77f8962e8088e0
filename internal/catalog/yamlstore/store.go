// Package yamlstore persists the article database and catalog as a single
// YAML document.
package yamlstore

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-mdsite/internal/catalog"
	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

// Store implements interfaces.CatalogRepository over a YAML file. A missing
// file reads as an empty snapshot and is created on the first save.
type Store struct {
	mu   sync.Mutex
	path string
}

var _ interfaces.CatalogRepository = (*Store)(nil)

// New constructs a Store for path.
func New(path string) *Store {
	return &Store{path: path}
}

// Load decodes the document.
func (s *Store) Load(ctx context.Context) (*interfaces.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// SaveArticles replaces the article list, keeping the stored catalog.
func (s *Store) SaveArticles(ctx context.Context, articles []interfaces.ArticleRecord) error {
	return s.update(ctx, func(snapshot *interfaces.Snapshot) {
		snapshot.Articles = catalog.CloneArticles(articles)
	})
}

// SaveCatalog replaces the catalog tree, keeping the stored articles.
func (s *Store) SaveCatalog(ctx context.Context, categories []interfaces.Category) error {
	return s.update(ctx, func(snapshot *interfaces.Snapshot) {
		snapshot.Catalog = catalog.CloneCatalog(categories)
	})
}

func (s *Store) update(ctx context.Context, mutate func(*interfaces.Snapshot)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, err := s.load()
	if err != nil {
		return err
	}
	mutate(snapshot)

	data, err := yaml.Marshal(snapshot)
	if err != nil {
		return catalog.StoreParseError(s.path, err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return catalog.FileSystemError(s.path, err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return catalog.FileSystemError(s.path, err)
	}
	return nil
}

func (s *Store) load() (*interfaces.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return catalog.CloneSnapshot(nil), nil
	}
	if err != nil {
		return nil, catalog.FileSystemError(s.path, err)
	}

	var snapshot interfaces.Snapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return nil, catalog.StoreParseError(s.path, err)
	}
	return catalog.CloneSnapshot(&snapshot), nil
}
