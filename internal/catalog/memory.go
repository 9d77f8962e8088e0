package catalog

import (
	"context"
	"sync"

	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

// MemoryRepository keeps the snapshot in memory for tests and dry runs.
type MemoryRepository struct {
	mu       sync.RWMutex
	snapshot *interfaces.Snapshot
	loadErr  error
	saves    int
}

var _ interfaces.CatalogRepository = (*MemoryRepository)(nil)

// NewMemoryRepository seeds the repository with a copy of snapshot.
func NewMemoryRepository(snapshot *interfaces.Snapshot) *MemoryRepository {
	return &MemoryRepository{snapshot: CloneSnapshot(snapshot)}
}

// FailLoads makes subsequent Load calls return err until cleared with nil.
func (r *MemoryRepository) FailLoads(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loadErr = err
}

// Load returns a copy of the stored snapshot.
func (r *MemoryRepository) Load(ctx context.Context) (*interfaces.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return CloneSnapshot(r.snapshot), nil
}

// SaveArticles replaces the stored article list.
func (r *MemoryRepository) SaveArticles(ctx context.Context, articles []interfaces.ArticleRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot.Articles = CloneArticles(articles)
	r.saves++
	return nil
}

// SaveCatalog replaces the stored catalog tree.
func (r *MemoryRepository) SaveCatalog(ctx context.Context, catalog []interfaces.Category) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot.Catalog = CloneCatalog(catalog)
	r.saves++
	return nil
}

// Saves reports how many save calls succeeded.
func (r *MemoryRepository) Saves() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.saves
}
