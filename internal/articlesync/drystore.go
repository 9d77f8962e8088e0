package articlesync

import (
	"context"

	"github.com/goliatone/go-mdsite/internal/catalog"
	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

// dryRunStore reads the real store once and keeps every later save in
// memory, so a dry run sees its own upserts without touching the store.
type dryRunStore struct {
	base    interfaces.CatalogRepository
	overlay *catalog.MemoryRepository
}

var _ interfaces.CatalogRepository = (*dryRunStore)(nil)

func newDryRunStore(base interfaces.CatalogRepository) *dryRunStore {
	return &dryRunStore{base: base}
}

func (d *dryRunStore) Load(ctx context.Context) (*interfaces.Snapshot, error) {
	if d.overlay == nil {
		snapshot, err := d.base.Load(ctx)
		if err != nil {
			return nil, err
		}
		d.overlay = catalog.NewMemoryRepository(snapshot)
	}
	return d.overlay.Load(ctx)
}

func (d *dryRunStore) SaveArticles(ctx context.Context, articles []interfaces.ArticleRecord) error {
	if _, err := d.Load(ctx); err != nil {
		return err
	}
	return d.overlay.SaveArticles(ctx, articles)
}

func (d *dryRunStore) SaveCatalog(ctx context.Context, categories []interfaces.Category) error {
	if _, err := d.Load(ctx); err != nil {
		return err
	}
	return d.overlay.SaveCatalog(ctx, categories)
}
