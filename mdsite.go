// Package mdsite converts a directory of Markdown articles into HTML pages
// and keeps the site's article database and category catalog in step with
// the sources.
package mdsite

import (
	"context"

	"github.com/goliatone/go-mdsite/internal/di"
	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

type (
	SyncOptions  = interfaces.SyncOptions
	SyncResult   = interfaces.SyncResult
	FileResult   = interfaces.FileResult
	StripOptions = interfaces.StripOptions
	StripResult  = interfaces.StripResult
)

// Module represents the top level runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a module from cfg and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Sync runs one Markdown to article batch.
func (m *Module) Sync(ctx context.Context, opts SyncOptions) (*SyncResult, error) {
	return m.container.SyncService().Sync(ctx, opts)
}

// StripBacklinks removes the legacy "back to blog" link from generated pages.
func (m *Module) StripBacklinks(ctx context.Context, opts StripOptions) (*StripResult, error) {
	return m.container.SyncService().StripBacklinks(ctx, opts)
}

// Markdown returns the Markdown service.
func (m *Module) Markdown() interfaces.MarkdownService {
	return m.container.MarkdownService()
}

// Catalog returns the configured catalog store.
func (m *Module) Catalog() interfaces.CatalogRepository {
	return m.container.Repository()
}

// Close releases resources held by the store backend.
func (m *Module) Close() error {
	if m == nil {
		return nil
	}
	return m.container.Close()
}
