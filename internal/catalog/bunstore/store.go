// Package bunstore persists the article database and catalog in SQL tables
// through bun. Positions are stored explicitly so list order survives.
package bunstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

// Store implements interfaces.CatalogRepository over a bun database.
type Store struct {
	db *bun.DB
}

var _ interfaces.CatalogRepository = (*Store)(nil)

// New wraps an existing bun database.
func New(db *bun.DB) *Store {
	return &Store{db: db}
}

// OpenSQLite opens dsn with the sqlite3 driver and wraps it for bun.
func OpenSQLite(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("bunstore: open sqlite: %w", err)
	}
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// CreateSchema creates the store tables when they do not exist.
func (s *Store) CreateSchema(ctx context.Context) error {
	if s.db == nil {
		return errors.New("bunstore: database not configured")
	}
	for _, model := range Models() {
		if _, err := s.db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("bunstore: create table: %w", err)
		}
	}
	return nil
}

// Load reads both collections ordered by position.
func (s *Store) Load(ctx context.Context) (*interfaces.Snapshot, error) {
	if s.db == nil {
		return nil, errors.New("bunstore: database not configured")
	}

	var articles []articleModel
	if err := s.db.NewSelect().Model(&articles).Order("position ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("bunstore: list articles: %w", err)
	}

	var rows catalogRows
	if err := s.db.NewSelect().Model(&rows.categories).Order("position ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("bunstore: list categories: %w", err)
	}
	if err := s.db.NewSelect().Model(&rows.sections).Order("category_position ASC", "position ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("bunstore: list sections: %w", err)
	}
	if err := s.db.NewSelect().Model(&rows.articles).
		Order("category_position ASC", "section_position ASC", "position ASC").
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("bunstore: list catalog articles: %w", err)
	}

	return &interfaces.Snapshot{
		Articles: articleRecordsFrom(articles),
		Catalog:  rows.tree(),
	}, nil
}

// SaveArticles replaces the article table contents in one transaction.
func (s *Store) SaveArticles(ctx context.Context, articles []interfaces.ArticleRecord) error {
	if s.db == nil {
		return errors.New("bunstore: database not configured")
	}
	models := articleModelsFrom(articles)

	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*articleModel)(nil)).Where("1 = 1").Exec(ctx); err != nil {
			return fmt.Errorf("bunstore: clear articles: %w", err)
		}
		if len(models) == 0 {
			return nil
		}
		if _, err := tx.NewInsert().Model(&models).Exec(ctx); err != nil {
			return fmt.Errorf("bunstore: insert articles: %w", err)
		}
		return nil
	})
}

// SaveCatalog replaces the catalog tables contents in one transaction.
func (s *Store) SaveCatalog(ctx context.Context, categories []interfaces.Category) error {
	if s.db == nil {
		return errors.New("bunstore: database not configured")
	}
	rows := catalogRowsFrom(categories)

	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, model := range []any{
			(*catalogArticleModel)(nil),
			(*sectionModel)(nil),
			(*categoryModel)(nil),
		} {
			if _, err := tx.NewDelete().Model(model).Where("1 = 1").Exec(ctx); err != nil {
				return fmt.Errorf("bunstore: clear catalog: %w", err)
			}
		}
		if len(rows.categories) > 0 {
			if _, err := tx.NewInsert().Model(&rows.categories).Exec(ctx); err != nil {
				return fmt.Errorf("bunstore: insert categories: %w", err)
			}
		}
		if len(rows.sections) > 0 {
			if _, err := tx.NewInsert().Model(&rows.sections).Exec(ctx); err != nil {
				return fmt.Errorf("bunstore: insert sections: %w", err)
			}
		}
		if len(rows.articles) > 0 {
			if _, err := tx.NewInsert().Model(&rows.articles).Exec(ctx); err != nil {
				return fmt.Errorf("bunstore: insert catalog articles: %w", err)
			}
		}
		return nil
	})
}
